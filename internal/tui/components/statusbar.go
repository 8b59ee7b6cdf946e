package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/playpen/internal/selectors"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

// StatusBar manages the bottom status bar.
type StatusBar struct {
	label     string
	channel   string
	mode      string
	edition   string
	version   string
	permalink string
	notice    string
	busy      bool
	spinner   string
}

// NewStatusBar creates a new status bar.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// Sync copies the labels derived from s.
func (s *StatusBar) Sync(st store.State) {
	s.label = selectors.ExecutionLabel(st)
	s.channel = selectors.ChannelLabel(st)
	s.mode = selectors.ModeLabel(st)
	s.edition = string(st.Configuration.Edition)
	s.version = ""
	if st.Versions.Loaded {
		s.version = channelVersion(st)
	}
	s.permalink = ""
	if st.Output.Gist.ID != "" {
		s.permalink = selectors.Permalink(st)
	}
	s.busy = st.Output.Gist.RequestsInProgress > 0 ||
		st.Versions.RequestsInProgress > 0
	for _, f := range TabOrder {
		if tabBusy(st, f) {
			s.busy = true
		}
	}
}

func channelVersion(st store.State) string {
	switch st.Configuration.Channel {
	case types.ChannelBeta:
		return st.Versions.Beta.Version
	case types.ChannelNightly:
		return st.Versions.Nightly.Version
	}
	return st.Versions.Stable.Version
}

// SetSpinner updates the spinner frame shown while busy.
func (s *StatusBar) SetSpinner(view string) {
	s.spinner = view
}

// SetNotice shows a one-line notice in place of the key hints.
func (s *StatusBar) SetNotice(msg string) {
	s.notice = msg
}

// Busy reports whether any request is in flight.
func (s *StatusBar) Busy() bool {
	return s.busy
}

// Render renders the status bar.
func (s *StatusBar) Render(width int) string {
	leftText := "ctrl+r: " + s.label + "  f1: help"
	switch {
	case s.notice != "":
		leftText = s.notice
	case s.permalink != "":
		leftText += "  |  " + s.permalink
	}

	parts := []string{s.channel, s.mode, s.edition}
	if s.version != "" {
		parts = append(parts, s.version)
	}
	rightText := strings.Join(parts, " · ")
	if s.busy && s.spinner != "" {
		rightText = s.spinner + " " + rightText
	}

	leftStyled := lipgloss.NewStyle().Faint(true).Render(leftText)
	right := lipgloss.NewStyle().Faint(true).Render(rightText)

	// Ensure right part is always visible
	rightW := lipgloss.Width(right)
	if rightW >= width {
		return ansi.Truncate(right, width, "…")
	}

	avail := width - rightW - 1
	leftRendered := leftStyled
	if lipgloss.Width(leftRendered) > avail {
		leftRendered = ansi.Truncate(leftRendered, avail, "…")
	} else if lipgloss.Width(leftRendered) < avail {
		leftRendered = leftRendered + strings.Repeat(" ", avail-lipgloss.Width(leftRendered))
	}

	return leftRendered + " " + right
}
