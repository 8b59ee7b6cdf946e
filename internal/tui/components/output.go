package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/playpen/internal/selectors"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/tui/ansi"
	"github.com/interpretive-systems/playpen/internal/tui/theme"
	"github.com/interpretive-systems/playpen/internal/types"
)

// WasmOutput is what running the last build artifact reported.
type WasmOutput struct {
	Lines []string
	Error string
}

// OutputPane shows the focused result slot in a scrollable viewport.
type OutputPane struct {
	vp    viewport.Model
	th    theme.Theme
	diff  *DiffView
	wasm  WasmOutput
	lines []string
	focus types.Focus
}

// NewOutputPane creates an empty pane.
func NewOutputPane(th theme.Theme) *OutputPane {
	return &OutputPane{vp: viewport.New(1, 1), th: th, diff: NewDiffView(th)}
}

// SetSize resizes the viewport.
func (o *OutputPane) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	o.vp.Width = width
	o.vp.Height = height
}

// SetTheme swaps the palette.
func (o *OutputPane) SetTheme(th theme.Theme) {
	o.th = th
	o.diff.SetTheme(th)
}

// SetWasmOutput records what the last artifact run reported.
func (o *OutputPane) SetWasmOutput(w WasmOutput) {
	o.wasm = w
}

// Diff exposes the format renderer for layout toggles.
func (o *OutputPane) Diff() *DiffView {
	return o.diff
}

// Show renders the focused slot of s. Switching focus scrolls to the top.
func (o *OutputPane) Show(s store.State) {
	f, _ := s.Output.Meta.Focused()
	if f != o.focus {
		o.vp.GotoTop()
		o.focus = f
	}
	o.lines = o.render(s, f)
	o.vp.SetContent(strings.Join(o.lines, "\n"))
}

// Lines returns the rendered content before scrolling.
func (o *OutputPane) Lines() []string {
	return o.lines
}

// Update forwards scroll keys to the viewport.
func (o *OutputPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	o.vp, cmd = o.vp.Update(msg)
	return cmd
}

// View renders the visible part of the pane.
func (o *OutputPane) View() string {
	return o.vp.View()
}

func (o *OutputPane) render(s store.State, f types.Focus) []string {
	width := o.vp.Width
	if f == types.FocusGist {
		return o.renderGist(s.Output.Gist, selectors.Permalink(s), width)
	}
	op, ok := types.OperationForFocus(f)
	if !ok {
		return []string{o.th.Faint(TabLabel(f) + " output is not available in this client")}
	}
	slot := s.Output.Slot(op)
	if slot.InFlight() {
		return []string{o.th.AccentText("Progress…")}
	}

	var lines []string
	if slot.Error != "" {
		lines = append(lines, o.section("Error", slot.Error, width, o.th.ErrorText)...)
	}
	if slot.Stderr != "" {
		lines = append(lines, o.section("Standard Error", slot.Stderr, width, nil)...)
	}
	switch op {
	case types.OpFormat:
		if slot.Error == "" && slot.Rows != nil {
			o.diff.SetRows(slot.Rows)
			lines = append(lines, o.diff.Render(width)...)
		}
	case types.OpCompile:
		if len(slot.Body) > 0 {
			lines = append(lines, o.th.Bold(fmt.Sprintf("Build artifact: %d bytes", len(slot.Body))))
			if o.wasm.Error != "" {
				lines = append(lines, o.th.ErrorText(o.wasm.Error))
			}
			for _, l := range o.wasm.Lines {
				lines = append(lines, ansi.Wrap(l, width)...)
			}
			lines = append(lines, "")
		}
	}
	if slot.Stdout != "" {
		lines = append(lines, o.section("Standard Output", slot.Stdout, width, nil)...)
	} else if op != types.OpCompile && len(slot.Body) > 0 {
		lines = append(lines, o.section("Standard Output", string(slot.Body), width, nil)...)
	}
	if len(lines) == 0 {
		return []string{o.th.Faint("No output")}
	}
	return lines
}

func (o *OutputPane) renderGist(g store.GistSlot, permalink string, width int) []string {
	switch {
	case g.RequestsInProgress > 0:
		return []string{o.th.AccentText("Sharing…")}
	case g.Error != "":
		return o.section("Error", g.Error, width, o.th.ErrorText)
	case g.ID == "":
		return []string{o.th.Faint("Nothing shared yet")}
	}
	return []string{
		o.th.Bold("Permalink to the playground"),
		ansi.Clip(permalink, width),
		"",
		o.th.Bold("Direct link to the gist"),
		ansi.Clip(g.URL, width),
	}
}

func (o *OutputPane) section(title, body string, width int, style func(string) string) []string {
	lines := []string{o.th.Bold(title)}
	for _, l := range ansi.Wrap(body, width) {
		if style != nil {
			l = style(l)
		}
		lines = append(lines, l)
	}
	return append(lines, "")
}
