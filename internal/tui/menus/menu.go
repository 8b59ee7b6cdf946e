// Package menus holds the list overlays opened from the main screen.
package menus

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/tui/ansi"
	"github.com/interpretive-systems/playpen/internal/tui/theme"
)

// Action represents what the menu wants the parent to do.
type Action int

const (
	ActionContinue Action = iota // Keep the menu open
	ActionClose                  // Close the menu
	ActionChoose                 // An item was picked
)

// Item is one selectable line.
type Item struct {
	ID      string
	Label   string
	Detail  string
	Current bool
}

// Menu is a titled list built from a state snapshot.
type Menu struct {
	title string
	hint  string
	build func(store.State) []Item
	items []Item
	index int
}

func newMenu(title, hint string, build func(store.State) []Item) *Menu {
	return &Menu{title: title, hint: hint, build: build}
}

// Title is the heading shown above the items.
func (m *Menu) Title() string {
	return m.title
}

// Refresh rebuilds the items from s, keeping the cursor in range.
func (m *Menu) Refresh(s store.State) {
	m.items = m.build(s)
	if m.index >= len(m.items) {
		m.index = len(m.items) - 1
	}
	if m.index < 0 {
		m.index = 0
	}
}

// Items returns the current items.
func (m *Menu) Items() []Item {
	return m.items
}

// HandleKey processes keyboard input. On ActionChoose the picked item is
// returned as well.
func (m *Menu) HandleKey(msg tea.KeyMsg) (Action, Item) {
	switch msg.String() {
	case "esc", "q":
		return ActionClose, Item{}
	case "j", "down", "tab":
		if m.index < len(m.items)-1 {
			m.index++
		}
	case "k", "up", "shift+tab":
		if m.index > 0 {
			m.index--
		}
	case "enter", " ":
		if len(m.items) > 0 {
			return ActionChoose, m.items[m.index]
		}
	default:
		// 1-9 pick directly
		k := msg.String()
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			i := int(k[0] - '1')
			if i < len(m.items) {
				m.index = i
				return ActionChoose, m.items[i]
			}
		}
	}
	return ActionContinue, Item{}
}

// RenderOverlay returns the menu lines, rule included.
func (m *Menu) RenderOverlay(width int, th theme.Theme) []string {
	lines := make([]string, 0, len(m.items)+2)
	lines = append(lines, th.DividerText(strings.Repeat("─", width)))
	title := lipgloss.NewStyle().Bold(true).Render(m.title)
	lines = append(lines, ansi.Fit(title+"  "+th.Faint(m.hint), width))
	for i, it := range m.items {
		cur := "  "
		if i == m.index {
			cur = "> "
		}
		mark := "   "
		if it.Current {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%d %s %s", cur, i+1, mark, it.Label)
		if it.Detail != "" {
			line += "  " + th.Faint(it.Detail)
		}
		lines = append(lines, ansi.Fit(line, width))
	}
	return lines
}
