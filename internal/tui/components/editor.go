package components

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/interpretive-systems/playpen/internal/tui/theme"
	"github.com/interpretive-systems/playpen/internal/types"
)

// Editor is the code buffer widget.
type Editor struct {
	ta textarea.Model
}

// NewEditor creates a focused, unbounded editor.
func NewEditor(th theme.Theme) *Editor {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "// write some code"
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.LineNumber = lipgloss.NewStyle().Foreground(lipgloss.Color(th.DividerColor))
	ta.BlurredStyle.LineNumber = ta.FocusedStyle.LineNumber
	ta.Focus()
	return &Editor{ta: ta}
}

// SetSize resizes the widget.
func (e *Editor) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	e.ta.SetWidth(width)
	e.ta.SetHeight(height)
}

// SetValue replaces the buffer. The cursor keeps its line where possible.
func (e *Editor) SetValue(code string) {
	line := e.ta.Line()
	e.ta.SetValue(code)
	for e.ta.Line() > line {
		e.ta.CursorUp()
	}
	e.ta.CursorStart()
}

// Value returns the buffer.
func (e *Editor) Value() string {
	return e.ta.Value()
}

// Focus gives the editor keyboard input.
func (e *Editor) Focus() tea.Cmd {
	return e.ta.Focus()
}

// Blur takes keyboard input away.
func (e *Editor) Blur() {
	e.ta.Blur()
}

// Focused reports whether the editor receives keys.
func (e *Editor) Focused() bool {
	return e.ta.Focused()
}

// Update forwards a message to the textarea.
func (e *Editor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.ta, cmd = e.ta.Update(msg)
	return cmd
}

// Position is the 1-based cursor position.
func (e *Editor) Position() types.Position {
	li := e.ta.LineInfo()
	return types.Position{Line: e.ta.Line() + 1, Column: li.StartColumn + li.ColumnOffset + 1}
}

// View renders the editor.
func (e *Editor) View() string {
	return e.ta.View()
}
