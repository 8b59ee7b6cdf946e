package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/interpretive-systems/playpen/internal/tui/theme"
	"github.com/interpretive-systems/playpen/internal/types"
)

// autoSideBySideWidth is the narrowest terminal that gets panes side by
// side under automatic orientation.
const autoSideBySideWidth = 120

// Layout manages screen layout calculations.
type Layout struct {
	width  int
	height int
}

// NewLayout creates a new layout manager.
func NewLayout() *Layout {
	return &Layout{}
}

// SetSize updates the layout dimensions.
func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the total width.
func (l *Layout) Width() int {
	return l.width
}

// Height returns the total height.
func (l *Layout) Height() int {
	return l.height
}

// SideBySide reports whether editor and output share the row.
func (l *Layout) SideBySide(o types.Orientation) bool {
	switch o {
	case types.OrientationHorizontal:
		return true
	case types.OrientationVertical:
		return false
	}
	return l.width >= autoSideBySideWidth
}

// ContentHeight returns the height available for panes.
func (l *Layout) ContentHeight(overlayHeight int) int {
	// top bar + top rule + bottom rule + bottom bar + overlays
	h := l.height - 4 - overlayHeight
	if h < 1 {
		h = 1
	}
	return h
}

// Panes splits the content area. With the output closed the editor gets
// everything. Output dimensions include its tab line.
func (l *Layout) Panes(o types.Orientation, outputOpen bool, overlayHeight int) (edW, edH, outW, outH int) {
	h := l.ContentHeight(overlayHeight)
	if !outputOpen {
		return l.width, h, 0, 0
	}
	if l.SideBySide(o) {
		edW = (l.width - 1) / 2
		outW = l.width - edW - 1
		if edW < 1 {
			edW = 1
		}
		if outW < 1 {
			outW = 1
		}
		return edW, h, outW, h
	}
	// one row for the divider
	edH = (h - 1) / 2
	if edH < 1 {
		edH = 1
	}
	outH = h - edH - 1
	if outH < 1 {
		outH = 1
	}
	return l.width, edH, l.width, outH
}

// RenderFrame renders the top bar, the panes, an optional overlay and the
// bottom bar.
func (l *Layout) RenderFrame(
	topLeft, topRight string,
	editorLines, outputLines []string,
	sideBySide bool,
	overlayLines []string,
	bottomBar string,
	th theme.Theme,
) string {
	var b strings.Builder

	b.WriteString(l.renderTopBar(topLeft, topRight))
	b.WriteByte('\n')
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')

	b.WriteString(strings.Join(l.renderPanes(editorLines, outputLines, sideBySide, len(overlayLines), th), "\n"))

	if len(overlayLines) > 0 {
		b.WriteByte('\n')
		for i, line := range overlayLines {
			b.WriteString(padToWidth(line, l.width))
			if i < len(overlayLines)-1 {
				b.WriteByte('\n')
			}
		}
	}

	b.WriteByte('\n')
	b.WriteString(th.DividerText(strings.Repeat("─", l.width)))
	b.WriteByte('\n')
	b.WriteString(bottomBar)

	return b.String()
}

func (l *Layout) renderPanes(editorLines, outputLines []string, sideBySide bool, overlayHeight int, th theme.Theme) []string {
	h := l.ContentHeight(overlayHeight)
	rows := make([]string, 0, h)
	if outputLines == nil {
		for i := 0; i < h; i++ {
			rows = append(rows, padToWidth(lineAt(editorLines, i), l.width))
		}
		return rows
	}
	if sideBySide {
		leftW := (l.width - 1) / 2
		rightW := l.width - leftW - 1
		sep := th.DividerText("│")
		for i := 0; i < h; i++ {
			rows = append(rows, padToWidth(lineAt(editorLines, i), leftW)+sep+padToWidth(lineAt(outputLines, i), rightW))
		}
		return rows
	}
	for _, line := range editorLines {
		rows = append(rows, padToWidth(line, l.width))
	}
	rows = append(rows, th.DividerText(strings.Repeat("─", l.width)))
	for _, line := range outputLines {
		rows = append(rows, padToWidth(line, l.width))
	}
	for len(rows) < h {
		rows = append(rows, strings.Repeat(" ", l.width))
	}
	return rows[:h]
}

func (l *Layout) renderTopBar(left, right string) string {
	rightW := lipgloss.Width(right)
	if rightW >= l.width {
		return ansi.Truncate(right, l.width, "…")
	}

	avail := l.width - rightW - 1
	if lipgloss.Width(left) > avail {
		left = ansi.Truncate(left, avail, "…")
	} else if lipgloss.Width(left) < avail {
		left = left + strings.Repeat(" ", avail-lipgloss.Width(left))
	}

	return left + " " + right
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func padToWidth(s string, w int) string {
	width := lipgloss.Width(s)
	if width == w {
		return s
	}
	if width < w {
		return s + strings.Repeat(" ", w-width)
	}
	return ansi.Truncate(s, w, "…")
}
