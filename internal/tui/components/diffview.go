package components

import (
	"fmt"
	"strings"

	"github.com/interpretive-systems/playpen/internal/diffview"
	"github.com/interpretive-systems/playpen/internal/tui/ansi"
	"github.com/interpretive-systems/playpen/internal/tui/theme"
)

// DiffView renders format preview rows.
type DiffView struct {
	rows       []diffview.Row
	sideBySide bool
	th         theme.Theme
}

// NewDiffView creates a side-by-side diff renderer.
func NewDiffView(th theme.Theme) *DiffView {
	return &DiffView{th: th, sideBySide: true}
}

// SetRows updates the diff rows.
func (d *DiffView) SetRows(rows []diffview.Row) {
	d.rows = rows
}

// SetTheme swaps the palette.
func (d *DiffView) SetTheme(th theme.Theme) {
	d.th = th
}

func (d *DiffView) SideBySide() bool {
	return d.sideBySide
}

// SetSideBySide switches between two columns and inline rendering.
func (d *DiffView) SetSideBySide(on bool) {
	d.sideBySide = on
}

// Render lays the rows out for width columns.
func (d *DiffView) Render(width int) []string {
	if len(d.rows) == 0 {
		return []string{d.th.Faint("No changes")}
	}
	added, removed := diffview.Stats(d.rows)
	lines := make([]string, 0, len(d.rows)+1)
	lines = append(lines, d.th.MetaText(fmt.Sprintf("+%d -%d", added, removed)))
	if d.sideBySide && width >= 21 {
		return append(lines, d.renderSideBySide(width)...)
	}
	return append(lines, d.renderInline(width)...)
}

func (d *DiffView) renderSideBySide(width int) []string {
	lines := make([]string, 0, len(d.rows))
	colsW := (width - 1) / 2
	mid := d.th.DividerText("│")
	for _, r := range d.rows {
		if r.Kind == diffview.RowHunk {
			lines = append(lines, d.th.Faint(ansi.Fit("··· "+r.Meta, width)))
			continue
		}
		lines = append(lines, d.sideCell(r, true, colsW)+mid+d.sideCell(r, false, colsW))
	}
	return lines
}

func (d *DiffView) renderInline(width int) []string {
	lines := make([]string, 0, len(d.rows))
	for _, r := range d.rows {
		switch r.Kind {
		case diffview.RowHunk:
			lines = append(lines, d.th.Faint("··· "+r.Meta))
		case diffview.RowContext:
			lines = append(lines, "  "+r.Left)
		case diffview.RowAdd:
			lines = append(lines, d.th.AddText("+ "+r.Right))
		case diffview.RowDel:
			lines = append(lines, d.th.DelText("- "+r.Left))
		case diffview.RowReplace:
			lines = append(lines, d.th.DelText("- "+r.Left), d.th.AddText("+ "+r.Right))
		}
	}
	for i, l := range lines {
		lines[i] = ansi.Clip(l, width)
	}
	return lines
}

// sideCell renders one half of a row with a colored marker.
func (d *DiffView) sideCell(r diffview.Row, left bool, width int) string {
	marker := " "
	content := r.Right
	if left {
		content = r.Left
	}
	switch {
	case left && (r.Kind == diffview.RowDel || r.Kind == diffview.RowReplace):
		marker = d.th.DelText("-")
		content = d.th.DelText(content)
	case !left && (r.Kind == diffview.RowAdd || r.Kind == diffview.RowReplace):
		marker = d.th.AddText("+")
		content = d.th.AddText(content)
	case left && r.Kind == diffview.RowAdd, !left && r.Kind == diffview.RowDel:
		content = ""
	}
	if width <= 2 {
		return ansi.Clip(marker+" ", width)
	}
	return marker + " " + ansi.Fit(strings.ReplaceAll(content, "\t", "    "), width-2)
}
