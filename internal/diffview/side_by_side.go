package diffview

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RowKind represents the semantic type of a side-by-side row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdd
	RowDel
	RowReplace
	RowHunk
)

// Row represents a single visual row for side-by-side rendering.
type Row struct {
	Left  string
	Right string
	Kind  RowKind
	Meta  string // folded-context summary for RowHunk
}

// MaxLines bounds the input size BuildRows is willing to diff.
const MaxLines = 5000

// Options tunes BuildRows.
type Options struct {
	// Context is how many unchanged lines to keep around each change.
	// Negative keeps every line.
	Context int
}

// DefaultOptions keeps three lines of context.
func DefaultOptions() Options {
	return Options{Context: 3}
}

// BuildRows line-diffs before against after and pairs deletions with the
// following additions as replacements. Runs of unchanged lines longer than
// twice the context are folded into one RowHunk. It returns nil when the
// texts are identical, and a single RowHunk noting the size when together
// they exceed MaxLines.
func BuildRows(before, after string, opts Options) []Row {
	if before == after {
		return nil
	}
	if lineCount(before)+lineCount(after) > MaxLines {
		return []Row{{Kind: RowHunk, Meta: "diff too large to display"}}
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	rows := make([]Row, 0, 64)
	pendingDel := make([]string, 0)
	flushPending := func() {
		for _, dl := range pendingDel {
			rows = append(rows, Row{Left: dl, Kind: RowDel})
		}
		pendingDel = pendingDel[:0]
	}

	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				flushPending()
				rows = append(rows, Row{Left: line, Right: line, Kind: RowContext})
			case diffmatchpatch.DiffDelete:
				pendingDel = append(pendingDel, line)
			case diffmatchpatch.DiffInsert:
				if len(pendingDel) > 0 {
					dl := pendingDel[0]
					pendingDel = pendingDel[1:]
					rows = append(rows, Row{Left: dl, Right: line, Kind: RowReplace})
				} else {
					rows = append(rows, Row{Right: line, Kind: RowAdd})
				}
			}
		}
	}
	flushPending()
	return fold(rows, opts.Context)
}

// Stats counts added and removed lines; a replacement counts as both.
func Stats(rows []Row) (added, removed int) {
	for _, r := range rows {
		switch r.Kind {
		case RowAdd:
			added++
		case RowDel:
			removed++
		case RowReplace:
			added++
			removed++
		}
	}
	return added, removed
}

func fold(rows []Row, context int) []Row {
	if context < 0 {
		return rows
	}
	out := make([]Row, 0, len(rows))
	i := 0
	for i < len(rows) {
		if rows[i].Kind != RowContext {
			out = append(out, rows[i])
			i++
			continue
		}
		j := i
		for j < len(rows) && rows[j].Kind == RowContext {
			j++
		}
		keepHead, keepTail := context, context
		if i == 0 {
			keepHead = 0
		}
		if j == len(rows) {
			keepTail = 0
		}
		run := j - i
		if run <= keepHead+keepTail+1 {
			out = append(out, rows[i:j]...)
		} else {
			out = append(out, rows[i:i+keepHead]...)
			hidden := run - keepHead - keepTail
			out = append(out, Row{Kind: RowHunk, Meta: fmt.Sprintf("%d unchanged lines", hidden)})
			out = append(out, rows[j-keepTail:j]...)
		}
		i = j
	}
	return out
}

func splitLines(s string) []string {
	parts := strings.Split(s, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
