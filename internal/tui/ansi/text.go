// Package ansi holds width-aware string helpers that preserve escape codes.
package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const tabWidth = 4

// Wrap splits s into lines and hard-wraps each one to width columns. Tabs
// are expanded first so the width math holds.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{""}
	}
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	src := strings.Split(strings.TrimRight(s, "\n"), "\n")
	out := make([]string, 0, len(src))
	for _, line := range src {
		wrapped := ansi.Hardwrap(line, width, false)
		out = append(out, strings.Split(wrapped, "\n")...)
	}
	return out
}

// Pad pads s with spaces to exactly w columns. Wider strings are returned
// unchanged.
func Pad(s string, w int) string {
	vw := ansi.StringWidth(s)
	if vw >= w {
		return s
	}
	return s + strings.Repeat(" ", w-vw)
}

// Fit pads or truncates s to exactly w columns, marking a cut with an
// ellipsis.
func Fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > w {
		return ansi.Truncate(s, w, "…")
	}
	return Pad(s, w)
}

// Clip truncates s to at most w columns without an ellipsis.
func Clip(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "")
}

// Width is the visible width of s.
func Width(s string) int {
	return ansi.StringWidth(s)
}
