package components

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/tui/ansi"
	"github.com/interpretive-systems/playpen/internal/tui/theme"
	"github.com/interpretive-systems/playpen/internal/types"
)

var titleCase = cases.Title(language.English)

// TabOrder is the cycle order of the output tabs.
var TabOrder = []types.Focus{
	types.FocusExecute,
	types.FocusWasm,
	types.FocusFormat,
	types.FocusClippy,
	types.FocusMiri,
	types.FocusMacroExpansion,
	types.FocusGist,
}

// TabLabel is the display name of a focus target.
func TabLabel(f types.Focus) string {
	if f == types.FocusWasm {
		return "Build"
	}
	return titleCase.String(strings.ReplaceAll(string(f), "-", " "))
}

// MoveFocus steps delta tabs from the current one, wrapping around. A
// closed output starts from the execute tab.
func MoveFocus(cur *types.Focus, delta int) types.Focus {
	idx := -1
	if cur != nil {
		for i, f := range TabOrder {
			if f == *cur {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return TabOrder[0]
	}
	n := len(TabOrder)
	return TabOrder[((idx+delta)%n+n)%n]
}

func tabBusy(s store.State, f types.Focus) bool {
	if f == types.FocusGist {
		return s.Output.Gist.RequestsInProgress > 0
	}
	if op, ok := types.OperationForFocus(f); ok {
		return s.Output.Slot(op).InFlight()
	}
	return false
}

// RenderTabs renders the tab strip on one line. The focused tab is
// bracketed; tabs with requests in flight carry a dot.
func RenderTabs(s store.State, th theme.Theme, width int) string {
	cur, _ := s.Output.Meta.Focused()
	parts := make([]string, 0, len(TabOrder)+1)
	for _, f := range TabOrder {
		label := TabLabel(f)
		if tabBusy(s, f) {
			label += " •"
		}
		if f == cur {
			parts = append(parts, th.Bold(th.AccentText("["+label+"]")))
			continue
		}
		parts = append(parts, " "+label+" ")
	}
	if _, ok := types.OperationForFocus(cur); !ok && cur != "" && cur != types.FocusGist {
		parts = append(parts, th.Bold(th.AccentText("["+TabLabel(cur)+"]")))
	}
	return ansi.Fit(strings.Join(parts, th.DividerText("│")), width)
}
