package menus

import (
	"github.com/interpretive-systems/playpen/internal/selectors"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

// AddMainID is the tools item that appends a main function.
const AddMainID = "add-main"

// Tools offers the secondary operations.
func Tools() *Menu {
	return newMenu("Tools", "enter: run  esc: close", func(s store.State) []Item {
		items := []Item{
			{ID: string(types.OpFormat), Label: "Rustfmt", Detail: "format this code"},
			{ID: string(types.OpClippy), Label: "Clippy", Detail: "catch common mistakes"},
			{ID: string(types.OpMiri), Label: "Miri", Detail: "detect undefined behavior"},
			{ID: string(types.OpMacroExpansion), Label: "Expand macros", Detail: "show the code with macros expanded"},
		}
		if !selectors.HasMainFunction(s.Code) {
			items = append(items, Item{ID: AddMainID, Label: "Add main function"})
		}
		return items
	})
}
