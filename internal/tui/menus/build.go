package menus

import (
	"github.com/interpretive-systems/playpen/internal/selectors"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

// Build offers the explicit primary actions. Picking one also makes it the
// new primary action.
func Build() *Menu {
	return newMenu("Build", "enter: run  esc: close", func(s store.State) []Item {
		pa := s.Configuration.PrimaryAction
		auto := ""
		if pa == types.PrimaryActionAuto {
			auto = "auto: " + selectors.ExecutionLabel(s)
		}
		return []Item{
			{ID: string(types.OpExecute), Label: "Run", Detail: "build and run the code", Current: pa == types.PrimaryActionExecute},
			{ID: string(types.OpCompile), Label: "Build", Detail: "compile to a wasm artifact", Current: pa == types.PrimaryActionCompile},
			{ID: string(types.PrimaryActionAuto), Label: "Automatic", Detail: auto, Current: pa == types.PrimaryActionAuto},
		}
	})
}
