package dispatch

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

// IndexPageLoad navigates to the editor. A non-empty code parameter
// replaces the buffer, build parameters update the configuration, and a gist parameter
// starts a gist load.
func (d *Dispatcher) IndexPageLoad(query url.Values) Thunk {
	return func(st *store.Store) tea.Cmd {
		actions := []store.Action{store.SetPage{Page: types.PageIndex}}
		if code := query.Get("code"); code != "" {
			actions = append(actions, store.EditCode{Code: code})
		}
		if ch := types.Channel(query.Get("version")); ch.Valid() {
			actions = append(actions, store.ChangeChannel{Channel: ch})
		}
		if m := types.Mode(query.Get("mode")); m.Valid() {
			actions = append(actions, store.ChangeMode{Mode: m})
		}
		if e := types.Edition(query.Get("edition")); e.Valid() {
			actions = append(actions, store.ChangeEdition{Edition: e})
		}
		st.Dispatch(store.Batch{Actions: actions})

		if id := query.Get("gist"); id != "" {
			return d.PerformGistLoad(id)(st)
		}
		return nil
	}
}

// HelpPageLoad navigates to the help page.
func (d *Dispatcher) HelpPageLoad() Thunk {
	return func(st *store.Store) tea.Cmd {
		st.Dispatch(store.SetPage{Page: types.PageHelp})
		return nil
	}
}

// ShowExample loads code into the editor and returns to the index page.
func (d *Dispatcher) ShowExample(code string) Thunk {
	return func(st *store.Store) tea.Cmd {
		st.Dispatch(store.Batch{Actions: []store.Action{
			store.SetPage{Page: types.PageIndex},
			store.EditCode{Code: code},
		}})
		return nil
	}
}
