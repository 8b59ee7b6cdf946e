package dispatch

import (
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/playpen/internal/gateway"
	"github.com/interpretive-systems/playpen/internal/logx"
	"github.com/interpretive-systems/playpen/internal/store"
)

const gistPath = "/meta/gist/"

type gistResponse struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Code   string `json:"code"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

type gistSaveRequest struct {
	Code string `json:"code"`
}

// PerformGistLoad fetches a shared snippet and replaces the buffer with it.
func (d *Dispatcher) PerformGistLoad(id string) Thunk {
	id = strings.TrimSpace(id)
	return func(st *store.Store) tea.Cmd {
		st.Dispatch(store.GistLoadRequested{ID: id})
		log := logx.WithOperation(logx.Ctx(d.ctx), "gist-load")
		log.Debug("gist load requested", "id", id)

		path := gistPath + url.PathEscape(id)
		return func() tea.Msg {
			var out gistResponse
			if msg, ok := d.fetchGist(d.gw.Get(d.ctx, path), &out, "Could not load gist"); !ok {
				log.Debug("gist load failed", "error", msg)
				return store.GistFailed{Error: msg}
			}
			return store.GistLoadSucceeded{ID: out.ID, URL: out.URL, Code: out.Code, Stdout: out.Stdout, Stderr: out.Stderr}
		}
	}
}

// PerformGistSave stores the current buffer and the last execute output.
func (d *Dispatcher) PerformGistSave() Thunk {
	return func(st *store.Store) tea.Cmd {
		s := st.State()
		code := s.Code
		stdout, stderr := s.Output.Execute.Stdout, s.Output.Execute.Stderr
		st.Dispatch(store.GistSaveRequested{})
		log := logx.WithOperation(logx.Ctx(d.ctx), "gist-save")
		log.Debug("gist save requested")

		return func() tea.Msg {
			var out gistResponse
			if msg, ok := d.fetchGist(d.gw.Post(d.ctx, gistPath, gistSaveRequest{Code: code}), &out, "Could not save gist"); !ok {
				log.Debug("gist save failed", "error", msg)
				return store.GistFailed{Error: msg}
			}
			return store.GistSaveSucceeded{ID: out.ID, URL: out.URL, Code: code, Stdout: stdout, Stderr: stderr}
		}
	}
}

// fetchGist decodes a gist answer or returns the failure text.
func (d *Dispatcher) fetchGist(res gateway.Result, out *gistResponse, prefix string) (string, bool) {
	switch r := res.(type) {
	case gateway.Success:
		if err := gateway.DecodeJSON(r, out); err != nil {
			return fmt.Sprintf("%s: %v", prefix, err), false
		}
		return "", true
	case gateway.CompileFailure:
		text := strings.TrimSpace(r.Diagnostics)
		if text == "" {
			return fmt.Sprintf("%s: status %d", prefix, r.Status), false
		}
		return fmt.Sprintf("%s: %s", prefix, text), false
	case gateway.TransportFailure:
		return r.Message, false
	}
	return prefix, false
}
