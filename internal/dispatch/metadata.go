package dispatch

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/interpretive-systems/playpen/internal/gateway"
	"github.com/interpretive-systems/playpen/internal/logx"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

type cratesResponse struct {
	Crates []types.Crate `json:"crates"`
}

// LoadCrates fetches the list of crates available to snippets.
func (d *Dispatcher) LoadCrates() Thunk {
	return func(st *store.Store) tea.Cmd {
		st.Dispatch(store.CratesRequested{})
		return func() tea.Msg {
			var out cratesResponse
			if err := d.getJSON("/meta/crates", &out); err != nil {
				logx.Ctx(d.ctx).Debug("crates load failed", "err", err)
				return store.CratesFailed{Error: err.Error()}
			}
			return store.CratesLoaded{Crates: out.Crates}
		}
	}
}

// LoadVersions fetches every toolchain component version concurrently. The
// batch succeeds only if all of them do.
func (d *Dispatcher) LoadVersions() Thunk {
	return func(st *store.Store) tea.Cmd {
		st.Dispatch(store.VersionsRequested{})
		return func() tea.Msg {
			var v store.Versions
			targets := []struct {
				name string
				dst  *types.Version
			}{
				{"stable", &v.Stable},
				{"beta", &v.Beta},
				{"nightly", &v.Nightly},
				{"rustfmt", &v.Rustfmt},
				{"clippy", &v.Clippy},
				{"miri", &v.Miri},
			}
			g, ctx := errgroup.WithContext(d.ctx)
			for _, target := range targets {
				g.Go(func() error {
					return d.getJSONCtx(ctx, "/meta/version/"+target.name, target.dst)
				})
			}
			if err := g.Wait(); err != nil {
				logx.Ctx(d.ctx).Debug("versions load failed", "err", err)
				return store.VersionsFailed{Error: err.Error()}
			}
			return store.VersionsLoaded{Versions: v}
		}
	}
}

func (d *Dispatcher) getJSON(path string, v any) error {
	return d.getJSONCtx(d.ctx, path, v)
}

func (d *Dispatcher) getJSONCtx(ctx context.Context, path string, v any) error {
	switch r := d.gw.Get(ctx, path).(type) {
	case gateway.Success:
		return gateway.DecodeJSON(r, v)
	case gateway.CompileFailure:
		return fmt.Errorf("Unexpected response: %d: %s", r.Status, r.Diagnostics)
	case gateway.TransportFailure:
		return r
	}
	return fmt.Errorf("unknown gateway result for %s", path)
}
