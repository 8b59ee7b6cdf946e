package router

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/playpen/internal/dispatch"
	"github.com/interpretive-systems/playpen/internal/logx"
	"github.com/interpretive-systems/playpen/internal/store"
)

// Synchronizer keeps History and the store consistent in both directions,
// one direction at a time.
type Synchronizer struct {
	ctx      context.Context
	st       *store.Store
	d        *dispatch.Dispatcher
	history  History
	applying bool
	cancel   func()
}

// NewSynchronizer wires st and history. Call Start to begin syncing.
func NewSynchronizer(ctx context.Context, st *store.Store, d *dispatch.Dispatcher, history History) *Synchronizer {
	return &Synchronizer{ctx: ctx, st: st, d: d, history: history}
}

// Start applies the current location and begins following state changes.
func (s *Synchronizer) Start() tea.Cmd {
	if s.cancel == nil {
		s.cancel = s.st.Subscribe(s.onState)
	}
	return s.apply(s.history.Location())
}

// Stop detaches from the store.
func (s *Synchronizer) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Navigate handles a history event: the location already changed and the
// store must follow. Unmatched locations are ignored.
func (s *Synchronizer) Navigate(loc Location) tea.Cmd {
	return s.apply(loc)
}

// Push records loc as a new history entry and applies it.
func (s *Synchronizer) Push(loc Location) tea.Cmd {
	s.history.Push(loc)
	return s.apply(loc)
}

func (s *Synchronizer) apply(loc Location) tea.Cmd {
	th := LocationToThunk(s.d, loc)
	if th == nil {
		logx.Ctx(s.ctx).Debug("router ignored location", "location", loc.String())
		return nil
	}
	logx.Ctx(s.ctx).Debug("router navigate", "location", loc.String())
	s.applying = true
	defer func() { s.applying = false }()
	return th(s.st)
}

// onState pushes only when the derived location changed, so transitions
// unrelated to navigation leave an unmatched location in place.
func (s *Synchronizer) onState(prev, next store.State) {
	if s.applying {
		return
	}
	want := StateToLocation(next)
	if want.SamePath(StateToLocation(prev)) || want.SamePath(s.history.Location()) {
		return
	}
	logx.Ctx(s.ctx).Debug("router push", "location", want.String())
	s.history.Push(want)
}
