package cli

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/playpen/internal/config"
	"github.com/interpretive-systems/playpen/internal/dispatch"
	"github.com/interpretive-systems/playpen/internal/gateway"
	"github.com/interpretive-systems/playpen/internal/store"
)

// session is one store plus the dispatcher and backend it talks to.
type session struct {
	cfg config.Config
	st  *store.Store
	d   *dispatch.Dispatcher
	gw  *recordingGateway
}

func newSession(ctx context.Context, cfg config.Config) (*session, error) {
	client, err := gateway.New(cfg.Backend.BaseURL,
		gateway.WithTimeout(cfg.Timeout()),
		gateway.WithAllowedHosts(cfg.Backend.AllowedHosts...),
	)
	if err != nil {
		return nil, fmt.Errorf("backend: %w", err)
	}
	gw := &recordingGateway{next: client}
	return &session{
		cfg: cfg,
		st:  store.New(cfg.StoreOptions()...),
		d:   dispatch.New(ctx, gw),
		gw:  gw,
	}, nil
}

// run executes th and feeds every resolution back into the store until no
// command is left.
func (s *session) run(th dispatch.Thunk) {
	s.settle(dispatch.Run(s.st, th))
}

func (s *session) settle(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case store.Action:
		s.st.Dispatch(msg)
	case tea.BatchMsg:
		for _, c := range msg {
			s.settle(c)
		}
	}
}

// recordingGateway remembers the last result so headless commands can tell
// a compile failure from a transport failure.
type recordingGateway struct {
	next dispatch.Gateway
	mu   sync.Mutex
	last gateway.Result
}

func (g *recordingGateway) Post(ctx context.Context, path string, body any) gateway.Result {
	return g.record(g.next.Post(ctx, path, body))
}

func (g *recordingGateway) Get(ctx context.Context, path string) gateway.Result {
	return g.record(g.next.Get(ctx, path))
}

func (g *recordingGateway) record(res gateway.Result) gateway.Result {
	g.mu.Lock()
	g.last = res
	g.mu.Unlock()
	return res
}

func (g *recordingGateway) Last() gateway.Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}
