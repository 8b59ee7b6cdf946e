// Package dispatch turns user intents into store transitions and backend
// calls. Every intent is a Thunk: it dispatches its request action
// synchronously and returns a tea.Cmd that performs the call and yields the
// resolution action as its message.
package dispatch

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"github.com/interpretive-systems/playpen/internal/diffview"
	"github.com/interpretive-systems/playpen/internal/gateway"
	"github.com/interpretive-systems/playpen/internal/logx"
	"github.com/interpretive-systems/playpen/internal/store"
	"github.com/interpretive-systems/playpen/internal/types"
)

// Gateway is the backend contract the dispatcher needs.
type Gateway interface {
	Post(ctx context.Context, path string, body any) gateway.Result
	Get(ctx context.Context, path string) gateway.Result
}

// Thunk runs against the store on the UI goroutine. A nil returned command
// means the intent completed synchronously.
type Thunk func(st *store.Store) tea.Cmd

// Dispatcher builds thunks bound to one backend.
type Dispatcher struct {
	ctx      context.Context
	gw       Gateway
	diffOpts diffview.Options
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDiffOptions controls the format preview rows.
func WithDiffOptions(opts diffview.Options) Option {
	return func(d *Dispatcher) { d.diffOpts = opts }
}

// New returns a dispatcher. ctx bounds every backend call and carries the
// logger.
func New(ctx context.Context, gw Gateway, opts ...Option) *Dispatcher {
	if ctx == nil {
		ctx = context.Background()
	}
	d := &Dispatcher{ctx: ctx, gw: gw, diffOpts: diffview.DefaultOptions()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run executes th against st and returns its command.
func Run(st *store.Store, th Thunk) tea.Cmd {
	if th == nil {
		return nil
	}
	return th(st)
}

// Sequence chains thunks; their commands run concurrently.
func Sequence(thunks ...Thunk) Thunk {
	return func(st *store.Store) tea.Cmd {
		cmds := make([]tea.Cmd, 0, len(thunks))
		for _, th := range thunks {
			if cmd := Run(st, th); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		switch len(cmds) {
		case 0:
			return nil
		case 1:
			return cmds[0]
		}
		return tea.Batch(cmds...)
	}
}

// ForOperation returns the thunk that runs op.
func (d *Dispatcher) ForOperation(op types.Operation) Thunk {
	switch op {
	case types.OpExecute:
		return d.PerformExecute()
	case types.OpCompile:
		return d.PerformCompile()
	case types.OpFormat:
		return d.PerformFormat()
	case types.OpClippy:
		return d.PerformClippy()
	case types.OpMiri:
		return d.PerformMiri()
	case types.OpMacroExpansion:
		return d.PerformMacroExpansion()
	}
	return nil
}

func (d *Dispatcher) opLogger(op types.Operation) pslog.Logger {
	return logx.WithOperation(logx.Ctx(d.ctx), string(op))
}
