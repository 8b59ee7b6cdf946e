package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/interpretive-systems/playpen/internal/logx"
	"github.com/interpretive-systems/playpen/internal/wasmrun"
)

// runArtifact executes a wasm build artifact off the UI goroutine.
func runArtifact(ctx context.Context, seq uint64, body []byte, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		res, err := wasmrun.Run(ctx, body, timeout)
		if err != nil {
			logx.Ctx(ctx).Debug("artifact run failed", "seq", seq, "err", err)
		}
		return wasmRunMsg{seq: seq, result: res, err: err}
	}
}
