// Package wasmrun executes compiled wasm artifacts returned by the backend.
// A module may import env.alert(i32) and env.log(ptr, len) to report output;
// its exported main is called once.
package wasmrun

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/interpretive-systems/playpen/internal/logx"
)

var (
	// ErrNotModule is returned for bodies without the wasm magic header.
	ErrNotModule = errors.New("not a wasm module")
	// ErrNoMain is returned when the module exports no main function.
	ErrNoMain = errors.New("module exports no main function")
)

var magic = []byte{0x00, 'a', 's', 'm'}

// DefaultTimeout bounds one run.
const DefaultTimeout = 5 * time.Second

// Result is what a run reported.
type Result struct {
	Output []string
}

// String joins the reported lines.
func (r Result) String() string {
	var b bytes.Buffer
	for i, line := range r.Output {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	return b.String()
}

// IsModule reports whether body looks like a wasm binary.
func IsModule(body []byte) bool {
	return bytes.HasPrefix(body, magic)
}

// Run instantiates body in a fresh runtime and calls its main export.
func Run(ctx context.Context, body []byte, timeout time.Duration) (Result, error) {
	if !IsModule(body) {
		return Result{}, ErrNotModule
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := logx.Ctx(ctx)
	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	defer r.Close(ctx)

	var (
		mu  sync.Mutex
		out Result
	)
	record := func(line string) {
		mu.Lock()
		out.Output = append(out.Output, line)
		mu.Unlock()
	}

	_, err := r.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, v int32) {
			record(strconv.FormatInt(int64(v), 10))
		}).
		Export("alert").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, m api.Module, ptr, n uint32) {
			mem := m.Memory()
			if mem == nil {
				return
			}
			if data, ok := mem.Read(ptr, n); ok {
				record(string(data))
			}
		}).
		Export("log").
		Instantiate(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("instantiate host module: %w", err)
	}

	mod, err := r.Instantiate(ctx, body)
	if err != nil {
		return Result{}, fmt.Errorf("instantiate module: %w", err)
	}
	fn := mod.ExportedFunction("main")
	if fn == nil {
		return Result{}, ErrNoMain
	}
	if _, err := fn.Call(ctx); err != nil {
		return out, fmt.Errorf("call main: %w", err)
	}
	log.Debug("wasm run finished", "lines", len(out.Output))
	return out, nil
}
