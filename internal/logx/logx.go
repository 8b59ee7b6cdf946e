// Package logx holds the pslog helpers shared by the client.
package logx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// Options returns structured, colourless logger options at the named level.
// Unknown levels fall back to info.
func Options(level string) pslog.Options {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return opts
}

// Open returns a JSON logger appending to path, or a discard logger when
// path is empty. The returned closer must be called on shutdown.
func Open(path, level string) (pslog.Logger, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return pslog.NewWithOptions(io.Discard, Options(level)), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return pslog.NewWithOptions(f, Options(level)), f, nil
}

// WithOperation annotates the logger with the operation kind.
func WithOperation(log pslog.Logger, op string) pslog.Logger {
	if op != "" {
		log = log.With("op", op)
	}
	return log
}

// WithRequest annotates the logger with the HTTP method and path.
func WithRequest(log pslog.Logger, method, path string) pslog.Logger {
	if method != "" {
		log = log.With("method", method)
	}
	if path != "" {
		log = log.With("path", path)
	}
	return log
}
