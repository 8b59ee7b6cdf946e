package logx

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pkt.systems/pslog"
)

func TestWithOperationAddsField(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, Options("info"))
	WithOperation(logger, "execute").Info("hello")

	entry := capture.firstEntry(t)
	if entry["op"] != "execute" {
		t.Fatalf("expected op field, got %+v", entry)
	}
}

func TestWithRequestAddsFields(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, Options("info"))
	ctx := pslog.ContextWithLogger(context.Background(), logger)
	WithRequest(Ctx(ctx), "POST", "/execute").Info("hello")

	entry := capture.firstEntry(t)
	if entry["method"] != "POST" || entry["path"] != "/execute" {
		t.Fatalf("expected method and path fields, got %+v", entry)
	}
}

func TestWithRequestSkipsEmpty(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, Options("info"))
	WithRequest(logger, "", "").Info("hello")

	entry := capture.firstEntry(t)
	if _, ok := entry["method"]; ok {
		t.Fatalf("did not expect method field: %+v", entry)
	}
}

func TestOptionsLevel(t *testing.T) {
	capture := &logCapture{}
	logger := pslog.NewWithOptions(capture, Options("error"))
	logger.Info("dropped")
	if capture.buf.Len() != 0 {
		t.Fatalf("info should be filtered at error level: %q", capture.buf.String())
	}
}

func TestOpenWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "playpen.log")
	log, closer, err := Open(path, "debug")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	log.Debug("gateway request", "path", "/execute")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte("/execute")) {
		t.Fatalf("expected log line, got %q", data)
	}
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	log, closer, err := Open("", "info")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	log.Info("nowhere")
	_ = closer.Close()
}

type logCapture struct {
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	return c.buf.Write(p)
}

func (c *logCapture) firstEntry(t *testing.T) map[string]any {
	t.Helper()
	data := c.buf.Bytes()
	idx := bytes.IndexByte(data, '\n')
	if idx == -1 {
		idx = len(data)
	}
	line := bytes.TrimSpace(data[:idx])
	entry := map[string]any{}
	if err := json.Unmarshal(line, &entry); err != nil {
		t.Fatalf("parse log entry: %v", err)
	}
	return entry
}
