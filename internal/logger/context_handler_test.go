package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/ImamJamdar/CGPA/internal/ctxutil"
)

func TestContextHandlerAddsRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewContextHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler)

	ctx := ctxutil.WithRequestID(context.Background(), "req-abc-123")
	log.InfoContext(ctx, "processing request")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if entry["request_id"] != "req-abc-123" {
		t.Errorf("request_id = %v, want 'req-abc-123'", entry["request_id"])
	}
}

func TestContextHandlerBareContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewContextHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler)

	log.InfoContext(context.Background(), "no correlation")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if _, ok := entry["request_id"]; ok {
		t.Errorf("request_id should be absent without a context value, got %v", entry["request_id"])
	}
}

func TestContextHandlerEnabled(t *testing.T) {
	t.Parallel()

	handler := NewContextHandler(slog.NewJSONHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()
	if handler.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug should be disabled below the wrapped handler's threshold")
	}
	if !handler.Enabled(ctx, slog.LevelError) {
		t.Error("error should be enabled")
	}
}

func TestContextHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewContextHandler(slog.NewJSONHandler(&buf, nil))

	log := slog.New(handler.WithAttrs([]slog.Attr{slog.String("module", "httpapi")}))
	ctx := ctxutil.WithRequestID(context.Background(), "req-7")
	log.InfoContext(ctx, "with attrs")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log line: %v", err)
	}
	if entry["module"] != "httpapi" {
		t.Errorf("module = %v, want 'httpapi'", entry["module"])
	}
	if entry["request_id"] != "req-7" {
		t.Errorf("request_id = %v, want 'req-7'", entry["request_id"])
	}
}
