package ctxutil

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-abc-123")

	requestID, ok := GetRequestID(ctx)
	if !ok {
		t.Fatal("expected a request id in the context")
	}
	if requestID != "req-abc-123" {
		t.Errorf("request id = %q, want 'req-abc-123'", requestID)
	}
}

func TestRequestIDAbsent(t *testing.T) {
	t.Parallel()

	requestID, ok := GetRequestID(context.Background())
	if ok || requestID != "" {
		t.Errorf("GetRequestID on a bare context = (%q, %v), want (\"\", false)", requestID, ok)
	}
}

func TestRequestIDDoesNotCollideWithStringKeys(t *testing.T) {
	t.Parallel()

	type plainKey string
	ctx := context.WithValue(context.Background(), plainKey("ctxutil.requestID"), "spoofed")

	if _, ok := GetRequestID(ctx); ok {
		t.Error("a plain string key must not satisfy the typed lookup")
	}
}
