package ratelimit

import (
	"testing"
	"time"
)

func TestLimiterBurst(t *testing.T) {
	t.Parallel()
	// Slow refill so the bucket does not top up mid-test.
	l := New(2, 0.001)

	if !l.Allow() {
		t.Error("first request should be allowed")
	}
	if !l.Allow() {
		t.Error("second request should be allowed")
	}
	if l.Allow() {
		t.Error("third request should be rejected once the burst is spent")
	}
}

func TestLimiterStartsFull(t *testing.T) {
	t.Parallel()
	l := New(5, 1)

	if !l.IsFull() {
		t.Error("a fresh limiter should be at capacity")
	}
	if got := l.Available(); got < 4.9 {
		t.Errorf("Available() = %v, want ~5", got)
	}
}

func TestLimiterRefills(t *testing.T) {
	t.Parallel()
	// 100 tokens/sec: empty bucket recovers within a few milliseconds.
	l := New(1, 100)

	if !l.Allow() {
		t.Fatal("first request should be allowed")
	}
	if l.Allow() {
		t.Fatal("bucket should be empty after the burst")
	}

	time.Sleep(50 * time.Millisecond)

	if !l.Allow() {
		t.Error("request should be allowed after refill")
	}
}
