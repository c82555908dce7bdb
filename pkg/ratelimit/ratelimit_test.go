package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_NoInterval(t *testing.T) {
	l := NewLimiter(0, 0)
	defer l.Stop()

	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("zero-interval limiter blocked for %v", elapsed)
	}
}

func TestWait_EnforcesInterval(t *testing.T) {
	l := NewLimiter(50*time.Millisecond, 0)
	defer l.Stop()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Errorf("three waits at 50ms finished in %v", elapsed)
	}
}

func TestWait_ContextCancel(t *testing.T) {
	l := NewLimiter(time.Hour, 0)
	defer l.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestNewLimiter_ClampsJitter(t *testing.T) {
	for _, j := range []float64{-1, 2} {
		l := NewLimiter(time.Millisecond, j)
		if l.jitter < 0 || l.jitter > 1 {
			t.Errorf("jitter %v not clamped: %v", j, l.jitter)
		}
		l.Stop()
	}
}
