// Package ratelimit provides the politeness delay used between consecutive
// outbound fetches. A Limiter enforces a minimum interval, with optional
// random jitter so request timing does not look mechanical.
package ratelimit

import (
	"context"
	"math/rand"
	"time"
)

// Limiter spaces operations at least interval apart. The zero interval
// produces a limiter that never blocks. Safe for concurrent use.
type Limiter struct {
	ticker   *time.Ticker
	ch       <-chan time.Time
	interval time.Duration
	jitter   float64 // 0.0 to 1.0 fraction of interval
}

// NewLimiter creates a limiter with the given minimum interval between
// operations. jitter is clamped to [0, 1].
func NewLimiter(interval time.Duration, jitter float64) *Limiter {
	if interval <= 0 {
		return &Limiter{}
	}
	if jitter < 0 {
		jitter = 0
	} else if jitter > 1 {
		jitter = 1
	}

	ticker := time.NewTicker(interval)
	return &Limiter{
		ticker:   ticker,
		ch:       ticker.C,
		interval: interval,
		jitter:   jitter,
	}
}

// Wait blocks until the interval since the previous tick has elapsed, or
// until ctx is canceled. Positive jitter adds a random extra sleep of up to
// jitter*interval.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.ch == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-l.ch:
	}

	if l.jitter > 0 {
		extra := time.Duration(rand.Float64() * l.jitter * float64(l.interval))
		if extra > 0 {
			select {
			case <-time.After(extra):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

// Stop releases the limiter's ticker.
func (l *Limiter) Stop() {
	if l.ticker != nil {
		l.ticker.Stop()
	}
}
