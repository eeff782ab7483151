// Package ratelimit guards the ingestion trigger against rapid re-invocation.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether an invocation identified by key may proceed now.
// When it may not, the second return value hints how long to wait.
type Limiter interface {
	TryAcquire(key string) (bool, time.Duration)
}

// IntervalLimiter is an in-memory Limiter that enforces a minimum interval
// between acquisitions per key.
//
// The guard is process-local: it resets on restart and does not coordinate
// across replicas, so two processes can race past it. That is an accepted
// limitation; a shared lease would be the hardening step under horizontal
// scaling.
type IntervalLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
	now      func() time.Time
}

// NewIntervalLimiter creates a limiter with the given minimum interval.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	return &IntervalLimiter{
		interval: interval,
		last:     make(map[string]time.Time),
		now:      time.Now,
	}
}

// WithClock substitutes the time source. Tests use this instead of sleeping.
func (l *IntervalLimiter) WithClock(now func() time.Time) *IntervalLimiter {
	l.now = now
	return l
}

// TryAcquire records an acquisition for key if at least the configured
// interval has passed since the previous one.
func (l *IntervalLimiter) TryAcquire(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if prev, ok := l.last[key]; ok {
		elapsed := now.Sub(prev)
		if elapsed < l.interval {
			return false, l.interval - elapsed
		}
	}
	l.last[key] = now
	return true, 0
}
