// Package ratelimit implements a fixed-window request counter keyed by
// (bucket, identifier). The table lives in process memory only; a restart
// resets all limits.
package ratelimit

import (
	"sync"
	"time"
)

// maxKeys is the nominal table ceiling. When exceeded, only entries whose
// window already expired are pruned; a table full of live entries may
// temporarily overrun the ceiling rather than evict an active limiter.
const maxKeys = 20000

type entry struct {
	count   int
	resetAt time.Time
}

// Result reports whether a request may proceed. RetryAfter is the number
// of whole seconds until the window resets, at least 1 when denied.
type Result struct {
	OK         bool
	RetryAfter int
}

// Limiter owns the counter table. The clock is injectable for tests.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates a limiter using the wall clock.
func New() *Limiter {
	return NewWithClock(time.Now)
}

// NewWithClock creates a limiter with a custom time source.
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Allow consumes one request from the (bucket, identifier) counter,
// allowing up to limit requests per window.
func (l *Limiter) Allow(bucket, identifier string, limit int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	key := bucket + ":" + identifier
	e, ok := l.entries[key]

	if !ok || !e.resetAt.After(now) {
		l.entries[key] = entry{count: 1, resetAt: now.Add(window)}
		return Result{OK: true}
	}

	if e.count >= limit {
		retry := int(e.resetAt.Sub(now).Seconds())
		if e.resetAt.Sub(now)%time.Second != 0 {
			retry++
		}
		if retry < 1 {
			retry = 1
		}
		return Result{RetryAfter: retry}
	}

	e.count++
	l.entries[key] = e
	return Result{OK: true}
}

// Size returns the current number of tracked keys.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Limiter) prune(now time.Time) {
	if len(l.entries) <= maxKeys {
		return
	}
	for key, e := range l.entries {
		if !e.resetAt.After(now) {
			delete(l.entries, key)
		}
	}
}
