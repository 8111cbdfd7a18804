// Package ratelimit implements a fixed-window request limiter keyed by
// client address.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count int
	start time.Time
}

// Limiter counts requests per key within a fixed window. When the window
// elapses the count resets; requests beyond the configured maximum are
// rejected. A rejection does not reset or extend the window. Allow is O(1)
// per request.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	length  time.Duration
	now     func() time.Time
}

// New constructs a Limiter allowing max requests per window of the given length.
func New(max int, length time.Duration) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		max:     max,
		length:  length,
		now:     time.Now,
	}
}

// Allow records one request for key and reports whether it is within quota.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.length {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count <= l.max
}

// Cleanup drops windows that have already elapsed.
func (l *Limiter) Cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.length {
			delete(l.windows, key)
		}
	}
}

// StartCleanup runs Cleanup once per window length until ctx is done.
func (l *Limiter) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(l.length)
	go func() {
		for {
			select {
			case <-ticker.C:
				l.Cleanup()
			case <-ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
