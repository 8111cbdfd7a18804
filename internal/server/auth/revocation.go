package auth

import (
	"context"
	"sync"
	"time"
)

// RevocationRegistry records tokens invalidated before their natural expiry.
// Each entry carries the token's own expiry, so the registry never holds a
// token longer than the window in which it could still verify. Entries are
// evicted lazily on lookup and by the periodic sweeper.
//
// Safe for concurrent use; a revoke followed by IsRevoked of the same token
// in the same process always observes the revocation.
type RevocationRegistry struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewRevocationRegistry constructs an empty registry.
func NewRevocationRegistry() *RevocationRegistry {
	return &RevocationRegistry{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke inserts the token unconditionally. Revoking an already-revoked
// token is a no-op. Tokens already past expiresAt are not stored; they can
// no longer verify anyway.
func (r *RevocationRegistry) Revoke(token string, expiresAt time.Time) {
	if !expiresAt.After(r.now()) {
		return
	}
	r.mu.Lock()
	r.entries[token] = expiresAt
	r.mu.Unlock()
}

// IsRevoked reports whether the token has been revoked and is still inside
// its expiry window. Must be consulted only after signature and expiry
// verification succeed.
func (r *RevocationRegistry) IsRevoked(token string) bool {
	r.mu.RLock()
	expiresAt, ok := r.entries[token]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if !expiresAt.After(r.now()) {
		r.mu.Lock()
		delete(r.entries, token)
		r.mu.Unlock()
		return false
	}
	return true
}

// Sweep removes all entries whose tokens have expired.
func (r *RevocationRegistry) Sweep() {
	now := r.now()
	r.mu.Lock()
	for token, expiresAt := range r.entries {
		if !expiresAt.After(now) {
			delete(r.entries, token)
		}
	}
	r.mu.Unlock()
}

// StartSweeper runs Sweep on the given interval until ctx is done.
func (r *RevocationRegistry) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				r.Sweep()
			case <-ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()
}

func (r *RevocationRegistry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
