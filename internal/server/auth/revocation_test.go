package auth

import (
	"sync"
	"testing"
	"time"
)

func newTestRegistry(base time.Time) (*RevocationRegistry, *time.Time) {
	r := NewRevocationRegistry()
	now := base
	r.now = func() time.Time { return now }
	return r, &now
}

func TestRevoke_RejectsUntilExpiry(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRegistry(base)

	r.Revoke("tok-1", base.Add(time.Hour))

	if !r.IsRevoked("tok-1") {
		t.Fatalf("revoked token must be reported as revoked")
	}
	if r.IsRevoked("tok-2") {
		t.Fatalf("unknown token must not be reported as revoked")
	}
}

func TestRevoke_Idempotent(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRegistry(base)

	r.Revoke("tok-1", base.Add(time.Hour))
	r.Revoke("tok-1", base.Add(time.Hour))

	if got := r.size(); got != 1 {
		t.Fatalf("expected a single entry, got %d", got)
	}
	if !r.IsRevoked("tok-1") {
		t.Fatalf("token must stay revoked after a second Revoke")
	}
}

func TestIsRevoked_EvictsExpiredEntry(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r, now := newTestRegistry(base)

	r.Revoke("tok-1", base.Add(time.Minute))

	*now = base.Add(2 * time.Minute)

	if r.IsRevoked("tok-1") {
		t.Fatalf("entry past its token expiry must not be reported as revoked")
	}
	if got := r.size(); got != 0 {
		t.Fatalf("expired entry must be evicted on lookup, size=%d", got)
	}
}

func TestRevoke_SkipsAlreadyExpiredToken(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRegistry(base)

	r.Revoke("tok-1", base.Add(-time.Second))

	if got := r.size(); got != 0 {
		t.Fatalf("expired token must not be stored, size=%d", got)
	}
}

func TestSweep_RemovesOnlyExpiredEntries(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r, now := newTestRegistry(base)

	r.Revoke("short", base.Add(time.Minute))
	r.Revoke("long", base.Add(time.Hour))

	*now = base.Add(10 * time.Minute)
	r.Sweep()

	if got := r.size(); got != 1 {
		t.Fatalf("expected one surviving entry, got %d", got)
	}
	if !r.IsRevoked("long") {
		t.Fatalf("unexpired entry must survive the sweep")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r, _ := newTestRegistry(base)
	expiry := base.Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tok := string(rune('a'+n)) + "-tok"
				r.Revoke(tok, expiry)
				_ = r.IsRevoked(tok)
			}
		}(i)
	}
	wg.Wait()

	if got := r.size(); got != 8 {
		t.Fatalf("expected 8 entries, got %d", got)
	}
}
