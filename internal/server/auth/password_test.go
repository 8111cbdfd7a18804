package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	// MinCost keeps the test fast; production cost comes from config.
	h, err := NewPasswordHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPasswordHasher error: %v", err)
	}
	return h
}

func TestHashAndVerify_Success(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	digest, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "Secret123!" {
		t.Fatalf("digest must not equal the plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("expected bcrypt digest, got %q", digest)
	}

	if !h.Verify("Secret123!", digest) {
		t.Fatalf("Verify must succeed for the original plaintext")
	}
}

func TestVerify_RejectsOtherPlaintexts(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	digest, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	for _, candidate := range []string{"", "secret123!", "Secret123", "Secret123! "} {
		if h.Verify(candidate, digest) {
			t.Fatalf("Verify must fail for %q", candidate)
		}
	}
}

func TestHash_SaltedDigestsDiffer(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	d1, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	d2, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if d1 == d2 {
		t.Fatalf("two hashes of the same plaintext must not be equal")
	}
}

func TestNewPasswordHasher_RejectsOutOfRangeCost(t *testing.T) {
	t.Parallel()

	if _, err := NewPasswordHasher(bcrypt.MaxCost + 1); err == nil {
		t.Fatalf("expected error for cost above MaxCost")
	}
	if _, err := NewPasswordHasher(-1); err == nil {
		t.Fatalf("expected error for negative cost")
	}
}
