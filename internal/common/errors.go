// Package common defines shared constants and sentinel errors used across
// the authgate server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Unique-key violations, tagged per field so callers can dispatch on
	// type instead of matching error text.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Login failures. The same value covers "no such user" and "wrong
	// password" so responses cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token lifecycle errors. Malformed tokens and bad signatures both
	// collapse into ErrInvalidToken.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenRevoked = errors.New("token revoked")

	// Admin operation preconditions.
	ErrSelfDelete = errors.New("cannot delete own account")
)
