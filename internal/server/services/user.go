// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login/logout, profile access, and
// the administrative directory operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
)

// RegisterParams carries the sanitized, validated registration input.
type RegisterParams struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserService provides authentication and directory operations:
//   - Register: create users and mint their first token
//   - Login: verify credentials and mint tokens
//   - Authenticate: resolve a presented bearer token to a live identity
//   - Logout: revoke a token before its natural expiry
//   - profile and admin operations over the directory adapter
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	tokens      *auth.TokenAuthority
	revoked     *auth.RevocationRegistry
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	tokens *auth.TokenAuthority, revoked *auth.RevocationRegistry) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		revoked:     revoked,
	}
}

// Register creates a new user with the default role and returns it together
// with a freshly issued token. Unique-key collisions surface as the tagged
// duplicate errors from the directory adapter.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.User, string, error) {
	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) || errors.Is(err, common.ErrDuplicateEmail) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Login verifies the credentials and, on success, returns the user and a new
// token. A missing user and a wrong password produce the identical error so
// responses cannot be used to enumerate accounts.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return user, token, nil
}

// Authenticate resolves a presented bearer token to a live identity. The
// revocation registry is consulted only after signature and expiry checks
// succeed. All failures are variants of "unauthenticated" for callers.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, nil, err
	}

	if s.revoked.IsRevoked(token) {
		return nil, nil, common.ErrTokenRevoked
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	return user, claims, nil
}

// Logout revokes the token until the moment it would have expired anyway.
func (s *UserService) Logout(ctx context.Context, token string, expiresAt time.Time) {
	s.revoked.Revoke(token, expiresAt)
}

// GetProfile returns the user record for the given id.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// UpdateProfile applies a partial profile update; nil fields stay unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	return s.repomanager.Users(s.db).Update(ctx, id, upd)
}

// ListUsers returns all directory records.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

// DeleteUser removes the target record. Deleting one's own account is
// rejected as a precondition, before any store mutation.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return common.ErrSelfDelete
	}
	return s.repomanager.Users(s.db).Delete(ctx, targetID)
}

// Stats returns registration counts over rolling windows.
func (s *UserService) Stats(ctx context.Context) (*models.UserStats, error) {
	return s.repomanager.Users(s.db).Stats(ctx)
}
