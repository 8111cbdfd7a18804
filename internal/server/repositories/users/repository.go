// Package users implements the credential directory adapter: lookup,
// create, update, and delete of user records by unique key.
package users

import (
	"context"

	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// Repository is the contract to the user record store. Implementations
// return common.ErrorNotFound for missing records and the tagged
// common.ErrDuplicateUsername / common.ErrDuplicateEmail for unique-key
// violations.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.User, error)
	Stats(ctx context.Context) (*models.UserStats, error)
}
