package users

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

// InMemoryRepository is a map-backed Repository used in tests and local
// experiments. It enforces the same unique-key semantics as the Postgres
// implementation.
type InMemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]*models.User
	nextID int64
	now    func() time.Time
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:  make(map[int64]*models.User),
		nextID: 1,
		now:    time.Now,
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

// duplicateOf reports the tagged duplicate error, if any, of inserting the
// given username/email while ignoring the record with id exclude.
func (r *InMemoryRepository) duplicateOf(username, email string, exclude int64) error {
	for _, u := range r.users {
		if u.ID == exclude {
			continue
		}
		if username != "" && u.Username == username {
			return common.ErrDuplicateUsername
		}
		if email != "" && u.Email == email {
			return common.ErrDuplicateEmail
		}
	}
	return nil
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.duplicateOf(user.Username, user.Email, 0); err != nil {
		return nil, err
	}

	stored := copyUser(user)
	stored.ID = r.nextID
	r.nextID++
	stored.CreatedAt = r.now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = stored

	return copyUser(stored), nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	if upd.Email != nil {
		if err := r.duplicateOf("", *upd.Email, id); err != nil {
			return nil, err
		}
		u.Email = *upd.Email
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	u.UpdatedAt = r.now()

	return copyUser(u), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		result = append(result, copyUser(u))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *InMemoryRepository) Stats(ctx context.Context) (*models.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	stats := &models.UserStats{}
	for _, u := range r.users {
		stats.Total++
		age := now.Sub(u.CreatedAt)
		if age < 24*time.Hour {
			stats.Today++
		}
		if age < 7*24*time.Hour {
			stats.ThisWeek++
		}
		if age < 30*24*time.Hour {
			stats.ThisMonth++
		}
	}

	return stats, nil
}
