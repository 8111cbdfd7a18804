package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/models"
)

func seedUser(t *testing.T, repo *InMemoryRepository, username, email string) *models.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &models.User{
		Username: username, Email: email, PasswordHash: "hash", Role: models.RoleUser,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func TestInMemory_CreateAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	a := seedUser(t, repo, "alice", "a@x.com")
	b := seedUser(t, repo, "bob", "b@x.com")

	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", a.ID, b.ID)
	}
}

func TestInMemory_DuplicateChecks(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	seedUser(t, repo, "alice", "a@x.com")

	_, err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "other@x.com"})
	if !errors.Is(err, common.ErrDuplicateUsername) {
		t.Fatalf("expected common.ErrDuplicateUsername, got %v", err)
	}

	_, err = repo.Create(context.Background(), &models.User{Username: "other", Email: "a@x.com"})
	if !errors.Is(err, common.ErrDuplicateEmail) {
		t.Fatalf("expected common.ErrDuplicateEmail, got %v", err)
	}
}

func TestInMemory_UpdatePartial(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	u := seedUser(t, repo, "alice", "a@x.com")

	first := "Alicia"
	got, err := repo.Update(context.Background(), u.ID, models.UserUpdate{FirstName: &first})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.FirstName != "Alicia" {
		t.Fatalf("first name not updated: %+v", got)
	}
	if got.Email != "a@x.com" {
		t.Fatalf("nil field must keep stored value, got %q", got.Email)
	}
}

func TestInMemory_UpdateAllNilChangesNothing(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	u := seedUser(t, repo, "alice", "a@x.com")

	got, err := repo.Update(context.Background(), u.ID, models.UserUpdate{})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Username != u.Username || got.Email != u.Email || got.FirstName != u.FirstName {
		t.Fatalf("all-nil update must not change fields: %+v", got)
	}
}

func TestInMemory_UpdateDuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	seedUser(t, repo, "alice", "a@x.com")
	bob := seedUser(t, repo, "bob", "b@x.com")

	taken := "a@x.com"
	_, err := repo.Update(context.Background(), bob.ID, models.UserUpdate{Email: &taken})
	if !errors.Is(err, common.ErrDuplicateEmail) {
		t.Fatalf("expected common.ErrDuplicateEmail, got %v", err)
	}

	// updating to one's own current email is not a collision
	own := "b@x.com"
	if _, err := repo.Update(context.Background(), bob.ID, models.UserUpdate{Email: &own}); err != nil {
		t.Fatalf("own email must not collide: %v", err)
	}
}

func TestInMemory_DeleteAndNotFound(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	u := seedUser(t, repo, "alice", "a@x.com")

	if err := repo.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), u.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), u.ID); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound after delete, got %v", err)
	}
}

func TestInMemory_StatsWindows(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	ages := []time.Duration{
		time.Hour,            // today
		3 * 24 * time.Hour,   // this week
		20 * 24 * time.Hour,  // this month
		100 * 24 * time.Hour, // older
	}
	for i, age := range ages {
		created := base.Add(-age)
		repo.now = func() time.Time { return created }
		seedUser(t, repo, "u"+string(rune('a'+i)), "u"+string(rune('a'+i))+"@x.com")
	}
	repo.now = func() time.Time { return base }

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if stats.Total != 4 || stats.Today != 1 || stats.ThisWeek != 2 || stats.ThisMonth != 3 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
