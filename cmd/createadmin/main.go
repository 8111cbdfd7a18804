// Command createadmin seeds the initial administrator account. It is
// idempotent: if a user with the given username or email already exists,
// nothing is written.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/authgate/internal/common"
	"github.com/dmitrijs2005/authgate/internal/server/auth"
	"github.com/dmitrijs2005/authgate/internal/server/config"
	"github.com/dmitrijs2005/authgate/internal/server/models"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authgate/internal/server/repositories/users"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"
)

func main() {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	dsn := flag.String("d", defaults.DatabaseDSN, "database dsn")
	username := flag.String("u", "admin", "admin username")
	email := flag.String("e", "admin@example.com", "admin email")
	firstName := flag.String("f", "Admin", "first name")
	lastName := flag.String("l", "User", "last name")
	password := flag.String("p", "", "password (prompted if empty)")
	flag.Parse()

	if err := run(context.Background(), *dsn, *username, *email, *firstName, *lastName, *password, defaults.BcryptCost); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, dsn, username, email, firstName, lastName, password string, cost int) error {
	if password == "" {
		fmt.Println("Enter password")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("error reading password: %w", err)
		}
		password = string(raw)
	}
	if password == "" {
		return errors.New("password must not be empty")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	repo := rm.Users(db)

	if exists, err := adminExists(ctx, repo, username, email); err != nil {
		return err
	} else if exists {
		fmt.Println("Admin user already exists")
		return nil
	}

	hasher, err := auth.NewPasswordHasher(cost)
	if err != nil {
		return err
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}

	admin, err := repo.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("error creating admin: %w", err)
	}

	fmt.Printf("Admin user created: id=%d username=%s email=%s\n", admin.ID, admin.Username, admin.Email)
	return nil
}

func adminExists(ctx context.Context, repo users.Repository, username, email string) (bool, error) {
	if _, err := repo.GetByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return false, err
	}
	return false, nil
}
