// Package models defines the data structures persisted by the server.
package models

import "time"

// Roles assignable to a user record.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a single directory record. PasswordHash is the opaque output of
// the password hasher and must never be serialized to clients.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate is a partial profile update. A nil field means "leave the
// stored value unchanged".
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// UserStats aggregates registration counts over rolling windows.
type UserStats struct {
	Total     int64
	Today     int64
	ThisWeek  int64
	ThisMonth int64
}
