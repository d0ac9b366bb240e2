package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user identity record.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Hasher provides one-way password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
