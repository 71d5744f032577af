// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"cosmiccraft/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserConflict is returned when a user with the same email already exists.
	ErrUserConflict = errors.New("user conflict")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create persists a new user and assigns its ID.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a user by email, compared case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll lists every user ordered by ID.
	FindAll(ctx context.Context) ([]*entity.User, error)
}
