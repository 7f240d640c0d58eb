// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"pinboard/internal/domain/entity"
)

// Domain-specific errors for user persistence. The application layer handles
// specific outcomes through these sentinels instead of database-specific
// error codes or message sniffing.
var (
	// ErrUserNotFound is returned when a user lookup matches no record.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateUser is returned when an insert would violate the
	// username or email uniqueness constraint. The constraint itself is the
	// sole arbiter; callers must not pre-check and insert.
	ErrDuplicateUser = errors.New("username or email already taken")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicateUser when the
	// username or email is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByUsername retrieves a user by their exact username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
