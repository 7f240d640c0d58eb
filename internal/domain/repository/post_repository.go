// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"pinboard/internal/domain/entity"
)

// ErrPostNotFound is returned when a post lookup matches no record.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the interface for post-related database operations.
type PostRepository interface {
	// Create persists a new post.
	Create(ctx context.Context, post *entity.Post) error

	// FindByID retrieves a post by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Post, error)

	// List retrieves all posts, newest first.
	List(ctx context.Context) ([]*entity.Post, error)

	// Update modifies an existing post record.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes a post by its ID.
	Delete(ctx context.Context, id int64) error
}
