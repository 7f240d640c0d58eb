// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"pinboard/internal/domain/entity"
)

// CreatePostInput defines the data required to create a post.
type CreatePostInput struct {
	Title string `json:"title" validate:"required"`
}

// UpdatePostInput defines the data for updating a post.
type UpdatePostInput struct {
	Title string `json:"title" validate:"required"`
}

// PostUsecase defines the interface for post CRUD operations.
type PostUsecase interface {
	// List returns all posts, newest first.
	List(ctx context.Context) ([]*entity.Post, error)

	// Get returns the post with the given id, or nil when absent.
	Get(ctx context.Context, id int64) (*entity.Post, error)

	// Create stores a new post authored by the given user.
	Create(ctx context.Context, creatorID int64, input *CreatePostInput) (*entity.Post, error)

	// Update changes a post's title. Returns nil when the post is absent.
	Update(ctx context.Context, id int64, input *UpdatePostInput) (*entity.Post, error)

	// Delete removes a post. The boolean reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}
