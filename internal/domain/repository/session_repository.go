// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"

	"pinboard/internal/domain/entity"
)

// ErrSessionNotFound is returned when no session entry exists for an id.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository manages the server-side half of a session: the mapping
// from opaque session id to user id, with its own expiry.
type SessionRepository interface {
	// Save writes the session entry with the given time-to-live,
	// overwriting any previous binding for the same id.
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error

	// Find retrieves the session bound to the given id.
	// Returns ErrSessionNotFound when the entry is absent or expired.
	Find(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes the session entry. Deleting an absent entry is not
	// an error; the session is gone either way.
	Delete(ctx context.Context, id string) error
}
