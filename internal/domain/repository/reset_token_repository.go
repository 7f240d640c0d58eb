// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"
	"time"
)

// ErrResetTokenNotFound is returned when a reset token is absent or expired.
var ErrResetTokenNotFound = errors.New("reset token not found")

// ResetTokenRepository manages single-use password-reset grants in an
// expiring key-value store. Expiry is enforced by the store's own TTL
// mechanism; redemption deletes the entry explicitly.
type ResetTokenRepository interface {
	// Save maps the token to a user id with the given time-to-live.
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error

	// Find resolves the token to its user id.
	// Returns ErrResetTokenNotFound when absent or expired.
	Find(ctx context.Context, token string) (int64, error)

	// Delete removes the token, enforcing single use.
	Delete(ctx context.Context, token string) error
}
