// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"pinboard/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required for a user to log in. The single
// identifier field holds either a username or an email; a contained '@'
// selects the email lookup.
type LoginInput struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// ForgotPasswordInput defines the data required to request a reset link.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required"`
}

// ChangePasswordInput defines the data required to redeem a reset token.
type ChangePasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// --- Output DTOs ---

// FieldError identifies which input was invalid and why. Expected
// validation and business failures are reported this way instead of as
// Go errors.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AuthResult is the outcome of an auth mutation: either a user or a list
// of field errors, never both.
type AuthResult struct {
	User   *entity.User `json:"user"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Failed reports whether the result carries field errors.
func (r *AuthResult) Failed() bool {
	return len(r.Errors) > 0
}

// FieldErrorResult builds a result carrying a single field error.
func FieldErrorResult(field, message string) *AuthResult {
	return &AuthResult{Errors: []FieldError{{Field: field, Message: message}}}
}

// AuthUsecase defines the interface for authentication and credential
// recovery. Every operation takes the request's session handle explicitly;
// there is no ambient request state. A returned error signals a fatal
// infrastructure failure only.
type AuthUsecase interface {
	// Register validates input, creates the user and binds the session.
	Register(ctx context.Context, sess *entity.Session, input *RegisterInput) (*AuthResult, error)

	// Login verifies credentials and binds the session.
	Login(ctx context.Context, sess *entity.Session, input *LoginInput) (*AuthResult, error)

	// Logout destroys the server-side session entry. The boolean reflects
	// whether the destroy succeeded; the cookie is cleared regardless.
	Logout(ctx context.Context, sess *entity.Session) bool

	// Me returns the user bound to the session, or nil for anonymous
	// sessions and sessions whose user no longer exists.
	Me(ctx context.Context, sess *entity.Session) (*entity.User, error)

	// ForgotPassword issues a reset token and emails the link. Succeeds
	// whether or not the email is registered.
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error

	// ChangePassword redeems a reset token, sets the new password and
	// binds the session.
	ChangePassword(ctx context.Context, sess *entity.Session, input *ChangePasswordInput) (*AuthResult, error)
}
