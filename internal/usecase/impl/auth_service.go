// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pinboard/config"
	deliverycontext "pinboard/internal/delivery/context"
	"pinboard/internal/domain/entity"
	"pinboard/internal/domain/repository"
	"pinboard/internal/domain/service"
	"pinboard/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. Each operation either
// returns a structured result with field errors for expected failures, or a
// wrapped error when storage, cache or hashing is genuinely broken.
type authService struct {
	userRepo      repository.UserRepository
	sessionRepo   repository.SessionRepository
	tokenRepo     repository.ResetTokenRepository
	hasher        service.PasswordHasher
	mailer        service.Mailer
	sessionTTL    time.Duration
	resetTokenTTL time.Duration
	resetLinkBase string
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	SessionRepo repository.SessionRepository
	TokenRepo   repository.ResetTokenRepository
	Hasher      service.PasswordHasher
	Mailer      service.Mailer
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all
// dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	srv := &authService{
		userRepo:    params.UserRepo,
		sessionRepo: params.SessionRepo,
		tokenRepo:   params.TokenRepo,
		hasher:      params.Hasher,
		mailer:      params.Mailer,
		logger:      params.Logger,
	}

	if params.Config != nil && params.Config.Session != nil {
		srv.sessionTTL = params.Config.Session.TTL
	}
	if params.Config != nil && params.Config.ResetToken != nil {
		srv.resetTokenTTL = params.Config.ResetToken.TTL
		srv.resetLinkBase = params.Config.ResetToken.LinkBaseURL
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to
// the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
func (srv *authService) Register(ctx context.Context, sess *entity.Session, input *usecase.RegisterInput) (*usecase.AuthResult, error) {
	srv.log(ctx).Debug("Starting registration", slog.String("username", input.Username), slog.String("email", input.Email))

	if result := validateRegister(input); result != nil {
		srv.log(ctx).Debug("Registration input rejected",
			slog.String("username", input.Username),
			slog.String("field", result.Errors[0].Field))

		return result, nil
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
	}

	// The uniqueness constraint in storage is the sole arbiter of conflicts;
	// a lookup-then-insert here would race with concurrent registrations.
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			srv.log(ctx).Info("Registration conflict", slog.String("username", input.Username))

			return usecase.FieldErrorResult("username",
				fmt.Sprintf("username %q has already been taken", input.Username)), nil
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	if err := srv.bindSession(ctx, sess, newUser.ID); err != nil {
		return nil, errors.Wrap(err, "failed to establish session after registration")
	}

	srv.log(ctx).Info("User registered", slog.Int64("userID", newUser.ID), slog.String("username", newUser.Username))

	return &usecase.AuthResult{User: newUser}, nil
}

// Login orchestrates the user login process.
func (srv *authService) Login(ctx context.Context, sess *entity.Session, input *usecase.LoginInput) (*usecase.AuthResult, error) {
	srv.log(ctx).Debug("Starting login", slog.String("usernameOrEmail", input.UsernameOrEmail))

	user, err := srv.lookupLoginUser(ctx, input.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Login failed, unknown user", slog.String("usernameOrEmail", input.UsernameOrEmail))

			return usecase.FieldErrorResult("usernameOrEmail",
				fmt.Sprintf("could not find user %q", input.UsernameOrEmail)), nil
		}

		return nil, errors.Wrap(err, "failed to look up user during login")
	}

	match, err := srv.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, errors.Wrap(err, "failed to verify password during login")
	}
	if !match {
		srv.log(ctx).Info("Login failed, password mismatch", slog.Int64("userID", user.ID))

		return usecase.FieldErrorResult("password", "password incorrect"), nil
	}

	if err := srv.bindSession(ctx, sess, user.ID); err != nil {
		return nil, errors.Wrap(err, "failed to establish session after login")
	}

	srv.log(ctx).Info("User logged in", slog.Int64("userID", user.ID))

	return &usecase.AuthResult{User: user}, nil
}

// lookupLoginUser resolves the login identifier: anything containing an '@'
// is treated as an email, everything else as a username. Registration
// forbids '@' in usernames so the dispatch is unambiguous.
func (srv *authService) lookupLoginUser(ctx context.Context, usernameOrEmail string) (*entity.User, error) {
	if strings.Contains(usernameOrEmail, "@") {
		return srv.userRepo.FindByEmail(ctx, usernameOrEmail)
	}

	return srv.userRepo.FindByUsername(ctx, usernameOrEmail)
}

// Logout destroys the server-side session entry. A destroy failure is
// reported through the return value, never as an error: the caller clears
// the cookie either way.
func (srv *authService) Logout(ctx context.Context, sess *entity.Session) bool {
	if err := srv.sessionRepo.Delete(ctx, sess.ID); err != nil {
		srv.log(ctx).Error("Failed to destroy session", slog.Any("error", err))

		return false
	}

	sess.UserID = 0
	srv.log(ctx).Debug("Session destroyed")

	return true
}

// Me returns the user bound to the session. Anonymous sessions and sessions
// whose user row has since disappeared both resolve to nil without error.
func (srv *authService) Me(ctx context.Context, sess *entity.Session) (*entity.User, error) {
	if sess.Anonymous() {
		return nil, nil
	}

	user, err := srv.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}

// ForgotPassword issues a single-use reset token and mails the link.
// The caller learns nothing about whether the address is registered: an
// unknown email, and even a mail delivery failure, still return success.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to look up user for password reset")
	}

	token := uuid.NewString()
	if err := srv.tokenRepo.Save(ctx, token, user.ID, srv.resetTokenTTL); err != nil {
		return errors.Wrap(err, "failed to store password reset token")
	}

	link := srv.resetLinkBase + "/change-password/" + token
	if err := srv.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		// Do not surface mail failures; the response must not depend on
		// whether the address exists.
		srv.log(ctx).Warn("Failed to send password reset email", slog.Int64("userID", user.ID), slog.Any("error", err))

		return nil
	}

	srv.log(ctx).Info("Password reset email sent", slog.Int64("userID", user.ID))

	return nil
}

// ChangePassword redeems a reset token: sets the new password, deletes the
// token and logs the user in.
func (srv *authService) ChangePassword(ctx context.Context, sess *entity.Session, input *usecase.ChangePasswordInput) (*usecase.AuthResult, error) {
	if len(input.NewPassword) < minPasswordLen {
		return usecase.FieldErrorResult("newPassword", msgPasswordTooShort), nil
	}

	userID, err := srv.tokenRepo.Find(ctx, input.Token)
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			srv.log(ctx).Info("Password reset with absent or expired token")

			return usecase.FieldErrorResult("token", "token expired"), nil
		}

		return nil, errors.Wrap(err, "failed to look up reset token")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same externally observable shape as an expired token; the
			// distinct message exists for diagnostics only.
			srv.deleteResetToken(ctx, input.Token)

			return usecase.FieldErrorResult("token", "user no longer exists"), nil
		}

		return nil, errors.Wrap(err, "failed to load user for password reset")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash new password")
	}

	if err := srv.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return nil, errors.Wrap(err, "failed to persist new password")
	}
	user.PasswordHash = hashedPassword

	// Single-use enforcement. The read and the delete are not atomic across
	// the store; a crash in between leaves at most one extra redemption
	// window, which is accepted.
	srv.deleteResetToken(ctx, input.Token)

	if err := srv.bindSession(ctx, sess, user.ID); err != nil {
		return nil, errors.Wrap(err, "failed to establish session after password reset")
	}

	srv.log(ctx).Info("Password changed", slog.Int64("userID", user.ID))

	return &usecase.AuthResult{User: user}, nil
}

// bindSession attaches the user to the session and persists the entry. The
// session id is rotated at the privilege change, so an id the client carried
// before authenticating never identifies an authenticated session.
func (srv *authService) bindSession(ctx context.Context, sess *entity.Session, userID int64) error {
	fresh, err := entity.NewSession()
	if err != nil {
		return errors.Wrap(err, "failed to rotate session id")
	}

	if sess.ID != "" {
		// Best effort: the pre-login entry, if one was ever persisted, must
		// not outlive the rotation.
		if err := srv.sessionRepo.Delete(ctx, sess.ID); err != nil {
			srv.log(ctx).Warn("Failed to drop pre-login session entry", slog.Any("error", err))
		}
	}

	sess.ID = fresh.ID
	sess.UserID = userID

	return srv.sessionRepo.Save(ctx, sess, srv.sessionTTL)
}

// deleteResetToken removes a token, logging failures instead of failing the
// operation; the password change already took effect.
func (srv *authService) deleteResetToken(ctx context.Context, token string) {
	if err := srv.tokenRepo.Delete(ctx, token); err != nil {
		srv.log(ctx).Warn("Failed to delete reset token", slog.Any("error", err))
	}
}
