// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"pinboard/internal/delivery/http/middleware"
	"pinboard/internal/delivery/http/response"
	"pinboard/internal/domain/entity"
	"pinboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	uc      usecase.AuthUsecase
	cookies *middleware.CookieManager
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cookies *middleware.CookieManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:      uc,
		cookies: cookies,
		logger:  logger,
	}
}

// authResponse is the wire shape shared by register, login and
// change-password: either a user or a list of field errors, never both.
type authResponse struct {
	User   *userResponse        `json:"user,omitempty"`
	Errors []usecase.FieldError `json:"errors,omitempty"`
}

// userResponse is the public view of a user.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserResponse(user *entity.User) *userResponse {
	if user == nil {
		return nil
	}

	return &userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// respondAuthResult renders an operation result. Field errors are data, not
// transport failures, so they ship with a 200 status; the session cookie is
// issued only when the operation bound a user.
func (h *AuthHandler) respondAuthResult(c echo.Context, sess *entity.Session, result *usecase.AuthResult) error {
	if result.Failed() {
		return response.Success(c, http.StatusOK, authResponse{Errors: result.Errors}, "")
	}

	h.cookies.Issue(c, sess.ID)

	return response.Success(c, http.StatusOK, authResponse{User: toUserResponse(result.User)}, "")
}

// Register handles the user registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	sess := middleware.SessionFromContext(c)
	result, err := h.uc.Register(c.Request().Context(), sess, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.respondAuthResult(c, sess, result)
}

// Login handles the user login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	sess := middleware.SessionFromContext(c)
	result, err := h.uc.Login(c.Request().Context(), sess, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.respondAuthResult(c, sess, result)
}

// Logout destroys the session. The cookie is cleared even when the
// server-side destroy fails, so the browser never keeps a dangling id.
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.SessionFromContext(c)
	destroyed := h.uc.Logout(c.Request().Context(), sess)

	h.cookies.Clear(c)

	return response.Success(c, http.StatusOK, map[string]bool{"loggedOut": destroyed}, "")
}

// Me returns the user bound to the current session, or null for anonymous
// and stale sessions.
func (h *AuthHandler) Me(c echo.Context) error {
	sess := middleware.SessionFromContext(c)
	user, err := h.uc.Me(c.Request().Context(), sess)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]*userResponse{"user": toUserResponse(user)}, "")
}

// ForgotPassword issues a password reset email. The response is identical
// whether or not the address is registered.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var input usecase.ForgotPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forgot password input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"sent": true}, "")
}

// ChangePassword redeems a reset token for a new password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid change password input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	sess := middleware.SessionFromContext(c)
	result, err := h.uc.ChangePassword(c.Request().Context(), sess, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return h.respondAuthResult(c, sess, result)
}
