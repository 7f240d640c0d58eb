package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pinboard/config"
	"pinboard/internal/delivery/http/middleware"
	"pinboard/internal/delivery/http/validator"
	"pinboard/internal/domain/entity"
	mockUsecase "pinboard/internal/mocks/usecase"
	"pinboard/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestCookieManager() *middleware.CookieManager {
	return middleware.NewCookieManager(&config.Config{
		Session: &config.SessionConfig{
			CookieName: "qid",
			TTL:        24 * time.Hour,
		},
	})
}

func newAuthTestContext(t *testing.T, method, target, body string, sess *entity.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("session", sess)

	return c, rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	res := rec.Result()
	defer res.Body.Close()

	for _, cookie := range res.Cookies() {
		if cookie.Name == "qid" {
			return cookie
		}
	}

	return nil
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id"}
	user := &entity.User{ID: 3, Username: "ben", Email: "ben@example.com"}

	uc.EXPECT().
		Login(mock.Anything, sess, mock.AnythingOfType("*usecase.LoginInput")).
		Run(func(ctx context.Context, s *entity.Session, input *usecase.LoginInput) {
			s.UserID = 3
		}).
		Return(&usecase.AuthResult{User: user}, nil)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"usernameOrEmail":"ben","password":"secret"}`, sess)

	require.NoError(t, handler.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"ben"`)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "session-id", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestAuthHandler_Login_FieldErrorsCarryNoCookie(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id"}

	uc.EXPECT().
		Login(mock.Anything, sess, mock.AnythingOfType("*usecase.LoginInput")).
		Return(usecase.FieldErrorResult("password", "password incorrect"), nil)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login",
		`{"usernameOrEmail":"ben","password":"wrong"}`, sess)

	require.NoError(t, handler.Login(c))

	// Expected failures are data: 200 status, errors in the body, no cookie.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"password incorrect"`)
	assert.NotContains(t, rec.Body.String(), `"user"`)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestAuthHandler_Logout_ClearsCookieEvenOnFailure(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id", UserID: 3}

	uc.EXPECT().Logout(mock.Anything, sess).Return(false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", "", sess)

	require.NoError(t, handler.Logout(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"loggedOut":false`)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthHandler_Me_AnonymousReturnsNullUser(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id"}

	uc.EXPECT().Me(mock.Anything, sess).Return(nil, nil)

	c, rec := newAuthTestContext(t, http.MethodGet, "/auth/me", "", sess)

	require.NoError(t, handler.Me(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user":null`)
}

func TestAuthHandler_Register_PasswordNeverEchoed(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id"}
	user := &entity.User{ID: 3, Username: "ben", Email: "ben@example.com", PasswordHash: "$argon2id$..."}

	uc.EXPECT().
		Register(mock.Anything, sess, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(&usecase.AuthResult{User: user}, nil)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"ben","email":"ben@example.com","password":"secret"}`, sess)

	require.NoError(t, handler.Register(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "argon2id")
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestAuthHandler_Register_EmptyBodyRejectedByValidator(t *testing.T) {
	// No expectations on the mock: a payload missing required fields must be
	// rejected before the usecase is ever reached.
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id"}

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/register", `{}`, sess)

	require.NoError(t, handler.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.Nil(t, sessionCookie(t, rec))
}

func TestAuthHandler_Login_EmptyBodyRejectedByValidator(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id"}

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{}`, sess)

	require.NoError(t, handler.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestAuthHandler_ForgotPassword_AlwaysReportsSent(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id"}

	uc.EXPECT().
		ForgotPassword(mock.Anything, mock.AnythingOfType("*usecase.ForgotPasswordInput")).
		Return(nil)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/forgot-password",
		`{"email":"ghost@example.com"}`, sess)

	require.NoError(t, handler.ForgotPassword(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sent":true`)
}

func TestAuthHandler_ChangePassword_SetsCookieOnSuccess(t *testing.T) {
	uc := mockUsecase.NewMockAuthUsecase(t)
	handler := NewAuthHandler(uc, newTestCookieManager(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	sess := &entity.Session{ID: "session-id"}
	user := &entity.User{ID: 3, Username: "ben", Email: "ben@example.com"}

	uc.EXPECT().
		ChangePassword(mock.Anything, sess, mock.AnythingOfType("*usecase.ChangePasswordInput")).
		Return(&usecase.AuthResult{User: user}, nil)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/change-password",
		`{"token":"tok","newPassword":"newsecret"}`, sess)

	require.NoError(t, handler.ChangePassword(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sessionCookie(t, rec))
}
