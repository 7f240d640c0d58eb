package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"pinboard/config"
	"pinboard/internal/domain/entity"
	"pinboard/internal/domain/repository"
	mockRepo "pinboard/internal/mocks/repository"
	mockSvc "pinboard/internal/mocks/service"
	"pinboard/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSessionTTL    = 10 * 365 * 24 * time.Hour
	testResetTokenTTL = 72 * time.Hour
	testLinkBase      = "http://localhost:3000"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service     usecase.AuthUsecase
	userRepo    *mockRepo.MockUserRepository
	sessionRepo *mockRepo.MockSessionRepository
	tokenRepo   *mockRepo.MockResetTokenRepository
	hasher      *mockSvc.MockPasswordHasher
	mailer      *mockSvc.MockMailer
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	sessionRepo := mockRepo.NewMockSessionRepository(t)
	tokenRepo := mockRepo.NewMockResetTokenRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	mailer := mockSvc.NewMockMailer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Session: &config.SessionConfig{
			CookieName: "qid",
			TTL:        testSessionTTL,
		},
		ResetToken: &config.ResetTokenConfig{
			TTL:         testResetTokenTTL,
			LinkBaseURL: testLinkBase,
		},
	}

	service := NewAuthService(AuthServiceParams{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		TokenRepo:   tokenRepo,
		Hasher:      hasher,
		Mailer:      mailer,
		Config:      cfg,
		Logger:      logger,
	})

	return authServiceFixtures{
		service:     service,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokenRepo:   tokenRepo,
		hasher:      hasher,
		mailer:      mailer,
	}
}

func newTestSession(t *testing.T) *entity.Session {
	sess, err := entity.NewSession()
	require.NoError(t, err)

	return sess
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)
	input := &usecase.RegisterInput{
		Username: "ben",
		Email:    "ben@example.com",
		Password: "secret",
	}

	preLoginID := sess.ID

	fx.hasher.EXPECT().Hash("secret").Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			user.ID = 7
		}).
		Return(nil)
	fx.sessionRepo.EXPECT().Delete(ctx, preLoginID).Return(nil)
	fx.sessionRepo.EXPECT().
		Save(ctx, sess, testSessionTTL).
		Return(nil)

	result, err := fx.service.Register(ctx, sess, input)

	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Empty(t, result.Errors)
	assert.Equal(t, int64(7), result.User.ID)
	assert.Equal(t, "hashed_password", result.User.PasswordHash)
	assert.Equal(t, int64(7), sess.UserID)
	assert.NotEqual(t, preLoginID, sess.ID)
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name        string
		input       *usecase.RegisterInput
		wantField   string
		wantMessage string
	}{
		{
			name:        "email without at sign",
			input:       &usecase.RegisterInput{Username: "ben", Email: "not-an-email", Password: "secret"},
			wantField:   "email",
			wantMessage: "invalid email",
		},
		{
			name:        "username too short",
			input:       &usecase.RegisterInput{Username: "ab", Email: "ab@example.com", Password: "secret"},
			wantField:   "username",
			wantMessage: "length must be greater than 2",
		},
		{
			name:        "username contains at sign",
			input:       &usecase.RegisterInput{Username: "ben@home", Email: "ben@example.com", Password: "secret"},
			wantField:   "username",
			wantMessage: "cannot include an @",
		},
		{
			name:        "password too short",
			input:       &usecase.RegisterInput{Username: "ben", Email: "ben@example.com", Password: "abc"},
			wantField:   "password",
			wantMessage: "length must be greater than 3",
		},
		{
			name:        "email rule wins over username rule",
			input:       &usecase.RegisterInput{Username: "a", Email: "bad", Password: "x"},
			wantField:   "email",
			wantMessage: "invalid email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repository or hasher expectations: a rejected input must
			// not touch storage.
			fx := createTestAuthService(t)
			sess := newTestSession(t)

			result, err := fx.service.Register(context.Background(), sess, tt.input)

			require.NoError(t, err)
			assert.Nil(t, result.User)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
			assert.Equal(t, tt.wantMessage, result.Errors[0].Message)
			assert.True(t, sess.Anonymous())
		})
	}
}

func TestAuthService_Register_DuplicateUser(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)
	input := &usecase.RegisterInput{
		Username: "ben",
		Email:    "ben@example.com",
		Password: "secret",
	}

	fx.hasher.EXPECT().Hash("secret").Return("hashed_password", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(repository.ErrDuplicateUser)

	result, err := fx.service.Register(ctx, sess, input)

	require.NoError(t, err)
	assert.Nil(t, result.User)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "username", result.Errors[0].Field)
	assert.Equal(t, `username "ben" has already been taken`, result.Errors[0].Message)
	assert.True(t, sess.Anonymous())
}

func TestAuthService_Register_HasherFailure(t *testing.T) {
	fx := createTestAuthService(t)

	sess := newTestSession(t)
	input := &usecase.RegisterInput{
		Username: "ben",
		Email:    "ben@example.com",
		Password: "secret",
	}

	fx.hasher.EXPECT().Hash("secret").Return("", errors.New("out of memory"))

	result, err := fx.service.Register(context.Background(), sess, input)

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestAuthService_Login_ByUsername(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)
	user := &entity.User{ID: 3, Username: "ben", Email: "ben@example.com", PasswordHash: "hashed"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "ben").Return(user, nil)
	fx.hasher.EXPECT().Verify("secret", "hashed").Return(true, nil)
	fx.sessionRepo.EXPECT().Delete(ctx, sess.ID).Return(nil)
	fx.sessionRepo.EXPECT().Save(ctx, sess, testSessionTTL).Return(nil)

	result, err := fx.service.Login(ctx, sess, &usecase.LoginInput{
		UsernameOrEmail: "ben",
		Password:        "secret",
	})

	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, int64(3), sess.UserID)
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)
	user := &entity.User{ID: 3, Username: "ben", Email: "ben@example.com", PasswordHash: "hashed"}

	// Anything containing '@' must go through the email lookup.
	fx.userRepo.EXPECT().FindByEmail(ctx, "ben@example.com").Return(user, nil)
	fx.hasher.EXPECT().Verify("secret", "hashed").Return(true, nil)
	fx.sessionRepo.EXPECT().Delete(ctx, sess.ID).Return(nil)
	fx.sessionRepo.EXPECT().Save(ctx, sess, testSessionTTL).Return(nil)

	result, err := fx.service.Login(ctx, sess, &usecase.LoginInput{
		UsernameOrEmail: "ben@example.com",
		Password:        "secret",
	})

	require.NoError(t, err)
	require.NotNil(t, result.User)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)

	fx.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	result, err := fx.service.Login(ctx, sess, &usecase.LoginInput{
		UsernameOrEmail: "ghost",
		Password:        "secret",
	})

	require.NoError(t, err)
	assert.Nil(t, result.User)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "usernameOrEmail", result.Errors[0].Field)
	assert.Equal(t, `could not find user "ghost"`, result.Errors[0].Message)
	assert.True(t, sess.Anonymous())
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)
	user := &entity.User{ID: 3, Username: "ben", PasswordHash: "hashed"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "ben").Return(user, nil)
	fx.hasher.EXPECT().Verify("wrong", "hashed").Return(false, nil)

	result, err := fx.service.Login(ctx, sess, &usecase.LoginInput{
		UsernameOrEmail: "ben",
		Password:        "wrong",
	})

	require.NoError(t, err)
	assert.Nil(t, result.User)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "password", result.Errors[0].Field)
	assert.Equal(t, "password incorrect", result.Errors[0].Message)
	assert.True(t, sess.Anonymous())
}

func TestAuthService_Login_RotatesSessionID(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	// An id the client carried before authenticating: it may have been
	// planted in the browser by someone else, so it must never survive login.
	sess := &entity.Session{ID: "planted-by-attacker"}
	user := &entity.User{ID: 3, Username: "ben", PasswordHash: "hashed"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "ben").Return(user, nil)
	fx.hasher.EXPECT().Verify("secret", "hashed").Return(true, nil)
	fx.sessionRepo.EXPECT().Delete(ctx, "planted-by-attacker").Return(nil)
	fx.sessionRepo.EXPECT().Save(ctx, sess, testSessionTTL).Return(nil)

	result, err := fx.service.Login(ctx, sess, &usecase.LoginInput{
		UsernameOrEmail: "ben",
		Password:        "secret",
	})

	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEqual(t, "planted-by-attacker", sess.ID)
	assert.NotEmpty(t, sess.ID)
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("destroy succeeds", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		sess := &entity.Session{ID: "abc", UserID: 3}

		fx.sessionRepo.EXPECT().Delete(ctx, "abc").Return(nil)

		assert.True(t, fx.service.Logout(ctx, sess))
		assert.True(t, sess.Anonymous())
	})

	t.Run("destroy fails", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		sess := &entity.Session{ID: "abc", UserID: 3}

		fx.sessionRepo.EXPECT().Delete(ctx, "abc").Return(errors.New("redis down"))

		assert.False(t, fx.service.Logout(ctx, sess))
	})
}

func TestAuthService_Me(t *testing.T) {
	t.Run("anonymous session", func(t *testing.T) {
		fx := createTestAuthService(t)

		user, err := fx.service.Me(context.Background(), newTestSession(t))

		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("bound session", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()
		want := &entity.User{ID: 3, Username: "ben"}

		fx.userRepo.EXPECT().FindByID(ctx, int64(3)).Return(want, nil)

		user, err := fx.service.Me(ctx, &entity.Session{ID: "abc", UserID: 3})

		require.NoError(t, err)
		assert.Equal(t, want, user)
	})

	t.Run("stale session", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.userRepo.EXPECT().FindByID(ctx, int64(3)).Return(nil, repository.ErrUserNotFound)

		user, err := fx.service.Me(ctx, &entity.Session{ID: "abc", UserID: 3})

		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()

	// No token is stored and no mail is sent, yet the call succeeds: the
	// caller must not learn whether the address is registered.
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	err := fx.service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "ghost@example.com"})

	require.NoError(t, err)
}

func TestAuthService_ForgotPassword_SendsTokenLink(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: 3, Username: "ben", Email: "ben@example.com"}

	var issuedToken string
	fx.userRepo.EXPECT().FindByEmail(ctx, "ben@example.com").Return(user, nil)
	fx.tokenRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("string"), int64(3), testResetTokenTTL).
		Run(func(ctx context.Context, token string, userID int64, ttl time.Duration) {
			issuedToken = token
		}).
		Return(nil)
	fx.mailer.EXPECT().
		SendPasswordReset(ctx, "ben@example.com", mock.AnythingOfType("string")).
		RunAndReturn(func(ctx context.Context, to string, link string) error {
			assert.Equal(t, testLinkBase+"/change-password/"+issuedToken, link)
			return nil
		})

	err := fx.service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "ben@example.com"})

	require.NoError(t, err)
	assert.NotEmpty(t, issuedToken)
}

func TestAuthService_ForgotPassword_MailerFailureSwallowed(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{ID: 3, Email: "ben@example.com"}

	fx.userRepo.EXPECT().FindByEmail(ctx, "ben@example.com").Return(user, nil)
	fx.tokenRepo.EXPECT().
		Save(ctx, mock.AnythingOfType("string"), int64(3), testResetTokenTTL).
		Return(nil)
	fx.mailer.EXPECT().
		SendPasswordReset(ctx, "ben@example.com", mock.AnythingOfType("string")).
		Return(errors.New("smtp unreachable"))

	err := fx.service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "ben@example.com"})

	require.NoError(t, err)
}

func TestAuthService_ChangePassword_ShortPassword(t *testing.T) {
	// No token lookup: the length check runs before anything else.
	fx := createTestAuthService(t)
	sess := newTestSession(t)

	result, err := fx.service.ChangePassword(context.Background(), sess, &usecase.ChangePasswordInput{
		Token:       "some-token",
		NewPassword: "abc",
	})

	require.NoError(t, err)
	assert.Nil(t, result.User)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "newPassword", result.Errors[0].Field)
	assert.Equal(t, "length must be greater than 3", result.Errors[0].Message)
}

func TestAuthService_ChangePassword_ExpiredToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)

	fx.tokenRepo.EXPECT().Find(ctx, "stale").Return(int64(0), repository.ErrResetTokenNotFound)

	result, err := fx.service.ChangePassword(ctx, sess, &usecase.ChangePasswordInput{
		Token:       "stale",
		NewPassword: "newsecret",
	})

	require.NoError(t, err)
	assert.Nil(t, result.User)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "token", result.Errors[0].Field)
	assert.Equal(t, "token expired", result.Errors[0].Message)
}

func TestAuthService_ChangePassword_UserGone(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)

	fx.tokenRepo.EXPECT().Find(ctx, "tok").Return(int64(3), nil)
	fx.userRepo.EXPECT().FindByID(ctx, int64(3)).Return(nil, repository.ErrUserNotFound)
	fx.tokenRepo.EXPECT().Delete(ctx, "tok").Return(nil)

	result, err := fx.service.ChangePassword(ctx, sess, &usecase.ChangePasswordInput{
		Token:       "tok",
		NewPassword: "newsecret",
	})

	require.NoError(t, err)
	assert.Nil(t, result.User)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "token", result.Errors[0].Field)
	assert.Equal(t, "user no longer exists", result.Errors[0].Message)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)
	user := &entity.User{ID: 3, Username: "ben", Email: "ben@example.com", PasswordHash: "old_hash"}

	fx.tokenRepo.EXPECT().Find(ctx, "tok").Return(int64(3), nil)
	fx.userRepo.EXPECT().FindByID(ctx, int64(3)).Return(user, nil)
	fx.hasher.EXPECT().Hash("newsecret").Return("new_hash", nil)
	fx.userRepo.EXPECT().UpdatePassword(ctx, int64(3), "new_hash").Return(nil)
	// The token must be unusable after a successful change.
	fx.tokenRepo.EXPECT().Delete(ctx, "tok").Return(nil)
	fx.sessionRepo.EXPECT().Delete(ctx, sess.ID).Return(nil)
	fx.sessionRepo.EXPECT().Save(ctx, sess, testSessionTTL).Return(nil)

	result, err := fx.service.ChangePassword(ctx, sess, &usecase.ChangePasswordInput{
		Token:       "tok",
		NewPassword: "newsecret",
	})

	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "new_hash", result.User.PasswordHash)
	assert.Equal(t, int64(3), sess.UserID)
}

func TestAuthService_ChangePassword_TokenDeleteFailureTolerated(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	sess := newTestSession(t)
	user := &entity.User{ID: 3, Username: "ben", PasswordHash: "old_hash"}

	fx.tokenRepo.EXPECT().Find(ctx, "tok").Return(int64(3), nil)
	fx.userRepo.EXPECT().FindByID(ctx, int64(3)).Return(user, nil)
	fx.hasher.EXPECT().Hash("newsecret").Return("new_hash", nil)
	fx.userRepo.EXPECT().UpdatePassword(ctx, int64(3), "new_hash").Return(nil)
	fx.tokenRepo.EXPECT().Delete(ctx, "tok").Return(errors.New("redis down"))
	fx.sessionRepo.EXPECT().Delete(ctx, sess.ID).Return(nil)
	fx.sessionRepo.EXPECT().Save(ctx, sess, testSessionTTL).Return(nil)

	result, err := fx.service.ChangePassword(ctx, sess, &usecase.ChangePasswordInput{
		Token:       "tok",
		NewPassword: "newsecret",
	})

	// The password change already took effect; a failed token delete must
	// not fail the operation.
	require.NoError(t, err)
	require.NotNil(t, result.User)
}

// memoryResetTokenStore is a map-backed ResetTokenRepository for exercising
// the full redeem-then-reuse sequence through real store state.
type memoryResetTokenStore struct {
	tokens map[string]int64
}

func newMemoryResetTokenStore() *memoryResetTokenStore {
	return &memoryResetTokenStore{tokens: make(map[string]int64)}
}

func (s *memoryResetTokenStore) Save(_ context.Context, token string, userID int64, _ time.Duration) error {
	s.tokens[token] = userID

	return nil
}

func (s *memoryResetTokenStore) Find(_ context.Context, token string) (int64, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return 0, repository.ErrResetTokenNotFound
	}

	return userID, nil
}

func (s *memoryResetTokenStore) Delete(_ context.Context, token string) error {
	delete(s.tokens, token)

	return nil
}

func TestAuthService_ChangePassword_TokenIsSingleUse(t *testing.T) {
	userRepo := mockRepo.NewMockUserRepository(t)
	sessionRepo := mockRepo.NewMockSessionRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenStore := newMemoryResetTokenStore()

	service := NewAuthService(AuthServiceParams{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		TokenRepo:   tokenStore,
		Hasher:      hasher,
		Mailer:      mockSvc.NewMockMailer(t),
		Config: &config.Config{
			Session:    &config.SessionConfig{TTL: testSessionTTL},
			ResetToken: &config.ResetTokenConfig{TTL: testResetTokenTTL, LinkBaseURL: testLinkBase},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	ctx := context.Background()
	user := &entity.User{ID: 3, Username: "ben", PasswordHash: "old_hash"}
	require.NoError(t, tokenStore.Save(ctx, "tok", 3, testResetTokenTTL))

	// The password may only change once per token.
	userRepo.EXPECT().FindByID(ctx, int64(3)).Return(user, nil).Once()
	userRepo.EXPECT().UpdatePassword(ctx, int64(3), "new_hash").Return(nil).Once()
	hasher.EXPECT().Hash("newsecret").Return("new_hash", nil).Once()
	sessionRepo.EXPECT().Delete(ctx, mock.AnythingOfType("string")).Return(nil).Once()
	sessionRepo.EXPECT().Save(ctx, mock.AnythingOfType("*entity.Session"), testSessionTTL).Return(nil).Once()

	input := &usecase.ChangePasswordInput{Token: "tok", NewPassword: "newsecret"}

	first, err := service.ChangePassword(ctx, newTestSession(t), input)
	require.NoError(t, err)
	require.NotNil(t, first.User)

	second, err := service.ChangePassword(ctx, newTestSession(t), input)
	require.NoError(t, err)
	assert.Nil(t, second.User)
	require.Len(t, second.Errors, 1)
	assert.Equal(t, "token", second.Errors[0].Field)
	assert.Equal(t, "token expired", second.Errors[0].Message)
}
