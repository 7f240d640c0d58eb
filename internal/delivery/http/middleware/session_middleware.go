package middleware

import (
	"log/slog"
	"net/http"

	"pinboard/config"
	deliverycontext "pinboard/internal/delivery/context"
	"pinboard/internal/domain/entity"
	domainerrors "pinboard/internal/domain/errors"
	"pinboard/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// contextKeySession is the echo.Context key the resolved session lives under.
const contextKeySession = "session"

// SessionMiddleware resolves the session cookie into an entity.Session for
// every request. Requests without a cookie, or whose server-side entry has
// expired, proceed with a fresh anonymous session; binding and cookie
// issuance happen only when an auth operation logs the user in.
type SessionMiddleware struct {
	sessionRepo repository.SessionRepository
	cookies     *CookieManager
	logger      *slog.Logger
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(sessionRepo repository.SessionRepository, cookies *CookieManager, logger *slog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessionRepo: sessionRepo,
		cookies:     cookies,
		logger:      logger,
	}
}

// Load resolves the request's session and stores it on the context.
func (m *SessionMiddleware) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := m.resolve(c)
		if err != nil {
			return err
		}

		c.Set(contextKeySession, sess)

		return next(c)
	}
}

func (m *SessionMiddleware) resolve(c echo.Context) (*entity.Session, error) {
	cookie, err := c.Cookie(m.cookies.Name())
	if err != nil || cookie.Value == "" {
		return entity.NewSession()
	}

	sess, err := m.sessionRepo.Find(c.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			// Stale cookie. The client-supplied value is discarded: trusting
			// it would let an attacker plant an id and take over the session
			// once the victim logs in.
			return entity.NewSession()
		}

		return nil, errors.Wrap(err, "failed to resolve session")
	}

	return sess, nil
}

// RequireUser rejects requests whose session is not bound to a user. It must
// run after Load.
func (m *SessionMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := SessionFromContext(c)
		if sess == nil || sess.Anonymous() {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected unauthenticated request", slog.String("path", c.Request().URL.Path))

			return domainerrors.ErrUnauthorized
		}

		return next(c)
	}
}

// SessionFromContext returns the session resolved by Load, or nil when the
// middleware did not run.
func SessionFromContext(c echo.Context) *entity.Session {
	sess, _ := c.Get(contextKeySession).(*entity.Session)

	return sess
}

// CookieManager issues and clears the session cookie according to
// configuration.
type CookieManager struct {
	name   string
	maxAge int
	secure bool
}

// NewCookieManager builds the cookie manager from configuration.
func NewCookieManager(cfg *config.Config) *CookieManager {
	return &CookieManager{
		name:   cfg.Session.CookieName,
		maxAge: int(cfg.Session.TTL.Seconds()),
		secure: cfg.Session.Secure,
	}
}

// Name returns the session cookie name.
func (cm *CookieManager) Name() string {
	return cm.name
}

// Issue sets the session cookie on the response. The cookie carries only
// the opaque session id; everything else lives server-side.
func (cm *CookieManager) Issue(c echo.Context, sessionID string) {
	c.SetCookie(&http.Cookie{
		Name:     cm.name,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   cm.maxAge,
		HttpOnly: true,
		Secure:   cm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie on the response.
func (cm *CookieManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cm.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
