package auth

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/session"
)

const (
	sessionIDKey = "session_id"
	sessionKey   = "session_snapshot"

	// LoginPath is where unauthenticated requests for gated views are sent.
	LoginPath = "/login"
	// HomePath is the default landing location for role denials.
	HomePath = "/"
)

// SessionMiddleware loads (or mints) the session cookie and exposes the
// hydrated session snapshot to downstream handlers.
type SessionMiddleware struct {
	store      *session.Store
	cookieName string
	logger     *zap.Logger
}

// NewSessionMiddleware constructs middleware over the session store.
func NewSessionMiddleware(store *session.Store, cookieName string, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{store: store, cookieName: cookieName, logger: logger}
}

// Handle runs on every route. First touch of a session hydrates it from
// persisted storage before any gate decision can be trusted.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	sid := c.Cookies(m.cookieName)
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     m.cookieName,
			Value:    sid,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	sess := m.store.Snapshot(sid)
	if !sess.Initialized {
		hydrated, err := m.store.Hydrate(c.UserContext(), sid)
		if err != nil {
			m.logger.Warn("session hydration failed", zap.String("session_id", sid), zap.Error(err))
		} else {
			sess = hydrated
		}
	}

	c.Locals(sessionIDKey, sid)
	c.Locals(sessionKey, sess)
	return c.Next()
}

// RequireRole gates a route group on the given role, mapping the pure gate
// decision onto HTTP behavior.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := SessionFromContext(c)
		decision := EvaluateGate(sess, requiredRole, LoginPath, HomePath)

		switch decision.State {
		case GatePending:
			// Waiting indicator: no redirect until hydration settles.
			c.Set(fiber.HeaderRetryAfter, "1")
			return fiber.NewError(http.StatusServiceUnavailable, "session initializing")
		case GateDeniedNoSession:
			target := decision.RedirectTo + "?from=" + url.QueryEscape(c.OriginalURL())
			return c.Redirect(target, http.StatusFound)
		case GateDeniedWrongRole:
			return c.Redirect(decision.RedirectTo, http.StatusFound)
		default:
			return c.Next()
		}
	}
}

// SessionFromContext retrieves the snapshot placed by SessionMiddleware.
// The second return is false when the middleware never ran, which is a wiring
// bug in the route table rather than a runtime condition.
func SessionFromContext(c *fiber.Ctx) (session.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return session.Session{}, false
	}
	sess, ok := val.(session.Session)
	return sess, ok
}

// SessionIDFromContext returns the cookie-scoped session ID.
func SessionIDFromContext(c *fiber.Ctx) string {
	if sid, ok := c.Locals(sessionIDKey).(string); ok {
		return sid
	}
	return ""
}

// CredentialFromContext returns the bearer credential attached to the current
// session, or "" for anonymous requests.
func CredentialFromContext(c *fiber.Ctx) string {
	sess, ok := SessionFromContext(c)
	if !ok {
		return ""
	}
	return sess.Credential
}
