package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/session"
	"github.com/spec-kit/storefront-gateway/internal/token"
)

const cookieName = "storefront_session"

func payloadToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return "header." + base64.RawURLEncoding.EncodeToString(raw) + ".signature"
}

func newGatedApp(t *testing.T) (*fiber.App, *session.Store) {
	t.Helper()
	store := session.NewStore(session.NewMemoryHub().Client(), zap.NewNop())
	middleware := NewSessionMiddleware(store, cookieName, zap.NewNop())

	app := fiber.New()
	app.Use(middleware.Handle)
	app.Get("/admin/estoque", RequireRole("Administrador"), func(c *fiber.Ctx) error {
		return c.SendString("console")
	})
	return app, store
}

func TestGateRedirectsAnonymousToLoginWithFrom(t *testing.T) {
	app, _ := newGatedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/estoque", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?from=%2Fadmin%2Festoque", resp.Header.Get("Location"))
}

func TestGateMintsSessionCookie(t *testing.T) {
	app, _ := newGatedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/estoque", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var minted bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == cookieName && cookie.Value != "" {
			minted = true
		}
	}
	assert.True(t, minted)
}

func TestGateRedirectsWrongRoleHome(t *testing.T) {
	app, store := newGatedApp(t)
	tok := payloadToken(t, map[string]any{"role": "Normal"})
	_, err := store.Login(context.Background(), "sid-1", tok)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/estoque", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "sid-1"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}

func TestGateAllowsMatchingRole(t *testing.T) {
	app, store := newGatedApp(t)
	tok := payloadToken(t, map[string]any{token.RoleClaim: "Administrador"})
	_, err := store.Login(context.Background(), "sid-1", tok)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/estoque", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "sid-1"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "console", string(body))
}

func TestGateHydratesPersistedSessionOnFirstRequest(t *testing.T) {
	// A credential persisted by a previous process (or another replica) is
	// adopted on the session's first request here, not discarded.
	hub := session.NewMemoryHub()
	other := hub.Client()

	store := session.NewStore(hub.Client(), zap.NewNop())
	middleware := NewSessionMiddleware(store, cookieName, zap.NewNop())

	app := fiber.New()
	app.Use(middleware.Handle)
	app.Get("/admin/estoque", RequireRole("Administrador"), func(c *fiber.Ctx) error {
		return c.SendString("console")
	})

	tok := payloadToken(t, map[string]any{token.RoleClaim: "Administrador"})
	require.NoError(t, other.Set(context.Background(), "session:sid-9:token", tok))

	req := httptest.NewRequest(http.MethodGet, "/admin/estoque", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "sid-9"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
