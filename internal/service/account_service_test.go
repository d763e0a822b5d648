package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/observability"
	"github.com/spec-kit/storefront-gateway/internal/session"
	"github.com/spec-kit/storefront-gateway/internal/token"
)

func tokenWithRole(t *testing.T, role string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{token.RoleClaim: role})
	require.NoError(t, err)
	return "header." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func newAccountService(t *testing.T, identityURL string) (*AccountService, *session.Store) {
	t.Helper()
	store := session.NewStore(session.NewMemoryHub().Client(), zap.NewNop())
	svc := NewAccountService(AccountDependencies{
		Identity: backend.NewIdentityClient(identityURL, observability.NewMetrics()),
		Sessions: store,
	}, zap.NewNop())
	return svc, store
}

func TestLoginAdminRedirectsToStockConsole(t *testing.T) {
	token := tokenWithRole(t, "Administrador")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}))
	defer server.Close()

	svc, store := newAccountService(t, server.URL)
	result, err := svc.Login(context.Background(), "sid-1", "admin@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, token, result.Token)
	assert.Equal(t, "Administrador", result.Role)
	assert.Equal(t, "/admin/estoque", result.RedirectTo)

	sess := store.Snapshot("sid-1")
	assert.Equal(t, token, sess.Credential)
	assert.Equal(t, "Administrador", sess.Role)
}

func TestLoginNormalUserRedirectsToProducts(t *testing.T) {
	token := tokenWithRole(t, "Normal")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}))
	defer server.Close()

	svc, _ := newAccountService(t, server.URL)
	result, err := svc.Login(context.Background(), "sid-1", "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "/products", result.RedirectTo)
}

func TestLoginMissingTokenFailsGenerically(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	svc, store := newAccountService(t, server.URL)
	_, err := svc.Login(context.Background(), "sid-1", "user@example.com", "secret")
	assert.Equal(t, ErrLoginFailed, err)
	assert.Empty(t, store.Snapshot("sid-1").Credential)
}

func TestLoginTransportFailureFailsGenerically(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	svc, _ := newAccountService(t, server.URL)
	_, err := svc.Login(context.Background(), "sid-1", "user@example.com", "secret")

	// Same coarse outcome as a success response without a token.
	assert.Equal(t, ErrLoginFailed, err)
}

func TestLogoutClearsSession(t *testing.T) {
	token := tokenWithRole(t, "Normal")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
	}))
	defer server.Close()

	svc, store := newAccountService(t, server.URL)
	_, err := svc.Login(context.Background(), "sid-1", "user@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), "sid-1"))

	sess := store.Snapshot("sid-1")
	assert.Empty(t, sess.Credential)
	assert.True(t, sess.Initialized)
}

func TestRegisterSendsNormalRole(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc, _ := newAccountService(t, server.URL)
	require.NoError(t, svc.Register(context.Background(), "Maria", "maria@example.com", "secret"))

	assert.Equal(t, "Maria", got["nome"])
	assert.Equal(t, "maria@example.com", got["email"])
	assert.Equal(t, "secret", got["senha"])
	assert.Equal(t, "Normal", got["role"])
}
