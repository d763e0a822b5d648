package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const roleClaim = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"

func tokenWithRole(t *testing.T, role string) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{roleClaim: role})
	require.NoError(t, err)
	return "header." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func newTestStore(t *testing.T) (*Store, Storage) {
	t.Helper()
	storage := NewMemoryHub().Client()
	return NewStore(storage, zap.NewNop()), storage
}

func TestHydrateEmptyStorage(t *testing.T) {
	store, _ := newTestStore(t)

	sess, err := store.Hydrate(context.Background(), "sid-1")
	require.NoError(t, err)

	assert.Empty(t, sess.Credential)
	assert.Empty(t, sess.Role)
	assert.True(t, sess.Initialized)
}

func TestHydrateAdoptsPersistedCredential(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	token := tokenWithRole(t, "Administrador")
	require.NoError(t, storage.Set(ctx, tokenKey("sid-1"), token))

	sess, err := store.Hydrate(ctx, "sid-1")
	require.NoError(t, err)

	assert.Equal(t, token, sess.Credential)
	assert.Equal(t, "Administrador", sess.Role)
	assert.True(t, sess.Initialized)

	// Derived role is persisted alongside the credential.
	role, present, err := storage.Get(ctx, roleKey("sid-1"))
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, "Administrador", role)
}

func TestHydrateRemovesStaleRoleEntry(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, storage.Set(ctx, tokenKey("sid-1"), "not-a-decodable-token"))
	require.NoError(t, storage.Set(ctx, roleKey("sid-1"), "Administrador"))

	sess, err := store.Hydrate(ctx, "sid-1")
	require.NoError(t, err)

	assert.Equal(t, "not-a-decodable-token", sess.Credential)
	assert.Empty(t, sess.Role)

	_, present, err := storage.Get(ctx, roleKey("sid-1"))
	require.NoError(t, err)
	assert.False(t, present)
}

func TestLoginPersistsAndReturnsRole(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	token := tokenWithRole(t, "Administrador")

	role, err := store.Login(ctx, "sid-1", token)
	require.NoError(t, err)
	assert.Equal(t, "Administrador", role)

	sess := store.Snapshot("sid-1")
	assert.Equal(t, token, sess.Credential)
	assert.Equal(t, "Administrador", sess.Role)
	assert.True(t, sess.Initialized)

	stored, present, err := storage.Get(ctx, tokenKey("sid-1"))
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, token, stored)
}

func TestLogoutClearsEverythingButStaysInitialized(t *testing.T) {
	store, storage := newTestStore(t)
	ctx := context.Background()
	_, err := store.Login(ctx, "sid-1", tokenWithRole(t, "Normal"))
	require.NoError(t, err)

	require.NoError(t, store.Logout(ctx, "sid-1"))

	sess := store.Snapshot("sid-1")
	assert.Empty(t, sess.Credential)
	assert.Empty(t, sess.Role)
	assert.True(t, sess.Initialized)

	_, present, err := storage.Get(ctx, tokenKey("sid-1"))
	require.NoError(t, err)
	assert.False(t, present)
	_, present, err = storage.Get(ctx, roleKey("sid-1"))
	require.NoError(t, err)
	assert.False(t, present)
}

func TestSnapshotUnknownSessionIsUninitialized(t *testing.T) {
	store, _ := newTestStore(t)
	sess := store.Snapshot("never-seen")
	assert.False(t, sess.Initialized)
}

// stallingStorage blocks the first role-entry write until released, holding
// one mutation open so another can try to slip in.
type stallingStorage struct {
	Storage
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *stallingStorage) Set(ctx context.Context, key, value string) error {
	if strings.HasSuffix(key, ":"+roleEntry) {
		s.once.Do(func() {
			close(s.entered)
			<-s.release
		})
	}
	return s.Storage.Set(ctx, key, value)
}

func TestMutationsDoNotInterleavePartially(t *testing.T) {
	hub := NewMemoryHub()
	storage := &stallingStorage{
		Storage: hub.Client(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	store := NewStore(storage, zap.NewNop())
	ctx := context.Background()

	loginDone := make(chan error, 1)
	go func() {
		_, err := store.Login(ctx, "sid-1", tokenWithRole(t, "Administrador"))
		loginDone <- err
	}()
	<-storage.entered

	// Login has written the token entry but not yet the role entry. A full
	// logout issued now must wait for the whole login mutation to finish.
	logoutDone := make(chan error, 1)
	go func() { logoutDone <- store.Logout(ctx, "sid-1") }()

	time.Sleep(20 * time.Millisecond)
	close(storage.release)
	require.NoError(t, <-loginDone)
	require.NoError(t, <-logoutDone)

	// Memory and storage agree: fully logged out, no resurrected role entry.
	reader := hub.Client()
	sess := store.Snapshot("sid-1")
	_, tokenPresent, err := reader.Get(ctx, tokenKey("sid-1"))
	require.NoError(t, err)
	_, rolePresent, err := reader.Get(ctx, roleKey("sid-1"))
	require.NoError(t, err)

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Role)
	assert.False(t, tokenPresent)
	assert.False(t, rolePresent)
}

func TestExternalChangeRehydratesSession(t *testing.T) {
	hub := NewMemoryHub()
	local := hub.Client()
	other := hub.Client()

	store := NewStore(local, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Start(ctx))

	_, err := store.Hydrate(ctx, "sid-1")
	require.NoError(t, err)

	// Another execution context logs in with an admin token.
	token := tokenWithRole(t, "Administrador")
	require.NoError(t, other.Set(ctx, tokenKey("sid-1"), token))

	require.Eventually(t, func() bool {
		sess := store.Snapshot("sid-1")
		return sess.Credential == token && sess.Role == "Administrador"
	}, time.Second, 5*time.Millisecond)
}

func TestExternalRemovalLogsSessionOut(t *testing.T) {
	hub := NewMemoryHub()
	local := hub.Client()
	other := hub.Client()

	store := NewStore(local, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Start(ctx))

	_, err := store.Login(ctx, "sid-1", tokenWithRole(t, "Normal"))
	require.NoError(t, err)

	require.NoError(t, other.Delete(ctx, tokenKey("sid-1")))

	require.Eventually(t, func() bool {
		sess := store.Snapshot("sid-1")
		return sess.Credential == "" && sess.Role == "" && sess.Initialized
	}, time.Second, 5*time.Millisecond)
}

func TestExternalChangeForUnknownSessionIgnored(t *testing.T) {
	hub := NewMemoryHub()
	local := hub.Client()
	other := hub.Client()

	store := NewStore(local, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, store.Start(ctx))

	require.NoError(t, other.Set(ctx, tokenKey("sid-unknown"), tokenWithRole(t, "Normal")))

	// The store never held this session, so it stays uninitialized until its
	// own hydrate reads storage fresh.
	time.Sleep(20 * time.Millisecond)
	assert.False(t, store.Snapshot("sid-unknown").Initialized)

	sess, err := store.Hydrate(ctx, "sid-unknown")
	require.NoError(t, err)
	assert.Equal(t, "Normal", sess.Role)
}

func TestWatchTearsDownOnCancel(t *testing.T) {
	hub := NewMemoryHub()
	watcher := hub.Client()
	other := hub.Client()

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := watcher.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, other.Set(context.Background(), tokenKey("sid-1"), "v1"))
	select {
	case change := <-changes:
		assert.Equal(t, tokenKey("sid-1"), change.Key)
	case <-time.After(time.Second):
		t.Fatal("expected a change before cancellation")
	}

	cancel()
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.watchers) == 0
	}, time.Second, 5*time.Millisecond)

	// A write after teardown no longer reaches the canceled watcher.
	require.NoError(t, other.Set(context.Background(), tokenKey("sid-1"), "v2"))
	select {
	case change := <-changes:
		t.Fatalf("unexpected change after cancel: %+v", change)
	default:
	}
}
