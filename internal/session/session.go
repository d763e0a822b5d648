// Package session owns the gateway's view of "who is logged in, with what
// role". Sessions are keyed by the browser cookie and write through to a
// shared key-value storage; foreign writes (another replica, another device
// of the same account) arrive as change notifications and are adopted through
// the same routine local mutations use.
package session

import (
	"context"
	"strings"
)

// Session is the read-only snapshot consumers get. Only the Store's
// hydrate/login/logout/adopt paths may produce new values.
type Session struct {
	Credential  string
	Role        string
	Initialized bool
}

// Authenticated reports whether a credential is present.
func (s Session) Authenticated() bool {
	return s.Credential != ""
}

// Change describes a storage entry mutation observed via Watch.
type Change struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Present bool   `json:"present"`
	Origin  string `json:"origin"`
}

// Storage is the persisted key-value store behind the session store. Watch
// delivers changes made by other storage handles; a handle never observes its
// own writes, mirroring how a browser tab never receives its own storage
// event. The Watch stream closes when its context is canceled.
type Storage interface {
	Origin() string
	Get(ctx context.Context, key string) (value string, present bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Watch(ctx context.Context) (<-chan Change, error)
	Ping(ctx context.Context) error
	Close() error
}

const (
	tokenEntry = "token"
	roleEntry  = "userRole"
)

func tokenKey(sid string) string { return "session:" + sid + ":" + tokenEntry }
func roleKey(sid string) string  { return "session:" + sid + ":" + roleEntry }

// sessionIDFromTokenKey extracts the session ID from a token entry key, or ""
// when the key names some other entry.
func sessionIDFromTokenKey(key string) string {
	rest, ok := strings.CutPrefix(key, "session:")
	if !ok {
		return ""
	}
	sid, ok := strings.CutSuffix(rest, ":"+tokenEntry)
	if !ok {
		return ""
	}
	return sid
}
