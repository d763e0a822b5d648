package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/token"
)

// Store is the single source of truth for session state in this process.
// Mutations are serialized by the mutex, which is held across both the
// storage write-through and the in-memory update; the persisted storage is
// shared and last-writer-wins, reconciled through the Watch stream.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	storage Storage
	logger  *zap.Logger

	// OnExternalSync, when set, is called after a foreign change has been
	// adopted. Set before Start; not guarded afterwards.
	OnExternalSync func(sid string)
}

// NewStore builds a store over the given storage.
func NewStore(storage Storage, logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		storage:  storage,
		logger:   logger,
	}
}

// Start launches the watch loop that adopts foreign storage changes. It
// returns once the subscription is established; the loop ends when ctx is
// canceled and the storage closes its change stream.
func (s *Store) Start(ctx context.Context) error {
	changes, err := s.storage.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				s.handleChange(change)
			}
		}
	}()
	return nil
}

// Snapshot returns the current session view. An unknown session ID yields the
// zero value with Initialized false, signaling hydration has not run yet.
func (s *Store) Snapshot(sid string) Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[sid]; ok {
		return *sess
	}
	return Session{}
}

// Hydrate populates the session from persisted storage. The Initialized flag
// transitions false to true exactly once per session lifetime, whether or not
// a credential was found; gate decisions are only trustworthy afterwards.
func (s *Store) Hydrate(ctx context.Context, sid string) (Session, error) {
	credential, present, err := s.storage.Get(ctx, tokenKey(sid))
	if err != nil {
		return Session{}, err
	}
	if !present {
		credential = ""
	}
	return s.adopt(ctx, sid, credential)
}

// Login adopts the supplied credential, persists both entries and returns the
// decoded role so the caller can pick the post-login redirect immediately.
func (s *Store) Login(ctx context.Context, sid, credential string) (string, error) {
	sess, err := s.adopt(ctx, sid, credential)
	if err != nil {
		return "", err
	}
	return sess.Role, nil
}

// Logout clears the credential and role, in memory and in storage. The
// session object survives; only its fields are cleared.
func (s *Store) Logout(ctx context.Context, sid string) error {
	_, err := s.adopt(ctx, sid, "")
	return err
}

// adopt is the single mutation routine shared by hydrate, login, logout and
// the watch loop. A decodable credential persists both entries; a credential
// with no derivable role removes the stale role entry; an empty credential
// clears everything. The mutex covers the storage writes too, so no two
// mutations for any session can interleave partially.
func (s *Store) adopt(ctx context.Context, sid, credential string) (Session, error) {
	role := ""
	if credential != "" {
		role = token.Role(credential)
		if role == "" {
			s.logger.Warn("could not decode role from credential", zap.String("session_id", sid))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if credential != "" {
		if err := s.storage.Set(ctx, tokenKey(sid), credential); err != nil {
			return Session{}, err
		}
		if role != "" {
			if err := s.storage.Set(ctx, roleKey(sid), role); err != nil {
				return Session{}, err
			}
		} else if err := s.storage.Delete(ctx, roleKey(sid)); err != nil {
			return Session{}, err
		}
	} else {
		if err := s.storage.Delete(ctx, tokenKey(sid)); err != nil {
			return Session{}, err
		}
		if err := s.storage.Delete(ctx, roleKey(sid)); err != nil {
			return Session{}, err
		}
	}

	sess, ok := s.sessions[sid]
	if !ok {
		sess = &Session{}
		s.sessions[sid] = sess
	}
	sess.Credential = credential
	sess.Role = role
	sess.Initialized = true
	return *sess, nil
}

// handleChange re-adopts a session whose token entry was mutated elsewhere.
// Changes for sessions this process does not hold are ignored; they will be
// read fresh from storage on their next hydrate.
func (s *Store) handleChange(change Change) {
	sid := sessionIDFromTokenKey(change.Key)
	if sid == "" {
		return
	}

	s.mu.RLock()
	_, known := s.sessions[sid]
	s.mu.RUnlock()
	if !known {
		return
	}

	credential := ""
	if change.Present {
		credential = change.Value
	}
	if _, err := s.adopt(context.Background(), sid, credential); err != nil {
		s.logger.Warn("failed to adopt external session change",
			zap.String("session_id", sid), zap.Error(err))
		return
	}
	s.logger.Info("session synchronized from external change", zap.String("session_id", sid))
	if s.OnExternalSync != nil {
		s.OnExternalSync(sid)
	}
}
