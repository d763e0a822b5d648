package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/events"
	"github.com/spec-kit/storefront-gateway/internal/session"
	"github.com/spec-kit/storefront-gateway/pkg/util"
)

const (
	adminLanding   = "/admin/estoque"
	defaultLanding = "/products"
)

// ErrLoginFailed covers both a transport failure reaching the identity
// service and a success response without a token. The user-facing outcome is
// deliberately the same for both.
var ErrLoginFailed = util.NewUnauthorized("login failed")

// LoginResult is what a successful login hands back to the view layer.
type LoginResult struct {
	Token      string
	Role       string
	RedirectTo string
}

// AccountService coordinates registration and login flows against the
// external identity service and the local session store.
type AccountService struct {
	identity *backend.IdentityClient
	sessions *session.Store
	events   events.Dispatcher
	logger   *zap.Logger
}

// AccountDependencies encapsulates collaborator requirements.
type AccountDependencies struct {
	Identity *backend.IdentityClient
	Sessions *session.Store
	Events   events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(deps AccountDependencies, logger *zap.Logger) *AccountService {
	return &AccountService{
		identity: deps.Identity,
		sessions: deps.Sessions,
		events:   deps.Events,
		logger:   logger,
	}
}

// Register creates a storefront account with the Normal role.
func (s *AccountService) Register(ctx context.Context, name, email, password string) error {
	if err := s.identity.Register(ctx, name, email, password); err != nil {
		return err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		Payload: events.RegisteredPayload{Email: email},
	})
	return nil
}

// Login exchanges credentials for a token, adopts it into the session and
// picks the post-login landing: administrators go to the stock console,
// everyone else to the product listing.
func (s *AccountService) Login(ctx context.Context, sid, email, password string) (LoginResult, error) {
	token, err := s.identity.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("identity login failed", zap.Error(err))
		return LoginResult{}, ErrLoginFailed
	}
	if token == "" {
		s.logger.Warn("identity login returned no token")
		return LoginResult{}, ErrLoginFailed
	}

	role, err := s.sessions.Login(ctx, sid, token)
	if err != nil {
		return LoginResult{}, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserLoggedIn,
		SessionID: sid,
		Payload:   events.LoginPayload{Role: role},
	})

	redirect := defaultLanding
	if role == string(domain.RoleAdministrator) {
		redirect = adminLanding
	}
	return LoginResult{Token: token, Role: role, RedirectTo: redirect}, nil
}

// Logout clears the session credential and role.
func (s *AccountService) Logout(ctx context.Context, sid string) error {
	if err := s.sessions.Logout(ctx, sid); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Type: events.EventUserLoggedOut, SessionID: sid})
	return nil
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.events.Publish(ctx, event)
}
