package backend

import (
	"context"
	"net/http"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/observability"
)

// IdentityClient talks to the authentication service ("autenticacao").
type IdentityClient struct {
	client
}

// NewIdentityClient builds the client for the given base URL.
func NewIdentityClient(baseURL string, metrics *observability.Metrics) *IdentityClient {
	return &IdentityClient{client: newClient("identity", baseURL, metrics)}
}

type registerRequest struct {
	Name     string      `json:"nome"`
	Email    string      `json:"email"`
	Password string      `json:"senha"`
	Role     domain.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register creates an account. Self-service registration always requests the
// Normal role; role upgrades go through UpdateRole.
func (c *IdentityClient) Register(ctx context.Context, name, email, password string) error {
	body := registerRequest{Name: name, Email: email, Password: password, Role: domain.RoleNormal}
	return c.doJSON(ctx, http.MethodPost, "/users/register", "", body, nil)
}

// Login exchanges credentials for a bearer token. An empty token with a 2xx
// status is possible and left for the caller to judge.
func (c *IdentityClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/users/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListUsers returns all accounts.
func (c *IdentityClient) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one account.
func (c *IdentityClient) GetUser(ctx context.Context, token, id string) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+id, token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates account fields.
func (c *IdentityClient) UpdateUser(ctx context.Context, token, id string, fields map[string]any) error {
	return c.doJSON(ctx, http.MethodPut, "/users/"+id, token, fields, nil)
}

// UpdateRole changes an account's role.
func (c *IdentityClient) UpdateRole(ctx context.Context, token, id string, role domain.Role) error {
	return c.doJSON(ctx, http.MethodPut, "/users/"+id+"/role", token, role, nil)
}

// DeleteUser removes an account.
func (c *IdentityClient) DeleteUser(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/users/"+id, token, nil, nil)
}
