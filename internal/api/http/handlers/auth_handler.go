package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/api/dto"
	"github.com/spec-kit/storefront-gateway/internal/auth"
	"github.com/spec-kit/storefront-gateway/internal/service"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	accounts *service.AccountService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	if err := h.accounts.Register(c.UserContext(), req.Name, req.Email, req.Password); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// Login handles POST /auth/login. On success the session adopts the
// credential and the client is told where to go next; a `from` query carried
// by the gate redirect wins over the role-based default.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	sid := auth.SessionIDFromContext(c)
	result, err := h.accounts.Login(c.UserContext(), sid, req.Email, req.Password)
	if err != nil {
		return err
	}

	redirect := result.RedirectTo
	if from := c.Query("from"); from != "" {
		redirect = from
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:      result.Token,
		Role:       result.Role,
		RedirectTo: redirect,
	}})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := auth.SessionIDFromContext(c)
	if err := h.accounts.Logout(c.UserContext(), sid); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Session handles GET /auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	sess, _ := auth.SessionFromContext(c)
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Authenticated: sess.Authenticated(),
		Role:          sess.Role,
		Initialized:   sess.Initialized,
	}})
}

// LoginEntry handles GET /login, the target of gate redirects for
// unauthenticated requests.
func (h *AuthHandler) LoginEntry(c *fiber.Ctx) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
		"message": "authentication required",
		"login":   "POST /auth/login",
		"from":    c.Query("from"),
	})
}
