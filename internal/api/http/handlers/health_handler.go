package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/session"
)

// HealthHandler exposes liveness/readiness probes.
type HealthHandler struct {
	storage session.Storage
}

// NewHealthHandler constructs handler.
func NewHealthHandler(storage session.Storage) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready; the gateway is ready when session storage
// answers.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := h.storage.Ping(c.UserContext()); err != nil {
		return fiber.NewError(http.StatusServiceUnavailable, "session storage unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
