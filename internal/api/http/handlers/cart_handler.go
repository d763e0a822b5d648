package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/api/dto"
	"github.com/spec-kit/storefront-gateway/internal/auth"
	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/service"
)

// CartHandler exposes the shopper's cart and checkout endpoints.
type CartHandler struct {
	checkout *service.CheckoutService
}

// NewCartHandler constructs handler.
func NewCartHandler(checkout *service.CheckoutService) *CartHandler {
	return &CartHandler{checkout: checkout}
}

// Get handles GET /cart.
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.checkout.Cart(c.UserContext(), auth.CredentialFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cart})
}

// Create handles POST /cart.
func (h *CartHandler) Create(c *fiber.Ctx) error {
	var cart domain.Cart
	if err := c.BodyParser(&cart); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.checkout.CreateCart(c.UserContext(), auth.CredentialFromContext(c), cart); err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// EditItems handles PATCH /cart/items.
func (h *CartHandler) EditItems(c *fiber.Ctx) error {
	var req dto.EditCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.checkout.EditItem(c.UserContext(), auth.CredentialFromContext(c), req.ProductID, req.Quantity); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Cancel handles PATCH /cart/cancel.
func (h *CartHandler) Cancel(c *fiber.Ctx) error {
	if err := h.checkout.CancelCart(c.UserContext(), auth.CredentialFromContext(c)); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Checkout handles POST /cart/checkout.
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	sid := auth.SessionIDFromContext(c)
	cart, err := h.checkout.Checkout(c.UserContext(), sid, auth.CredentialFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"items": cart.Items,
		"total": cart.Total(),
	}})
}
