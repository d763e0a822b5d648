package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/api/dto"
	"github.com/spec-kit/storefront-gateway/internal/auth"
	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/service"
)

// OrdersHandler exposes order history and payment endpoints.
type OrdersHandler struct {
	checkout *service.CheckoutService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(checkout *service.CheckoutService) *OrdersHandler {
	return &OrdersHandler{checkout: checkout}
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.checkout.Orders(c.UserContext(), auth.CredentialFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orders})
}

// Get handles GET /orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.checkout.Order(c.UserContext(), auth.CredentialFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": order})
}

// CreatePayment handles POST /payments.
func (h *OrdersHandler) CreatePayment(c *fiber.Ctx) error {
	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	sid := auth.SessionIDFromContext(c)
	order, err := h.checkout.CreatePayment(c.UserContext(), sid, auth.CredentialFromContext(c), backend.PaymentInput{
		OrderID: req.OrderID,
		Method:  req.Method,
		Amount:  req.Amount,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": order})
}

// UpdatePayment handles PATCH /payments/:id.
func (h *OrdersHandler) UpdatePayment(c *fiber.Ctx) error {
	var req dto.PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	err := h.checkout.UpdatePayment(c.UserContext(), auth.CredentialFromContext(c), c.Params("id"), backend.PaymentInput{
		Method: req.Method,
		Amount: req.Amount,
	})
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// CancelPayment handles DELETE /payments/:id.
func (h *OrdersHandler) CancelPayment(c *fiber.Ctx) error {
	if err := h.checkout.CancelPayment(c.UserContext(), auth.CredentialFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
