package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/api/dto"
	"github.com/spec-kit/storefront-gateway/internal/auth"
	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/service"
)

// StockAdminHandler serves the administrator stock console. The whole group
// sits behind the Administrador gate; handlers assume an authorized caller.
type StockAdminHandler struct {
	stock *service.StockAdminService
}

// NewStockAdminHandler constructs handler.
func NewStockAdminHandler(stock *service.StockAdminService) *StockAdminHandler {
	return &StockAdminHandler{stock: stock}
}

// ListItems handles GET /admin/estoque/stock-items.
func (h *StockAdminHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.stock.ListItems(c.UserContext(), auth.CredentialFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetItem handles GET /admin/estoque/stock-items/:warehouseID/:productID.
func (h *StockAdminHandler) GetItem(c *fiber.Ctx) error {
	item, err := h.stock.GetItem(c.UserContext(), auth.CredentialFromContext(c),
		c.Params("warehouseID"), c.Params("productID"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": item})
}

// CreateItem handles POST /admin/estoque/stock-items.
func (h *StockAdminHandler) CreateItem(c *fiber.Ctx) error {
	var req dto.StockItemCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	err := h.stock.CreateItem(c.UserContext(), auth.CredentialFromContext(c), backend.StockItemInput{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
		Reserved:    req.Reserved,
	})
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// UpdateItem handles PUT /admin/estoque/stock-items/:warehouseID/:productID.
func (h *StockAdminHandler) UpdateItem(c *fiber.Ctx) error {
	var req dto.StockItemUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	err := h.stock.UpdateItem(c.UserContext(), auth.CredentialFromContext(c),
		c.Params("warehouseID"), c.Params("productID"),
		backend.StockItemInput{Quantity: req.Quantity, Reserved: req.Reserved})
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteItem handles DELETE /admin/estoque/stock-items/:warehouseID/:productID.
func (h *StockAdminHandler) DeleteItem(c *fiber.Ctx) error {
	err := h.stock.DeleteItem(c.UserContext(), auth.CredentialFromContext(c),
		c.Params("warehouseID"), c.Params("productID"))
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Writedown handles POST /admin/estoque/stock-items/baixa.
func (h *StockAdminHandler) Writedown(c *fiber.Ctx) error {
	var req dto.WritedownRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	err := h.stock.Writedown(c.UserContext(), auth.CredentialFromContext(c), backend.WritedownInput{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListProducts handles GET /admin/estoque/products.
func (h *StockAdminHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.stock.ListProducts(c.UserContext(), auth.CredentialFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}

// CreateProduct handles POST /admin/estoque/products.
func (h *StockAdminHandler) CreateProduct(c *fiber.Ctx) error {
	var req dto.StockProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	err := h.stock.CreateProduct(c.UserContext(), auth.CredentialFromContext(c), productInput(req))
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusCreated)
}

// UpdateProduct handles PUT /admin/estoque/products/:id.
func (h *StockAdminHandler) UpdateProduct(c *fiber.Ctx) error {
	var req dto.StockProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	err := h.stock.UpdateProduct(c.UserContext(), auth.CredentialFromContext(c), c.Params("id"), productInput(req))
	if err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// DeleteProduct handles DELETE /admin/estoque/products/:id.
func (h *StockAdminHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.stock.DeleteProduct(c.UserContext(), auth.CredentialFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func productInput(req dto.StockProductRequest) backend.StockProductInput {
	return backend.StockProductInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		IsActive:    req.IsActive,
		ImagesJSON:  req.ImagesJSON,
	}
}
