package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/auth"
	"github.com/spec-kit/storefront-gateway/internal/service"
)

const featuredLimit = 4

var homeCategories = []string{"Hardware", "Monitores", "Periféricos", "Ofertas"}

// StorefrontHandler serves the public catalog views.
type StorefrontHandler struct {
	storefront *service.StorefrontService
}

// NewStorefrontHandler constructs handler.
func NewStorefrontHandler(storefront *service.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{storefront: storefront}
}

// Home handles GET /.
func (h *StorefrontHandler) Home(c *fiber.Ctx) error {
	token := auth.CredentialFromContext(c)
	featured, err := h.storefront.FeaturedProducts(c.UserContext(), token, featuredLimit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"categories": homeCategories,
		"featured":   featured,
	}})
}

// Products handles GET /products with category/price/sort query filters.
func (h *StorefrontHandler) Products(c *fiber.Ctx) error {
	filter := service.ProductFilter{
		Category: c.Query("category"),
		Sort:     c.Query("sort", service.SortDefault),
	}
	if raw := c.Query("min_price"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = parsed
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = parsed
		}
	}

	token := auth.CredentialFromContext(c)
	products, err := h.storefront.ListProducts(c.UserContext(), token, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}

// Product handles GET /products/:id.
func (h *StorefrontHandler) Product(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return fiber.NewError(http.StatusBadRequest, "product id required")
	}

	token := auth.CredentialFromContext(c)
	details, err := h.storefront.ProductDetails(c.UserContext(), token, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": details})
}
