package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-gateway/internal/api/http/handlers"
	"github.com/spec-kit/storefront-gateway/internal/auth"
	"github.com/spec-kit/storefront-gateway/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Storefront *handlers.StorefrontHandler
	Cart       *handlers.CartHandler
	Orders     *handlers.OrdersHandler
	StockAdmin *handlers.StockAdminHandler
	Session    *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. The session middleware runs on every
// route; only the stock console sits behind the role gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Session.Handle)

	app.Get("/", cfg.Storefront.Home)
	app.Get("/login", cfg.Auth.LoginEntry)
	app.Get("/products", cfg.Storefront.Products)
	app.Get("/products/:id", cfg.Storefront.Product)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)

	cart := app.Group("/cart")
	cart.Get("/", cfg.Cart.Get)
	cart.Post("/", cfg.Cart.Create)
	cart.Patch("/items", cfg.Cart.EditItems)
	cart.Patch("/cancel", cfg.Cart.Cancel)
	cart.Post("/checkout", cfg.Cart.Checkout)

	app.Get("/orders", cfg.Orders.List)
	app.Get("/orders/:id", cfg.Orders.Get)
	app.Post("/payments", cfg.Orders.CreatePayment)
	app.Patch("/payments/:id", cfg.Orders.UpdatePayment)
	app.Delete("/payments/:id", cfg.Orders.CancelPayment)

	admin := app.Group("/admin/estoque", auth.RequireRole(string(domain.RoleAdministrator)))
	admin.Get("/stock-items", cfg.StockAdmin.ListItems)
	admin.Post("/stock-items", cfg.StockAdmin.CreateItem)
	admin.Post("/stock-items/baixa", cfg.StockAdmin.Writedown)
	admin.Get("/stock-items/:warehouseID/:productID", cfg.StockAdmin.GetItem)
	admin.Put("/stock-items/:warehouseID/:productID", cfg.StockAdmin.UpdateItem)
	admin.Delete("/stock-items/:warehouseID/:productID", cfg.StockAdmin.DeleteItem)
	admin.Get("/products", cfg.StockAdmin.ListProducts)
	admin.Post("/products", cfg.StockAdmin.CreateProduct)
	admin.Put("/products/:id", cfg.StockAdmin.UpdateProduct)
	admin.Delete("/products/:id", cfg.StockAdmin.DeleteProduct)
}
