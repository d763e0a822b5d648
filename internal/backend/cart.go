package backend

import (
	"context"
	"net/http"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/observability"
)

// CartClient talks to the cart ("carrinho") service. The cart is scoped to
// the bearer credential, so every call requires the session token.
type CartClient struct {
	client
}

// NewCartClient builds the client for the given base URL.
func NewCartClient(baseURL string, metrics *observability.Metrics) *CartClient {
	return &CartClient{client: newClient("cart", baseURL, metrics)}
}

// CartItemEdit adds or changes one line in the cart.
type CartItemEdit struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CheckoutInput forwards the cart contents at checkout time.
type CheckoutInput struct {
	Items []domain.CartItem `json:"items"`
}

// Create opens a cart for the current credential.
func (c *CartClient) Create(ctx context.Context, token string, cart domain.Cart) error {
	return c.doJSON(ctx, http.MethodPost, "/", token, cart, nil)
}

// Get returns the current cart.
func (c *CartClient) Get(ctx context.Context, token string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.doJSON(ctx, http.MethodGet, "/", token, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// EditItems patches cart lines.
func (c *CartClient) EditItems(ctx context.Context, token string, edit CartItemEdit) error {
	return c.doJSON(ctx, http.MethodPatch, "/cart-items", token, edit, nil)
}

// Cancel abandons the current cart.
func (c *CartClient) Cancel(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPatch, "/cancel", token, nil, nil)
}

// Checkout converts the cart into an order.
func (c *CartClient) Checkout(ctx context.Context, token string, input CheckoutInput) error {
	return c.doJSON(ctx, http.MethodPost, "/checkout", token, input, nil)
}
