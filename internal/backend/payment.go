package backend

import (
	"context"
	"net/http"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/observability"
)

// PaymentClient talks to the orders/payments service.
type PaymentClient struct {
	client
}

// NewPaymentClient builds the client for the given base URL.
func NewPaymentClient(baseURL string, metrics *observability.Metrics) *PaymentClient {
	return &PaymentClient{client: newClient("payment", baseURL, metrics)}
}

// PaymentInput creates or updates a payment.
type PaymentInput struct {
	OrderID string  `json:"orderId,omitempty"`
	Method  string  `json:"method,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
}

// Create registers a payment for an order.
func (c *PaymentClient) Create(ctx context.Context, token string, input PaymentInput) (*domain.Order, error) {
	var order domain.Order
	if err := c.doJSON(ctx, http.MethodPost, "/", token, input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Get returns one order/payment by ID.
func (c *PaymentClient) Get(ctx context.Context, token, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := c.doJSON(ctx, http.MethodGet, "/"+orderID, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns the caller's orders. The service exposes listing as the "all"
// order ID.
func (c *PaymentClient) List(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.doJSON(ctx, http.MethodGet, "/all", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Update patches a payment.
func (c *PaymentClient) Update(ctx context.Context, token, paymentID string, input PaymentInput) error {
	return c.doJSON(ctx, http.MethodPatch, "/"+paymentID, token, input, nil)
}

// Cancel voids a payment.
func (c *PaymentClient) Cancel(ctx context.Context, token, paymentID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/"+paymentID, token, nil, nil)
}
