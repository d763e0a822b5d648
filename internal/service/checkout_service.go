package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/events"
	"github.com/spec-kit/storefront-gateway/pkg/util"
)

// CheckoutService drives the cart and payment flows.
type CheckoutService struct {
	cart     *backend.CartClient
	payments *backend.PaymentClient
	events   events.Dispatcher
}

// NewCheckoutService builds the service.
func NewCheckoutService(cart *backend.CartClient, payments *backend.PaymentClient, dispatcher events.Dispatcher) *CheckoutService {
	return &CheckoutService{cart: cart, payments: payments, events: dispatcher}
}

// Cart returns the current cart. An upstream miss maps to an empty cart, the
// way the cart view treats any fetch failure.
func (s *CheckoutService) Cart(ctx context.Context, token string) (domain.Cart, error) {
	cart, err := s.cart.Get(ctx, token)
	if err != nil {
		return domain.Cart{Items: []domain.CartItem{}}, nil
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return *cart, nil
}

// CreateCart opens a cart for the session.
func (s *CheckoutService) CreateCart(ctx context.Context, token string, cart domain.Cart) error {
	return s.cart.Create(ctx, token, cart)
}

// EditItem adds or updates one cart line.
func (s *CheckoutService) EditItem(ctx context.Context, token, productID string, quantity int) error {
	if productID == "" {
		return util.NewValidationError("productId is required", nil)
	}
	if quantity < 0 {
		return util.NewValidationError("quantity must not be negative", nil)
	}
	return s.cart.EditItems(ctx, token, backend.CartItemEdit{ProductID: productID, Quantity: quantity})
}

// CancelCart abandons the current cart.
func (s *CheckoutService) CancelCart(ctx context.Context, token string) error {
	return s.cart.Cancel(ctx, token)
}

// Checkout forwards the current cart for conversion into an order.
func (s *CheckoutService) Checkout(ctx context.Context, sid, token string) (domain.Cart, error) {
	cart, err := s.cart.Get(ctx, token)
	if err != nil {
		return domain.Cart{}, err
	}
	if len(cart.Items) == 0 {
		return domain.Cart{}, util.NewValidationError("cart is empty", nil)
	}

	if err := s.cart.Checkout(ctx, token, backend.CheckoutInput{Items: cart.Items}); err != nil {
		return domain.Cart{}, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventCheckoutCompleted,
		SessionID: sid,
		Payload:   events.CheckoutPayload{ItemCount: len(cart.Items), Total: cart.Total()},
	})
	return *cart, nil
}

// Orders lists the caller's orders.
func (s *CheckoutService) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	orders, err := s.payments.List(ctx, token)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// Order returns one order with its items.
func (s *CheckoutService) Order(ctx context.Context, token, id string) (*domain.Order, error) {
	return s.payments.Get(ctx, token, id)
}

// CreatePayment registers a payment for an order.
func (s *CheckoutService) CreatePayment(ctx context.Context, sid, token string, input backend.PaymentInput) (*domain.Order, error) {
	order, err := s.payments.Create(ctx, token, input)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:      events.EventPaymentCreated,
		SessionID: sid,
		Payload:   events.PaymentPayload{OrderID: order.ID},
	})
	return order, nil
}

// UpdatePayment patches a payment.
func (s *CheckoutService) UpdatePayment(ctx context.Context, token, paymentID string, input backend.PaymentInput) error {
	return s.payments.Update(ctx, token, paymentID, input)
}

// CancelPayment voids a payment.
func (s *CheckoutService) CancelPayment(ctx context.Context, token, paymentID string) error {
	return s.payments.Cancel(ctx, token, paymentID)
}

func (s *CheckoutService) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.events.Publish(ctx, event)
}
