package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserLoggedIn      EventType = "user_logged_in"
	EventUserLoggedOut     EventType = "user_logged_out"
	EventSessionSynced     EventType = "session_synced"
	EventUserRegistered    EventType = "user_registered"
	EventCheckoutCompleted EventType = "checkout_completed"
	EventPaymentCreated    EventType = "payment_created"
	EventStockAdjusted     EventType = "stock_adjusted"
)

// Event represents a gateway event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LoginPayload accompanies EventUserLoggedIn.
type LoginPayload struct {
	Role string `json:"role,omitempty"`
}

// RegisteredPayload accompanies EventUserRegistered.
type RegisteredPayload struct {
	Email string `json:"email"`
}

// CheckoutPayload accompanies EventCheckoutCompleted.
type CheckoutPayload struct {
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// PaymentPayload accompanies EventPaymentCreated.
type PaymentPayload struct {
	OrderID string `json:"order_id,omitempty"`
}

// StockAdjustedPayload accompanies EventStockAdjusted.
type StockAdjustedPayload struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Operation   string `json:"operation"`
}
