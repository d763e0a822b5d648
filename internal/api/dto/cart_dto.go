package dto

// EditCartItemRequest payload for PATCH /cart/items.
type EditCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PaymentRequest payload for POST /payments and PATCH /payments/:id.
type PaymentRequest struct {
	OrderID string  `json:"orderId"`
	Method  string  `json:"method"`
	Amount  float64 `json:"amount"`
}
