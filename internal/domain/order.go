package domain

// OrderItem is a purchased line inside an order.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is the payments service's order/payment record.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customerName"`
	Status       string      `json:"status"`
	Date         string      `json:"date"`
	Items        []OrderItem `json:"items,omitempty"`
}
