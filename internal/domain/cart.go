package domain

// CartItem is a line in the shopper's cart.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Cart is the cart service's view of the current session's cart.
type Cart struct {
	ID    string     `json:"id,omitempty"`
	Items []CartItem `json:"items"`
}

// Total returns the cart total in the catalog currency.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
