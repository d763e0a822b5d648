package domain

// StockItem is one warehouse/product stock row in the stock service.
// Pointer fields mirror upstream nullability.
type StockItem struct {
	ProductID   *string `json:"product_id"`
	WarehouseID *string `json:"warehouse_id"`
	Quantity    *int    `json:"quantity"`
	Reserved    *int    `json:"reserved"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

// StockProduct is the stock service's own product record, distinct from the
// catalog's Product shape.
type StockProduct struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImagesJSON  any      `json:"imagesJson,omitempty"`
	IsActive    *bool    `json:"isActive"`
	CreatedAt   *string  `json:"createdAt,omitempty"`
}
