package dto

// StockItemCreateRequest payload for POST /admin/estoque/stock-items.
type StockItemCreateRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    *int   `json:"quantity"`
	Reserved    *int   `json:"reserved"`
}

// StockItemUpdateRequest payload for PUT on a stock item.
type StockItemUpdateRequest struct {
	Quantity *int `json:"quantity"`
	Reserved *int `json:"reserved"`
}

// WritedownRequest payload for POST /admin/estoque/stock-items/baixa.
type WritedownRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
}

// StockProductRequest payload for create/update on the product registry.
type StockProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"isActive"`
	ImagesJSON  any     `json:"imagesJson"`
}
