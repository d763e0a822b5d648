package domain

// Product is the catalog ("vitrine") listing shape.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImagesJSON  string  `json:"imagesJson"`
	Category    string  `json:"category"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	Stock       int     `json:"stock"`
}

// ProductStock is the per-product availability returned by the catalog.
type ProductStock struct {
	ProductID string `json:"productId"`
	Stock     int    `json:"stock"`
}
