package backend

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/observability"
)

// StockClient talks to the inventory ("estoque") service, which owns both
// stock items (per warehouse/product) and its own product registry.
type StockClient struct {
	client
}

// NewStockClient builds the client for the given base URL.
func NewStockClient(baseURL string, metrics *observability.Metrics) *StockClient {
	return &StockClient{client: newClient("stock", baseURL, metrics)}
}

// StockItemInput creates or updates a stock item row.
type StockItemInput struct {
	ProductID   string `json:"product_id,omitempty"`
	WarehouseID string `json:"warehouse_id,omitempty"`
	Quantity    *int   `json:"quantity,omitempty"`
	Reserved    *int   `json:"reserved,omitempty"`
}

// WritedownInput registers a stock write-down ("baixa").
type WritedownInput struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
}

// StockProductInput carries product fields for the stock service registry.
type StockProductInput struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"isActive"`
	ImagesJSON  any     `json:"imagesJson,omitempty"`
}

// ListItems returns every stock item.
func (c *StockClient) ListItems(ctx context.Context, token string) ([]domain.StockItem, error) {
	var items []domain.StockItem
	if err := c.doJSON(ctx, http.MethodGet, "/stock-items", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem returns one stock item keyed by warehouse and product.
func (c *StockClient) GetItem(ctx context.Context, token, warehouseID, productID string) (*domain.StockItem, error) {
	var item domain.StockItem
	path := "/stock-items/" + url.PathEscape(warehouseID) + "/" + url.PathEscape(productID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a stock item row.
func (c *StockClient) CreateItem(ctx context.Context, token string, input StockItemInput) error {
	return c.doJSON(ctx, http.MethodPost, "/stock-items", token, input, nil)
}

// UpdateItem patches quantity/reserved on an existing row.
func (c *StockClient) UpdateItem(ctx context.Context, token, warehouseID, productID string, input StockItemInput) error {
	path := "/stock-items/" + url.PathEscape(warehouseID) + "/" + url.PathEscape(productID)
	return c.doJSON(ctx, http.MethodPut, path, token, input, nil)
}

// DeleteItem removes a stock item row.
func (c *StockClient) DeleteItem(ctx context.Context, token, warehouseID, productID string) error {
	path := "/stock-items/" + url.PathEscape(warehouseID) + "/" + url.PathEscape(productID)
	return c.doJSON(ctx, http.MethodDelete, path, token, nil, nil)
}

// Writedown registers a stock write-down.
func (c *StockClient) Writedown(ctx context.Context, token string, input WritedownInput) error {
	return c.doJSON(ctx, http.MethodPost, "/stock-items/baixa", token, input, nil)
}

// ListProducts returns the stock service's product registry.
func (c *StockClient) ListProducts(ctx context.Context, token string) ([]domain.StockProduct, error) {
	var products []domain.StockProduct
	if err := c.doJSON(ctx, http.MethodGet, "/products", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns one registry entry.
func (c *StockClient) GetProduct(ctx context.Context, token, id string) (*domain.StockProduct, error) {
	var product domain.StockProduct
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), token, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct adds a registry entry.
func (c *StockClient) CreateProduct(ctx context.Context, token string, input StockProductInput) error {
	input.ID = ""
	return c.doJSON(ctx, http.MethodPost, "/products", token, input, nil)
}

// UpdateProduct updates a registry entry; the service expects the ID in the
// request body rather than in the path.
func (c *StockClient) UpdateProduct(ctx context.Context, token, id string, input StockProductInput) error {
	input.ID = id
	return c.doJSON(ctx, http.MethodPut, "/products", token, input, nil)
}

var productIDJunk = regexp.MustCompile(`[^0-9a-fA-F-]`)

// DeleteProduct removes a registry entry. The ID is scrubbed of wrapping
// braces/brackets/quotes and anything that cannot appear in a GUID, because
// some registry rows come back with decorated IDs.
func (c *StockClient) DeleteProduct(ctx context.Context, token, id string) error {
	cleaned := strings.TrimSpace(id)
	cleaned = strings.Trim(cleaned, `{}[]"`)
	cleaned = productIDJunk.ReplaceAllString(cleaned, "")
	return c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(cleaned), token, nil, nil)
}
