package backend

import (
	"context"
	"net/http"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/observability"
)

// CatalogClient talks to the storefront catalog ("vitrine") service.
type CatalogClient struct {
	client
}

// NewCatalogClient builds the client for the given base URL.
func NewCatalogClient(baseURL string, metrics *observability.Metrics) *CatalogClient {
	return &CatalogClient{client: newClient("catalog", baseURL, metrics)}
}

// Products returns the full catalog listing.
func (c *CatalogClient) Products(ctx context.Context, token string) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.doJSON(ctx, http.MethodGet, "/Product", token, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product returns a single catalog entry.
func (c *CatalogClient) Product(ctx context.Context, token, id string) (*domain.Product, error) {
	var product domain.Product
	if err := c.doJSON(ctx, http.MethodGet, "/Product/"+id, token, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductStock returns catalog-side availability for a product.
func (c *CatalogClient) ProductStock(ctx context.Context, token, id string) (*domain.ProductStock, error) {
	var stock domain.ProductStock
	if err := c.doJSON(ctx, http.MethodGet, "/Product/"+id+"/stock", token, nil, &stock); err != nil {
		return nil, err
	}
	return &stock, nil
}
