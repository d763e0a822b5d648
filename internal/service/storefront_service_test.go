package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/observability"
)

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Mouse", Category: "Periféricos", Price: 150, IsActive: true},
		{ID: "p2", Name: "Monitor", Category: "Monitores", Price: 1200, IsActive: true},
		{ID: "p3", Name: "Teclado", Category: "Periféricos", Price: 300, IsActive: true},
		{ID: "p4", Name: "Placa retirada", Category: "Hardware", Price: 900, IsActive: false},
		{ID: "p5", Name: "Gabinete", Category: "Hardware", Price: 450, IsActive: true},
	}
}

func newStorefrontService(t *testing.T, products []domain.Product) *StorefrontService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Product":
			_ = json.NewEncoder(w).Encode(products)
		case "/Product/p1":
			_ = json.NewEncoder(w).Encode(products[0])
		case "/Product/p1/stock":
			_ = json.NewEncoder(w).Encode(domain.ProductStock{ProductID: "p1", Stock: 7})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return NewStorefrontService(backend.NewCatalogClient(server.URL, observability.NewMetrics()))
}

func TestListProductsExcludesInactive(t *testing.T) {
	svc := newStorefrontService(t, catalogFixture())

	products, err := svc.ListProducts(context.Background(), "", ProductFilter{})
	require.NoError(t, err)

	assert.Len(t, products, 4)
	for _, p := range products {
		assert.True(t, p.IsActive)
		assert.NotEqual(t, "p4", p.ID)
	}
}

func TestListProductsCategoryFilter(t *testing.T) {
	svc := newStorefrontService(t, catalogFixture())

	products, err := svc.ListProducts(context.Background(), "", ProductFilter{Category: "Periféricos"})
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, "p3", products[1].ID)
}

func TestListProductsAllCategoriesKeyword(t *testing.T) {
	svc := newStorefrontService(t, catalogFixture())

	products, err := svc.ListProducts(context.Background(), "", ProductFilter{Category: "Todos"})
	require.NoError(t, err)
	assert.Len(t, products, 4)
}

func TestListProductsPriceCeiling(t *testing.T) {
	svc := newStorefrontService(t, catalogFixture())

	products, err := svc.ListProducts(context.Background(), "", ProductFilter{MaxPrice: 500})
	require.NoError(t, err)

	require.Len(t, products, 3)
	for _, p := range products {
		assert.LessOrEqual(t, p.Price, 500.0)
	}
}

func TestListProductsSortByPrice(t *testing.T) {
	svc := newStorefrontService(t, catalogFixture())

	asc, err := svc.ListProducts(context.Background(), "", ProductFilter{Sort: SortPriceAsc})
	require.NoError(t, err)
	require.Len(t, asc, 4)
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Price, asc[i].Price)
	}

	desc, err := svc.ListProducts(context.Background(), "", ProductFilter{Sort: SortPriceDesc})
	require.NoError(t, err)
	require.Len(t, desc, 4)
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Price, desc[i].Price)
	}
}

func TestFeaturedProductsLimited(t *testing.T) {
	svc := newStorefrontService(t, catalogFixture())

	featured, err := svc.FeaturedProducts(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, featured, 2)
}

func TestProductDetailsJoinsStock(t *testing.T) {
	svc := newStorefrontService(t, catalogFixture())

	details, err := svc.ProductDetails(context.Background(), "", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Mouse", details.Product.Name)
	assert.Equal(t, 7, details.Stock)
}
