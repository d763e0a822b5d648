package service

import (
	"context"
	"sort"

	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/domain"
)

// Sort orders accepted by the product listing.
const (
	SortDefault   = "padrao"
	SortPriceAsc  = "menor"
	SortPriceDesc = "maior"
)

// ProductFilter narrows and orders the product listing. Zero values mean
// "no constraint"; MaxPrice <= 0 disables the price ceiling.
type ProductFilter struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
}

// ProductDetails joins a catalog entry with its availability.
type ProductDetails struct {
	Product domain.Product `json:"product"`
	Stock   int            `json:"stock"`
}

// StorefrontService shapes catalog data for the storefront views. Inactive
// products never leave this layer.
type StorefrontService struct {
	catalog *backend.CatalogClient
}

// NewStorefrontService builds the service.
func NewStorefrontService(catalog *backend.CatalogClient) *StorefrontService {
	return &StorefrontService{catalog: catalog}
}

// ListProducts returns active products matching the filter.
func (s *StorefrontService) ListProducts(ctx context.Context, token string, filter ProductFilter) ([]domain.Product, error) {
	products, err := s.catalog.Products(ctx, token)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if filter.Category != "" && filter.Category != "Todos" && p.Category != filter.Category {
			continue
		}
		if p.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		filtered = append(filtered, p)
	}

	switch filter.Sort {
	case SortPriceAsc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case SortPriceDesc:
		sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}
	return filtered, nil
}

// FeaturedProducts picks the home page highlights from the active catalog.
func (s *StorefrontService) FeaturedProducts(ctx context.Context, token string, limit int) ([]domain.Product, error) {
	products, err := s.ListProducts(ctx, token, ProductFilter{})
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// ProductDetails returns one product joined with its stock figure. A failing
// stock lookup degrades to zero availability rather than failing the view.
func (s *StorefrontService) ProductDetails(ctx context.Context, token, id string) (*ProductDetails, error) {
	product, err := s.catalog.Product(ctx, token, id)
	if err != nil {
		return nil, err
	}

	details := &ProductDetails{Product: *product}
	if stock, err := s.catalog.ProductStock(ctx, token, id); err == nil {
		details.Stock = stock.Stock
	}
	return details, nil
}
