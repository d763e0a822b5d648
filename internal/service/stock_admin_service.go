package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront-gateway/internal/backend"
	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/events"
	"github.com/spec-kit/storefront-gateway/pkg/util"
)

// StockAdminService backs the administrator stock console: stock item CRUD,
// write-downs and the stock service's product registry. Validation happens
// here so every view path gets the same rules.
type StockAdminService struct {
	stock  *backend.StockClient
	events events.Dispatcher
}

// NewStockAdminService builds the service.
func NewStockAdminService(stock *backend.StockClient, dispatcher events.Dispatcher) *StockAdminService {
	return &StockAdminService{stock: stock, events: dispatcher}
}

// ListItems returns all stock items.
func (s *StockAdminService) ListItems(ctx context.Context, token string) ([]domain.StockItem, error) {
	items, err := s.stock.ListItems(ctx, token)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.StockItem{}
	}
	return items, nil
}

// GetItem returns one stock item.
func (s *StockAdminService) GetItem(ctx context.Context, token, warehouseID, productID string) (*domain.StockItem, error) {
	return s.stock.GetItem(ctx, token, warehouseID, productID)
}

// CreateItem validates and inserts a stock item.
func (s *StockAdminService) CreateItem(ctx context.Context, token string, input backend.StockItemInput) error {
	if strings.TrimSpace(input.ProductID) == "" || strings.TrimSpace(input.WarehouseID) == "" {
		return util.NewValidationError("product_id and warehouse_id are required", nil)
	}
	if input.Quantity == nil || *input.Quantity < 0 {
		return util.NewValidationError("quantity must be a non-negative integer", nil)
	}
	if input.Reserved != nil && *input.Reserved < 0 {
		return util.NewValidationError("reserved must not be negative", nil)
	}
	if err := s.stock.CreateItem(ctx, token, input); err != nil {
		return err
	}
	s.publishAdjustment(ctx, input.ProductID, input.WarehouseID, *input.Quantity, "create")
	return nil
}

// UpdateItem patches quantity/reserved on an existing item. At least one
// field must be present.
func (s *StockAdminService) UpdateItem(ctx context.Context, token, warehouseID, productID string, input backend.StockItemInput) error {
	if input.Quantity == nil && input.Reserved == nil {
		return util.NewValidationError("nothing to update", nil)
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return util.NewValidationError("quantity must not be negative", nil)
	}
	if input.Reserved != nil && *input.Reserved < 0 {
		return util.NewValidationError("reserved must not be negative", nil)
	}
	input.ProductID = ""
	input.WarehouseID = ""
	if err := s.stock.UpdateItem(ctx, token, warehouseID, productID, input); err != nil {
		return err
	}
	quantity := 0
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	s.publishAdjustment(ctx, productID, warehouseID, quantity, "update")
	return nil
}

// DeleteItem removes a stock item.
func (s *StockAdminService) DeleteItem(ctx context.Context, token, warehouseID, productID string) error {
	return s.stock.DeleteItem(ctx, token, warehouseID, productID)
}

// Writedown registers a stock write-down; quantity must be strictly positive.
func (s *StockAdminService) Writedown(ctx context.Context, token string, input backend.WritedownInput) error {
	input.ProductID = strings.TrimSpace(input.ProductID)
	input.WarehouseID = strings.TrimSpace(input.WarehouseID)
	if input.ProductID == "" || input.WarehouseID == "" {
		return util.NewValidationError("product_id and warehouse_id are required", nil)
	}
	if input.Quantity <= 0 {
		return util.NewValidationError("writedown quantity must be greater than zero", nil)
	}
	if err := s.stock.Writedown(ctx, token, input); err != nil {
		return err
	}
	s.publishAdjustment(ctx, input.ProductID, input.WarehouseID, input.Quantity, "writedown")
	return nil
}

// ListProducts returns the stock product registry.
func (s *StockAdminService) ListProducts(ctx context.Context, token string) ([]domain.StockProduct, error) {
	products, err := s.stock.ListProducts(ctx, token)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.StockProduct{}
	}
	return products, nil
}

// CreateProduct validates and registers a product.
func (s *StockAdminService) CreateProduct(ctx context.Context, token string, input backend.StockProductInput) error {
	if err := validateProductInput(input); err != nil {
		return err
	}
	return s.stock.CreateProduct(ctx, token, input)
}

// UpdateProduct validates and updates a registered product.
func (s *StockAdminService) UpdateProduct(ctx context.Context, token, id string, input backend.StockProductInput) error {
	if strings.TrimSpace(id) == "" {
		return util.NewValidationError("product id is required", nil)
	}
	if err := validateProductInput(input); err != nil {
		return err
	}
	return s.stock.UpdateProduct(ctx, token, id, input)
}

// DeleteProduct removes a registered product.
func (s *StockAdminService) DeleteProduct(ctx context.Context, token, id string) error {
	if strings.TrimSpace(id) == "" {
		return util.NewValidationError("product id is required", nil)
	}
	return s.stock.DeleteProduct(ctx, token, id)
}

func validateProductInput(input backend.StockProductInput) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Category) == "" {
		return util.NewValidationError("name, description and category are required", nil)
	}
	if input.Price <= 0 {
		return util.NewValidationError("price must be greater than zero", nil)
	}
	return nil
}

func (s *StockAdminService) publishAdjustment(ctx context.Context, productID, warehouseID string, quantity int, operation string) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStockAdjusted,
		Timestamp: time.Now(),
		Payload: events.StockAdjustedPayload{
			ProductID:   productID,
			WarehouseID: warehouseID,
			Quantity:    quantity,
			Operation:   operation,
		},
	})
}
