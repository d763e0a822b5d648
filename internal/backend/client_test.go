package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/observability"
	"github.com/spec-kit/storefront-gateway/pkg/util"
)

func TestBearerHeaderAttachedOnlyWithCredential(t *testing.T) {
	var header string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]domain.Product{})
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, observability.NewMetrics())

	_, err := client.Products(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", header)

	_, err = client.Products(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, header)
}

func TestUpstream4xxPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "produto não encontrado"})
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, observability.NewMetrics())
	_, err := client.Product(context.Background(), "", "missing")

	domainErr := util.ToDomainError(err)
	assert.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "produto não encontrado", domainErr.Message)
}

func TestUpstream5xxBecomesBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, observability.NewMetrics())
	_, err := client.Products(context.Background(), "")

	domainErr := util.ToDomainError(err)
	assert.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
}

func TestTransportFailureBecomesBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := NewCatalogClient(server.URL, observability.NewMetrics())
	_, err := client.Products(context.Background(), "")

	domainErr := util.ToDomainError(err)
	assert.Equal(t, "UPSTREAM_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
}

func TestDeleteProductScrubsDecoratedIDs(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewStockClient(server.URL, observability.NewMetrics())
	err := client.DeleteProduct(context.Background(), "", `{"3f2504e0-4f89-11d3-9a0c-0305e82c3301"}`)
	require.NoError(t, err)
	assert.Equal(t, "/products/3f2504e0-4f89-11d3-9a0c-0305e82c3301", path)
}

func TestUpdateProductSendsIDInBody(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/products", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewStockClient(server.URL, observability.NewMetrics())
	err := client.UpdateProduct(context.Background(), "", "p1", StockProductInput{
		Name:        "SSD",
		Description: "NVMe",
		Category:    "Hardware",
		Price:       500,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", got["id"])
	assert.Equal(t, "SSD", got["name"])
}
