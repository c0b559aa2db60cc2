package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/smart-inventory/internal/catalog/repository"
	"github.com/tair/smart-inventory/pkg/logger"
	"github.com/tair/smart-inventory/pkg/storage"
)

// The metrics register against the default prometheus registry, so the whole
// HTTP surface is exercised through one handler in a single flow.
func TestCatalogHTTPFlow(t *testing.T) {
	logger.Init("catalog-test", false)

	store, err := storage.NewBlobStore(t.TempDir())
	require.NoError(t, err)
	repo, err := repository.NewSnapshotRepository(store)
	require.NoError(t, err)

	router := mux.NewRouter()
	handler := NewCatalogHandler(repo)
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router)

	do := func(method, path string, body interface{}) (*httptest.ResponseRecorder, Response) {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var resp Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return rec, resp
	}

	// Health before any data exists.
	rec, resp := do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	// A product needs its category registered first.
	rec, resp = do(http.MethodPost, "/api/products", map[string]interface{}{
		"name": "USB Cable", "category": "Electronics",
		"costPrice": 50, "sellingPrice": 120, "stock": 20,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)

	rec, _ = do(http.MethodPost, "/api/categories", map[string]string{"name": "Electronics"})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, resp = do(http.MethodPost, "/api/categories", map[string]string{"name": "electronics"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, resp.Success)

	rec, resp = do(http.MethodPost, "/api/products", map[string]interface{}{
		"name": "USB Cable", "category": "Electronics",
		"costPrice": 50, "sellingPrice": 120, "stock": 20,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	product := resp.Data.(map[string]interface{})
	assert.Equal(t, "P001", product["id"])
	assert.Equal(t, "In Stock", product["status"])

	rec, _ = do(http.MethodGet, "/api/products/P001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(http.MethodGet, "/api/products/P999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, resp = do(http.MethodGet, "/api/products?search=usb", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data.([]interface{}), 1)

	// Billing deducts stock and an overdraw is refused.
	rec, resp = do(http.MethodPost, "/api/bills", map[string]interface{}{
		"customerName": "Ravi",
		"items":        []map[string]interface{}{{"productId": "P001", "quantity": 5}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	bill := resp.Data.(map[string]interface{})
	assert.Equal(t, "B001", bill["id"])
	assert.Equal(t, 600.0, bill["totalAmount"])

	rec, _ = do(http.MethodPost, "/api/bills", map[string]interface{}{
		"customerName": "Ravi",
		"items":        []map[string]interface{}{{"productId": "P001", "quantity": 100}},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Editing the bill reconciles against restored stock: 15+5 >= 18.
	rec, resp = do(http.MethodPut, "/api/bills/B001", map[string]interface{}{
		"customerName": "Ravi",
		"items":        []map[string]interface{}{{"productId": "P001", "quantity": 18}},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2160.0, resp.Data.(map[string]interface{})["totalAmount"])

	rec, resp = do(http.MethodGet, "/api/products/P001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, resp.Data.(map[string]interface{})["stock"])
	assert.Equal(t, "Low Stock", resp.Data.(map[string]interface{})["status"])

	rec, _ = do(http.MethodPut, "/api/bills/B042", map[string]interface{}{
		"customerName": "Ravi",
		"items":        []map[string]interface{}{{"productId": "P001", "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Dashboard queries.
	rec, resp = do(http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := resp.Data.(map[string]interface{})
	assert.Equal(t, 1.0, stats["totalProducts"])
	assert.Equal(t, 2.0, stats["totalStock"])
	assert.Equal(t, 1.0, stats["lowStockCount"])

	rec, resp = do(http.MethodGet, "/api/dashboard/activity", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp.Data)

	// Deleting the product leaves the historical bill intact.
	rec, _ = do(http.MethodDelete, "/api/products/P001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(http.MethodGet, "/api/bills", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Data.([]interface{}), 1)
}
