package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products. Search matches a
// case-insensitive substring of the product name, id or category; Category
// filters by exact category name.
type ListProductsQuery struct {
	Search   string
	Category string
}

// ListProductsHandler handles the list products query
type ListProductsHandler struct {
	repo domain.Repository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.Repository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) ([]domain.Product, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	products := make([]domain.Product, 0, len(state.Products))
	search := strings.ToLower(q.Search)
	for _, product := range state.Products {
		if q.Category != "" && !strings.EqualFold(product.Category, q.Category) {
			continue
		}
		if search != "" && !matchesSearch(product, search) {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func matchesSearch(product domain.Product, search string) bool {
	return strings.Contains(strings.ToLower(product.Name), search) ||
		strings.Contains(strings.ToLower(product.ID), search) ||
		strings.Contains(strings.ToLower(product.Category), search)
}
