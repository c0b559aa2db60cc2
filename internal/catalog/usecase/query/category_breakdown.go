package query

import (
	"context"
	"fmt"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// CategoryBreakdownQuery represents the query for product counts per category
type CategoryBreakdownQuery struct{}

// CategoryCount is one category's slice of the catalog
type CategoryCount struct {
	Category string `json:"category"`
	Products int    `json:"products"`
	Stock    int    `json:"stock"`
}

// CategoryBreakdownHandler handles the category breakdown query
type CategoryBreakdownHandler struct {
	repo domain.Repository
}

// NewCategoryBreakdownHandler creates a new category breakdown handler
func NewCategoryBreakdownHandler(repo domain.Repository) *CategoryBreakdownHandler {
	return &CategoryBreakdownHandler{repo: repo}
}

// Handle executes the category breakdown query. Categories follow their
// registration order; categories with no products are included with zeros.
func (h *CategoryBreakdownHandler) Handle(ctx context.Context, _ CategoryBreakdownQuery) ([]CategoryCount, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	counts := make([]CategoryCount, len(state.Categories))
	index := make(map[string]int, len(state.Categories))
	for i, category := range state.Categories {
		counts[i] = CategoryCount{Category: category}
		index[category] = i
	}
	for _, product := range state.Products {
		i, ok := index[product.Category]
		if !ok {
			continue
		}
		counts[i].Products++
		counts[i].Stock += product.Stock
	}
	return counts, nil
}
