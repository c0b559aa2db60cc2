package query

import (
	"context"
	"fmt"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by id
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles the get product query
type GetProductHandler struct {
	repo domain.Repository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.Repository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	for i := range state.Products {
		if state.Products[i].ID == q.ID {
			return &state.Products[i], nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", q.ID, domain.ErrNotFound)
}
