package query

import (
	"context"
	"fmt"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// ListCategoriesQuery represents the query to list categories
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles the list categories query
type ListCategoriesHandler struct {
	repo domain.Repository
}

// NewListCategoriesHandler creates a new list categories handler
func NewListCategoriesHandler(repo domain.Repository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query
func (h *ListCategoriesHandler) Handle(ctx context.Context, _ ListCategoriesQuery) ([]string, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return state.Categories, nil
}
