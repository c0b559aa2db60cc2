package query

import (
	"context"
	"fmt"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// GetBillQuery represents the query to get a bill by id
type GetBillQuery struct {
	ID string
}

// GetBillHandler handles the get bill query
type GetBillHandler struct {
	repo domain.Repository
}

// NewGetBillHandler creates a new get bill handler
func NewGetBillHandler(repo domain.Repository) *GetBillHandler {
	return &GetBillHandler{repo: repo}
}

// Handle executes the get bill query
func (h *GetBillHandler) Handle(ctx context.Context, q GetBillQuery) (*domain.Bill, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	for i := range state.Bills {
		if state.Bills[i].ID == q.ID {
			return &state.Bills[i], nil
		}
	}
	return nil, fmt.Errorf("bill %s: %w", q.ID, domain.ErrNotFound)
}
