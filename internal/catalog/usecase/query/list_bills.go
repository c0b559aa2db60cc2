package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// ListBillsQuery represents the query to list bills, optionally filtered by a
// case-insensitive customer name substring.
type ListBillsQuery struct {
	Customer string
}

// ListBillsHandler handles the list bills query
type ListBillsHandler struct {
	repo domain.Repository
}

// NewListBillsHandler creates a new list bills handler
func NewListBillsHandler(repo domain.Repository) *ListBillsHandler {
	return &ListBillsHandler{repo: repo}
}

// Handle executes the list bills query
func (h *ListBillsHandler) Handle(ctx context.Context, q ListBillsQuery) ([]domain.Bill, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if q.Customer == "" {
		return state.Bills, nil
	}

	bills := make([]domain.Bill, 0, len(state.Bills))
	for _, bill := range state.Bills {
		if containsFold(bill.CustomerName, q.Customer) {
			bills = append(bills, bill)
		}
	}
	return bills, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
