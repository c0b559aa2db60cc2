package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// Activity types surfaced in the dashboard feed
const (
	ActivityProductAdded = "product_added"
	ActivitySale         = "sale"
)

// RecentActivityQuery represents the query for the dashboard activity feed
type RecentActivityQuery struct {
	Limit int
}

// Activity is one entry in the dashboard activity feed
type Activity struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// RecentActivityHandler handles the recent activity query
type RecentActivityHandler struct {
	repo domain.Repository
}

// NewRecentActivityHandler creates a new recent activity handler
func NewRecentActivityHandler(repo domain.Repository) *RecentActivityHandler {
	return &RecentActivityHandler{repo: repo}
}

// Handle executes the recent activity query: the last five products added and
// the last five bills, merged, newest first, truncated to the limit.
func (h *RecentActivityHandler) Handle(ctx context.Context, q RecentActivityQuery) ([]Activity, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 8
	}

	activities := make([]Activity, 0, 10)
	for _, product := range tailProducts(state.Products, 5) {
		activities = append(activities, Activity{
			Type:        ActivityProductAdded,
			Date:        product.DateAdded,
			Description: fmt.Sprintf("Added %s to inventory", product.Name),
		})
	}
	for _, bill := range tailBills(state.Bills, 5) {
		activities = append(activities, Activity{
			Type:        ActivitySale,
			Date:        bill.Date,
			Description: fmt.Sprintf("Sale to %s - %.2f", bill.CustomerName, bill.TotalAmount),
		})
	}

	// Dates share a lexicographically sortable layout, so string comparison
	// orders them chronologically.
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date > activities[j].Date
	})

	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func tailProducts(products []domain.Product, n int) []domain.Product {
	if len(products) > n {
		return products[len(products)-n:]
	}
	return products
}

func tailBills(bills []domain.Bill, n int) []domain.Bill {
	if len(bills) > n {
		return bills[len(bills)-n:]
	}
	return bills
}
