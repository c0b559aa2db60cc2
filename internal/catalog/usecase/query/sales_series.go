package query

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// SalesSeriesQuery represents the query for revenue over the trailing months,
// oldest first and ending with the current month.
type SalesSeriesQuery struct {
	Months int
}

// SalesPoint is one month of the sales series
type SalesPoint struct {
	Month   time.Month `json:"month"`
	Year    int        `json:"year"`
	Revenue float64    `json:"revenue"`
}

// SalesSeriesHandler handles the sales series query
type SalesSeriesHandler struct {
	repo domain.Repository
}

// NewSalesSeriesHandler creates a new sales series handler
func NewSalesSeriesHandler(repo domain.Repository) *SalesSeriesHandler {
	return &SalesSeriesHandler{repo: repo}
}

// Handle executes the sales series query
func (h *SalesSeriesHandler) Handle(ctx context.Context, q SalesSeriesQuery) ([]SalesPoint, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	months := q.Months
	if months <= 0 {
		months = 6
	}

	// Anchor to the first of the month so stepping back never normalizes
	// across a short month.
	now := time.Now()
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	series := make([]SalesPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		ref := anchor.AddDate(0, -i, 0)
		point := SalesPoint{Month: ref.Month(), Year: ref.Year()}
		for _, bill := range state.Bills {
			if inMonth(bill.Date, point.Month, point.Year) {
				point.Revenue += bill.TotalAmount
			}
		}
		series = append(series, point)
	}
	return series, nil
}
