package query

import (
	"context"
	"fmt"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// GetStatsQuery represents the query to get catalog statistics
type GetStatsQuery struct{}

// CatalogStats represents derived catalog statistics
type CatalogStats struct {
	TotalProducts   int              `json:"totalProducts"`
	TotalStock      int              `json:"totalStock"`
	TotalBills      int              `json:"totalBills"`
	LowStock        []domain.Product `json:"lowStock"`
	OutOfStock      []domain.Product `json:"outOfStock"`
	LowStockCount   int              `json:"lowStockCount"`
	OutOfStockCount int              `json:"outOfStockCount"`
}

// GetStatsHandler handles the get stats query
type GetStatsHandler struct {
	repo domain.Repository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.Repository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query. All figures are recomputed from the
// current snapshot on every call; nothing is cached.
func (h *GetStatsHandler) Handle(ctx context.Context, _ GetStatsQuery) (*CatalogStats, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	stats := &CatalogStats{
		TotalProducts: len(state.Products),
		TotalBills:    len(state.Bills),
		LowStock:      []domain.Product{},
		OutOfStock:    []domain.Product{},
	}
	for _, product := range state.Products {
		stats.TotalStock += product.Stock
		switch product.Status {
		case domain.StatusLowStock:
			stats.LowStock = append(stats.LowStock, product)
		case domain.StatusOutOfStock:
			stats.OutOfStock = append(stats.OutOfStock, product)
		}
	}
	stats.LowStockCount = len(stats.LowStock)
	stats.OutOfStockCount = len(stats.OutOfStock)
	return stats, nil
}
