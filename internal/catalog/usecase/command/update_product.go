package command

import (
	"context"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// UpdateProductCommand represents the command to replace a product wholesale
type UpdateProductCommand struct {
	ID           string
	Name         string
	Category     string
	Description  string
	Supplier     string
	CostPrice    float64
	SellingPrice float64
	Stock        int
}

// UpdateProductHandler handles the update product command
type UpdateProductHandler struct {
	repo domain.Repository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.Repository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	var updated domain.Product
	_, err := h.repo.Apply(ctx, func(state domain.Aggregate) (domain.Aggregate, error) {
		next, product, err := state.UpdateProduct(cmd.ID, domain.ProductInput{
			Name:         cmd.Name,
			Category:     cmd.Category,
			Description:  cmd.Description,
			Supplier:     cmd.Supplier,
			CostPrice:    cmd.CostPrice,
			SellingPrice: cmd.SellingPrice,
			Stock:        cmd.Stock,
		})
		if err != nil {
			return state, err
		}
		updated = product
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
