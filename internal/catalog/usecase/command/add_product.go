package command

import (
	"context"
	"time"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// AddProductCommand represents the command to add a product to the catalog
type AddProductCommand struct {
	Name         string
	Category     string
	Description  string
	Supplier     string
	CostPrice    float64
	SellingPrice float64
	Stock        int
}

// AddProductHandler handles the add product command
type AddProductHandler struct {
	repo domain.Repository
}

// NewAddProductHandler creates a new add product handler
func NewAddProductHandler(repo domain.Repository) *AddProductHandler {
	return &AddProductHandler{repo: repo}
}

// Handle executes the add product command
func (h *AddProductHandler) Handle(ctx context.Context, cmd AddProductCommand) (*domain.Product, error) {
	var created domain.Product
	_, err := h.repo.Apply(ctx, func(state domain.Aggregate) (domain.Aggregate, error) {
		next, product, err := state.AddProduct(domain.ProductInput{
			Name:         cmd.Name,
			Category:     cmd.Category,
			Description:  cmd.Description,
			Supplier:     cmd.Supplier,
			CostPrice:    cmd.CostPrice,
			SellingPrice: cmd.SellingPrice,
			Stock:        cmd.Stock,
		}, time.Now())
		if err != nil {
			return state, err
		}
		created = product
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}
