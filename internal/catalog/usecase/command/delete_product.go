package command

import (
	"context"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// DeleteProductCommand represents the command to delete a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles the delete product command
type DeleteProductHandler struct {
	repo domain.Repository
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.Repository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command. Historical bills referencing the
// product keep their line items; only the product itself is removed.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) error {
	_, err := h.repo.Apply(ctx, func(state domain.Aggregate) (domain.Aggregate, error) {
		return state.DeleteProduct(cmd.ID)
	})
	return err
}
