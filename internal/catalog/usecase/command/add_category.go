package command

import (
	"context"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// AddCategoryCommand represents the command to add a category
type AddCategoryCommand struct {
	Name string
}

// AddCategoryHandler handles the add category command
type AddCategoryHandler struct {
	repo domain.Repository
}

// NewAddCategoryHandler creates a new add category handler
func NewAddCategoryHandler(repo domain.Repository) *AddCategoryHandler {
	return &AddCategoryHandler{repo: repo}
}

// Handle executes the add category command
func (h *AddCategoryHandler) Handle(ctx context.Context, cmd AddCategoryCommand) error {
	_, err := h.repo.Apply(ctx, func(state domain.Aggregate) (domain.Aggregate, error) {
		return state.AddCategory(cmd.Name)
	})
	return err
}
