package command

import (
	"context"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// UpdateBillCommand represents the command to replace an existing bill
type UpdateBillCommand struct {
	ID           string
	CustomerName string
	Date         string
	Items        []BillItemInput
}

// UpdateBillHandler handles the update bill command
type UpdateBillHandler struct {
	repo domain.Repository
}

// NewUpdateBillHandler creates a new update bill handler
func NewUpdateBillHandler(repo domain.Repository) *UpdateBillHandler {
	return &UpdateBillHandler{repo: repo}
}

// Handle executes the update bill command. The aggregate restores the stock
// held by the original bill and then deducts the incoming quantities, so
// editing a bill never double-deducts and never loses the undo of removed
// items. Submitting a payload identical to the stored bill leaves every stock
// level unchanged.
func (h *UpdateBillHandler) Handle(ctx context.Context, cmd UpdateBillCommand) (*domain.Bill, error) {
	var updated domain.Bill
	_, err := h.repo.Apply(ctx, func(state domain.Aggregate) (domain.Aggregate, error) {
		next, bill, err := state.UpdateBill(cmd.ID, billInput(cmd.CustomerName, cmd.Date, cmd.Items))
		if err != nil {
			return state, err
		}
		updated = bill
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
