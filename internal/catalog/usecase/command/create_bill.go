package command

import (
	"context"
	"time"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// BillItemInput is a line item as submitted with a bill command
type BillItemInput struct {
	ProductID    string
	ProductName  string
	Quantity     int
	DefaultPrice float64
	FinalPrice   float64
}

// CreateBillCommand represents the command to create a bill
type CreateBillCommand struct {
	CustomerName string
	Date         string
	Items        []BillItemInput
}

// CreateBillHandler handles the create bill command
type CreateBillHandler struct {
	repo domain.Repository
}

// NewCreateBillHandler creates a new create bill handler
func NewCreateBillHandler(repo domain.Repository) *CreateBillHandler {
	return &CreateBillHandler{repo: repo}
}

// Handle executes the create bill command. Stock is deducted for every item
// referencing an existing product; the command fails with
// domain.ErrInsufficientStock before any state changes if a quantity exceeds
// the available stock.
func (h *CreateBillHandler) Handle(ctx context.Context, cmd CreateBillCommand) (*domain.Bill, error) {
	var created domain.Bill
	_, err := h.repo.Apply(ctx, func(state domain.Aggregate) (domain.Aggregate, error) {
		next, bill, err := state.AddBill(billInput(cmd.CustomerName, cmd.Date, cmd.Items), time.Now())
		if err != nil {
			return state, err
		}
		created = bill
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func billInput(customerName, date string, items []BillItemInput) domain.BillInput {
	in := domain.BillInput{
		CustomerName: customerName,
		Date:         date,
		Items:        make([]domain.BillItemInput, len(items)),
	}
	for i, item := range items {
		in.Items[i] = domain.BillItemInput{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			DefaultPrice: item.DefaultPrice,
			FinalPrice:   item.FinalPrice,
		}
	}
	return in
}
