package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used across the aggregate.
const DateLayout = "2006-01-02"

// Aggregate is the full catalog state treated as one consistency unit:
// products, bills and categories plus the monotonic id counters. Reducer
// methods take the aggregate by value and return the next state, leaving the
// receiver untouched; persistence of the returned snapshot is the caller's
// effect.
type Aggregate struct {
	Products   []Product `json:"products"`
	Bills      []Bill    `json:"bills"`
	Categories []string  `json:"categories"`

	// ProductSeq and BillSeq are persisted monotonic counters. Ids are never
	// derived from the current item count, so deleting a product cannot cause
	// an id to be reused.
	ProductSeq int `json:"productSeq"`
	BillSeq    int `json:"billSeq"`
}

// Reducer computes the next aggregate from the current one.
type Reducer func(Aggregate) (Aggregate, error)

// Repository is the serialized access point to the catalog aggregate. Apply
// runs the reducer against the current snapshot under mutual exclusion and
// persists the full result before the next command is admitted.
type Repository interface {
	Snapshot(ctx context.Context) (Aggregate, error)
	Apply(ctx context.Context, reduce Reducer) (Aggregate, error)
}

// Clone returns a deep copy of the aggregate.
func (a Aggregate) Clone() Aggregate {
	next := a
	next.Products = append([]Product(nil), a.Products...)
	next.Categories = append([]string(nil), a.Categories...)
	next.Bills = make([]Bill, len(a.Bills))
	for i, bill := range a.Bills {
		bill.Items = append([]BillItem(nil), bill.Items...)
		next.Bills[i] = bill
	}
	return next
}

// AddProduct validates the input, assigns the next sequential id, derives the
// stock status and stamps the creation date.
func (a Aggregate) AddProduct(in ProductInput, now time.Time) (Aggregate, Product, error) {
	if err := a.validateProduct(in); err != nil {
		return a, Product{}, err
	}

	next := a.Clone()
	next.ProductSeq++

	product := Product{
		ID:           fmt.Sprintf("P%03d", next.ProductSeq),
		Name:         in.Name,
		Category:     in.Category,
		Description:  in.Description,
		Supplier:     in.Supplier,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		Stock:        in.Stock,
		Status:       StatusFor(in.Stock),
		DateAdded:    now.Format(DateLayout),
	}
	next.Products = append(next.Products, product)
	return next, product, nil
}

// UpdateProduct replaces the product matching id wholesale, keeping its id and
// creation date and re-deriving the status.
func (a Aggregate) UpdateProduct(id string, in ProductInput) (Aggregate, Product, error) {
	if err := a.validateProduct(in); err != nil {
		return a, Product{}, err
	}

	idx := a.productIndex(id)
	if idx < 0 {
		return a, Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	next := a.Clone()
	product := Product{
		ID:           id,
		Name:         in.Name,
		Category:     in.Category,
		Description:  in.Description,
		Supplier:     in.Supplier,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		Stock:        in.Stock,
		Status:       StatusFor(in.Stock),
		DateAdded:    a.Products[idx].DateAdded,
	}
	next.Products[idx] = product
	return next, product, nil
}

// DeleteProduct removes the product matching id. Bills referencing it are left
// alone; their line items keep the dangling product id.
func (a Aggregate) DeleteProduct(id string) (Aggregate, error) {
	idx := a.productIndex(id)
	if idx < 0 {
		return a, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	next := a.Clone()
	next.Products = append(next.Products[:idx], next.Products[idx+1:]...)
	return next, nil
}

// AddCategory appends a category name to the flat category set.
func (a Aggregate) AddCategory(name string) (Aggregate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return a, fmt.Errorf("category name is required: %w", ErrInvalidInput)
	}
	for _, existing := range a.Categories {
		if strings.EqualFold(existing, name) {
			return a, fmt.Errorf("category %q: %w", name, ErrDuplicateCategory)
		}
	}

	next := a.Clone()
	next.Categories = append(next.Categories, name)
	return next, nil
}

// AddBill assigns the next sequential bill id, defaults the date to today,
// deducts stock for every item referencing an existing product and recomputes
// each touched product's status. Items referencing an unknown product id are
// kept on the bill but have no stock effect. The deduction is refused with
// ErrInsufficientStock when any item's quantity exceeds the product's current
// stock, so the aggregate can never go negative through this command.
func (a Aggregate) AddBill(in BillInput, now time.Time) (Aggregate, Bill, error) {
	if err := validateBill(in); err != nil {
		return a, Bill{}, err
	}

	next := a.Clone()
	items, err := next.deductItems(in.Items)
	if err != nil {
		return a, Bill{}, err
	}

	next.BillSeq++
	date := in.Date
	if date == "" {
		date = now.Format(DateLayout)
	}

	bill := Bill{
		ID:           fmt.Sprintf("B%03d", next.BillSeq),
		CustomerName: in.CustomerName,
		Date:         date,
		Items:        items,
		TotalAmount:  billTotal(items),
	}
	next.Bills = append(next.Bills, bill)
	return next, bill, nil
}

// UpdateBill replaces the bill matching id using two-phase stock
// reconciliation: every item of the original bill is restored to its product's
// stock, then every item of the incoming payload is deducted against the
// restored levels. Products that were deleted since the original bill was
// written are skipped in both phases without error and without touching any
// other product. For an item retained across versions the available stock is
// therefore the current stock plus the original quantity; for a newly added
// item it is the current stock as-is.
func (a Aggregate) UpdateBill(id string, in BillInput) (Aggregate, Bill, error) {
	if err := validateBill(in); err != nil {
		return a, Bill{}, err
	}

	billIdx := -1
	for i := range a.Bills {
		if a.Bills[i].ID == id {
			billIdx = i
			break
		}
	}
	if billIdx < 0 {
		return a, Bill{}, fmt.Errorf("bill %s: %w", id, ErrNotFound)
	}
	original := a.Bills[billIdx]

	next := a.Clone()

	// Restore phase: undo the original bill's deductions.
	for _, item := range original.Items {
		idx := next.productIndex(item.ProductID)
		if idx < 0 {
			continue // product deleted since the bill was written
		}
		next.Products[idx].Stock += item.Quantity
		next.Products[idx].Status = StatusFor(next.Products[idx].Stock)
	}

	// Deduct phase: apply the incoming payload against restored stock.
	items, err := next.deductItems(in.Items)
	if err != nil {
		return a, Bill{}, err
	}

	date := in.Date
	if date == "" {
		date = original.Date
	}

	bill := Bill{
		ID:           id,
		CustomerName: in.CustomerName,
		Date:         date,
		Items:        items,
		TotalAmount:  billTotal(items),
	}
	next.Bills[billIdx] = bill
	return next, bill, nil
}

// deductItems subtracts each input item's quantity from its product's stock in
// place, snapshotting the product name and selling price onto the line item.
// Unknown product ids are tolerated: the item is kept as submitted with no
// stock effect. When called after a restore phase the current stock already
// includes the restored quantities, so the sufficiency check here covers both
// the create and the update case.
func (a *Aggregate) deductItems(inputs []BillItemInput) ([]BillItem, error) {
	items := make([]BillItem, 0, len(inputs))
	for _, in := range inputs {
		item := BillItem{
			ProductID:    in.ProductID,
			ProductName:  in.ProductName,
			Quantity:     in.Quantity,
			DefaultPrice: in.DefaultPrice,
			FinalPrice:   in.FinalPrice,
		}

		idx := a.productIndex(in.ProductID)
		if idx < 0 {
			items = append(items, item)
			continue
		}
		product := &a.Products[idx]

		if in.Quantity > product.Stock {
			return nil, fmt.Errorf("product %s: requested %d, available %d: %w",
				product.ID, in.Quantity, product.Stock, ErrInsufficientStock)
		}

		if item.ProductName == "" {
			item.ProductName = product.Name
		}
		if item.DefaultPrice == 0 {
			item.DefaultPrice = product.SellingPrice
		}
		if item.FinalPrice == 0 {
			item.FinalPrice = product.SellingPrice
		}

		product.Stock -= in.Quantity
		product.Status = StatusFor(product.Stock)
		items = append(items, item)
	}
	return items, nil
}

func (a Aggregate) productIndex(id string) int {
	for i := range a.Products {
		if a.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (a Aggregate) validateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("product name is required: %w", ErrInvalidInput)
	}
	if in.Category == "" {
		return fmt.Errorf("product category is required: %w", ErrInvalidInput)
	}
	if !a.hasCategory(in.Category) {
		return fmt.Errorf("category %q does not exist: %w", in.Category, ErrInvalidInput)
	}
	if in.CostPrice < 0 {
		return fmt.Errorf("cost price cannot be negative: %w", ErrInvalidInput)
	}
	if in.SellingPrice <= in.CostPrice {
		return fmt.Errorf("selling price must be higher than cost price: %w", ErrInvalidInput)
	}
	if in.Stock < 0 {
		return fmt.Errorf("stock cannot be negative: %w", ErrInvalidInput)
	}
	return nil
}

func (a Aggregate) hasCategory(name string) bool {
	for _, category := range a.Categories {
		if strings.EqualFold(category, name) {
			return true
		}
	}
	return false
}

func validateBill(in BillInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return fmt.Errorf("customer name is required: %w", ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("bill needs at least one item: %w", ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return fmt.Errorf("bill item product id is required: %w", ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("bill item quantity must be positive: %w", ErrInvalidInput)
		}
		if item.FinalPrice < 0 {
			return fmt.Errorf("bill item price cannot be negative: %w", ErrInvalidInput)
		}
	}
	if in.Date != "" {
		if _, err := time.Parse(DateLayout, in.Date); err != nil {
			return fmt.Errorf("bill date must be %s: %w", DateLayout, ErrInvalidInput)
		}
	}
	return nil
}
