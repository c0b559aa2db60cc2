package domain

// BillItem is a line item owned by its bill. ProductName and DefaultPrice are
// denormalized snapshots taken when the item is added; they are not re-synced
// if the product is renamed or repriced later.
type BillItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	DefaultPrice float64 `json:"defaultPrice"`
	FinalPrice   float64 `json:"finalPrice"`
}

// Bill represents a customer bill. TotalAmount is always recomputed from the
// items; it is never trusted from input.
type Bill struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customerName"`
	Date         string     `json:"date"`
	Items        []BillItem `json:"items"`
	TotalAmount  float64    `json:"totalAmount"`
}

// BillItemInput is a line item as submitted by the caller. ProductName and
// DefaultPrice are optional; when the referenced product exists and they are
// unset, the current product name and selling price are snapshotted in.
// FinalPrice of zero means "use the product's selling price"; any other value
// is a per-item price override.
type BillItemInput struct {
	ProductID    string
	ProductName  string
	Quantity     int
	DefaultPrice float64
	FinalPrice   float64
}

// BillInput is the payload for creating or replacing a bill. Date defaults to
// the current date on create and to the stored date on update when empty.
type BillInput struct {
	CustomerName string
	Date         string
	Items        []BillItemInput
}

func billTotal(items []BillItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.FinalPrice
	}
	return total
}
