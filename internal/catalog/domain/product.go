package domain

// Status is the derived stock-level classification of a product. It is never
// set directly; it is recomputed from the stock count on every mutation.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusLowStock   Status = "Low Stock"
	StatusOutOfStock Status = "Out of Stock"
)

// lowStockThreshold is the stock count at or below which a product counts as
// low stock (while still above zero).
const lowStockThreshold = 10

// StatusFor derives the stock status classification for a stock count.
func StatusFor(stock int) Status {
	switch {
	case stock > lowStockThreshold:
		return StatusInStock
	case stock > 0:
		return StatusLowStock
	default:
		return StatusOutOfStock
	}
}

// Product represents a catalog product. JSON tags follow the persisted
// snapshot layout.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Supplier     string  `json:"supplier"`
	CostPrice    float64 `json:"costPrice"`
	SellingPrice float64 `json:"sellingPrice"`
	Stock        int     `json:"stock"`
	Status       Status  `json:"status"`
	DateAdded    string  `json:"dateAdded"`
}

// ProductInput is the payload for creating or replacing a product. ID, status
// and dateAdded are never taken from input.
type ProductInput struct {
	Name         string
	Category     string
	Description  string
	Supplier     string
	CostPrice    float64
	SellingPrice float64
	Stock        int
}
