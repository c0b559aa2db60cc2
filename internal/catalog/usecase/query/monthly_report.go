package query

import (
	"context"
	"fmt"
	"time"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// MonthlyReportQuery represents the query for one calendar month's figures.
// Matching is by month+year equality on the stored dates, not a rolling
// 30-day window. Zero values default to the current month and year.
type MonthlyReportQuery struct {
	Month time.Month
	Year  int
}

// MonthlyReport represents the derived figures for one calendar month
type MonthlyReport struct {
	Month         time.Month `json:"month"`
	Year          int        `json:"year"`
	Revenue       float64    `json:"revenue"`
	ProductsAdded int        `json:"productsAdded"`
	UnitsSold     int        `json:"unitsSold"`
}

// MonthlyReportHandler handles the monthly report query
type MonthlyReportHandler struct {
	repo domain.Repository
}

// NewMonthlyReportHandler creates a new monthly report handler
func NewMonthlyReportHandler(repo domain.Repository) *MonthlyReportHandler {
	return &MonthlyReportHandler{repo: repo}
}

// Handle executes the monthly report query
func (h *MonthlyReportHandler) Handle(ctx context.Context, q MonthlyReportQuery) (*MonthlyReport, error) {
	state, err := h.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	now := time.Now()
	if q.Month == 0 {
		q.Month = now.Month()
	}
	if q.Year == 0 {
		q.Year = now.Year()
	}

	report := &MonthlyReport{Month: q.Month, Year: q.Year}
	for _, bill := range state.Bills {
		if !inMonth(bill.Date, q.Month, q.Year) {
			continue
		}
		report.Revenue += bill.TotalAmount
		for _, item := range bill.Items {
			report.UnitsSold += item.Quantity
		}
	}
	for _, product := range state.Products {
		if inMonth(product.DateAdded, q.Month, q.Year) {
			report.ProductsAdded++
		}
	}
	return report, nil
}

// inMonth reports whether a stored date falls in the given calendar month.
// Unparseable dates never match.
func inMonth(date string, month time.Month, year int) bool {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return false
	}
	return t.Month() == month && t.Year() == year
}
