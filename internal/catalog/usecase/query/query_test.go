package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// stubRepo serves a fixed aggregate; queries never mutate.
type stubRepo struct {
	state domain.Aggregate
}

func (r *stubRepo) Snapshot(_ context.Context) (domain.Aggregate, error) {
	return r.state.Clone(), nil
}

func (r *stubRepo) Apply(_ context.Context, reduce domain.Reducer) (domain.Aggregate, error) {
	return reduce(r.state.Clone())
}

func fixtureRepo() *stubRepo {
	return &stubRepo{state: domain.Aggregate{
		Categories: []string{"Electronics", "Groceries", "Stationery"},
		Products: []domain.Product{
			{ID: "P001", Name: "USB Cable", Category: "Electronics", SellingPrice: 120, Stock: 20, Status: domain.StatusInStock, DateAdded: "2026-03-01"},
			{ID: "P002", Name: "Rice 5kg", Category: "Groceries", SellingPrice: 450, Stock: 8, Status: domain.StatusLowStock, DateAdded: "2026-03-05"},
			{ID: "P003", Name: "Notebook", Category: "Stationery", SellingPrice: 60, Stock: 0, Status: domain.StatusOutOfStock, DateAdded: "2026-02-20"},
		},
		Bills: []domain.Bill{
			{ID: "B001", CustomerName: "Ravi Kumar", Date: "2026-03-02", TotalAmount: 240, Items: []domain.BillItem{{ProductID: "P001", Quantity: 2, FinalPrice: 120}}},
			{ID: "B002", CustomerName: "Meena", Date: "2026-02-28", TotalAmount: 900, Items: []domain.BillItem{{ProductID: "P002", Quantity: 2, FinalPrice: 450}}},
		},
		ProductSeq: 3,
		BillSeq:    2,
	}}
}

func TestGetProduct(t *testing.T) {
	handler := NewGetProductHandler(fixtureRepo())

	product, err := handler.Handle(context.Background(), GetProductQuery{ID: "P002"})
	require.NoError(t, err)
	assert.Equal(t, "Rice 5kg", product.Name)

	_, err = handler.Handle(context.Background(), GetProductQuery{ID: "P999"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListProductsFilters(t *testing.T) {
	handler := NewListProductsHandler(fixtureRepo())
	ctx := context.Background()

	all, err := handler.Handle(ctx, ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCategory, err := handler.Handle(ctx, ListProductsQuery{Category: "groceries"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "P002", byCategory[0].ID)

	bySearch, err := handler.Handle(ctx, ListProductsQuery{Search: "usb"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "P001", bySearch[0].ID)

	byID, err := handler.Handle(ctx, ListProductsQuery{Search: "p003"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "Notebook", byID[0].Name)

	none, err := handler.Handle(ctx, ListProductsQuery{Search: "usb", Category: "Groceries"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetBill(t *testing.T) {
	handler := NewGetBillHandler(fixtureRepo())

	bill, err := handler.Handle(context.Background(), GetBillQuery{ID: "B001"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", bill.CustomerName)

	_, err = handler.Handle(context.Background(), GetBillQuery{ID: "B042"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListBillsCustomerFilter(t *testing.T) {
	handler := NewListBillsHandler(fixtureRepo())
	ctx := context.Background()

	all, err := handler.Handle(ctx, ListBillsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := handler.Handle(ctx, ListBillsQuery{Customer: "ravi"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "B001", filtered[0].ID)
}

func TestListCategories(t *testing.T) {
	handler := NewListCategoriesHandler(fixtureRepo())

	categories, err := handler.Handle(context.Background(), ListCategoriesQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Groceries", "Stationery"}, categories)
}

func TestGetStats(t *testing.T) {
	handler := NewGetStatsHandler(fixtureRepo())

	stats, err := handler.Handle(context.Background(), GetStatsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 28, stats.TotalStock)
	assert.Equal(t, 2, stats.TotalBills)
	require.Len(t, stats.LowStock, 1)
	assert.Equal(t, "P002", stats.LowStock[0].ID)
	require.Len(t, stats.OutOfStock, 1)
	assert.Equal(t, "P003", stats.OutOfStock[0].ID)
	assert.Equal(t, 1, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
}

func TestMonthlyReport(t *testing.T) {
	handler := NewMonthlyReportHandler(fixtureRepo())

	report, err := handler.Handle(context.Background(), MonthlyReportQuery{Month: time.March, Year: 2026})
	require.NoError(t, err)

	assert.Equal(t, 240.0, report.Revenue)
	assert.Equal(t, 2, report.UnitsSold)
	assert.Equal(t, 2, report.ProductsAdded)

	february, err := handler.Handle(context.Background(), MonthlyReportQuery{Month: time.February, Year: 2026})
	require.NoError(t, err)
	assert.Equal(t, 900.0, february.Revenue)
	assert.Equal(t, 1, february.ProductsAdded)
}

func TestSalesSeries(t *testing.T) {
	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	repo := fixtureRepo()
	repo.state.Bills = []domain.Bill{
		{ID: "B001", CustomerName: "Ravi", Date: thisMonth.Format(domain.DateLayout), TotalAmount: 500},
		{ID: "B002", CustomerName: "Meena", Date: lastMonth.Format(domain.DateLayout), TotalAmount: 300},
	}
	handler := NewSalesSeriesHandler(repo)

	series, err := handler.Handle(context.Background(), SalesSeriesQuery{Months: 3})
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, now.Month(), series[2].Month)
	assert.Equal(t, 500.0, series[2].Revenue)
	assert.Equal(t, 300.0, series[1].Revenue)
	assert.Equal(t, 0.0, series[0].Revenue)
}

func TestSalesSeriesDefaultsToSixMonths(t *testing.T) {
	handler := NewSalesSeriesHandler(fixtureRepo())

	series, err := handler.Handle(context.Background(), SalesSeriesQuery{})
	require.NoError(t, err)
	assert.Len(t, series, 6)
}

func TestCategoryBreakdown(t *testing.T) {
	handler := NewCategoryBreakdownHandler(fixtureRepo())

	counts, err := handler.Handle(context.Background(), CategoryBreakdownQuery{})
	require.NoError(t, err)
	require.Len(t, counts, 3)

	assert.Equal(t, CategoryCount{Category: "Electronics", Products: 1, Stock: 20}, counts[0])
	assert.Equal(t, CategoryCount{Category: "Groceries", Products: 1, Stock: 8}, counts[1])
	assert.Equal(t, CategoryCount{Category: "Stationery", Products: 1, Stock: 0}, counts[2])
}

func TestRecentActivity(t *testing.T) {
	handler := NewRecentActivityHandler(fixtureRepo())

	activities, err := handler.Handle(context.Background(), RecentActivityQuery{})
	require.NoError(t, err)
	require.Len(t, activities, 5)

	// Newest first across both sources.
	assert.Equal(t, "2026-03-05", activities[0].Date)
	assert.Equal(t, ActivityProductAdded, activities[0].Type)
	assert.Equal(t, "2026-03-02", activities[1].Date)
	assert.Equal(t, ActivitySale, activities[1].Type)
	assert.Equal(t, "2026-02-20", activities[4].Date)
}

func TestRecentActivityLimit(t *testing.T) {
	handler := NewRecentActivityHandler(fixtureRepo())

	activities, err := handler.Handle(context.Background(), RecentActivityQuery{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, activities, 2)
}

func TestRecentActivityTakesTailOfEachSource(t *testing.T) {
	repo := fixtureRepo()
	for i := 4; i <= 10; i++ {
		repo.state.Products = append(repo.state.Products, domain.Product{
			ID:        fmt.Sprintf("P%03d", i),
			Name:      fmt.Sprintf("Item %d", i),
			DateAdded: fmt.Sprintf("2026-03-%02d", i),
		})
	}
	handler := NewRecentActivityHandler(repo)

	activities, err := handler.Handle(context.Background(), RecentActivityQuery{Limit: 20})
	require.NoError(t, err)

	// Five most recent products plus the two bills.
	assert.Len(t, activities, 7)
	assert.Equal(t, "2026-03-10", activities[0].Date)
}
