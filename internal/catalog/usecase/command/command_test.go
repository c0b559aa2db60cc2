package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/smart-inventory/internal/catalog/domain"
)

// memRepo applies reducers against an in-memory aggregate without persistence.
type memRepo struct {
	state domain.Aggregate
}

func (r *memRepo) Snapshot(_ context.Context) (domain.Aggregate, error) {
	return r.state.Clone(), nil
}

func (r *memRepo) Apply(_ context.Context, reduce domain.Reducer) (domain.Aggregate, error) {
	next, err := reduce(r.state.Clone())
	if err != nil {
		return domain.Aggregate{}, err
	}
	r.state = next
	return next.Clone(), nil
}

func seededRepo(t *testing.T) *memRepo {
	t.Helper()
	ctx := context.Background()
	repo := &memRepo{}

	require.NoError(t, NewAddCategoryHandler(repo).Handle(ctx, AddCategoryCommand{Name: "Electronics"}))

	_, err := NewAddProductHandler(repo).Handle(ctx, AddProductCommand{
		Name:         "USB Cable",
		Category:     "Electronics",
		CostPrice:    50,
		SellingPrice: 120,
		Stock:        20,
	})
	require.NoError(t, err)
	return repo
}

func TestAddProductHandler(t *testing.T) {
	repo := seededRepo(t)

	product, err := NewAddProductHandler(repo).Handle(context.Background(), AddProductCommand{
		Name:         "HDMI Cable",
		Category:     "Electronics",
		CostPrice:    100,
		SellingPrice: 250,
		Stock:        3,
	})
	require.NoError(t, err)

	assert.Equal(t, "P002", product.ID)
	assert.Equal(t, domain.StatusLowStock, product.Status)
	assert.Len(t, repo.state.Products, 2)
}

func TestAddProductHandlerValidation(t *testing.T) {
	repo := seededRepo(t)

	_, err := NewAddProductHandler(repo).Handle(context.Background(), AddProductCommand{
		Name:         "Bad",
		Category:     "Nope",
		CostPrice:    1,
		SellingPrice: 2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, repo.state.Products, 1)
}

func TestUpdateProductHandler(t *testing.T) {
	repo := seededRepo(t)

	product, err := NewUpdateProductHandler(repo).Handle(context.Background(), UpdateProductCommand{
		ID:           "P001",
		Name:         "USB-C Cable",
		Category:     "Electronics",
		CostPrice:    60,
		SellingPrice: 150,
		Stock:        0,
	})
	require.NoError(t, err)

	assert.Equal(t, "USB-C Cable", product.Name)
	assert.Equal(t, domain.StatusOutOfStock, product.Status)
	assert.Equal(t, "USB-C Cable", repo.state.Products[0].Name)
}

func TestDeleteProductHandler(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()
	handler := NewDeleteProductHandler(repo)

	require.NoError(t, handler.Handle(ctx, DeleteProductCommand{ID: "P001"}))
	assert.Empty(t, repo.state.Products)

	assert.ErrorIs(t, handler.Handle(ctx, DeleteProductCommand{ID: "P001"}), domain.ErrNotFound)
}

func TestAddCategoryHandlerDuplicate(t *testing.T) {
	repo := seededRepo(t)

	err := NewAddCategoryHandler(repo).Handle(context.Background(), AddCategoryCommand{Name: "electronics"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCategory)
	assert.Len(t, repo.state.Categories, 1)
}

func TestCreateBillHandler(t *testing.T) {
	repo := seededRepo(t)

	bill, err := NewCreateBillHandler(repo).Handle(context.Background(), CreateBillCommand{
		CustomerName: "Ravi",
		Items:        []BillItemInput{{ProductID: "P001", Quantity: 4}},
	})
	require.NoError(t, err)

	assert.Equal(t, "B001", bill.ID)
	assert.Equal(t, 4*120.0, bill.TotalAmount)
	assert.Equal(t, 16, repo.state.Products[0].Stock)
}

func TestCreateBillHandlerInsufficientStock(t *testing.T) {
	repo := seededRepo(t)

	_, err := NewCreateBillHandler(repo).Handle(context.Background(), CreateBillCommand{
		CustomerName: "Ravi",
		Items:        []BillItemInput{{ProductID: "P001", Quantity: 21}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Refused command changes nothing.
	assert.Equal(t, 20, repo.state.Products[0].Stock)
	assert.Empty(t, repo.state.Bills)
}

func TestUpdateBillHandlerReconcilesStock(t *testing.T) {
	repo := seededRepo(t)
	ctx := context.Background()

	bill, err := NewCreateBillHandler(repo).Handle(ctx, CreateBillCommand{
		CustomerName: "Ravi",
		Items:        []BillItemInput{{ProductID: "P001", Quantity: 5}},
	})
	require.NoError(t, err)
	require.Equal(t, 15, repo.state.Products[0].Stock)

	updated, err := NewUpdateBillHandler(repo).Handle(ctx, UpdateBillCommand{
		ID:           bill.ID,
		CustomerName: "Ravi",
		Items:        []BillItemInput{{ProductID: "P001", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2*120.0, updated.TotalAmount)
	assert.Equal(t, 18, repo.state.Products[0].Stock)
	assert.Len(t, repo.state.Bills, 1)
}

func TestUpdateBillHandlerNotFound(t *testing.T) {
	repo := seededRepo(t)

	_, err := NewUpdateBillHandler(repo).Handle(context.Background(), UpdateBillCommand{
		ID:           "B042",
		CustomerName: "Ravi",
		Items:        []BillItemInput{{ProductID: "P001", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
