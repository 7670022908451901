package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "storeadmin/internal/core/context"
	"storeadmin/internal/core/types"
	"storeadmin/internal/domain/model"
	"storeadmin/internal/domain/query"
)

type countingSource struct {
	mu    sync.Mutex
	calls map[string]int
	err   error

	products  []model.Product
	sales     []model.Sale
	buys      []model.Buy
	suppliers []model.Supplier
}

func (c *countingSource) hit(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	c.calls[name]++
}

func (c *countingSource) Products(context.Context) ([]model.Product, error) {
	c.hit("products")
	return c.products, c.err
}

func (c *countingSource) Sales(context.Context) ([]model.Sale, error) {
	c.hit("sales")
	return c.sales, c.err
}

func (c *countingSource) Buys(context.Context) ([]model.Buy, error) {
	c.hit("buys")
	return c.buys, c.err
}

func (c *countingSource) Suppliers(context.Context) ([]model.Supplier, error) {
	c.hit("suppliers")
	return c.suppliers, c.err
}

func (c *countingSource) Customers(context.Context) ([]model.Customer, error) {
	c.hit("customers")
	return nil, c.err
}

func (c *countingSource) Users(context.Context) ([]model.User, error) {
	c.hit("users")
	return nil, c.err
}

func at(y int, m time.Month, d int) types.Opt[types.Timestamp] {
	return types.Some(types.Timestamp{Time: time.Date(y, m, d, 10, 0, 0, 0, time.UTC)})
}

func money(s string) types.Opt[types.Money] { return types.Some(types.MustMoney(s)) }

func fixture() *countingSource {
	return &countingSource{
		products: []model.Product{
			{ID: 1, Name: "Agua", Stock: types.Some[int64](20), Price: money("2"), State: model.StateActive},
			{ID: 2, Name: "Pan", Stock: types.Some[int64](3), Price: money("0.5"), State: model.StateActive},
			{ID: 3, Name: "Vino", Stock: types.Some[int64](1), Price: money("30"), State: model.StateInactive},
			{ID: 4, Name: "Queso", State: model.StateActive},
		},
		sales: []model.Sale{
			{ID: 1, IssueDate: at(2024, 3, 2), Total: money("10"), State: model.SaleStateCompleted,
				Details: []model.SaleDetail{{ProductID: 1, Amount: 5}, {ProductID: 2, Amount: 9}}},
			{ID: 2, IssueDate: at(2024, 2, 20), Total: money("20"), State: model.SaleStatePending,
				Details: []model.SaleDetail{{ProductID: 1, Amount: 2}}},
			{ID: 3, IssueDate: at(2023, 12, 5), Total: money("30"), State: model.SaleStateCompleted},
			{ID: 4, IssueDate: at(2024, 3, 1), Total: money("999"), State: model.SaleStateCancelled,
				Details: []model.SaleDetail{{ProductID: 3, Amount: 100}}},
		},
		buys: []model.Buy{
			{ID: 1, BuysDate: at(2024, 3, 10), TotalPrice: money("100"), SupplierID: 7, Status: model.BuyStatusReceived},
			{ID: 2, BuysDate: at(2024, 1, 10), TotalPrice: money("50"), SupplierID: 7, Status: model.BuyStatusReceived},
			{ID: 3, BuysDate: at(2024, 3, 11), TotalPrice: money("70"), Status: model.BuyStatusCancelled},
		},
		suppliers: []model.Supplier{
			{ID: 7, Company: "Andes SAC", State: model.StateActive},
			{ID: 8, Company: "Old SAC", State: model.StateInactive},
		},
	}
}

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestBuild_Administrator(t *testing.T) {
	src := fixture()
	svc := NewService(src, 5)

	d, err := svc.Build(context.Background(), appctx.RoleAdministrator, now)
	require.NoError(t, err)

	assert.Equal(t, "60", d.Sales.Total.String())
	assert.Equal(t, "20", d.Sales.Average.String())
	assert.Equal(t, -50.0, d.Sales.Growth)
	require.Len(t, d.Sales.Recent, 3)
	assert.Equal(t, int64(1), d.Sales.Recent[0].ID)

	assert.Equal(t, 3, d.Products.Active)
	assert.Equal(t, "41.5", d.Products.StockValue.String())
	require.Len(t, d.Products.LowStock, 2)
	assert.Equal(t, int64(4), d.Products.LowStock[0].ID, "missing stock reads as 0")
	assert.Equal(t, int64(2), d.Products.LowStock[1].ID)

	require.NotNil(t, d.Buys)
	assert.Equal(t, 1, d.Buys.MonthCount)
	assert.Equal(t, "100", d.Buys.MonthAmount.String())
	assert.Equal(t, "75", d.Buys.Average.String())
	assert.Len(t, d.Suppliers, 1)
	assert.Equal(t, "Andes SAC", d.Names[query.LookupSupplier][7])

	assert.Equal(t, []string{"Oct", "Nov", "Dic", "Ene", "Feb", "Mar"}, d.Charts.Labels)
	assert.Equal(t, []float64{0, 0, 30, 0, 20, 10}, d.Charts.Sales)
	assert.Equal(t, []float64{0, 0, 0, 50, 0, 100}, d.Charts.Buys)
	assert.Equal(t, query.Ranking{Labels: []string{"Pan", "Agua"}, Values: []int64{9, 7}}, d.Charts.TopProducts)
	assert.Equal(t, int64(16), d.Charts.TopProductsTotal)
}

func TestBuild_EmployeeSkipsBuysAndSuppliers(t *testing.T) {
	src := fixture()
	svc := NewService(src, 0)

	d, err := svc.Build(context.Background(), appctx.RoleEmployee, now)
	require.NoError(t, err)

	assert.Nil(t, d.Buys)
	assert.Nil(t, d.Suppliers)
	assert.Nil(t, d.Charts.Buys)
	assert.Zero(t, src.calls["buys"])
	assert.Zero(t, src.calls["suppliers"])
	assert.Equal(t, 1, src.calls["sales"])
	assert.Equal(t, 1, src.calls["products"])
}

func TestBuild_Empty(t *testing.T) {
	svc := NewService(&countingSource{}, 5)

	d, err := svc.Build(context.Background(), appctx.RoleAdministrator, now)
	require.NoError(t, err)

	assert.True(t, d.Sales.Total.IsZero())
	assert.True(t, d.Sales.Average.IsZero())
	assert.Equal(t, 0.0, d.Sales.Growth)
	assert.Empty(t, d.Sales.Recent)
	assert.Empty(t, d.Products.LowStock)
	assert.Equal(t, query.Ranking{Labels: []string{query.NoDataLabel}, Values: []int64{0}}, d.Charts.TopProducts)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, d.Charts.Sales)
}

func TestBuild_SourceError(t *testing.T) {
	boom := errors.New("timeout")
	_, err := NewService(&countingSource{err: boom}, 5).Build(context.Background(), appctx.RoleEmployee, now)
	assert.ErrorIs(t, err, boom)
}

func TestGrowth(t *testing.T) {
	tests := []struct {
		name              string
		current, previous string
		want              float64
	}{
		{"increase", "150", "100", 50},
		{"decrease", "25", "100", -75},
		{"no previous, sales now", "10", "0", 100},
		{"nothing at all", "0", "0", 0},
		{"rounded", "1", "3", -66.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Growth(types.MustMoney(tt.current), types.MustMoney(tt.previous)))
		})
	}
}
