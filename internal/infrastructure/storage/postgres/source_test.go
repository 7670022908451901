package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeadmin/internal/core/apperror"
	"storeadmin/internal/core/types"
	"storeadmin/internal/domain/model"
)

func TestExtractDBColumns(t *testing.T) {
	type base struct {
		ID int64 `db:"identifier"`
	}
	type row struct {
		base
		Name    string `db:"name"`
		Ignored string `db:"-"`
		NoTag   string
		State   string `db:"state"`
	}

	assert.Equal(t, []string{"identifier", "name", "state"}, ExtractDBColumns[row]())
	assert.Equal(t, []string{"identifier", "name", "description", "size", "stock", "price", "expiration_date", "category", "state"},
		ExtractDBColumns[productRow]())
}

func TestHeaderQuery(t *testing.T) {
	s := NewSource(nil)

	sql, args, err := s.headerQuery(tableUser, ExtractDBColumns[userRow]()).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT identifier, name, email, rol, registration_date, state FROM users ORDER BY identifier", sql)
	assert.Empty(t, args)
}

func TestDetailQuery(t *testing.T) {
	s := NewSource(nil)

	sql, _, err := s.detailQuery(tableSaleDetail, "d.sale_identifier").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT d.identifier, d.sale_identifier, d.amount, d.subtotal, d.product_identifier, "+
		"p.name AS product_name, p.price AS product_price FROM sale_detail d "+
		"LEFT JOIN product p ON p.identifier = d.product_identifier ORDER BY d.sale_identifier, d.identifier", sql)

	sql, _, err = s.detailQuery(tableBuyDetail, "d.buy_identifier", "d.unit_cost").ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "d.unit_cost FROM buy_detail d")
	assert.NotContains(t, sql, "product_price")
}

func TestRowsToModel(t *testing.T) {
	stock := int64(4)
	price := types.MustMoney("2.50")
	exp := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	p := productRow{ID: 1, Name: "Pisco", Stock: &stock, Price: &price, ExpirationDate: &exp, State: "A"}.model()
	assert.Equal(t, int64(4), p.StockOrZero())
	assert.True(t, p.PriceOrZero().Equal(price))
	assert.Equal(t, exp, types.InstantOr(p.ExpirationDate))
	assert.False(t, p.Size.IsSome())
	assert.Empty(t, p.Category)

	bare := productRow{ID: 2, Name: "Agua"}.model()
	assert.False(t, bare.Stock.IsSome())
	assert.Equal(t, types.Epoch, types.InstantOr(bare.ExpirationDate))

	name := "Pisco"
	sale := saleRow{ID: 9, CustomerID: 3, State: "P"}.model([]model.SaleDetail{
		saleDetailRow{ID: 1, SaleID: 9, Amount: 2, ProductID: 1, ProductName: &name}.model(),
	})
	require.Len(t, sale.Details, 1)
	assert.Equal(t, "Pisco", sale.Details[0].ProductName.OrZero())
	assert.False(t, sale.Code.IsSome())
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))

	appErr, ok := apperror.AsAppError(mapErr(errors.New("conn refused")))
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUpstream, appErr.Code)

	nf := apperror.NewNotFound("product", 1)
	assert.Same(t, nf, mapErr(nf))
}
