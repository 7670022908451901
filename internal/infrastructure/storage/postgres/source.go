package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"storeadmin/internal/core/apperror"
	"storeadmin/internal/domain"
	"storeadmin/internal/domain/model"
)

var _ domain.Source = (*Source)(nil)

// Replica table names.
const (
	tableProduct    = "product"
	tableSale       = "sale"
	tableSaleDetail = "sale_detail"
	tableBuy        = "buy"
	tableBuyDetail  = "buy_detail"
	tableSupplier   = "supplier"
	tableCustomer   = "customer"
	tableUser       = "users"
)

// Source reads whole collections from the replica in identifier order.
// It is read-only and does not implement domain.Mutator.
type Source struct {
	txm     *TxManager
	builder squirrel.StatementBuilderType
}

// NewSource creates a replica source.
func NewSource(txm *TxManager) *Source {
	return &Source{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Ping checks the replica connection.
func (s *Source) Ping(ctx context.Context) error {
	return s.txm.pool.Ping(ctx)
}

func (s *Source) Products(ctx context.Context) ([]model.Product, error) {
	return selectAll(ctx, s, tableProduct, productRow.model)
}

func (s *Source) Suppliers(ctx context.Context) ([]model.Supplier, error) {
	return selectAll(ctx, s, tableSupplier, supplierRow.model)
}

func (s *Source) Customers(ctx context.Context) ([]model.Customer, error) {
	return selectAll(ctx, s, tableCustomer, customerRow.model)
}

func (s *Source) Users(ctx context.Context) ([]model.User, error) {
	return selectAll(ctx, s, tableUser, userRow.model)
}

// Sales loads sales with their lines, product names joined in.
func (s *Source) Sales(ctx context.Context) ([]model.Sale, error) {
	var out []model.Sale
	err := s.txm.ReadOnly(ctx, tableSale, func(ctx context.Context) error {
		var heads []saleRow
		if err := s.selectRows(ctx, &heads, s.headerQuery(tableSale, ExtractDBColumns[saleRow]())); err != nil {
			return err
		}
		var lines []saleDetailRow
		if err := s.selectRows(ctx, &lines, s.detailQuery(tableSaleDetail, "d.sale_identifier")); err != nil {
			return err
		}

		byParent := make(map[int64][]model.SaleDetail, len(heads))
		for _, l := range lines {
			byParent[l.SaleID] = append(byParent[l.SaleID], l.model())
		}
		out = make([]model.Sale, 0, len(heads))
		for _, h := range heads {
			out = append(out, h.model(orEmpty(byParent[h.ID])))
		}
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

// Buys loads buys with their lines, product names joined in.
func (s *Source) Buys(ctx context.Context) ([]model.Buy, error) {
	var out []model.Buy
	err := s.txm.ReadOnly(ctx, tableBuy, func(ctx context.Context) error {
		var heads []buyRow
		if err := s.selectRows(ctx, &heads, s.headerQuery(tableBuy, ExtractDBColumns[buyRow]())); err != nil {
			return err
		}
		var lines []buyDetailRow
		if err := s.selectRows(ctx, &lines, s.detailQuery(tableBuyDetail, "d.buy_identifier", "d.unit_cost")); err != nil {
			return err
		}

		byParent := make(map[int64][]model.BuyDetail, len(heads))
		for _, l := range lines {
			byParent[l.BuyID] = append(byParent[l.BuyID], l.model())
		}
		out = make([]model.Buy, 0, len(heads))
		for _, h := range heads {
			out = append(out, h.model(orEmpty(byParent[h.ID])))
		}
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (s *Source) headerQuery(table string, columns []string) squirrel.SelectBuilder {
	return s.builder.Select(columns...).From(table).OrderBy("identifier")
}

// detailQuery selects detail lines of table joined with the product name.
// Sale lines also carry the product's current price.
func (s *Source) detailQuery(table, parentColumn string, extra ...string) squirrel.SelectBuilder {
	cols := []string{
		"d.identifier",
		parentColumn,
		"d.amount",
		"d.subtotal",
		"d.product_identifier",
		"p.name AS product_name",
	}
	if table == tableSaleDetail {
		cols = append(cols, "p.price AS product_price")
	}
	cols = append(cols, extra...)
	return s.builder.Select(cols...).
		From(table+" d").
		LeftJoin(tableProduct+" p ON p.identifier = d.product_identifier").
		OrderBy(parentColumn, "d.identifier")
}

func (s *Source) selectRows(ctx context.Context, dst any, q squirrel.SelectBuilder) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Select(ctx, s.txm.GetQuerier(ctx), dst, sql, args...); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	return nil
}

// selectAll reads a flat table whose row type R maps to T.
func selectAll[R, T any](ctx context.Context, s *Source, table string, toModel func(R) T) ([]T, error) {
	var rows []R
	err := s.txm.ReadOnly(ctx, table, func(ctx context.Context) error {
		return s.selectRows(ctx, &rows, s.headerQuery(table, ExtractDBColumns[R]()))
	})
	if err != nil {
		return nil, mapErr(err)
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, toModel(r))
	}
	return out, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewUpstream(fmt.Errorf("replica: %w", err))
}
