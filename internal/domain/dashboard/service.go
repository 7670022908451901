package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	appctx "storeadmin/internal/core/context"
	"storeadmin/internal/core/types"
	"storeadmin/internal/domain"
	"storeadmin/internal/domain/listing"
	"storeadmin/internal/domain/model"
	"storeadmin/internal/domain/query"
)

// Service provides dashboard generation.
type Service struct {
	source domain.Source
	topN   int
}

// NewService creates a dashboard service. topN <= 0 uses query.DefaultTopN.
func NewService(source domain.Source, topN int) *Service {
	if topN <= 0 {
		topN = query.DefaultTopN
	}
	return &Service{source: source, topN: topN}
}

// Build computes the dashboard for role at instant now. All figures are taken
// over the whole collections, never over a list filter. Buys and suppliers
// are only fetched for administrators.
func (s *Service) Build(ctx context.Context, role string, now time.Time) (*Dashboard, error) {
	admin := role == appctx.RoleAdministrator

	var (
		sales     []model.Sale
		products  []model.Product
		buys      []model.Buy
		suppliers []model.Supplier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { sales, err = s.source.Sales(gctx); return })
	g.Go(func() (err error) { products, err = s.source.Products(gctx); return })
	if admin {
		g.Go(func() (err error) { buys, err = s.source.Buys(gctx); return })
		g.Go(func() (err error) { suppliers, err = s.source.Suppliers(gctx); return })
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	d := &Dashboard{
		Role:        role,
		GeneratedAt: now,
		Sales:       summarizeSales(sales, now),
		Products:    summarizeProducts(products),
	}

	top := query.TopN(sales, s.topN, saleLines, model.Sale.IsCancelled, listing.ProductNames(products), "Product")
	d.Charts = Charts{
		Labels:      query.MonthLabels(now),
		Sales:       types.MoneySeries(query.MonthlyTotals(sales, now, model.Sale.IssuedAt, model.Sale.TotalOrZero, model.Sale.IsCancelled)),
		TopProducts: top,
	}
	for _, v := range top.Values {
		d.Charts.TopProductsTotal += v
	}

	if admin {
		b := summarizeBuys(buys, now)
		d.Buys = &b
		d.Suppliers = activeSuppliers(suppliers)
		d.Names = query.Lookups{query.LookupSupplier: listing.SupplierNames(suppliers)}
		d.Charts.Buys = types.MoneySeries(query.MonthlyTotals(buys, now, model.Buy.BoughtAt, model.Buy.TotalOrZero, model.Buy.IsCancelled))
	}

	return d, nil
}

func saleLines(s model.Sale) []query.LineItem {
	lines := make([]query.LineItem, len(s.Details))
	for i, d := range s.Details {
		lines[i] = query.LineItem{RefID: d.ProductID, Quantity: d.Amount, Name: d.ProductName.OrZero()}
	}
	return lines
}

func sameMonth(t, ref time.Time) bool {
	t = t.In(ref.Location())
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

func summarizeSales(sales []model.Sale, now time.Time) SalesSummary {
	active := make([]model.Sale, 0, len(sales))
	for _, s := range sales {
		if !s.IsCancelled() {
			active = append(active, s)
		}
	}

	total := types.Zero()
	current, previous := types.Zero(), types.Zero()
	prevMonth := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
	for _, s := range active {
		total = total.Add(s.TotalOrZero())
		switch {
		case sameMonth(s.IssuedAt(), now):
			current = current.Add(s.TotalOrZero())
		case sameMonth(s.IssuedAt(), prevMonth):
			previous = previous.Add(s.TotalOrZero())
		}
	}

	return SalesSummary{
		Total:   total,
		Average: types.AverageMoney(total, len(active)),
		Growth:  Growth(current, previous),
		Recent:  mostRecent(active, model.Sale.IssuedAt, RecentLimit),
	}
}

// Growth is the percent change from previous to current, rounded to 2
// places. With no previous amount it is 100 when current is positive, else 0.
func Growth(current, previous types.Money) float64 {
	if previous.IsPositive() {
		return current.Sub(previous).Div(previous).Mul(types.MoneyFromInt(100)).Round(2).InexactFloat64()
	}
	if current.IsPositive() {
		return 100
	}
	return 0
}

func summarizeProducts(products []model.Product) ProductsSummary {
	sum := ProductsSummary{StockValue: types.Zero(), LowStock: make([]model.Product, 0)}
	var low []model.Product
	for _, p := range products {
		if !p.IsActive() {
			continue
		}
		sum.Active++
		sum.StockValue = sum.StockValue.Add(p.StockValue())
		if p.StockOrZero() <= model.DashboardLowStockMax {
			low = append(low, p)
		}
	}
	slices.SortStableFunc(low, func(a, b model.Product) int {
		return cmp.Compare(a.StockOrZero(), b.StockOrZero())
	})
	if len(low) > LowStockLimit {
		low = low[:LowStockLimit]
	}
	sum.LowStock = append(sum.LowStock, low...)
	return sum
}

func summarizeBuys(buys []model.Buy, now time.Time) BuysSummary {
	sum := BuysSummary{MonthAmount: types.Zero()}
	active := make([]model.Buy, 0, len(buys))
	total := types.Zero()
	for _, b := range buys {
		if b.IsCancelled() {
			continue
		}
		active = append(active, b)
		total = total.Add(b.TotalOrZero())
		if sameMonth(b.BoughtAt(), now) {
			sum.MonthCount++
			sum.MonthAmount = sum.MonthAmount.Add(b.TotalOrZero())
		}
	}
	sum.Average = types.AverageMoney(total, len(active))
	sum.Recent = mostRecent(active, model.Buy.BoughtAt, RecentLimit)
	return sum
}

func activeSuppliers(suppliers []model.Supplier) []model.Supplier {
	out := make([]model.Supplier, 0, SuppliersLimit)
	for _, s := range suppliers {
		if s.State != model.StateActive {
			continue
		}
		out = append(out, s)
		if len(out) == SuppliersLimit {
			break
		}
	}
	return out
}

// mostRecent returns up to n records, newest first; equal dates keep input order.
func mostRecent[T any](records []T, at func(T) time.Time, n int) []T {
	out := make([]T, len(records))
	copy(out, records)
	slices.SortStableFunc(out, func(a, b T) int { return at(b).Compare(at(a)) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
