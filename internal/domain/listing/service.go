// Package listing builds the list views of the back office: it fetches a
// collection, resolves reference names and runs the query engine over it.
// Stats always describe the filtered view.
package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"storeadmin/internal/core/apperror"
	"storeadmin/internal/domain"
	"storeadmin/internal/domain/model"
	"storeadmin/internal/domain/query"
	"storeadmin/pkg/logger"
)

// View is one rendered list.
type View[T any] struct {
	Items      []T           `json:"items"`
	Stats      query.Summary `json:"stats"`
	Categories []string      `json:"categories,omitempty"`
	Names      query.Lookups `json:"names,omitempty"`
	Sort       *query.Sort   `json:"sort,omitempty"`
}

// Observer receives list query timings.
type Observer interface {
	ObserveListQuery(entity string, elapsed time.Duration)
}

// Service provides list views over a data source.
type Service struct {
	source   domain.Source
	observer Observer

	products  *query.Engine[model.Product]
	sales     *query.Engine[model.Sale]
	buys      *query.Engine[model.Buy]
	suppliers *query.Engine[model.Supplier]
	customers *query.Engine[model.Customer]
	users     *query.Engine[model.User]
}

// NewService creates a listing service. observer may be nil.
func NewService(source domain.Source, observer Observer) *Service {
	return &Service{
		source:    source,
		observer:  observer,
		products:  query.NewEngine(ProductSchema()),
		sales:     query.NewEngine(SaleSchema()),
		buys:      query.NewEngine(BuySchema()),
		suppliers: query.NewEngine(SupplierSchema()),
		customers: query.NewEngine(CustomerSchema()),
		users:     query.NewEngine(UserSchema()),
	}
}

// ListProducts returns the product list with its category options.
func (s *Service) ListProducts(ctx context.Context, cfg query.Config) (*View[model.Product], error) {
	if err := validate(s.products, cfg); err != nil {
		return nil, err
	}
	products, err := s.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	view := run(ctx, s.observer, s.products, products, cfg, nil)
	view.Categories = Categories(products)
	return view, nil
}

// ListSales returns the sale list; customer and user names are resolved for
// display and sorting.
func (s *Service) ListSales(ctx context.Context, cfg query.Config) (*View[model.Sale], error) {
	if err := validate(s.sales, cfg); err != nil {
		return nil, err
	}

	var (
		sales     []model.Sale
		customers []model.Customer
		users     []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { sales, err = s.source.Sales(gctx); return })
	g.Go(func() (err error) { customers, err = s.source.Customers(gctx); return })
	g.Go(func() (err error) { users, err = s.source.Users(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	names := query.Lookups{
		query.LookupCustomer: CustomerNames(customers),
		query.LookupUser:     UserNames(users),
	}
	return run(ctx, s.observer, s.sales, sales, cfg, names), nil
}

// ListBuys returns the buy list; supplier and user names are resolved.
func (s *Service) ListBuys(ctx context.Context, cfg query.Config) (*View[model.Buy], error) {
	if err := validate(s.buys, cfg); err != nil {
		return nil, err
	}

	var (
		buys      []model.Buy
		suppliers []model.Supplier
		users     []model.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { buys, err = s.source.Buys(gctx); return })
	g.Go(func() (err error) { suppliers, err = s.source.Suppliers(gctx); return })
	g.Go(func() (err error) { users, err = s.source.Users(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list buys: %w", err)
	}

	names := query.Lookups{
		query.LookupSupplier: SupplierNames(suppliers),
		query.LookupUser:     UserNames(users),
	}
	return run(ctx, s.observer, s.buys, buys, cfg, names), nil
}

func (s *Service) ListSuppliers(ctx context.Context, cfg query.Config) (*View[model.Supplier], error) {
	if err := validate(s.suppliers, cfg); err != nil {
		return nil, err
	}
	suppliers, err := s.source.Suppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return run(ctx, s.observer, s.suppliers, suppliers, cfg, nil), nil
}

func (s *Service) ListCustomers(ctx context.Context, cfg query.Config) (*View[model.Customer], error) {
	if err := validate(s.customers, cfg); err != nil {
		return nil, err
	}
	customers, err := s.source.Customers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return run(ctx, s.observer, s.customers, customers, cfg, nil), nil
}

func (s *Service) ListUsers(ctx context.Context, cfg query.Config) (*View[model.User], error) {
	if err := validate(s.users, cfg); err != nil {
		return nil, err
	}
	users, err := s.source.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return run(ctx, s.observer, s.users, users, cfg, nil), nil
}

func run[T any](ctx context.Context, o Observer, e *query.Engine[T], source []T, cfg query.Config, names query.Lookups) *View[T] {
	start := time.Now()
	items := e.Apply(source, cfg, names)
	view := &View[T]{
		Items: items,
		Stats: e.Summarize(items),
		Names: names,
		Sort:  cfg.Sort,
	}
	elapsed := time.Since(start)
	if o != nil {
		o.ObserveListQuery(e.Schema().Entity(), elapsed)
	}
	logger.Debug(ctx, "list query",
		"entity", e.Schema().Entity(),
		"source", len(source),
		"items", len(items),
		"elapsed", elapsed)
	return view
}

// validate rejects criteria the engine would silently ignore.
func validate[T any](e *query.Engine[T], cfg query.Config) error {
	err := e.Validate(cfg)
	if err == nil {
		return nil
	}
	problems := []string{err.Error()}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		problems = problems[:0]
		for _, p := range joined.Unwrap() {
			problems = append(problems, p.Error())
		}
	}
	return apperror.NewValidation(fmt.Sprintf("invalid %s query", e.Schema().Entity())).
		WithDetail("problems", problems)
}
