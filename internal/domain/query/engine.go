package query

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"storeadmin/internal/domain/filter"
)

// maxCachedExpressions bounds the compiled expression cache per engine.
const maxCachedExpressions = 128

// Engine filters and sorts records of one type according to its schema.
// It is safe for concurrent use.
type Engine[T any] struct {
	schema *Schema[T]
	tag    language.Tag

	mu    sync.Mutex
	exprs map[string]*Expression[T]
}

// NewEngine creates an engine collating text in Spanish.
func NewEngine[T any](schema *Schema[T]) *Engine[T] {
	return &Engine[T]{
		schema: schema,
		tag:    language.Spanish,
		exprs:  make(map[string]*Expression[T]),
	}
}

// WithLanguage overrides the collation language.
func (e *Engine[T]) WithLanguage(tag language.Tag) *Engine[T] {
	e.tag = tag
	return e
}

// Schema returns the engine schema.
func (e *Engine[T]) Schema() *Schema[T] { return e.schema }

// Validate reports criteria the engine would silently ignore: unknown fields,
// stock bands on records without stock, and expressions that do not compile.
func (e *Engine[T]) Validate(cfg Config) error {
	var errs []error
	for _, item := range cfg.Conditions {
		if item.IsUnset() {
			continue
		}
		if _, ok := e.schema.Field(item.Field); !ok {
			errs = append(errs, fmt.Errorf("unknown field %q", item.Field))
			continue
		}
		switch item.Operator {
		case filter.Equal, filter.NotEqual, filter.InList, filter.NotInList, "":
		default:
			errs = append(errs, fmt.Errorf("unsupported operator %q for field %q", item.Operator, item.Field))
		}
	}
	if cfg.Sort != nil {
		if _, ok := e.schema.Field(cfg.Sort.Field); !ok {
			errs = append(errs, fmt.Errorf("unknown sort field %q", cfg.Sort.Field))
		}
	}
	if cfg.Stock != StockAny && !e.schema.HasStock() {
		errs = append(errs, fmt.Errorf("%s has no stock", e.schema.Entity()))
	}
	if !stateUnset(cfg.State) && !e.schema.HasState() {
		errs = append(errs, fmt.Errorf("%s has no state", e.schema.Entity()))
	}
	if src := strings.TrimSpace(cfg.Expression); src != "" {
		if _, err := e.expression(src); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Filter returns the records of source that satisfy every active criterion of
// cfg, in source order. Unset criteria pass everything; criteria naming
// unknown fields are ignored. The result is never nil.
func (e *Engine[T]) Filter(source []T, cfg Config) []T {
	preds := e.predicates(cfg)
	out := make([]T, 0, len(source))
	for _, rec := range source {
		if matchAll(rec, preds) {
			out = append(out, rec)
		}
	}
	return out
}

// Apply filters source and sorts the result when cfg carries a sort.
func (e *Engine[T]) Apply(source []T, cfg Config, names Lookups) []T {
	out := e.Filter(source, cfg)
	if cfg.Sort == nil {
		return out
	}
	return e.Sort(out, *cfg.Sort, names)
}

func matchAll[T any](rec T, preds []func(T) bool) bool {
	for _, p := range preds {
		if !p(rec) {
			return false
		}
	}
	return true
}

func (e *Engine[T]) predicates(cfg Config) []func(T) bool {
	var preds []func(T) bool

	if q := strings.ToLower(strings.TrimSpace(cfg.Text)); q != "" {
		fields := make([]Field[T], 0, len(e.schema.searchable))
		for _, name := range e.schema.searchable {
			fields = append(fields, e.schema.fields[name])
		}
		preds = append(preds, func(rec T) bool {
			for _, f := range fields {
				if strings.Contains(strings.ToLower(f.text(rec)), q) {
					return true
				}
			}
			return false
		})
	}

	if !stateUnset(cfg.State) && e.schema.HasState() {
		want := strings.TrimSpace(cfg.State)
		preds = append(preds, func(rec T) bool { return e.schema.state(rec) == want })
	}

	if cfg.Stock != StockAny && e.schema.HasStock() {
		band := cfg.Stock
		preds = append(preds, func(rec T) bool { return BandOf(e.schema.stock(rec)) == band })
	}

	for _, item := range cfg.Conditions {
		if p := e.condition(item); p != nil {
			preds = append(preds, p)
		}
	}

	if src := strings.TrimSpace(cfg.Expression); src != "" {
		expr, err := e.expression(src)
		if err != nil {
			// Nothing satisfies an expression that does not compile.
			return []func(T) bool{func(T) bool { return false }}
		}
		preds = append(preds, expr.Match)
	}

	return preds
}

func (e *Engine[T]) condition(item filter.Item) func(T) bool {
	if item.IsUnset() {
		return nil
	}
	f, ok := e.schema.Field(item.Field)
	if !ok {
		return nil
	}
	values := item.Values()
	anyOf := func(rec T) bool {
		for _, v := range values {
			if f.equals(rec, v) {
				return true
			}
		}
		return false
	}
	switch item.Operator {
	case filter.NotEqual, filter.NotInList:
		return func(rec T) bool { return !anyOf(rec) }
	case filter.Equal, filter.InList, "":
		return anyOf
	default:
		return nil
	}
}

func (e *Engine[T]) expression(src string) (*Expression[T], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if x, ok := e.exprs[src]; ok {
		return x, nil
	}
	x, err := Compile(e.schema, src)
	if err != nil {
		return nil, err
	}
	if len(e.exprs) >= maxCachedExpressions {
		clear(e.exprs)
	}
	e.exprs[src] = x
	return x, nil
}
