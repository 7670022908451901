// Package query is the list query engine: it filters, sorts and summarizes
// in-memory record collections fetched from the backend, and computes the
// aggregates behind the dashboard charts.
//
// The engine never mutates its input and never fails: missing values fall back
// to zero, the empty string or the Unix epoch.
package query

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"

	"storeadmin/internal/core/types"
)

// Kind selects how a field is compared.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindTime
	KindRef
)

// Field is a named, typed accessor over records of type T.
type Field[T any] struct {
	Name string
	Kind Kind

	text     func(T) string
	number   func(T) types.Money
	integral bool
	instant  func(T) time.Time
	ref      func(T) int64

	// lookup names the reference table used to resolve display names (KindRef).
	lookup   string
	fallback string

	// label maps a text value to the name shown in the list. Only sorting
	// uses it; conditions and expressions see the raw value.
	label func(string) string
}

// Text declares a free-text field.
func Text[T any](name string, fn func(T) string) Field[T] {
	return Field[T]{Name: name, Kind: KindText, text: fn}
}

// Number declares a decimal field (prices, totals).
func Number[T any](name string, fn func(T) types.Money) Field[T] {
	return Field[T]{Name: name, Kind: KindNumber, number: fn}
}

// Integer declares an integral numeric field (stock, identifiers).
func Integer[T any](name string, fn func(T) int64) Field[T] {
	return Field[T]{
		Name:     name,
		Kind:     KindNumber,
		integral: true,
		number:   func(rec T) types.Money { return types.MoneyFromInt(fn(rec)) },
	}
}

// Time declares a date field.
func Time[T any](name string, fn func(T) time.Time) Field[T] {
	return Field[T]{Name: name, Kind: KindTime, instant: fn}
}

// Ref declares a foreign key whose display name comes from the lookup table.
// fallback is shown when the id is not in the table.
func Ref[T any](name, lookup, fallback string, fn func(T) int64) Field[T] {
	return Field[T]{Name: name, Kind: KindRef, ref: fn, lookup: lookup, fallback: fallback}
}

// Labeled returns a copy of a text field that sorts by label(value).
func (f Field[T]) Labeled(label func(string) string) Field[T] {
	f.label = label
	return f
}

// Lookup returns the reference table name of a KindRef field.
func (f Field[T]) Lookup() string { return f.lookup }

// key is the canonical string form used by equality conditions.
func (f Field[T]) key(rec T) string {
	switch f.Kind {
	case KindNumber:
		return f.number(rec).String()
	case KindTime:
		return f.instant(rec).Format(time.RFC3339)
	case KindRef:
		return strconv.FormatInt(f.ref(rec), 10)
	default:
		return f.text(rec)
	}
}

// equals compares the field against a condition value given as a string.
func (f Field[T]) equals(rec T, value string) bool {
	value = strings.TrimSpace(value)
	switch f.Kind {
	case KindNumber:
		want, err := types.NewMoneyFromString(value)
		if err != nil {
			return false
		}
		return f.number(rec).Equal(want)
	case KindTime:
		want, err := types.ParseTimestamp(value)
		if err != nil {
			return false
		}
		return f.instant(rec).Equal(want.Time)
	case KindRef:
		want, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return false
		}
		return f.ref(rec) == want
	default:
		return f.text(rec) == value
	}
}

// display resolves the value shown to the user; references go through names.
func (f Field[T]) display(rec T, names Lookups) string {
	if f.Kind == KindRef {
		if name, ok := names.Name(f.lookup, f.ref(rec)); ok {
			return name
		}
		return f.fallback
	}
	if f.Kind == KindText && f.label != nil {
		return f.label(f.text(rec))
	}
	return f.key(rec)
}

// native is the value bound to the field in filter expressions.
func (f Field[T]) native(rec T) any {
	switch f.Kind {
	case KindNumber:
		n := f.number(rec)
		if f.integral {
			return n.IntPart()
		}
		return n.InexactFloat64()
	case KindTime:
		return f.instant(rec)
	case KindRef:
		return f.ref(rec)
	default:
		return f.text(rec)
	}
}

func (f Field[T]) celType() *cel.Type {
	switch f.Kind {
	case KindNumber:
		if f.integral {
			return cel.IntType
		}
		return cel.DoubleType
	case KindTime:
		return cel.TimestampType
	case KindRef:
		return cel.IntType
	default:
		return cel.StringType
	}
}

// Schema describes how the engine reads one record type.
type Schema[T any] struct {
	entity     string
	fields     map[string]Field[T]
	order      []string
	searchable []string
	state      func(T) string
	stock      func(T) int64

	envOnce sync.Once
	env     *cel.Env
	envErr  error
}

// NewSchema creates a schema for the named entity.
func NewSchema[T any](entity string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		entity: entity,
		fields: make(map[string]Field[T], len(fields)),
	}
	for _, f := range fields {
		if _, dup := s.fields[f.Name]; !dup {
			s.order = append(s.order, f.Name)
		}
		s.fields[f.Name] = f
	}
	return s
}

// Searchable sets the text fields matched by the free-text filter.
// Names that are not text fields are ignored.
func (s *Schema[T]) Searchable(names ...string) *Schema[T] {
	for _, n := range names {
		if f, ok := s.fields[n]; ok && f.Kind == KindText {
			s.searchable = append(s.searchable, n)
		}
	}
	return s
}

// WithState sets the state/status code accessor.
func (s *Schema[T]) WithState(fn func(T) string) *Schema[T] {
	s.state = fn
	return s
}

// WithStock sets the stock accessor, enabling stock bands.
func (s *Schema[T]) WithStock(fn func(T) int64) *Schema[T] {
	s.stock = fn
	return s
}

// Entity returns the entity name.
func (s *Schema[T]) Entity() string { return s.entity }

// Field returns the named field.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	f, ok := s.fields[name]
	return f, ok
}

// FieldNames lists field names in declaration order.
func (s *Schema[T]) FieldNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// HasStock reports whether stock bands apply to this record type.
func (s *Schema[T]) HasStock() bool { return s.stock != nil }

// HasState reports whether the state filter applies to this record type.
func (s *Schema[T]) HasState() bool { return s.state != nil }

// StateOf returns the state code of rec, or "" when the schema has none.
func (s *Schema[T]) StateOf(rec T) string {
	if s.state == nil {
		return ""
	}
	return s.state(rec)
}

func (s *Schema[T]) celEnv() (*cel.Env, error) {
	s.envOnce.Do(func() {
		opts := make([]cel.EnvOption, 0, len(s.order))
		for _, name := range s.order {
			opts = append(opts, cel.Variable(name, s.fields[name].celType()))
		}
		s.env, s.envErr = cel.NewEnv(opts...)
	})
	return s.env, s.envErr
}
