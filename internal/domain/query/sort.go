package query

import (
	"slices"
	"time"

	"golang.org/x/text/collate"

	"storeadmin/internal/core/types"
)

type sortKey[T any] struct {
	rec  T
	text string
	num  types.Money
	at   time.Time
}

// Sort returns a sorted copy of records. Text and reference names compare
// case-insensitively with numeric-aware collation, numbers numerically and
// dates chronologically. Ascending order is stable; descending order is the
// exact reverse of the ascending result. An unknown field leaves the order
// unchanged.
func (e *Engine[T]) Sort(records []T, s Sort, names Lookups) []T {
	out := make([]T, len(records))
	copy(out, records)

	f, ok := e.schema.Field(s.Field)
	if !ok || len(out) < 2 {
		return out
	}

	keys := make([]sortKey[T], len(out))
	for i, rec := range out {
		k := sortKey[T]{rec: rec}
		switch f.Kind {
		case KindNumber:
			k.num = f.number(rec)
		case KindTime:
			k.at = f.instant(rec)
		default:
			k.text = f.display(rec, names)
		}
		keys[i] = k
	}

	// A Collator keeps internal buffers, so each call gets its own.
	col := collate.New(e.tag, collate.IgnoreCase, collate.Numeric)

	slices.SortStableFunc(keys, func(a, b sortKey[T]) int {
		switch f.Kind {
		case KindNumber:
			return a.num.Cmp(b.num)
		case KindTime:
			return a.at.Compare(b.at)
		default:
			return col.CompareString(a.text, b.text)
		}
	})
	if s.Direction == Desc {
		slices.Reverse(keys)
	}

	for i, k := range keys {
		out[i] = k.rec
	}
	return out
}
