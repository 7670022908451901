package query

import (
	"fmt"
	"slices"
	"time"

	"storeadmin/internal/core/types"
)

// MonthBuckets is the number of trailing calendar months aggregated for charts.
const MonthBuckets = 6

// DefaultTopN is the number of groups returned by TopN when n <= 0.
const DefaultTopN = 5

// NoDataLabel is the single label of an empty ranking.
const NoDataLabel = "No data"

var monthAbbr = [12]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// monthsBack is how many calendar months t lies before now (0 = same month).
func monthsBack(now, t time.Time) int {
	t = t.In(now.Location())
	return (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
}

// MonthLabels returns the abbreviations of the current month and the five
// before it, oldest first.
func MonthLabels(now time.Time) []string {
	labels := make([]string, MonthBuckets)
	for i := 0; i < MonthBuckets; i++ {
		m := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location()).Month()
		labels[MonthBuckets-1-i] = monthAbbr[m-1]
	}
	return labels
}

// MonthlyTotals sums amount per calendar month for the current month of now
// and the five before it, oldest first. Records for which excluded returns
// true are skipped; records outside the window are ignored.
func MonthlyTotals[T any](records []T, now time.Time, at func(T) time.Time, amount func(T) types.Money, excluded func(T) bool) []types.Money {
	buckets := make([]types.Money, MonthBuckets)
	for i := range buckets {
		buckets[i] = types.Zero()
	}
	for _, rec := range records {
		if excluded != nil && excluded(rec) {
			continue
		}
		back := monthsBack(now, at(rec))
		if back < 0 || back >= MonthBuckets {
			continue
		}
		idx := MonthBuckets - 1 - back
		buckets[idx] = buckets[idx].Add(amount(rec))
	}
	return buckets
}

// LineItem is one child row contributing to a ranking.
type LineItem struct {
	RefID    int64
	Quantity int64
	// Name is the display name embedded in the line, used when the lookup misses.
	Name string
}

// Ranking is a top-N result as parallel label/value sequences.
type Ranking struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

type group struct {
	id    int64
	name  string
	total int64
}

// TopN groups the line items of non-excluded records by RefID, sums their
// quantities and returns the n largest groups, largest first. Equal totals
// keep first-seen order. Group names come from names, then from the first
// line's embedded name, then "<entity> <id>".
func TopN[T any](records []T, n int, lines func(T) []LineItem, excluded func(T) bool, names map[int64]string, entity string) Ranking {
	if n <= 0 {
		n = DefaultTopN
	}

	index := make(map[int64]int)
	var groups []group
	for _, rec := range records {
		if excluded != nil && excluded(rec) {
			continue
		}
		for _, li := range lines(rec) {
			i, ok := index[li.RefID]
			if !ok {
				name := names[li.RefID]
				if name == "" {
					name = li.Name
				}
				if name == "" {
					name = fmt.Sprintf("%s %d", entity, li.RefID)
				}
				i = len(groups)
				index[li.RefID] = i
				groups = append(groups, group{id: li.RefID, name: name})
			}
			groups[i].total += li.Quantity
		}
	}

	if len(groups) == 0 {
		return Ranking{Labels: []string{NoDataLabel}, Values: []int64{0}}
	}

	slices.SortStableFunc(groups, func(a, b group) int {
		switch {
		case a.total > b.total:
			return -1
		case a.total < b.total:
			return 1
		default:
			return 0
		}
	})
	if len(groups) > n {
		groups = groups[:n]
	}

	r := Ranking{Labels: make([]string, len(groups)), Values: make([]int64, len(groups))}
	for i, g := range groups {
		r.Labels[i] = g.name
		r.Values[i] = g.total
	}
	return r
}
