package query

// Summary holds the counters shown above a list.
type Summary struct {
	Total     int            `json:"total"`
	LowStock  int            `json:"lowStock"`
	ZeroStock int            `json:"zeroStock"`
	ByStatus  map[string]int `json:"byStatus"`
}

// CountByStatus returns how many records carry the state code.
func (s Summary) CountByStatus(code string) int {
	return s.ByStatus[code]
}

// Summarize counts records. The caller decides whether records is the filtered
// view or the whole source. Stock counters stay 0 for schemas without stock.
func (e *Engine[T]) Summarize(records []T) Summary {
	sum := Summary{Total: len(records), ByStatus: make(map[string]int)}
	for _, rec := range records {
		if e.schema.HasStock() {
			switch BandOf(e.schema.stock(rec)) {
			case StockLow:
				sum.LowStock++
			case StockZero:
				sum.ZeroStock++
			}
		}
		if e.schema.HasState() {
			sum.ByStatus[e.schema.state(rec)]++
		}
	}
	return sum
}
