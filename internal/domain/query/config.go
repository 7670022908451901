package query

import (
	"strings"

	"storeadmin/internal/domain/filter"
)

// StateAll is the state selector value meaning "no restriction".
const StateAll = "all"

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection maps anything other than "desc" to Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort orders records by one field.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle returns the sort state after a click on field: same field flips the
// direction, a new field starts ascending.
func (s *Sort) Toggle(field string) Sort {
	if s != nil && s.Field == field {
		if s.Direction == Desc {
			return Sort{Field: field, Direction: Asc}
		}
		return Sort{Field: field, Direction: Desc}
	}
	return Sort{Field: field, Direction: Asc}
}

// StockBand classifies a product by stock level.
type StockBand string

const (
	StockAny        StockBand = ""
	StockLow        StockBand = "low"        // 0 < stock <= 5
	StockZero       StockBand = "zero"       // stock == 0
	StockSufficient StockBand = "sufficient" // stock > 5
)

// ParseStockBand accepts the band names, "all" and "" (no restriction).
// ok is false for unknown names.
func ParseStockBand(s string) (StockBand, bool) {
	switch b := StockBand(strings.ToLower(strings.TrimSpace(s))); b {
	case StockLow, StockZero, StockSufficient:
		return b, true
	case StockAny, StateAll:
		return StockAny, true
	default:
		return StockAny, false
	}
}

// BandOf returns the band a stock value falls in; negative stock has no band.
func BandOf(stock int64) StockBand {
	switch {
	case stock == 0:
		return StockZero
	case stock > 0 && stock <= lowStockMax:
		return StockLow
	case stock > lowStockMax:
		return StockSufficient
	default:
		return StockAny
	}
}

const lowStockMax = 5

// Config is the set of active filter and sort criteria of a list view.
// Zero values mean "unset".
type Config struct {
	Text       string
	State      string
	Conditions []filter.Item
	Stock      StockBand
	Sort       *Sort
	Expression string
}

// IsEmpty reports whether no criterion is active.
func (c Config) IsEmpty() bool {
	if strings.TrimSpace(c.Text) != "" || !stateUnset(c.State) || c.Stock != StockAny || c.Sort != nil {
		return false
	}
	if strings.TrimSpace(c.Expression) != "" {
		return false
	}
	for _, item := range c.Conditions {
		if !item.IsUnset() {
			return false
		}
	}
	return true
}

func stateUnset(state string) bool {
	s := strings.TrimSpace(state)
	return s == "" || strings.EqualFold(s, StateAll)
}
