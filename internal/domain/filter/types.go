// Package filter describes equality conditions applied to list views.
package filter

import (
	"fmt"
	"strings"
)

// ComparisonType is the operator of a condition.
type ComparisonType string

const (
	Equal     ComparisonType = "eq"
	NotEqual  ComparisonType = "neq"
	InList    ComparisonType = "in"
	NotInList ComparisonType = "nin"
)

// Item is one condition over a named field. Value is a scalar, or a list
// for in/nin ("a|b" in query strings).
type Item struct {
	Field    string         `json:"field"`
	Operator ComparisonType `json:"operator"`
	Value    any            `json:"value"`
}

// Eq builds an equality item.
func Eq(field string, value any) Item {
	return Item{Field: field, Operator: Equal, Value: value}
}

// IsUnset reports whether the item places no restriction: an empty value
// or the "all" sentinel used by list selectors.
func (i Item) IsUnset() bool {
	switch v := i.Value.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(v)
		return s == "" || strings.EqualFold(s, "all")
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// Values returns the item value as canonical strings.
func (i Item) Values() []string {
	switch v := i.Value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for n, e := range v {
			out[n] = fmt.Sprint(e)
		}
		return out
	case string:
		if i.Operator == InList || i.Operator == NotInList {
			parts := strings.Split(v, "|")
			for n := range parts {
				parts[n] = strings.TrimSpace(parts[n])
			}
			return parts
		}
		return []string{strings.TrimSpace(v)}
	default:
		return []string{fmt.Sprint(v)}
	}
}

// ParseEq parses "field:value" as used in query strings.
func ParseEq(s string) (Item, error) {
	field, value, ok := strings.Cut(s, ":")
	if !ok || strings.TrimSpace(field) == "" {
		return Item{}, fmt.Errorf("expected field:value, got %q", s)
	}
	op := Equal
	if strings.Contains(value, "|") {
		op = InList
	}
	return Item{Field: strings.TrimSpace(field), Operator: op, Value: value}, nil
}
