package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"storeadmin/internal/domain/filter"
	"storeadmin/internal/domain/query"
)

// ListRequest carries the list criteria from the query string.
//
//	GET /api/v1/products?q=vino&stock=low&sort=price&dir=desc&eq=category:VINOS
type ListRequest struct {
	Q     string `form:"q"`
	State string `form:"state"`
	Stock string `form:"stock"`
	Sort  string `form:"sort"`
	Dir   string `form:"dir" binding:"omitempty,oneof=asc desc ASC DESC"`
	// Eq holds field:value pairs; a value with "|" matches any of its parts.
	Eq []string `form:"eq"`
	// Filter is a JSON array of {field, operator, value}.
	Filter string `form:"filter"`
	Expr   string `form:"expr"`
}

// Config converts the request into engine criteria. Every malformed part is
// reported.
func (r ListRequest) Config() (query.Config, error) {
	var errs []error

	stock, ok := query.ParseStockBand(r.Stock)
	if !ok {
		errs = append(errs, fmt.Errorf("stock %q: want low, zero, sufficient or all", r.Stock))
	}

	cfg := query.Config{
		Text:       r.Q,
		State:      r.State,
		Stock:      stock,
		Expression: strings.TrimSpace(r.Expr),
	}
	if field := strings.TrimSpace(r.Sort); field != "" {
		cfg.Sort = &query.Sort{Field: field, Direction: query.ParseDirection(r.Dir)}
	}

	for _, raw := range r.Eq {
		item, err := filter.ParseEq(raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cfg.Conditions = append(cfg.Conditions, item)
	}
	if strings.TrimSpace(r.Filter) != "" {
		var items []filter.Item
		if err := json.Unmarshal([]byte(r.Filter), &items); err != nil {
			errs = append(errs, fmt.Errorf("filter: invalid JSON: %w", err))
		} else {
			cfg.Conditions = append(cfg.Conditions, items...)
		}
	}

	return cfg, errors.Join(errs...)
}
