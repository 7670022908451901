// Package model holds the records served by the business backend.
// Fields the backend may omit are types.Opt so that fallbacks stay explicit.
package model

import (
	"storeadmin/internal/core/types"
)

// Catalog state codes shared by products, suppliers, customers and users.
const (
	StateActive   = "A"
	StateInactive = "I"
)

// Stock thresholds used by list filters and the dashboard.
const (
	LowStockMax          = 5
	DashboardLowStockMax = 9
)

// Product is a sellable item.
type Product struct {
	ID             int64                      `json:"identifier"`
	Name           string                     `json:"name"`
	Description    string                     `json:"description"`
	Size           types.Opt[string]          `json:"size"`
	Stock          types.Opt[int64]           `json:"stock"`
	Price          types.Opt[types.Money]     `json:"price"`
	ExpirationDate types.Opt[types.Timestamp] `json:"expiration_date"`
	Category       string                     `json:"category"`
	State          string                     `json:"state"`
}

// StockOrZero returns the stock, treating a missing value as 0.
func (p Product) StockOrZero() int64 { return p.Stock.Or(0) }

// PriceOrZero returns the unit price, treating a missing value as 0.
func (p Product) PriceOrZero() types.Money { return p.Price.Or(types.Zero()) }

// IsActive reports whether the product is not deactivated.
func (p Product) IsActive() bool { return p.State == StateActive }

// StockValue is stock multiplied by unit price.
func (p Product) StockValue() types.Money {
	return p.PriceOrZero().Mul(types.MoneyFromInt(p.StockOrZero()))
}
