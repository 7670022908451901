// Package dashboard builds the landing page aggregates of the back office.
package dashboard

import (
	"time"

	"storeadmin/internal/core/types"
	"storeadmin/internal/domain/model"
	"storeadmin/internal/domain/query"
)

// Sizes of the dashboard widgets.
const (
	RecentLimit    = 5
	LowStockLimit  = 5
	SuppliersLimit = 4
)

// --- Sales ---

// SalesSummary aggregates non-cancelled sales.
type SalesSummary struct {
	Total   types.Money `json:"total"`
	Average types.Money `json:"average"`
	// Growth is the percent change of the current month over the previous one.
	Growth float64      `json:"growth"`
	Recent []model.Sale `json:"recent"`
}

// --- Products ---

// ProductsSummary aggregates active products.
type ProductsSummary struct {
	Active     int             `json:"active"`
	StockValue types.Money     `json:"stockValue"`
	LowStock   []model.Product `json:"lowStock"`
}

// --- Buys (administrators only) ---

// BuysSummary aggregates non-cancelled buys.
type BuysSummary struct {
	MonthCount  int         `json:"monthCount"`
	MonthAmount types.Money `json:"monthAmount"`
	Average     types.Money `json:"average"`
	Recent      []model.Buy `json:"recent"`
}

// --- Charts ---

// Charts feeds the sales/buys line chart and the top products chart.
type Charts struct {
	Labels           []string      `json:"labels"`
	Sales            []float64     `json:"sales"`
	Buys             []float64     `json:"buys,omitempty"`
	TopProducts      query.Ranking `json:"topProducts"`
	TopProductsTotal int64         `json:"topProductsTotal"`
}

// Dashboard is the full landing page payload.
type Dashboard struct {
	Role        string          `json:"role"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Sales       SalesSummary    `json:"sales"`
	Products    ProductsSummary `json:"products"`

	Buys      *BuysSummary     `json:"buys,omitempty"`
	Suppliers []model.Supplier `json:"suppliers,omitempty"`
	// Names resolves supplier ids of recent buys (administrators only).
	Names query.Lookups `json:"names,omitempty"`

	Charts Charts `json:"charts"`
}
