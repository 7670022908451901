package model

import (
	"time"

	"storeadmin/internal/core/types"
)

// Buy status codes.
const (
	BuyStatusReceived  = "R"
	BuyStatusCancelled = "C"
)

// BuyStatusName returns the display name for a buy status code.
func BuyStatusName(code string) string {
	switch code {
	case BuyStatusReceived:
		return "Received"
	case BuyStatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Buy is a purchase from a supplier.
type Buy struct {
	ID            int64                      `json:"identifier"`
	Code          types.Opt[string]          `json:"code"`
	BuysDate      types.Opt[types.Timestamp] `json:"buysDate"`
	TotalPrice    types.Opt[types.Money]     `json:"totalPrice"`
	UserID        int64                      `json:"user_identifier"`
	SupplierID    int64                      `json:"supplier_identifier"`
	PaymentMethod string                     `json:"payment_method"`
	Status        string                     `json:"status"`
	Details       []BuyDetail                `json:"details"`
}

// BuyDetail is one product line of a buy.
type BuyDetail struct {
	ID          int64                  `json:"identifier"`
	Amount      int64                  `json:"amount"`
	UnitCost    types.Money            `json:"unitCost"`
	Subtotal    types.Opt[types.Money] `json:"subtotal"`
	ProductID   int64                  `json:"product_identifier"`
	ProductName types.Opt[string]      `json:"productName"`
}

// IsCancelled reports whether the buy was cancelled.
func (b Buy) IsCancelled() bool { return b.Status == BuyStatusCancelled }

// TotalOrZero returns the buy total, treating a missing value as 0.
func (b Buy) TotalOrZero() types.Money { return b.TotalPrice.Or(types.Zero()) }

// BoughtAt returns the purchase instant, or the epoch when missing.
func (b Buy) BoughtAt() time.Time { return types.InstantOr(b.BuysDate) }
