package model

import (
	"time"

	"storeadmin/internal/core/types"
)

// Sale state codes.
const (
	SaleStatePending   = "P"
	SaleStateCompleted = "F"
	SaleStateCancelled = "C"
)

// SaleStateName returns the display name for a sale state code.
func SaleStateName(code string) string {
	switch code {
	case SaleStatePending:
		return "Pending"
	case SaleStateCompleted:
		return "Completed"
	case SaleStateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Sale is a customer sale with its line items.
type Sale struct {
	ID            int64                      `json:"identifier"`
	Code          types.Opt[string]          `json:"code"`
	IssueDate     types.Opt[types.Timestamp] `json:"issueDate"`
	PaymentMethod string                     `json:"paymentMethod"`
	Total         types.Opt[types.Money]     `json:"total"`
	CustomerID    int64                      `json:"customerIdentifier"`
	CustomerName  types.Opt[string]          `json:"customerName"`
	UserID        int64                      `json:"userIdentifier"`
	UserName      types.Opt[string]          `json:"userName"`
	State         string                     `json:"state"`
	Details       []SaleDetail               `json:"details"`
}

// SaleDetail is one product line of a sale.
type SaleDetail struct {
	ID           int64                  `json:"identifier"`
	Amount       int64                  `json:"amount"`
	Subtotal     types.Opt[types.Money] `json:"subtotal"`
	ProductID    int64                  `json:"productIdentifier"`
	ProductName  types.Opt[string]      `json:"productName"`
	ProductPrice types.Opt[types.Money] `json:"productPrice"`
}

// IsCancelled reports whether the sale was cancelled.
func (s Sale) IsCancelled() bool { return s.State == SaleStateCancelled }

// TotalOrZero returns the sale total, treating a missing value as 0.
func (s Sale) TotalOrZero() types.Money { return s.Total.Or(types.Zero()) }

// IssuedAt returns the issue instant, or the epoch when missing.
func (s Sale) IssuedAt() time.Time { return types.InstantOr(s.IssueDate) }
