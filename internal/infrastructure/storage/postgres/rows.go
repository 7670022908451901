package postgres

import (
	"time"

	"storeadmin/internal/core/types"
	"storeadmin/internal/domain/model"
)

// Row types mirror the replica tables. Nullable columns are pointers and
// become types.Opt on the way out.

type productRow struct {
	ID             int64        `db:"identifier"`
	Name           string       `db:"name"`
	Description    *string      `db:"description"`
	Size           *string      `db:"size"`
	Stock          *int64       `db:"stock"`
	Price          *types.Money `db:"price"`
	ExpirationDate *time.Time   `db:"expiration_date"`
	Category       *string      `db:"category"`
	State          string       `db:"state"`
}

func (r productRow) model() model.Product {
	return model.Product{
		ID:             r.ID,
		Name:           r.Name,
		Description:    deref(r.Description),
		Size:           types.FromPtr(r.Size),
		Stock:          types.FromPtr(r.Stock),
		Price:          types.FromPtr(r.Price),
		ExpirationDate: timestamp(r.ExpirationDate),
		Category:       deref(r.Category),
		State:          r.State,
	}
}

type saleRow struct {
	ID            int64        `db:"identifier"`
	Code          *string      `db:"code"`
	IssueDate     *time.Time   `db:"issue_date"`
	PaymentMethod *string      `db:"payment_method"`
	Total         *types.Money `db:"total"`
	CustomerID    int64        `db:"customer_identifier"`
	UserID        int64        `db:"user_identifier"`
	State         string       `db:"state"`
}

func (r saleRow) model(details []model.SaleDetail) model.Sale {
	return model.Sale{
		ID:            r.ID,
		Code:          types.FromPtr(r.Code),
		IssueDate:     timestamp(r.IssueDate),
		PaymentMethod: deref(r.PaymentMethod),
		Total:         types.FromPtr(r.Total),
		CustomerID:    r.CustomerID,
		UserID:        r.UserID,
		State:         r.State,
		Details:       details,
	}
}

type saleDetailRow struct {
	ID           int64        `db:"identifier"`
	SaleID       int64        `db:"sale_identifier"`
	Amount       int64        `db:"amount"`
	Subtotal     *types.Money `db:"subtotal"`
	ProductID    int64        `db:"product_identifier"`
	ProductName  *string      `db:"product_name"`
	ProductPrice *types.Money `db:"product_price"`
}

func (r saleDetailRow) model() model.SaleDetail {
	return model.SaleDetail{
		ID:           r.ID,
		Amount:       r.Amount,
		Subtotal:     types.FromPtr(r.Subtotal),
		ProductID:    r.ProductID,
		ProductName:  types.FromPtr(r.ProductName),
		ProductPrice: types.FromPtr(r.ProductPrice),
	}
}

type buyRow struct {
	ID            int64        `db:"identifier"`
	Code          *string      `db:"code"`
	BuysDate      *time.Time   `db:"buys_date"`
	TotalPrice    *types.Money `db:"total_price"`
	UserID        int64        `db:"user_identifier"`
	SupplierID    int64        `db:"supplier_identifier"`
	PaymentMethod *string      `db:"payment_method"`
	Status        string       `db:"status"`
}

func (r buyRow) model(details []model.BuyDetail) model.Buy {
	return model.Buy{
		ID:            r.ID,
		Code:          types.FromPtr(r.Code),
		BuysDate:      timestamp(r.BuysDate),
		TotalPrice:    types.FromPtr(r.TotalPrice),
		UserID:        r.UserID,
		SupplierID:    r.SupplierID,
		PaymentMethod: deref(r.PaymentMethod),
		Status:        r.Status,
		Details:       details,
	}
}

type buyDetailRow struct {
	ID          int64        `db:"identifier"`
	BuyID       int64        `db:"buy_identifier"`
	Amount      int64        `db:"amount"`
	UnitCost    types.Money  `db:"unit_cost"`
	Subtotal    *types.Money `db:"subtotal"`
	ProductID   int64        `db:"product_identifier"`
	ProductName *string      `db:"product_name"`
}

func (r buyDetailRow) model() model.BuyDetail {
	return model.BuyDetail{
		ID:          r.ID,
		Amount:      r.Amount,
		UnitCost:    r.UnitCost,
		Subtotal:    types.FromPtr(r.Subtotal),
		ProductID:   r.ProductID,
		ProductName: types.FromPtr(r.ProductName),
	}
}

type supplierRow struct {
	ID         int64   `db:"identifier"`
	Name       string  `db:"name"`
	Company    *string `db:"company"`
	SupplyType *string `db:"supply_type"`
	Address    *string `db:"address"`
	Email      *string `db:"email_business"`
	Cellular   *string `db:"cellular"`
	RUC        *string `db:"ruc"`
	State      string  `db:"state"`
}

func (r supplierRow) model() model.Supplier {
	return model.Supplier{
		ID:         r.ID,
		Name:       r.Name,
		Company:    deref(r.Company),
		SupplyType: deref(r.SupplyType),
		Address:    deref(r.Address),
		Email:      deref(r.Email),
		Cellular:   deref(r.Cellular),
		RUC:        deref(r.RUC),
		State:      r.State,
	}
}

type customerRow struct {
	ID               int64      `db:"identifier"`
	Code             *string    `db:"code"`
	FirstName        string     `db:"first_name"`
	LastName         string     `db:"last_name"`
	DocumentType     *string    `db:"document_type"`
	DocumentNumber   *string    `db:"document_number"`
	Cellphone        *string    `db:"cellphone"`
	Email            *string    `db:"email"`
	BirthDate        *time.Time `db:"birth_date"`
	Gender           *string    `db:"gender"`
	RegistrationDate *time.Time `db:"registration_date"`
	State            string     `db:"state"`
}

func (r customerRow) model() model.Customer {
	return model.Customer{
		ID:               r.ID,
		Code:             types.FromPtr(r.Code),
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		DocumentType:     deref(r.DocumentType),
		DocumentNumber:   deref(r.DocumentNumber),
		Cellphone:        deref(r.Cellphone),
		Email:            deref(r.Email),
		BirthDate:        timestamp(r.BirthDate),
		Gender:           deref(r.Gender),
		RegistrationDate: timestamp(r.RegistrationDate),
		State:            r.State,
	}
}

type userRow struct {
	ID               int64      `db:"identifier"`
	Name             string     `db:"name"`
	Email            *string    `db:"email"`
	Role             string     `db:"rol"`
	RegistrationDate *time.Time `db:"registration_date"`
	State            string     `db:"state"`
}

func (r userRow) model() model.User {
	return model.User{
		ID:               r.ID,
		Name:             r.Name,
		Email:            deref(r.Email),
		Role:             r.Role,
		RegistrationDate: timestamp(r.RegistrationDate),
		State:            r.State,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timestamp(t *time.Time) types.Opt[types.Timestamp] {
	if t == nil {
		return types.None[types.Timestamp]()
	}
	return types.Some(types.NewTimestamp(*t))
}
