package listing

import (
	"time"

	"storeadmin/internal/core/types"
	"storeadmin/internal/domain/model"
	"storeadmin/internal/domain/query"
)

// UnknownName labels references missing from the lookup tables.
const UnknownName = "Unknown"

// Field names follow the backend JSON keys so that the UI can pass column ids
// straight through as sort and filter fields.

func ProductSchema() *query.Schema[model.Product] {
	return query.NewSchema("product",
		query.Integer("identifier", func(p model.Product) int64 { return p.ID }),
		query.Text("name", func(p model.Product) string { return p.Name }),
		query.Text("description", func(p model.Product) string { return p.Description }),
		query.Text("size", func(p model.Product) string { return p.Size.OrZero() }),
		query.Integer("stock", model.Product.StockOrZero),
		query.Number("price", model.Product.PriceOrZero),
		query.Time("expiration_date", func(p model.Product) time.Time { return types.InstantOr(p.ExpirationDate) }),
		query.Text("category", func(p model.Product) string { return p.Category }),
		query.Text("state", func(p model.Product) string { return p.State }),
	).
		Searchable("name", "description", "category").
		WithState(func(p model.Product) string { return p.State }).
		WithStock(model.Product.StockOrZero)
}

func SaleSchema() *query.Schema[model.Sale] {
	return query.NewSchema("sale",
		query.Integer("identifier", func(s model.Sale) int64 { return s.ID }),
		query.Text("code", func(s model.Sale) string { return s.Code.OrZero() }),
		query.Time("issueDate", model.Sale.IssuedAt),
		query.Text("paymentMethod", func(s model.Sale) string { return s.PaymentMethod }),
		query.Number("total", model.Sale.TotalOrZero),
		query.Ref("customerIdentifier", query.LookupCustomer, UnknownName, func(s model.Sale) int64 { return s.CustomerID }),
		query.Ref("userIdentifier", query.LookupUser, UnknownName, func(s model.Sale) int64 { return s.UserID }),
		// filtered by code, sorted by the name shown in the list
		query.Text("state", func(s model.Sale) string { return s.State }).Labeled(model.SaleStateName),
	).
		Searchable("code").
		WithState(func(s model.Sale) string { return s.State })
}

func BuySchema() *query.Schema[model.Buy] {
	return query.NewSchema("buy",
		query.Integer("identifier", func(b model.Buy) int64 { return b.ID }),
		query.Text("code", func(b model.Buy) string { return b.Code.OrZero() }),
		query.Time("buysDate", model.Buy.BoughtAt),
		query.Number("totalPrice", model.Buy.TotalOrZero),
		query.Ref("supplier_identifier", query.LookupSupplier, UnknownName, func(b model.Buy) int64 { return b.SupplierID }),
		query.Ref("user_identifier", query.LookupUser, UnknownName, func(b model.Buy) int64 { return b.UserID }),
		query.Text("payment_method", func(b model.Buy) string { return b.PaymentMethod }),
		query.Text("status", func(b model.Buy) string { return b.Status }).Labeled(model.BuyStatusName),
	).
		Searchable("code").
		WithState(func(b model.Buy) string { return b.Status })
}

func SupplierSchema() *query.Schema[model.Supplier] {
	return query.NewSchema("supplier",
		query.Integer("identifier", func(s model.Supplier) int64 { return s.ID }),
		query.Text("name", func(s model.Supplier) string { return s.Name }),
		query.Text("company", func(s model.Supplier) string { return s.Company }),
		query.Text("supply_type", func(s model.Supplier) string { return s.SupplyType }),
		query.Text("address", func(s model.Supplier) string { return s.Address }),
		query.Text("email_business", func(s model.Supplier) string { return s.Email }),
		query.Text("cellular", func(s model.Supplier) string { return s.Cellular }),
		query.Text("ruc", func(s model.Supplier) string { return s.RUC }),
		query.Text("state", func(s model.Supplier) string { return s.State }),
	).
		Searchable("name", "company", "ruc").
		WithState(func(s model.Supplier) string { return s.State })
}

func CustomerSchema() *query.Schema[model.Customer] {
	return query.NewSchema("customer",
		query.Integer("identifier", func(c model.Customer) int64 { return c.ID }),
		query.Text("code", func(c model.Customer) string { return c.Code.OrZero() }),
		query.Text("firstName", func(c model.Customer) string { return c.FirstName }),
		query.Text("lastName", func(c model.Customer) string { return c.LastName }),
		query.Text("documentType", func(c model.Customer) string { return c.DocumentType }),
		query.Text("documentNumber", func(c model.Customer) string { return c.DocumentNumber }),
		query.Text("cellphone", func(c model.Customer) string { return c.Cellphone }),
		query.Text("email", func(c model.Customer) string { return c.Email }),
		query.Time("birthDate", func(c model.Customer) time.Time { return types.InstantOr(c.BirthDate) }),
		query.Text("gender", func(c model.Customer) string { return c.Gender }),
		query.Time("registrationDate", func(c model.Customer) time.Time { return types.InstantOr(c.RegistrationDate) }),
		query.Text("state", func(c model.Customer) string { return c.State }),
	).
		Searchable("firstName", "lastName", "documentNumber", "email").
		WithState(func(c model.Customer) string { return c.State })
}

func UserSchema() *query.Schema[model.User] {
	return query.NewSchema("user",
		query.Integer("identifier", func(u model.User) int64 { return u.ID }),
		query.Text("name", func(u model.User) string { return u.Name }),
		query.Text("email", func(u model.User) string { return u.Email }),
		query.Text("rol", func(u model.User) string { return u.Role }),
		query.Time("registration_date", func(u model.User) time.Time { return types.InstantOr(u.RegistrationDate) }),
		query.Text("state", func(u model.User) string { return u.State }),
	).
		Searchable("name", "email").
		WithState(func(u model.User) string { return u.State })
}
