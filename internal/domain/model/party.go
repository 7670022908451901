package model

import (
	"storeadmin/internal/core/types"
)

// Supplier provides products.
type Supplier struct {
	ID         int64  `json:"identifier"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	SupplyType string `json:"supply_type"`
	Address    string `json:"address"`
	Email      string `json:"email_business"`
	Cellular   string `json:"cellular"`
	RUC        string `json:"ruc"`
	State      string `json:"state"`
}

// Customer buys products.
type Customer struct {
	ID               int64                      `json:"identifier"`
	Code             types.Opt[string]          `json:"code"`
	FirstName        string                     `json:"firstName"`
	LastName         string                     `json:"lastName"`
	DocumentType     string                     `json:"documentType"`
	DocumentNumber   string                     `json:"documentNumber"`
	Cellphone        string                     `json:"cellphone"`
	Email            string                     `json:"email"`
	BirthDate        types.Opt[types.Timestamp] `json:"birthDate"`
	Gender           string                     `json:"gender"`
	RegistrationDate types.Opt[types.Timestamp] `json:"registrationDate"`
	State            string                     `json:"state"`
}

// FullName is "First Last".
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// User is a back office account.
type User struct {
	ID               int64                      `json:"identifier"`
	Name             string                     `json:"name"`
	Email            string                     `json:"email"`
	Role             string                     `json:"rol"`
	RegistrationDate types.Opt[types.Timestamp] `json:"registration_date"`
	State            string                     `json:"state"`
}
