// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"
	"slices"

	"storeadmin/internal/domain/model"
)

// Entity names a backend collection.
type Entity string

const (
	EntityProduct  Entity = "product"
	EntitySale     Entity = "sale"
	EntityBuy      Entity = "buy"
	EntitySupplier Entity = "supplier"
	EntityCustomer Entity = "customer"
	EntityUser     Entity = "user"
)

// Action is a state transition requested from a list.
type Action string

const (
	ActionDelete     Action = "delete"
	ActionRestore    Action = "restore"
	ActionComplete   Action = "complete"
	ActionDeactivate Action = "deactivate"
)

// transitions lists the actions each entity supports.
var transitions = map[Entity][]Action{
	EntityProduct:  {ActionDelete, ActionRestore},
	EntitySale:     {ActionDelete, ActionRestore, ActionComplete},
	EntityBuy:      {ActionDelete, ActionRestore},
	EntitySupplier: {ActionDelete, ActionRestore},
	EntityCustomer: {ActionDelete, ActionRestore},
	EntityUser:     {ActionDeactivate, ActionRestore},
}

// ParseEntity accepts singular and plural collection names ("products", "sale").
func ParseEntity(s string) (Entity, error) {
	switch s {
	case "product", "products":
		return EntityProduct, nil
	case "sale", "sales":
		return EntitySale, nil
	case "buy", "buys":
		return EntityBuy, nil
	case "supplier", "suppliers":
		return EntitySupplier, nil
	case "customer", "customers":
		return EntityCustomer, nil
	case "user", "users":
		return EntityUser, nil
	}
	return "", fmt.Errorf("unknown entity %q", s)
}

// Supports reports whether entity accepts action.
func (e Entity) Supports(action Action) bool {
	return slices.Contains(transitions[e], action)
}

// AdminOnly reports whether only administrators may see or change entity.
func (e Entity) AdminOnly() bool {
	switch e {
	case EntityBuy, EntitySupplier, EntityUser:
		return true
	}
	return false
}

// --- Data access ---

// Source reads whole collections from the backend. Implementations return
// records in backend order.
type Source interface {
	Products(ctx context.Context) ([]model.Product, error)
	Sales(ctx context.Context) ([]model.Sale, error)
	Buys(ctx context.Context) ([]model.Buy, error)
	Suppliers(ctx context.Context) ([]model.Supplier, error)
	Customers(ctx context.Context) ([]model.Customer, error)
	Users(ctx context.Context) ([]model.User, error)
}

// Mutator asks the backend to apply a state transition.
// Only data sources that can write implement it.
type Mutator interface {
	Transition(ctx context.Context, entity Entity, id int64, action Action) error
}
