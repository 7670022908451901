package listing

import (
	"storeadmin/internal/domain/model"
)

// CustomerNames maps customer id to "First Last".
func CustomerNames(customers []model.Customer) map[int64]string {
	out := make(map[int64]string, len(customers))
	for _, c := range customers {
		out[c.ID] = c.FullName()
	}
	return out
}

// UserNames maps user id to user name.
func UserNames(users []model.User) map[int64]string {
	out := make(map[int64]string, len(users))
	for _, u := range users {
		out[u.ID] = u.Name
	}
	return out
}

// SupplierNames maps supplier id to company name.
func SupplierNames(suppliers []model.Supplier) map[int64]string {
	out := make(map[int64]string, len(suppliers))
	for _, s := range suppliers {
		out[s.ID] = s.Company
	}
	return out
}

// ProductNames maps product id to product name.
func ProductNames(products []model.Product) map[int64]string {
	out := make(map[int64]string, len(products))
	for _, p := range products {
		out[p.ID] = p.Name
	}
	return out
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(products []model.Product) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
