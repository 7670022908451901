package query

// Reference table names.
const (
	LookupCustomer = "customer"
	LookupUser     = "user"
	LookupSupplier = "supplier"
	LookupProduct  = "product"
)

// Lookups maps reference table name -> id -> display name.
// A nil Lookups resolves nothing.
type Lookups map[string]map[int64]string

// Name resolves id in table.
func (l Lookups) Name(table string, id int64) (string, bool) {
	names, ok := l[table]
	if !ok {
		return "", false
	}
	name, ok := names[id]
	return name, ok
}

// Table returns the id -> name map of table, or nil.
func (l Lookups) Table(table string) map[int64]string {
	return l[table]
}

// Set stores a table, allocating the outer map if needed.
func (l *Lookups) Set(table string, names map[int64]string) {
	if *l == nil {
		*l = make(Lookups)
	}
	(*l)[table] = names
}
