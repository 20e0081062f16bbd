// Package customers declares the customers resource, the owning side of
// accounts and addresses.
package customers

import "github.com/odyssey-erp/restkit/internal/resource"

// Table is the backing table.
const Table = "customers"

// Columns is the full column set in scan order.
var Columns = []string{"id", "first_name", "last_name", "email", "created_at", "updated_at"}

// Permitted lists the columns write requests may set.
var Permitted = []string{"first_name", "last_name", "email"}

// Resource returns the customers resource definition.
func Resource() *resource.Resource {
	return &resource.Resource{
		Name:       "customers",
		Table:      Table,
		Columns:    Columns,
		Permitted:  Permitted,
		Attributes: []string{"id", "first_name", "last_name", "email"},
		Relations: []resource.Relation{
			{Name: "accounts", Kind: resource.HasMany, Target: "accounts", ForeignKey: "customer_id"},
			{Name: "addresses", Kind: resource.HasMany, Target: "addresses", ForeignKey: "customer_id"},
		},
		Filters: resource.NewFilters(Table).
			Register("email", nil).
			Register("first_name", resource.Like("customers.first_name")).
			Register("last_name", resource.Like("customers.last_name")),
		New: func() resource.Record { return &Customer{} },
	}
}
