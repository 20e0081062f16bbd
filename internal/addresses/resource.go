// Package addresses declares the addresses resource.
package addresses

import "github.com/odyssey-erp/restkit/internal/resource"

// Table is the backing table.
const Table = "addresses"

// Columns is the full column set in scan order.
var Columns = []string{"id", "line1", "line2", "subdivision", "postal_code", "customer_id", "created_at", "updated_at"}

// Permitted lists the columns write requests may set.
var Permitted = []string{"line1", "line2", "subdivision", "postal_code", "customer_id"}

// Resource returns the addresses resource definition.
func Resource() *resource.Resource {
	return &resource.Resource{
		Name:       "addresses",
		Table:      Table,
		Columns:    Columns,
		Permitted:  Permitted,
		Attributes: []string{"id", "line1", "line2", "subdivision", "postal_code", "customer_id"},
		Relations: []resource.Relation{
			{Name: "customer", Kind: resource.BelongsTo, Target: "customers", ForeignKey: "customer_id", Required: true},
		},
		Filters: resource.NewFilters(Table).
			Register("customer_id", nil).
			Register("postal_code", nil).
			Register("subdivision", nil),
		New: func() resource.Record { return &Address{} },
	}
}
