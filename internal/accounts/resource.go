// Package accounts declares the accounts resource.
package accounts

import "github.com/odyssey-erp/restkit/internal/resource"

// Table is the backing table.
const Table = "accounts"

// Columns is the full column set in scan order.
var Columns = []string{"id", "username", "password", "customer_id", "agency_id", "created_at", "updated_at"}

// Permitted lists the columns write requests may set.
var Permitted = []string{"username", "password", "customer_id", "agency_id"}

// Filters returns the account filter registry.
func Filters() *resource.Filters {
	return resource.NewFilters(Table).
		Register("customer_id", nil).
		Register("agency_id", nil).
		Register("username", nil).
		Register("first_name", resource.JoinLike(
			"customers ON customers.id = accounts.customer_id",
			"customers.first_name",
		))
}

// Resource returns the accounts resource definition.
func Resource() *resource.Resource {
	return &resource.Resource{
		Name:       "accounts",
		Table:      Table,
		Columns:    Columns,
		Permitted:  Permitted,
		Attributes: []string{"id", "customer_id"},
		Relations: []resource.Relation{
			{Name: "customer", Kind: resource.BelongsTo, Target: "customers", ForeignKey: "customer_id", Required: true},
			{Name: "agency", Kind: resource.BelongsTo, Target: "agencies", ForeignKey: "agency_id"},
		},
		Filters: Filters(),
		New:     func() resource.Record { return &Account{} },
	}
}
