// Package agencies declares the agencies resource.
package agencies

import "github.com/odyssey-erp/restkit/internal/resource"

// Table is the backing table.
const Table = "agencies"

// Resource returns the agencies resource definition.
func Resource() *resource.Resource {
	return &resource.Resource{
		Name:       "agencies",
		Table:      Table,
		Columns:    []string{"id", "name", "created_at", "updated_at"},
		Permitted:  []string{"name"},
		Attributes: []string{"id", "name"},
		Relations: []resource.Relation{
			{Name: "accounts", Kind: resource.HasMany, Target: "accounts", ForeignKey: "agency_id"},
		},
		Filters: resource.NewFilters(Table).
			Register("name", resource.Like("agencies.name")),
		New: func() resource.Record { return &Agency{} },
	}
}
