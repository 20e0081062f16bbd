package addresses

import "github.com/odyssey-erp/restkit/internal/resource"

// Address is a postal address of one customer.
type Address struct {
	ID          int64  `json:"id"`
	Line1       string `json:"line1" validate:"required,max=255"`
	Line2       string `json:"line2" validate:"max=255"`
	Subdivision string `json:"subdivision" validate:"max=255"`
	PostalCode  string `json:"postal_code" validate:"required,max=32"`
	CustomerID  *int64 `json:"customer_id" validate:"required"`
	resource.Timestamps
}

// PrimaryKey implements resource.Record.
func (a *Address) PrimaryKey() int64 { return a.ID }

// ScanTargets implements resource.Record in Columns order.
func (a *Address) ScanTargets() []any {
	return []any{&a.ID, &a.Line1, &a.Line2, &a.Subdivision, &a.PostalCode, &a.CustomerID, &a.CreatedAt, &a.UpdatedAt}
}

// Value implements resource.Record.
func (a *Address) Value(column string) any {
	switch column {
	case "id":
		return a.ID
	case "line1":
		return a.Line1
	case "line2":
		return a.Line2
	case "subdivision":
		return a.Subdivision
	case "postal_code":
		return a.PostalCode
	case "customer_id":
		return a.CustomerID
	case "created_at":
		return a.CreatedAt
	case "updated_at":
		return a.UpdatedAt
	}
	return nil
}
