package customers

import "github.com/odyssey-erp/restkit/internal/resource"

// Customer owns accounts and addresses.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name" validate:"required,max=255"`
	LastName  string `json:"last_name" validate:"max=255"`
	Email     string `json:"email" validate:"omitempty,email,max=255"`
	resource.Timestamps
}

// PrimaryKey implements resource.Record.
func (c *Customer) PrimaryKey() int64 { return c.ID }

// ScanTargets implements resource.Record in Columns order.
func (c *Customer) ScanTargets() []any {
	return []any{&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.CreatedAt, &c.UpdatedAt}
}

// Value implements resource.Record.
func (c *Customer) Value(column string) any {
	switch column {
	case "id":
		return c.ID
	case "first_name":
		return c.FirstName
	case "last_name":
		return c.LastName
	case "email":
		return c.Email
	case "created_at":
		return c.CreatedAt
	case "updated_at":
		return c.UpdatedAt
	}
	return nil
}
