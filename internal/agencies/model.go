package agencies

import "github.com/odyssey-erp/restkit/internal/resource"

// Agency groups accounts opened through it.
type Agency struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=255"`
	resource.Timestamps
}

// PrimaryKey implements resource.Record.
func (a *Agency) PrimaryKey() int64 { return a.ID }

// ScanTargets implements resource.Record in Columns order.
func (a *Agency) ScanTargets() []any {
	return []any{&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt}
}

// Value implements resource.Record.
func (a *Agency) Value(column string) any {
	switch column {
	case "id":
		return a.ID
	case "name":
		return a.Name
	case "created_at":
		return a.CreatedAt
	case "updated_at":
		return a.UpdatedAt
	}
	return nil
}
