package resource

type widget struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required,max=8"`
	Size    int    `json:"size" validate:"gte=0"`
	OwnerID *int64 `json:"owner_id"`
	Secret  string `json:"secret"`
	Timestamps
}

func (w *widget) PrimaryKey() int64 { return w.ID }

func (w *widget) ScanTargets() []any {
	return []any{&w.ID, &w.Name, &w.Size, &w.OwnerID, &w.Secret, &w.CreatedAt, &w.UpdatedAt}
}

func (w *widget) Value(column string) any {
	switch column {
	case "id":
		return w.ID
	case "name":
		return w.Name
	case "size":
		return w.Size
	case "owner_id":
		return w.OwnerID
	case "secret":
		return w.Secret
	case "created_at":
		return w.CreatedAt
	case "updated_at":
		return w.UpdatedAt
	}
	return nil
}

func widgetResource() *Resource {
	return &Resource{
		Name:       "widgets",
		Table:      "widgets",
		Columns:    []string{"id", "name", "size", "owner_id", "secret", "created_at", "updated_at"},
		Permitted:  []string{"name", "size", "owner_id"},
		Attributes: []string{"id", "name", "size"},
		Relations: []Relation{
			{Name: "owner", Kind: BelongsTo, Target: "owners", ForeignKey: "owner_id"},
		},
		Filters: NewFilters("widgets").Register("name", nil),
		New:     func() Record { return &widget{} },
	}
}
