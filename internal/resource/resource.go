// Package resource implements the generic filter, paginate and serialize
// pipeline shared by every route-addressable collection.
package resource

import "time"

// Record is one persisted entity. ScanTargets must follow the order of
// the owning Resource's Columns.
type Record interface {
	PrimaryKey() int64
	ScanTargets() []any
	Value(column string) any
}

// BeforeSaver is implemented by records that normalise fields before
// they are written. changed lists the permitted fields set by the request.
type BeforeSaver interface {
	BeforeSave(changed []string) error
}

// Timestamped is implemented by records that track creation and update times.
type Timestamped interface {
	Touch(now time.Time, created bool)
}

// Timestamps is embedded by records with created_at and updated_at columns.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch implements Timestamped.
func (t *Timestamps) Touch(now time.Time, created bool) {
	if created {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// RelationKind distinguishes the owning side of a relationship.
type RelationKind int

const (
	// BelongsTo means the record holds the foreign key.
	BelongsTo RelationKind = iota
	// HasMany means related records hold a foreign key to this record.
	HasMany
)

// Relation declares a relationship of a resource to another resource.
type Relation struct {
	Name       string
	Kind       RelationKind
	Target     string
	ForeignKey string
	Required   bool
}

// Resource describes one route-addressable collection.
type Resource struct {
	// Name is the route segment, e.g. "accounts".
	Name  string
	Table string
	// Columns is the full column set in scan order, starting with the primary key.
	Columns []string
	// Permitted lists the columns a write request may set.
	Permitted []string
	// Attributes lists the columns emitted by the serializer.
	Attributes []string
	Relations  []Relation
	Filters    *Filters
	New        func() Record
}

// ParamKey returns the body key write requests nest their fields under.
func (r *Resource) ParamKey() string {
	return Singularize(r.Name)
}

// TypeName returns the entity type name, e.g. "Account".
func (r *Resource) TypeName() string {
	return TypeName(r.Name)
}

// Relation returns the relation declared under name.
func (r *Resource) Relation(name string) (Relation, bool) {
	for _, rel := range r.Relations {
		if rel.Name == name {
			return rel, true
		}
	}
	return Relation{}, false
}

// Permits reports whether column may be written from a request.
func (r *Resource) Permits(column string) bool {
	for _, c := range r.Permitted {
		if c == column {
			return true
		}
	}
	return false
}

func (r *Resource) qualifiedColumns() []string {
	cols := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		cols[i] = qualify(r.Table, c)
	}
	return cols
}
