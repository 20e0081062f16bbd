package resource

import (
	"sort"

	sq "github.com/Masterminds/squirrel"
)

// Predicate narrows a select with a raw filter value taken from the request.
type Predicate func(q sq.SelectBuilder, value string) sq.SelectBuilder

// Filters maps filter keys to predicates for one resource.
// A Filters value is built at startup and only read afterwards.
type Filters struct {
	table      string
	predicates map[string]Predicate
}

// NewFilters returns an empty registry whose default predicates qualify columns with table.
func NewFilters(table string) *Filters {
	return &Filters{table: table, predicates: map[string]Predicate{}}
}

// Register installs pred under key. A nil pred means equality on the
// column named key.
func (f *Filters) Register(key string, pred Predicate) *Filters {
	if pred == nil {
		pred = Equal(qualify(f.table, key))
	}
	f.predicates[key] = pred
	return f
}

// Lookup returns the predicate registered for key.
func (f *Filters) Lookup(key string) (Predicate, bool) {
	if f == nil {
		return nil, false
	}
	pred, ok := f.predicates[key]
	return pred, ok
}

// Keys returns the registered keys in lexical order.
func (f *Filters) Keys() []string {
	if f == nil {
		return nil
	}
	keys := make([]string, 0, len(f.predicates))
	for key := range f.predicates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Extend copies the registry so a derived resource can add filters
// without touching its parent.
func (f *Filters) Extend(table string) *Filters {
	out := NewFilters(table)
	if f != nil {
		for key, pred := range f.predicates {
			out.predicates[key] = pred
		}
	}
	return out
}

// Equal matches rows whose column equals the raw value.
func Equal(column string) Predicate {
	return func(q sq.SelectBuilder, value string) sq.SelectBuilder {
		return q.Where(sq.Eq{column: value})
	}
}

// Like matches rows whose column contains the value.
func Like(column string) Predicate {
	return func(q sq.SelectBuilder, value string) sq.SelectBuilder {
		return q.Where(sq.Like{column: "%" + value + "%"})
	}
}

// JoinLike joins another table and matches a substring on one of its columns.
func JoinLike(join, column string) Predicate {
	like := Like(column)
	return func(q sq.SelectBuilder, value string) sq.SelectBuilder {
		return like(q.Join(join), value)
	}
}

func qualify(table, column string) string {
	if table == "" {
		return column
	}
	return table + "." + column
}
