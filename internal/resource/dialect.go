package resource

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Dialect captures the SQL differences between supported engines.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat
	// Returning reports whether INSERT ... RETURNING id is available.
	Returning bool
}

// Supported engines.
var (
	Postgres = Dialect{Name: "postgres", Placeholder: sq.Dollar, Returning: true}
	MySQL    = Dialect{Name: "mysql", Placeholder: sq.Question}
	SQLite   = Dialect{Name: "sqlite", Placeholder: sq.Question, Returning: true}
)

// DialectFor returns the dialect of a configured engine name.
func DialectFor(engine string) (Dialect, error) {
	switch engine {
	case Postgres.Name:
		return Postgres, nil
	case MySQL.Name:
		return MySQL, nil
	case SQLite.Name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("resource: unsupported engine %q", engine)
	}
}
