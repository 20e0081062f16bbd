package resource

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation    = "23503"
	pgNotNullViolation       = "23502"
	pgInvalidTextRepr        = "22P02"
	mysqlNoReferencedRow     = 1452
	mysqlColumnCannotBeNull  = 1048
	foreignKeyMessage        = "must reference an existing record"
	notNullMessage           = "can't be blank"
	constraintViolationField = "base"
)

// translateError maps driver errors onto the package's error taxonomy.
func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return constraintError(pgErr.ColumnName, foreignKeyMessage)
		case pgNotNullViolation:
			return constraintError(pgErr.ColumnName, notNullMessage)
		case pgInvalidTextRepr:
			return fmt.Errorf("%w: %s", ErrInvalidQuery, pgErr.Message)
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlNoReferencedRow:
			return constraintError("", foreignKeyMessage)
		case mysqlColumnCannotBeNull:
			return constraintError("", notNullMessage)
		}
	}
	return err
}

func constraintError(column, message string) error {
	if column == "" {
		column = constraintViolationField
	}
	verr := NewValidationError()
	verr.Add(column, message)
	return verr
}
