package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/odyssey-erp/restkit/internal/platform/db"
)

const (
	columnID        = "id"
	columnCreatedAt = "created_at"
	columnUpdatedAt = "updated_at"
)

// Store runs the pipeline's statements against one database.
type Store struct {
	db      *sql.DB
	runner  sq.BaseRunner
	dialect Dialect
	builder sq.StatementBuilderType
	now     func() time.Time
}

// NewStore binds a store to db using dialect's placeholders.
func NewStore(conn *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      conn,
		runner:  conn,
		dialect: dialect,
		builder: sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder).RunWith(conn),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Dialect returns the store's dialect.
func (s *Store) Dialect() Dialect {
	return s.dialect
}

// Base returns the unfiltered select over res. Columns are added when the query runs.
func (s *Store) Base(res *Resource) sq.SelectBuilder {
	return s.builder.Select().From(res.Table)
}

// Count implements Counter.
func (s *Store) Count(ctx context.Context, q sq.SelectBuilder) (int, error) {
	var total int
	if err := q.Columns("COUNT(*)").RunWith(s.runner).QueryRowContext(ctx).Scan(&total); err != nil {
		return 0, fmt.Errorf("resource/store: count: %w", translateError(err))
	}
	return total, nil
}

// Select runs q and scans every row into records of res, ordered by primary key.
func (s *Store) Select(ctx context.Context, res *Resource, q sq.SelectBuilder) ([]Record, error) {
	rows, err := q.Columns(res.qualifiedColumns()...).
		OrderBy(qualify(res.Table, columnID) + " ASC").
		RunWith(s.runner).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("resource/store: select %s: %w", res.Table, translateError(err))
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec := res.New()
		if err := rows.Scan(rec.ScanTargets()...); err != nil {
			return nil, fmt.Errorf("resource/store: scan %s: %w", res.Table, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resource/store: iterate %s: %w", res.Table, err)
	}
	return records, nil
}

// First returns the first record matched by q.
func (s *Store) First(ctx context.Context, res *Resource, q sq.SelectBuilder) (Record, error) {
	records, err := s.Select(ctx, res, q.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// Get loads the record of res with primary key id.
func (s *Store) Get(ctx context.Context, res *Resource, id int64) (Record, error) {
	rec, err := s.First(ctx, res, s.Base(res).Where(sq.Eq{qualify(res.Table, columnID): id}))
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %s %d", ErrNotFound, res.TypeName(), id)
	}
	return rec, err
}

// Exists reports whether res has a record with primary key id.
func (s *Store) Exists(ctx context.Context, res *Resource, id int64) (bool, error) {
	total, err := s.Count(ctx, s.Base(res).Where(sq.Eq{qualify(res.Table, columnID): id}))
	if err != nil {
		return false, err
	}
	return total > 0, nil
}

// SelectWhere loads every record of res whose column equals value.
func (s *Store) SelectWhere(ctx context.Context, res *Resource, column string, value any) ([]Record, error) {
	return s.Select(ctx, res, s.Base(res).Where(sq.Eq{qualify(res.Table, column): value}))
}

// Insert writes rec and returns its new primary key.
func (s *Store) Insert(ctx context.Context, res *Resource, rec Record) (int64, error) {
	if ts, ok := rec.(Timestamped); ok {
		ts.Touch(s.now(), true)
	}
	values := s.writeValues(res, rec, true)
	insert := s.builder.Insert(res.Table).SetMap(values).RunWith(s.runner)

	if s.dialect.Returning {
		var id int64
		if err := insert.Suffix("RETURNING " + columnID).QueryRowContext(ctx).Scan(&id); err != nil {
			return 0, fmt.Errorf("resource/store: insert %s: %w", res.Table, translateError(err))
		}
		return id, nil
	}

	result, err := insert.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("resource/store: insert %s: %w", res.Table, translateError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resource/store: insert %s: last insert id: %w", res.Table, err)
	}
	return id, nil
}

// Update writes the permitted columns of rec.
func (s *Store) Update(ctx context.Context, res *Resource, rec Record) error {
	if ts, ok := rec.(Timestamped); ok {
		ts.Touch(s.now(), false)
	}
	_, err := s.builder.Update(res.Table).
		SetMap(s.writeValues(res, rec, false)).
		Where(sq.Eq{columnID: rec.PrimaryKey()}).
		RunWith(s.runner).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("resource/store: update %s %d: %w", res.Table, rec.PrimaryKey(), translateError(err))
	}
	return nil
}

// Delete removes the record of res with primary key id.
func (s *Store) Delete(ctx context.Context, res *Resource, id int64) error {
	result, err := s.builder.Delete(res.Table).
		Where(sq.Eq{columnID: id}).
		RunWith(s.runner).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("resource/store: delete %s %d: %w", res.Table, id, translateError(err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, res.TypeName(), id)
	}
	return nil
}

// Snapshot runs fn against a store bound to one read-only repeatable-read
// transaction, so a count and the page fetched after it see the same rows.
func (s *Store) Snapshot(ctx context.Context, fn func(*Store) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	return db.WithTx(ctx, s.db, opts, func(tx *sql.Tx) error {
		bound := *s
		bound.runner = tx
		bound.builder = s.builder.RunWith(tx)
		return fn(&bound)
	})
}

func (s *Store) writeValues(res *Resource, rec Record, created bool) map[string]any {
	values := make(map[string]any, len(res.Permitted)+2)
	for _, col := range res.Permitted {
		values[col] = rec.Value(col)
	}
	for _, col := range res.Columns {
		switch {
		case col == columnCreatedAt && created, col == columnUpdatedAt:
			values[col] = rec.Value(col)
		}
	}
	return values
}
