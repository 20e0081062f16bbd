package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// NewPool creates a new PostgreSQL connection pool.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("platform/db: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("platform/db: new pool: %w", err)
	}

	return pool, nil
}

// openPostgres exposes a pgx pool through database/sql. Closing the
// returned closer releases both the handle and the pool.
func openPostgres(ctx context.Context, dsn string) (*sql.DB, func() error, error) {
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	conn := stdlib.OpenDBFromPool(pool)
	closer := func() error {
		err := conn.Close()
		pool.Close()
		return err
	}
	return conn, closer, nil
}
