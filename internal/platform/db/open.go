// Package db opens the relational store and manages its schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite" // SQLite driver.
)

// Supported engine names.
const (
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
	EngineSQLite   = "sqlite"
)

// Options configures Open.
type Options struct {
	Engine string
	DSN    string
	// ConnectTimeout bounds the retries of the initial ping.
	ConnectTimeout time.Duration
	Logger         *slog.Logger
}

// Conn is an open database handle together with its release function.
type Conn struct {
	DB     *sql.DB
	Engine string
	closer func() error
}

// Close releases the handle.
func (c *Conn) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer()
}

// Open connects to the configured engine and waits until it answers a ping.
func Open(ctx context.Context, opts Options) (*Conn, error) {
	var (
		conn   *sql.DB
		closer func() error
		err    error
	)
	switch opts.Engine {
	case EnginePostgres:
		conn, closer, err = openPostgres(ctx, opts.DSN)
	case EngineMySQL:
		conn, closer, err = openMySQL(opts.DSN)
	case EngineSQLite:
		conn, closer, err = openSQLite(opts.DSN)
	default:
		return nil, fmt.Errorf("platform/db: unsupported engine %q", opts.Engine)
	}
	if err != nil {
		return nil, err
	}

	if err := ping(ctx, conn, opts); err != nil {
		_ = closer()
		return nil, err
	}
	return &Conn{DB: conn, Engine: opts.Engine, closer: closer}, nil
}

func ping(ctx context.Context, conn *sql.DB, opts Options) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = opts.ConnectTimeout
	if policy.MaxElapsedTime <= 0 {
		policy.MaxElapsedTime = time.Minute
	}
	attempt := 1
	err := backoff.Retry(func() error {
		err := conn.PingContext(ctx)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Info("waiting for database", slog.String("engine", opts.Engine), slog.Int("attempt", attempt))
			}
			attempt++
			return err
		}
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return fmt.Errorf("platform/db: ping: %w", err)
	}
	return nil
}

func openMySQL(dsn string) (*sql.DB, func() error, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("platform/db: parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("platform/db: mysql connector: %w", err)
	}
	conn := sql.OpenDB(connector)
	return conn, conn.Close, nil
}

// openSQLite enables foreign keys on every connection through DSN pragmas.
// In-memory databases are pinned to one connection so the schema survives
// between statements.
func openSQLite(dsn string) (*sql.DB, func() error, error) {
	prepared, err := sqliteDSN(dsn)
	if err != nil {
		return nil, nil, err
	}
	conn, err := sql.Open(EngineSQLite, prepared)
	if err != nil {
		return nil, nil, fmt.Errorf("platform/db: open sqlite: %w", err)
	}
	if sqliteInMemory(dsn) {
		conn.SetMaxOpenConns(1)
	}
	return conn, conn.Close, nil
}

func sqliteDSN(dsn string) (string, error) {
	base, rawQuery, _ := strings.Cut(dsn, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("platform/db: parse sqlite dsn: %w", err)
	}
	has := func(pragma string) bool {
		for _, val := range query["_pragma"] {
			if strings.HasPrefix(val, pragma) {
				return true
			}
		}
		return false
	}
	if !has("foreign_keys") {
		query.Add("_pragma", "foreign_keys(1)")
	}
	if !has("busy_timeout") {
		query.Add("_pragma", "busy_timeout(5000)")
	}
	if !has("journal_mode") && !sqliteInMemory(dsn) {
		query.Add("_pragma", "journal_mode(WAL)")
	}
	return base + "?" + query.Encode(), nil
}

func sqliteInMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
