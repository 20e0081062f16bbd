package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*
var embedMigrations embed.FS

// MigrateOptions selects the migration target. A zero TargetVersion means latest.
type MigrateOptions struct {
	Engine        string
	TargetVersion int64
	Logger        *slog.Logger
}

func newProvider(engine string, conn *sql.DB) (*goose.Provider, error) {
	var dialect goose.Dialect
	switch engine {
	case EnginePostgres:
		dialect = goose.DialectPostgres
	case EngineMySQL:
		dialect = goose.DialectMySQL
	case EngineSQLite:
		dialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("platform/db: no migrations for engine %q", engine)
	}
	migrations, err := fs.Sub(embedMigrations, "migrations/"+engine)
	if err != nil {
		return nil, fmt.Errorf("platform/db: migrations for %s: %w", engine, err)
	}
	provider, err := goose.NewProvider(dialect, conn, migrations)
	if err != nil {
		return nil, fmt.Errorf("platform/db: goose provider: %w", err)
	}
	return provider, nil
}

// Migrate brings the schema to the requested version.
func Migrate(ctx context.Context, conn *sql.DB, opts MigrateOptions) error {
	provider, err := newProvider(opts.Engine, conn)
	if err != nil {
		return err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("platform/db: current version: %w", err)
	}
	logger.Info("schema version", slog.String("engine", opts.Engine), slog.Int64("version", current))

	var results []*goose.MigrationResult
	switch {
	case opts.TargetVersion == 0:
		results, err = provider.Up(ctx)
	case opts.TargetVersion < current:
		results, err = provider.DownTo(ctx, opts.TargetVersion)
	case opts.TargetVersion > current:
		results, err = provider.UpTo(ctx, opts.TargetVersion)
	default:
		logger.Info("schema up to date", slog.Int64("version", current))
		return nil
	}
	if err != nil {
		return fmt.Errorf("platform/db: migrate %s: %w", opts.Engine, err)
	}
	for _, res := range results {
		logger.Info("applied migration",
			slog.String("source", res.Source.Path),
			slog.String("direction", res.Direction),
			slog.Duration("duration", res.Duration),
		)
	}
	return nil
}

// MigrationVersion returns the schema version currently applied.
func MigrationVersion(ctx context.Context, conn *sql.DB, engine string) (int64, error) {
	provider, err := newProvider(engine, conn)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}
