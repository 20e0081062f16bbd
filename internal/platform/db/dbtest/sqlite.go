// Package dbtest opens migrated throwaway databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/restkit/internal/platform/db"
)

// OpenSQLite returns a file-backed SQLite database in t's temp dir with
// every migration applied. It is closed when t finishes.
func OpenSQLite(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := db.Open(ctx, db.Options{
		Engine: db.EngineSQLite,
		DSN:    filepath.Join(t.TempDir(), "restkit.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.Migrate(ctx, conn.DB, db.MigrateOptions{Engine: db.EngineSQLite}))
	return conn.DB
}
