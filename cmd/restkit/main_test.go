package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/odyssey-erp/restkit/testing"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DB_ENGINE", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(t.TempDir(), "restkit.db"))
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_LEVEL", "error")
}

func TestMigrateAppliesAndRollsBack(t *testing.T) {
	useSQLite(t)

	out, err := executeCommand(t, "migrate")
	require.NoError(t, err)
	require.Contains(t, out, "schema version 20160930212956")

	out, err = executeCommand(t, "migrate", "--target", "20160930200108")
	require.NoError(t, err)
	require.Contains(t, out, "schema version 20160930200108")

	out, err = executeCommand(t, "migrate", "--status")
	require.NoError(t, err)
	require.Contains(t, out, "schema version 20160930200108")
}

func TestMigrateRejectsUnknownEngine(t *testing.T) {
	t.Setenv("DB_ENGINE", "oracle")
	_, err := executeCommand(t, "migrate")
	require.Error(t, err)
}

func TestServeSkipsInTestMode(t *testing.T) {
	_, err := executeCommand(t, "serve")
	require.NoError(t, err)
}

func TestRootListsCommands(t *testing.T) {
	out, err := executeCommand(t, "--help")
	require.NoError(t, err)
	require.Contains(t, out, "serve")
	require.Contains(t, out, "migrate")
}

func TestSeedAfterMigrate(t *testing.T) {
	useSQLite(t)

	_, err := executeCommand(t, "migrate")
	require.NoError(t, err)

	out, err := executeCommand(t, "seed")
	require.NoError(t, err)
	require.Contains(t, out, "seeded 2 agencies, 4 customers, 4 addresses, 4 accounts")
}
