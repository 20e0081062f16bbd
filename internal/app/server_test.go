package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewServerMigratesOnStart(t *testing.T) {
	cfg := testConfig()
	cfg.DBDSN = filepath.Join(t.TempDir(), "restkit.db")
	cfg.DBMigrateOnStart = true
	cfg.MetricsEnabled = true

	srv, err := NewServer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, srv.Close()) })

	rr := serve(srv.Handler, http.MethodGet, "/accounts", "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Equal(t, http.StatusOK, serve(srv.Handler, http.MethodGet, "/metrics", "", nil).Code)
}

func TestNewServerFailsOnUnknownEngine(t *testing.T) {
	cfg := testConfig()
	cfg.DBEngine = "oracle"
	_, err := NewServer(context.Background(), cfg, slog.Default())
	require.Error(t, err)
}
