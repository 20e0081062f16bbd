package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/restkit/internal/accounts"
	"github.com/odyssey-erp/restkit/internal/addresses"
	"github.com/odyssey-erp/restkit/internal/agencies"
	"github.com/odyssey-erp/restkit/internal/customers"
	"github.com/odyssey-erp/restkit/internal/observability"
	"github.com/odyssey-erp/restkit/internal/platform/db"
	"github.com/odyssey-erp/restkit/internal/resource"
	resourcehttp "github.com/odyssey-erp/restkit/internal/resource/http"
)

// Resources lists every route-addressable resource the server exposes.
func Resources() []*resource.Resource {
	return []*resource.Resource{
		accounts.Resource(),
		addresses.Resource(),
		agencies.Resource(),
		customers.Resource(),
	}
}

// Server is the wired HTTP handler together with the database it owns.
type Server struct {
	Handler http.Handler
	conn    *db.Conn
}

// Close releases the database handle.
func (s *Server) Close() error {
	return s.conn.Close()
}

// NewServer opens the configured store, migrates it when asked to, and
// wires the router.
func NewServer(ctx context.Context, cfg *Config, logger *slog.Logger) (*Server, error) {
	conn, err := db.Open(ctx, db.Options{
		Engine:         cfg.DBEngine,
		DSN:            cfg.DBDSN,
		ConnectTimeout: cfg.DBConnectTimeout,
		Logger:         logger,
	})
	if err != nil {
		return nil, fmt.Errorf("app: open database: %w", err)
	}

	if cfg.DBMigrateOnStart {
		if err := db.Migrate(ctx, conn.DB, db.MigrateOptions{Engine: cfg.DBEngine, Logger: logger}); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("app: migrate: %w", err)
		}
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
		if err := metrics.RegisterDB(conn.DB); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("app: db metrics: %w", err)
		}
	}

	handler, err := Wire(cfg, logger, conn.DB, metrics)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Server{Handler: handler, conn: conn}, nil
}

// Wire builds the router over an open database handle.
func Wire(cfg *Config, logger *slog.Logger, conn *sql.DB, metrics *observability.Metrics) (http.Handler, error) {
	dialect, err := resource.DialectFor(cfg.DBEngine)
	if err != nil {
		return nil, err
	}
	registry := resource.NewRegistry(Resources()...)
	store := resource.NewStore(conn, dialect)
	validator, err := resource.NewValidator(registry, store)
	if err != nil {
		return nil, err
	}
	handler := resourcehttp.NewHandler(logger, registry, store, validator, resourcehttp.Config{
		DefaultPageSize: cfg.DefaultPageSize,
		Snapshot:        cfg.PaginationSnapshot,
		Observer:        metrics,
	})
	return NewRouter(RouterParams{
		Logger:          logger,
		Config:          cfg,
		ResourceHandler: handler,
		Metrics:         metrics,
		Ready: func(r *http.Request) error {
			return conn.PingContext(r.Context())
		},
	}), nil
}
