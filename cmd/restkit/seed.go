package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/odyssey-erp/restkit/internal/app"
	"github.com/odyssey-erp/restkit/internal/platform/db"
	"github.com/odyssey-erp/restkit/internal/resource"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a small demo data set",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)

	dialect, err := resource.DialectFor(cfg.DBEngine)
	if err != nil {
		return err
	}
	conn, err := db.Open(ctx, db.Options{
		Engine:         cfg.DBEngine,
		DSN:            cfg.DBDSN,
		ConnectTimeout: cfg.DBConnectTimeout,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("close database", slog.Any("error", err))
		}
	}()

	result, err := app.Seed(ctx, resource.NewStore(conn.DB, dialect), resource.NewRegistry(app.Resources()...), logger)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d agencies, %d customers, %d addresses, %d accounts\n",
		result.Agencies, result.Customers, result.Addresses, result.Accounts)
	return err
}
