package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/odyssey-erp/restkit/internal/app"
	"github.com/odyssey-erp/restkit/internal/platform/db"
)

const (
	targetFlag = "target"
	statusFlag = "status"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Long:  "Migrate brings the schema of the configured DB_ENGINE to the latest version, or to --target when given.",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
	flags := cmd.Flags()
	flags.Int64(targetFlag, 0, "the version to migrate to (latest when omitted)")
	flags.Bool(statusFlag, false, "print the applied version and exit")
	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	target, err := cmd.Flags().GetInt64(targetFlag)
	if err != nil {
		return err
	}
	statusOnly, err := cmd.Flags().GetBool(statusFlag)
	if err != nil {
		return err
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)

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

	if !statusOnly {
		if err := db.Migrate(ctx, conn.DB, db.MigrateOptions{Engine: cfg.DBEngine, TargetVersion: target, Logger: logger}); err != nil {
			return err
		}
	}
	version, err := db.MigrationVersion(ctx, conn.DB, cfg.DBEngine)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return err
}
