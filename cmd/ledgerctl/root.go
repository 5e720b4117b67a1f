package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gerdoo-personal-ledger/internal/config"
	"github.com/gerdoo-personal-ledger/internal/logger"
	"github.com/gerdoo-personal-ledger/internal/platform/persistence"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var configName string

// Execute builds the command tree and runs it
func Execute() {
	rootCmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "ledgerctl administers the personal ledger database",
		Long:          `ledgerctl administers the personal ledger database: migrations, accounts and consistency audits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configName, "config", "c", "ledger", "base name of the .env config file")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newTransactionsCmd())
	rootCmd.AddCommand(newAuditCmd())

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// loadEnv loads configuration and a logger for a command invocation
func loadEnv() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configName)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewLogger(cfg), nil
}

// connect opens a database pool, running pending migrations first. The caller
// owns the returned pool and must Close it.
func connect(ctx context.Context) (*persistence.PostgresDB, *config.Config, *slog.Logger, error) {
	cfg, log, err := loadEnv()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
	if err != nil {
		return nil, nil, nil, err
	}

	return db, cfg, log, nil
}
