package main

import (
	"github.com/gerdoo-personal-ledger/internal/platform/persistence"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadEnv()
			if err != nil {
				return err
			}

			if err := persistence.RunMigrations(cfg.Postgres.URL, cfg.Postgres.MigrationsPath); err != nil {
				return err
			}

			pterm.Success.Println("Database schema is up to date")
			return nil
		},
	}
}
