package main

import (
	"fmt"

	"github.com/gerdoo-personal-ledger/internal/audit"
	"github.com/gerdoo-personal-ledger/internal/data/postgres"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check stored balances against transaction snapshots",
		Long: `Checks every account for a negative balance and verifies that its newest
transaction snapshot matches the stored balance. Read-only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, cfg, log, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if workers <= 0 {
				workers = cfg.Audit.Workers
			}

			checker := audit.NewChecker(
				postgres.NewAccountRepository(log, db),
				postgres.NewTransactionRepository(log, db),
				workers,
				log,
			)

			findings, err := checker.Run(ctx)
			if err != nil {
				return err
			}

			if len(findings) == 0 {
				pterm.Success.Println("All accounts are consistent")
				return nil
			}

			tableData := pterm.TableData{{"Account", "Problem", "Expected", "Actual"}}
			for _, f := range findings {
				tableData = append(tableData, []string{
					f.AccountID.String(),
					f.Problem,
					f.Expected.String(),
					f.Actual.String(),
				})
			}

			pterm.DefaultSection.Println("Audit findings")
			if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
				return err
			}

			return fmt.Errorf("%d consistency problem(s) found", len(findings))
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent account checks (defaults to AUDIT_WORKERS)")

	return cmd
}
