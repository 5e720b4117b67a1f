package main

import (
	"fmt"
	"time"

	"github.com/gerdoo-personal-ledger/internal/data/postgres"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/gerdoo-personal-ledger/internal/ledger"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newTransactionsCmd() *cobra.Command {
	var (
		from  string
		to    string
		limit int
		page  int
	)

	cmd := &cobra.Command{
		Use:     "transactions",
		Short:   "List transactions in a date range",
		Example: `  ledgerctl transactions --from 2024-01-01 --to 2024-12-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := time.Parse("2006-01-02", from)
			if err != nil {
				return fmt.Errorf("invalid --from date %q: expected YYYY-MM-DD", from)
			}
			toDate, err := time.Parse("2006-01-02", to)
			if err != nil {
				return fmt.Errorf("invalid --to date %q: expected YYYY-MM-DD", to)
			}

			ctx := cmd.Context()
			db, _, log, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			engine := ledger.NewEngine(
				db,
				postgres.NewAccountRepository(log, db),
				postgres.NewCategoryRepository(log, db),
				postgres.NewTransactionRepository(log, db),
				log,
			)

			offset := (page - 1) * limit
			txns, err := engine.ListTransactionsByDateRange(ctx, fromDate, toDate, limit, offset)
			if err != nil {
				return err
			}

			tableData := pterm.TableData{{"ID", "Date", "Kind", "Amount", "Description"}}
			for _, txn := range txns {
				amount := txn.Amount.String()
				if txn.Kind == transaction.KindExpense {
					amount = pterm.Red(amount)
				}
				tableData = append(tableData, []string{
					txn.ID.String(),
					txn.Date.Format("2006-01-02"),
					string(txn.Kind),
					amount,
					txn.Description,
				})
			}

			pterm.DefaultSection.Printf("Transactions %s to %s\n", from, to)
			if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
				return err
			}
			pterm.Info.Printf("Showing %d transactions (page %d)\n", len(txns), page)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of rows per page")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
