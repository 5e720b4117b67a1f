package main

import (
	"fmt"

	"github.com/gerdoo-personal-ledger/internal/data/postgres"
	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Administer ledger accounts",
	}

	cmd.AddCommand(newAccountCreateCmd())
	cmd.AddCommand(newAccountListCmd())
	cmd.AddCommand(newAccountDeactivateCmd())

	return cmd
}

func newAccountCreateCmd() *cobra.Command {
	var (
		bankName       string
		owner          string
		cardNumber     string
		color          string
		initialBalance string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Example: `  ledgerctl account create -b Melli -o "Ali" -n 6037991234567890 --balance 500000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			balance := decimal.Zero
			if initialBalance != "" {
				var err error
				balance, err = decimal.NewFromString(initialBalance)
				if err != nil {
					return fmt.Errorf("invalid balance %q: must be a decimal number", initialBalance)
				}
			}

			ctx := cmd.Context()
			db, _, log, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			acc, err := account.NewAccount(bankName, owner, cardNumber, color, balance)
			if err != nil {
				return err
			}

			if err := postgres.NewAccountRepository(log, db).Create(ctx, acc); err != nil {
				return err
			}

			pterm.DefaultTable.WithData(pterm.TableData{
				{pterm.Blue("Account ID"), acc.ID.String()},
				{pterm.Blue("Bank"), acc.BankName},
				{pterm.Blue("Owner"), acc.Owner},
				{pterm.Blue("Balance"), acc.Balance.String()},
			}).Render()
			pterm.Success.Println("Account created successfully")
			return nil
		},
	}

	cmd.Flags().StringVarP(&bankName, "bank", "b", "", "Bank name")
	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owner name")
	cmd.Flags().StringVarP(&cardNumber, "card-number", "n", "", "Card number")
	cmd.Flags().StringVar(&color, "color", "", "Display color (optional)")
	cmd.Flags().StringVar(&initialBalance, "balance", "", "Initial balance (defaults to 0)")
	_ = cmd.MarkFlagRequired("bank")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("card-number")

	return cmd
}

func newAccountListCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, _, log, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			accounts, err := postgres.NewAccountRepository(log, db).List(ctx, activeOnly)
			if err != nil {
				return err
			}

			tableData := pterm.TableData{{"ID", "Bank", "Owner", "Balance", "Active"}}
			for _, acc := range accounts {
				balance := acc.Balance.String()
				if acc.Balance.IsNegative() {
					balance = pterm.Red(balance)
				}
				tableData = append(tableData, []string{
					acc.ID.String(),
					acc.BankName,
					acc.Owner,
					balance,
					fmt.Sprintf("%t", acc.Active),
				})
			}

			pterm.DefaultSection.Println("Accounts")
			if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
				return err
			}
			pterm.Info.Printf("Total: %d accounts\n", len(accounts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Only show active accounts")

	return cmd
}

func newAccountDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <account-id>",
		Short: "Soft-disable an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid account ID %q", args[0])
			}

			ctx := cmd.Context()
			db, _, log, err := connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.NewAccountRepository(log, db).Deactivate(ctx, id); err != nil {
				return err
			}

			pterm.Success.Printf("Account %s deactivated\n", id)
			return nil
		},
	}
}
