// Package audit verifies ledger consistency without replaying history: every
// transaction carries post-mutation balance snapshots, so the newest snapshot
// for an account must equal its stored balance.
package audit

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"
)

// Finding reports one consistency violation on one account
type Finding struct {
	AccountID uuid.UUID       `json:"account_id"`
	Problem   string          `json:"problem"`
	Expected  decimal.Decimal `json:"expected"`
	Actual    decimal.Decimal `json:"actual"`
}

// Checker runs per-account consistency checks concurrently over a worker pool
type Checker struct {
	accounts     account.Repository
	transactions transaction.Repository
	workers      int
	logger       *slog.Logger
}

// NewChecker creates a checker with the given worker pool size
func NewChecker(accounts account.Repository, transactions transaction.Repository, workers int, logger *slog.Logger) *Checker {
	return &Checker{
		accounts:     accounts,
		transactions: transactions,
		workers:      workers,
		logger:       logger,
	}
}

// Run checks every account and returns the findings. Read-only: it takes no
// locks and never mutates anything, so it can run against a live database.
func (c *Checker) Run(ctx context.Context) ([]Finding, error) {
	accs, err := c.accounts.List(ctx, false)
	if err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(c.workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		findings []Finding
		checkErr error
		wg       sync.WaitGroup
	)

	for _, acc := range accs {
		acc := acc
		wg.Add(1)

		submitErr := pool.Submit(func() {
			defer wg.Done()

			fs, err := c.checkAccount(ctx, acc)

			mu.Lock()
			defer mu.Unlock()
			if err != nil && checkErr == nil {
				checkErr = err
			}
			findings = append(findings, fs...)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if checkErr == nil {
				checkErr = submitErr
			}
			mu.Unlock()
		}
	}

	wg.Wait()

	if checkErr != nil {
		return findings, checkErr
	}

	c.logger.Info("audit complete", "accounts", len(accs), "findings", len(findings))
	return findings, nil
}

func (c *Checker) checkAccount(ctx context.Context, acc *account.Account) ([]Finding, error) {
	var findings []Finding

	if acc.Balance.IsNegative() {
		findings = append(findings, Finding{
			AccountID: acc.ID,
			Problem:   "negative balance",
			Expected:  decimal.Zero,
			Actual:    acc.Balance,
		})
	}

	latest, err := c.transactions.LatestForAccount(ctx, acc.ID)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound{}) {
			// No history for this account, nothing more to check
			return findings, nil
		}
		return findings, err
	}

	// The destination side is applied last, so for a self-transfer the
	// destination snapshot is the final one
	var snapshot decimal.NullDecimal
	switch {
	case latest.DestinationID != nil && *latest.DestinationID == acc.ID:
		snapshot = latest.DestinationBalanceAfter
	case latest.SourceID != nil && *latest.SourceID == acc.ID:
		snapshot = latest.SourceBalanceAfter
	}

	if snapshot.Valid && !snapshot.Decimal.Equal(acc.Balance) {
		findings = append(findings, Finding{
			AccountID: acc.ID,
			Problem:   "latest snapshot does not match stored balance",
			Expected:  snapshot.Decimal,
			Actual:    acc.Balance,
		})
	}

	return findings, nil
}
