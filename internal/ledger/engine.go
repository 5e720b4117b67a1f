// Package ledger contains the state-changing core of the application: it
// creates and reverses financial transactions against account balances,
// under row locking, as single atomic units.
package ledger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gerdoo-personal-ledger/internal/commission"
	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/gerdoo-personal-ledger/internal/domain/category"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/gerdoo-personal-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Engine applies and reverses ledger events. Every mutating operation runs
// inside one database transaction: the balance change and the transaction row
// commit together or not at all.
type Engine struct {
	db           persistence.TxRunner
	accounts     account.Repository
	categories   category.Repository
	transactions transaction.Repository
	logger       *slog.Logger
	now          func() time.Time
}

// NewEngine creates a ledger engine
func NewEngine(
	db persistence.TxRunner,
	accounts account.Repository,
	categories category.Repository,
	transactions transaction.Repository,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		db:           db,
		accounts:     accounts,
		categories:   categories,
		transactions: transactions,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateTransaction validates the intent, then atomically mutates the
// involved balances and persists the transaction row with post-mutation
// snapshots. On any failure nothing is applied.
func (e *Engine) CreateTransaction(ctx context.Context, intent CreateIntent) (*transaction.Transaction, error) {
	// Shape validation happens before any lock is taken
	if err := intent.validate(); err != nil {
		return nil, err
	}

	var created *transaction.Transaction
	err := e.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		var txErr error
		created, txErr = e.CreateTransactionTx(ctx, tx, intent)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("transaction committed",
		"transaction_id", created.ID.String(),
		"kind", string(created.Kind),
		"amount", created.Amount.String(),
	)
	return created, nil
}

// CreateTransactionTx applies a create intent inside an existing database
// transaction. Derived workflows (gold trading) use this to combine a ledger
// event with their own writes in one atomic unit.
func (e *Engine) CreateTransactionTx(ctx context.Context, tx pgx.Tx, intent CreateIntent) (*transaction.Transaction, error) {
	if err := intent.validate(); err != nil {
		return nil, err
	}

	accounts := e.accounts.WithTx(tx)
	categories := e.categories.WithTx(tx)
	transactions := e.transactions.WithTx(tx)

	cat, err := e.resolveCategory(ctx, categories, intent.Category)
	if err != nil {
		return nil, err
	}

	locked, err := lockAccounts(ctx, accounts, involvedAccounts(intent.Kind, intent.SourceID, intent.DestinationID))
	if err != nil {
		return nil, err
	}

	date := intent.Date
	if date.IsZero() {
		date = e.now()
	}

	record := &transaction.Transaction{
		ID:          uuid.New(),
		Kind:        intent.Kind,
		Amount:      intent.Amount,
		CategoryID:  cat.ID,
		Description: intent.Description,
		Tags:        intent.Tags,
		Date:        date,
		CreatedAt:   e.now(),
	}

	if intent.Kind.HasSource() {
		src := locked[*intent.SourceID]

		// The total debit (amount plus commission for transfers) is checked
		// against the balance before anything is written
		totalDebit := intent.Amount
		if intent.Kind == transaction.KindTransfer {
			totalDebit = totalDebit.Add(intent.Commission)
		}

		if err := src.Withdraw(totalDebit); err != nil {
			e.logger.Warn("debit rejected",
				"account_id", src.ID.String(),
				"balance", src.Balance.String(),
				"debit", totalDebit.String(),
				"error", err,
			)
			return nil, err
		}
		if err := accounts.Update(ctx, src); err != nil {
			return nil, err
		}

		record.SourceID = intent.SourceID
		record.SourceBalanceAfter = decimal.NullDecimal{Decimal: src.Balance, Valid: true}
	}

	if intent.Kind.HasDestination() {
		dst := locked[*intent.DestinationID]

		// Transfers credit the plain amount; the commission leaves the system
		if err := dst.Deposit(intent.Amount); err != nil {
			return nil, err
		}
		if err := accounts.Update(ctx, dst); err != nil {
			return nil, err
		}

		record.DestinationID = intent.DestinationID
		record.DestinationBalanceAfter = decimal.NullDecimal{Decimal: dst.Balance, Valid: true}
	}

	if intent.Kind == transaction.KindTransfer {
		record.Description = commission.Encode(intent.Description, intent.Commission)
	}

	if err := transactions.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteTransaction reverses a committed transaction and removes its row, as
// one atomic unit. The inverse mutation is derived from the stored kind,
// amount and description; a transfer's commission is recovered from the
// description marker.
//
// Reversing a credit can drive the account negative when the funds were
// already spent. That is an accepted historical correction, not guarded
// against.
func (e *Engine) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	err := e.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		return e.deleteTransactionTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	e.logger.Info("transaction reversed and deleted", "transaction_id", id.String())
	return nil
}

func (e *Engine) deleteTransactionTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	accounts := e.accounts.WithTx(tx)
	transactions := e.transactions.WithTx(tx)

	record, err := transactions.LockForUpdate(ctx, id)
	if err != nil {
		return err
	}

	locked, err := lockAccounts(ctx, accounts, involvedAccounts(record.Kind, record.SourceID, record.DestinationID))
	if err != nil {
		return err
	}

	switch record.Kind {
	case transaction.KindExpense:
		src := locked[*record.SourceID]
		if err := src.Deposit(record.Amount); err != nil {
			return err
		}
		if err := accounts.Update(ctx, src); err != nil {
			return err
		}

	case transaction.KindIncome:
		dst := locked[*record.DestinationID]
		dst.ForceWithdraw(record.Amount)
		if err := accounts.Update(ctx, dst); err != nil {
			return err
		}

	case transaction.KindTransfer:
		fee := commission.Decode(record.Description)

		src := locked[*record.SourceID]
		if err := src.Deposit(record.Amount.Add(fee)); err != nil {
			return err
		}
		if err := accounts.Update(ctx, src); err != nil {
			return err
		}

		dst := locked[*record.DestinationID]
		dst.ForceWithdraw(record.Amount)
		if err := accounts.Update(ctx, dst); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: %s", transaction.ErrInvalidKind, record.Kind)
	}

	return transactions.Delete(ctx, id)
}

// GetTransaction retrieves a committed transaction. Read-only, no locking.
func (e *Engine) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return e.transactions.GetByID(ctx, id)
}

// ListTransactionsByAccount retrieves a page of transactions touching the
// account together with the total count.
func (e *Engine) ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*transaction.Transaction, int64, error) {
	offset := (page - 1) * perPage
	txns, err := e.transactions.ListByAccount(ctx, accountID, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := e.transactions.CountByAccount(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// ListTransactionsByDateRange retrieves transactions by logical date.
func (e *Engine) ListTransactionsByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*transaction.Transaction, error) {
	return e.transactions.ListByDateRange(ctx, from, to, limit, offset)
}

func (e *Engine) resolveCategory(ctx context.Context, categories category.Repository, ref CategoryRef) (*category.Category, error) {
	if ref.ID != uuid.Nil {
		return categories.GetByID(ctx, ref.ID)
	}
	return categories.GetOrCreate(ctx, ref.Name, ref.Kind)
}

// involvedAccounts returns the account IDs a transaction of the given kind
// locks and mutates.
func involvedAccounts(kind transaction.Kind, sourceID, destinationID *uuid.UUID) []uuid.UUID {
	var ids []uuid.UUID
	if kind.HasSource() && sourceID != nil {
		ids = append(ids, *sourceID)
	}
	if kind.HasDestination() && destinationID != nil {
		ids = append(ids, *destinationID)
	}
	return ids
}

// lockAccounts acquires row locks in ascending UUID byte order regardless of
// the caller-supplied order. Two concurrent transfers over the same pair of
// accounts in opposite directions therefore cannot deadlock.
func lockAccounts(ctx context.Context, accounts account.Repository, ids []uuid.UUID) (map[uuid.UUID]*account.Account, error) {
	ordered := make([]uuid.UUID, len(ids))
	copy(ordered, ids)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && bytes.Compare(ordered[j][:], ordered[j-1][:]) < 0; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	locked := make(map[uuid.UUID]*account.Account, len(ordered))
	for _, id := range ordered {
		if _, ok := locked[id]; ok {
			continue
		}
		acc, err := accounts.LockForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = acc
	}
	return locked, nil
}
