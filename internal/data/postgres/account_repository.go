// Package postgres provides PostgreSQL implementations of the domain
// repositories. All balance-touching queries are designed to run inside a
// pgx.Tx obtained by the ledger engine, with row locks held until commit.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/gerdoo-personal-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository.
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new account in the database
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (id, bank_name, owner, card_number, color, balance, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		acc.ID,
		acc.BankName,
		acc.Owner,
		acc.CardNumber,
		acc.Color,
		acc.Balance,
		acc.Active,
		acc.CreatedAt,
		acc.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create account", "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by its ID
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, bank_name, owner, card_number, color, balance, active, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.BankName,
		&acc.Owner,
		&acc.CardNumber,
		&acc.Color,
		&acc.Balance,
		&acc.Active,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound{AccountID: id}
		}
		r.logger.Error("Failed to get account", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// List retrieves all accounts, optionally restricted to active ones
func (r *AccountRepository) List(ctx context.Context, activeOnly bool) ([]*account.Account, error) {
	query := `
		SELECT id, bank_name, owner, card_number, color, balance, active, created_at, updated_at
		FROM accounts
	`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY created_at`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list accounts", "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var acc account.Account
		if err := rows.Scan(
			&acc.ID,
			&acc.BankName,
			&acc.Owner,
			&acc.CardNumber,
			&acc.Color,
			&acc.Balance,
			&acc.Active,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	return accounts, nil
}

// Update persists the account's current state. Only ever called while the
// corresponding row lock is held.
func (r *AccountRepository) Update(ctx context.Context, acc *account.Account) error {
	query := `
		UPDATE accounts
		SET bank_name = $1, owner = $2, card_number = $3, color = $4, balance = $5, active = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.querier.Exec(ctx, query,
		acc.BankName,
		acc.Owner,
		acc.CardNumber,
		acc.Color,
		acc.Balance,
		acc.Active,
		acc.UpdatedAt,
		acc.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update account", "id", acc.ID.String(), "error", err)
		return fmt.Errorf("failed to update account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrNotFound{AccountID: acc.ID}
	}

	return nil
}

// Deactivate soft-disables the account; referenced accounts are never deleted
func (r *AccountRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE accounts
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to deactivate account", "id", id.String(), "error", err)
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return account.ErrNotFound{AccountID: id}
	}

	return nil
}

// LockForUpdate obtains a pessimistic lock on the account and returns its
// current state. Must be used within a transaction; the lock is held until
// the transaction commits or rolls back.
func (r *AccountRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, bank_name, owner, card_number, color, balance, active, created_at, updated_at
		FROM accounts
		WHERE id = $1
		FOR UPDATE
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&acc.ID,
		&acc.BankName,
		&acc.Owner,
		&acc.CardNumber,
		&acc.Color,
		&acc.Balance,
		&acc.Active,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound{AccountID: id}
		}
		r.logger.Error("Failed to lock account for update", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to lock account for update: %w", err)
	}

	return &acc, nil
}
