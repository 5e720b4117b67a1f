package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/gerdoo-personal-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, kind, amount, source_id, source_balance_after,
		destination_id, destination_balance_after, category_id, description, date, created_at`

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(logger *slog.Logger, db *persistence.PostgresDB) transaction.Repository {
	return &TransactionRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction
func (r *TransactionRepository) WithTx(tx pgx.Tx) transaction.Repository {
	return &TransactionRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a transaction row together with its tag associations
func (r *TransactionRepository) Create(ctx context.Context, txn *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, kind, amount, source_id, source_balance_after,
			destination_id, destination_balance_after, category_id, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier.Exec(ctx, query,
		txn.ID,
		string(txn.Kind),
		txn.Amount,
		txn.SourceID,
		txn.SourceBalanceAfter,
		txn.DestinationID,
		txn.DestinationBalanceAfter,
		txn.CategoryID,
		txn.Description,
		txn.Date,
		txn.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create transaction", "id", txn.ID.String(), "error", err)
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := r.attachTags(ctx, txn.ID, txn.Tags); err != nil {
		return err
	}

	return nil
}

// attachTags resolves tag names to rows (creating missing ones) and links
// them to the transaction
func (r *TransactionRepository) attachTags(ctx context.Context, txnID uuid.UUID, tags []string) error {
	for _, name := range tags {
		if name == "" {
			continue
		}

		_, err := r.querier.Exec(ctx,
			`INSERT INTO tags (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			uuid.New(), name,
		)
		if err != nil {
			return fmt.Errorf("failed to ensure tag %q: %w", name, err)
		}

		var tagID uuid.UUID
		if err := r.querier.QueryRow(ctx, `SELECT id FROM tags WHERE name = $1`, name).Scan(&tagID); err != nil {
			return fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}

		_, err = r.querier.Exec(ctx,
			`INSERT INTO transaction_tags (transaction_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			txnID, tagID,
		)
		if err != nil {
			return fmt.Errorf("failed to attach tag %q: %w", name, err)
		}
	}
	return nil
}

// loadTags fetches the tag names attached to a transaction
func (r *TransactionRepository) loadTags(ctx context.Context, txnID uuid.UUID) ([]string, error) {
	rows, err := r.querier.Query(ctx, `
		SELECT t.name
		FROM tags t
		JOIN transaction_tags tt ON tt.tag_id = t.id
		WHERE tt.transaction_id = $1
		ORDER BY t.name
	`, txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	return tags, nil
}

func (r *TransactionRepository) scanOne(row pgx.Row) (*transaction.Transaction, error) {
	var txn transaction.Transaction
	err := row.Scan(
		&txn.ID,
		&txn.Kind,
		&txn.Amount,
		&txn.SourceID,
		&txn.SourceBalanceAfter,
		&txn.DestinationID,
		&txn.DestinationBalanceAfter,
		&txn.CategoryID,
		&txn.Description,
		&txn.Date,
		&txn.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetByID retrieves a transaction by its ID, including its tags
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	txn, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to get transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	tags, err := r.loadTags(ctx, id)
	if err != nil {
		return nil, err
	}
	txn.Tags = tags

	return txn, nil
}

// LockForUpdate locks the transaction row and returns its current state.
// Must be used within a transaction.
func (r *TransactionRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
		FOR UPDATE
	`

	txn, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrNotFound{TransactionID: id}
		}
		r.logger.Error("Failed to lock transaction", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}

	return txn, nil
}

// Delete removes the transaction row; tag associations cascade
func (r *TransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.querier.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete transaction", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		return transaction.ErrNotFound{TransactionID: id}
	}

	return nil
}

// ListByAccount retrieves transactions touching the account as source or
// destination, newest first
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE source_id = $1 OR destination_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, accountID, limit, offset)
}

// CountByAccount counts transactions touching the account
func (r *TransactionRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	err := r.querier.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE source_id = $1 OR destination_id = $1`,
		accountID,
	).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count transactions", "account_id", accountID.String(), "error", err)
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// ListByDateRange retrieves transactions with a logical date inside [from, to],
// newest first
func (r *TransactionRepository) ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE date BETWEEN $1 AND $2
		ORDER BY date DESC, created_at DESC
		LIMIT $3 OFFSET $4
	`

	return r.list(ctx, query, from, to, limit, offset)
}

// LatestForAccount returns the most recent transaction touching the account
func (r *TransactionRepository) LatestForAccount(ctx context.Context, accountID uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE source_id = $1 OR destination_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	txn, err := r.scanOne(r.querier.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transaction.ErrNotFound{}
		}
		r.logger.Error("Failed to get latest transaction", "account_id", accountID.String(), "error", err)
		return nil, fmt.Errorf("failed to get latest transaction: %w", err)
	}

	return txn, nil
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...interface{}) ([]*transaction.Transaction, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*transaction.Transaction
	for rows.Next() {
		var txn transaction.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.Kind,
			&txn.Amount,
			&txn.SourceID,
			&txn.SourceBalanceAfter,
			&txn.DestinationID,
			&txn.DestinationBalanceAfter,
			&txn.CategoryID,
			&txn.Description,
			&txn.Date,
			&txn.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, &txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return txns, nil
}
