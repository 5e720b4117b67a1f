package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gerdoo-personal-ledger/internal/domain/gold"
	"github.com/gerdoo-personal-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GoldRepository implements the gold.Repository interface for PostgreSQL
type GoldRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewGoldRepository creates a new PostgreSQL gold lot repository
func NewGoldRepository(logger *slog.Logger, db *persistence.PostgresDB) gold.Repository {
	return &GoldRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction
func (r *GoldRepository) WithTx(tx pgx.Tx) gold.Repository {
	return &GoldRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new gold lot
func (r *GoldRepository) Create(ctx context.Context, lot *gold.Lot) error {
	query := `
		INSERT INTO gold_lots (id, weight, price, sale_price, purchase_date, sale_date, is_sold, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier.Exec(ctx, query,
		lot.ID,
		lot.Weight,
		lot.Price,
		lot.SalePrice,
		lot.PurchaseDate,
		lot.SaleDate,
		lot.IsSold,
		lot.Description,
	)
	if err != nil {
		r.logger.Error("Failed to create gold lot", "id", lot.ID.String(), "error", err)
		return fmt.Errorf("failed to create gold lot: %w", err)
	}

	return nil
}

func (r *GoldRepository) scanOne(row pgx.Row) (*gold.Lot, error) {
	var lot gold.Lot
	err := row.Scan(
		&lot.ID,
		&lot.Weight,
		&lot.Price,
		&lot.SalePrice,
		&lot.PurchaseDate,
		&lot.SaleDate,
		&lot.IsSold,
		&lot.Description,
	)
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// GetByID retrieves a gold lot by its ID
func (r *GoldRepository) GetByID(ctx context.Context, id uuid.UUID) (*gold.Lot, error) {
	query := `
		SELECT id, weight, price, sale_price, purchase_date, sale_date, is_sold, description
		FROM gold_lots
		WHERE id = $1
	`

	lot, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gold.ErrNotFound{LotID: id}
		}
		r.logger.Error("Failed to get gold lot", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get gold lot: %w", err)
	}

	return lot, nil
}

// List retrieves all gold lots, newest purchases first
func (r *GoldRepository) List(ctx context.Context) ([]*gold.Lot, error) {
	query := `
		SELECT id, weight, price, sale_price, purchase_date, sale_date, is_sold, description
		FROM gold_lots
		ORDER BY purchase_date DESC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list gold lots", "error", err)
		return nil, fmt.Errorf("failed to list gold lots: %w", err)
	}
	defer rows.Close()

	var lots []*gold.Lot
	for rows.Next() {
		var lot gold.Lot
		if err := rows.Scan(
			&lot.ID,
			&lot.Weight,
			&lot.Price,
			&lot.SalePrice,
			&lot.PurchaseDate,
			&lot.SaleDate,
			&lot.IsSold,
			&lot.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan gold lot: %w", err)
		}
		lots = append(lots, &lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read gold lots: %w", err)
	}

	return lots, nil
}

// Update persists the lot's current state. Only ever called while the row
// lock is held.
func (r *GoldRepository) Update(ctx context.Context, lot *gold.Lot) error {
	query := `
		UPDATE gold_lots
		SET weight = $1, price = $2, sale_price = $3, purchase_date = $4, sale_date = $5, is_sold = $6, description = $7
		WHERE id = $8
	`

	result, err := r.querier.Exec(ctx, query,
		lot.Weight,
		lot.Price,
		lot.SalePrice,
		lot.PurchaseDate,
		lot.SaleDate,
		lot.IsSold,
		lot.Description,
		lot.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update gold lot", "id", lot.ID.String(), "error", err)
		return fmt.Errorf("failed to update gold lot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return gold.ErrNotFound{LotID: lot.ID}
	}

	return nil
}

// LockForUpdate obtains a pessimistic lock on the lot and returns its current
// state. Must be used within a transaction.
func (r *GoldRepository) LockForUpdate(ctx context.Context, id uuid.UUID) (*gold.Lot, error) {
	query := `
		SELECT id, weight, price, sale_price, purchase_date, sale_date, is_sold, description
		FROM gold_lots
		WHERE id = $1
		FOR UPDATE
	`

	lot, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gold.ErrNotFound{LotID: id}
		}
		r.logger.Error("Failed to lock gold lot", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to lock gold lot: %w", err)
	}

	return lot, nil
}
