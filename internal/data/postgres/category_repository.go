package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gerdoo-personal-ledger/internal/domain/category"
	"github.com/gerdoo-personal-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CategoryRepository implements the category.Repository interface for PostgreSQL
type CategoryRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(logger *slog.Logger, db *persistence.PostgresDB) category.Repository {
	return &CategoryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction
func (r *CategoryRepository) WithTx(tx pgx.Tx) category.Repository {
	return &CategoryRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `
		SELECT id, name, kind
		FROM categories
		WHERE id = $1
	`

	var cat category.Category
	err := r.querier.QueryRow(ctx, query, id).Scan(&cat.ID, &cat.Name, &cat.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrNotFound{CategoryID: id}
		}
		r.logger.Error("Failed to get category", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &cat, nil
}

// GetOrCreate looks a category up by name and kind, creating it when absent.
// There is no unique constraint on (name, kind): a lost race between two
// concurrent creates leaves a duplicate category, which is harmless.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string, kind category.Kind) (*category.Category, error) {
	selectQuery := `
		SELECT id, name, kind
		FROM categories
		WHERE name = $1 AND kind = $2
		LIMIT 1
	`

	var cat category.Category
	err := r.querier.QueryRow(ctx, selectQuery, name, string(kind)).Scan(&cat.ID, &cat.Name, &cat.Kind)
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("Failed to look up category", "name", name, "error", err)
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}

	created, err := category.NewCategory(name, kind)
	if err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO categories (id, name, kind)
		VALUES ($1, $2, $3)
	`
	if _, err := r.querier.Exec(ctx, insertQuery, created.ID, created.Name, string(created.Kind)); err != nil {
		r.logger.Error("Failed to create category", "name", name, "error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

// ListByKind retrieves all categories of the given kind ordered by name
func (r *CategoryRepository) ListByKind(ctx context.Context, kind category.Kind) ([]*category.Category, error) {
	query := `
		SELECT id, name, kind
		FROM categories
		WHERE kind = $1
		ORDER BY name
	`

	rows, err := r.querier.Query(ctx, query, string(kind))
	if err != nil {
		r.logger.Error("Failed to list categories", "kind", string(kind), "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var cat category.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Kind); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}
