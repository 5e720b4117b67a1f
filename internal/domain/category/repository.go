package category

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines category persistence operations.
//
// GetOrCreate is deliberately not serialized: two concurrent callers may both
// create the same (name, kind) pair. A duplicate category is harmless for
// aggregation, so the race is accepted rather than locked against.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetOrCreate(ctx context.Context, name string, kind Kind) (*Category, error)
	ListByKind(ctx context.Context, kind Kind) ([]*Category, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrNotFound indicates missing category
type ErrNotFound struct {
	CategoryID uuid.UUID
}

func (e ErrNotFound) Error() string {
	return "category not found: " + e.CategoryID.String()
}

// Is implements the errors.Is interface for ErrNotFound
func (e ErrNotFound) Is(target error) bool {
	t, ok := target.(ErrNotFound)
	if !ok {
		return false
	}
	if t.CategoryID == uuid.Nil {
		return true
	}
	return e.CategoryID == t.CategoryID
}
