package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages transaction persistence with pagination support
type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// LockForUpdate locks the transaction row so a delete-reversal cannot
	// race another delete of the same transaction.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Transaction, error)
	CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
	ListByDateRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Transaction, error)

	// LatestForAccount returns the most recent transaction touching the
	// account as source or destination, or ErrNotFound when there is none.
	LatestForAccount(ctx context.Context, accountID uuid.UUID) (*Transaction, error)

	WithTx(tx pgx.Tx) Repository
}

// ErrNotFound indicates missing transaction
type ErrNotFound struct {
	TransactionID uuid.UUID
}

func (e ErrNotFound) Error() string {
	return "transaction not found: " + e.TransactionID.String()
}

// Is implements the errors.Is interface for ErrNotFound
func (e ErrNotFound) Is(target error) bool {
	t, ok := target.(ErrNotFound)
	if !ok {
		return false
	}
	if t.TransactionID == uuid.Nil {
		return true
	}
	return e.TransactionID == t.TransactionID
}
