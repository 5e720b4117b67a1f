package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations
type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	List(ctx context.Context, activeOnly bool) ([]*Account, error)
	Update(ctx context.Context, account *Account) error

	// Deactivate soft-disables an account. Accounts referenced by
	// transactions are never physically deleted.
	Deactivate(ctx context.Context, id uuid.UUID) error

	// LockForUpdate acquires a pessimistic row lock scoped to the enclosing
	// transaction, guaranteeing read-modify-write without lost updates.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrNotFound indicates missing account
type ErrNotFound struct {
	AccountID uuid.UUID
}

func (e ErrNotFound) Error() string {
	return "account not found: " + e.AccountID.String()
}

// Is implements the errors.Is interface for ErrNotFound
func (e ErrNotFound) Is(target error) bool {
	t, ok := target.(ErrNotFound)
	if !ok {
		return false
	}
	if t.AccountID == uuid.Nil {
		return true
	}
	return e.AccountID == t.AccountID
}
