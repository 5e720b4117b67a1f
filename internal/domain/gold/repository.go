package gold

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository defines gold lot persistence operations
type Repository interface {
	Create(ctx context.Context, lot *Lot) error
	GetByID(ctx context.Context, id uuid.UUID) (*Lot, error)
	List(ctx context.Context) ([]*Lot, error)
	Update(ctx context.Context, lot *Lot) error

	// LockForUpdate locks the lot row so the is_sold check and the sale
	// mutation are race-free.
	LockForUpdate(ctx context.Context, id uuid.UUID) (*Lot, error)
	WithTx(tx pgx.Tx) Repository
}

// ErrNotFound indicates missing gold lot
type ErrNotFound struct {
	LotID uuid.UUID
}

func (e ErrNotFound) Error() string {
	return "gold lot not found: " + e.LotID.String()
}

// Is implements the errors.Is interface for ErrNotFound
func (e ErrNotFound) Is(target error) bool {
	t, ok := target.(ErrNotFound)
	if !ok {
		return false
	}
	if t.LotID == uuid.Nil {
		return true
	}
	return e.LotID == t.LotID
}

// ErrAlreadySold indicates a second sale attempt on the same lot
type ErrAlreadySold struct {
	LotID uuid.UUID
}

func (e ErrAlreadySold) Error() string {
	return "gold lot already sold: " + e.LotID.String()
}

// Is implements the errors.Is interface for ErrAlreadySold
func (e ErrAlreadySold) Is(target error) bool {
	t, ok := target.(ErrAlreadySold)
	if !ok {
		return false
	}
	if t.LotID == uuid.Nil {
		return true
	}
	return e.LotID == t.LotID
}
