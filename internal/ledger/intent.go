package ledger

import (
	"time"

	"github.com/gerdoo-personal-ledger/internal/domain/category"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryRef names a category either by ID or by (name, kind). A name-based
// reference is resolved with get-or-create, which derived workflows rely on.
type CategoryRef struct {
	ID   uuid.UUID
	Name string
	Kind category.Kind
}

// CreateIntent describes a requested ledger event. The engine validates it
// before taking any lock.
type CreateIntent struct {
	Kind          transaction.Kind
	Amount        decimal.Decimal
	SourceID      *uuid.UUID
	DestinationID *uuid.UUID
	Category      CategoryRef
	Description   string
	Date          time.Time // zero value means "today" per the engine clock
	Tags          []string
	Commission    decimal.Decimal // transfers only; never credited anywhere
}

// ErrInvalidArgument indicates malformed or out-of-range input, detected
// before any lock is taken or row written.
type ErrInvalidArgument struct {
	Field  string
	Reason string
}

func (e ErrInvalidArgument) Error() string {
	return "invalid argument " + e.Field + ": " + e.Reason
}

// Is implements the errors.Is interface for ErrInvalidArgument
func (e ErrInvalidArgument) Is(target error) bool {
	t, ok := target.(ErrInvalidArgument)
	if !ok {
		return false
	}
	if t.Field == "" {
		return true
	}
	return e.Field == t.Field
}

// validate checks the intent's shape. Balance checks happen later, under lock.
func (i *CreateIntent) validate() error {
	if !i.Kind.Valid() {
		return ErrInvalidArgument{Field: "kind", Reason: "must be income, expense or transfer"}
	}
	if !i.Amount.IsPositive() {
		return ErrInvalidArgument{Field: "amount", Reason: "must be positive"}
	}
	// Rial amounts are whole numbers; the money columns carry no fraction
	if !i.Amount.IsInteger() {
		return ErrInvalidArgument{Field: "amount", Reason: "must be a whole rial amount"}
	}
	if i.Commission.IsNegative() {
		return ErrInvalidArgument{Field: "commission", Reason: "cannot be negative"}
	}
	if !i.Commission.IsInteger() {
		return ErrInvalidArgument{Field: "commission", Reason: "must be a whole rial amount"}
	}
	if i.Kind.HasSource() && i.SourceID == nil {
		return ErrInvalidArgument{Field: "source_id", Reason: "required for expense and transfer"}
	}
	if i.Kind.HasDestination() && i.DestinationID == nil {
		return ErrInvalidArgument{Field: "destination_id", Reason: "required for income and transfer"}
	}
	if i.Description == "" {
		return ErrInvalidArgument{Field: "description", Reason: "cannot be empty"}
	}
	if i.Category.ID == uuid.Nil {
		if i.Category.Name == "" {
			return ErrInvalidArgument{Field: "category", Reason: "category id or name is required"}
		}
		if !i.Category.Kind.Valid() {
			return ErrInvalidArgument{Field: "category", Reason: "category kind is required for get-or-create"}
		}
	}
	return nil
}
