package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind defines the closed set of ledger event types.
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

// Valid reports whether the kind is a member of the closed set.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer:
		return true
	}
	return false
}

// HasSource reports whether transactions of this kind debit a source account.
func (k Kind) HasSource() bool {
	return k == KindExpense || k == KindTransfer
}

// HasDestination reports whether transactions of this kind credit a
// destination account.
func (k Kind) HasDestination() bool {
	return k == KindIncome || k == KindTransfer
}

var ErrInvalidKind = errors.New("invalid transaction kind")

// Transaction is an immutable ledger entry. Once committed it is never
// updated; the only later event is a delete, which reverses the balance
// effect first.
//
// SourceBalanceAfter and DestinationBalanceAfter are audit snapshots taken
// immediately after the mutation; they are stored, never recomputed.
//
// A transfer's commission is not a column. It lives inside Description as a
// textual marker (see the commission package) and the amount credited to the
// destination excludes it.
type Transaction struct {
	ID                      uuid.UUID           `json:"id"`
	Kind                    Kind                `json:"kind"`
	Amount                  decimal.Decimal     `json:"amount"`
	SourceID                *uuid.UUID          `json:"source_id,omitempty"`
	SourceBalanceAfter      decimal.NullDecimal `json:"source_balance_after,omitempty"`
	DestinationID           *uuid.UUID          `json:"destination_id,omitempty"`
	DestinationBalanceAfter decimal.NullDecimal `json:"destination_balance_after,omitempty"`
	CategoryID              uuid.UUID           `json:"category_id"`
	Description             string              `json:"description"`
	Tags                    []string            `json:"tags,omitempty"`
	Date                    time.Time           `json:"date"`
	CreatedAt               time.Time           `json:"created_at"`
}
