package category

import (
	"errors"

	"github.com/google/uuid"
)

// Kind classifies a category and mirrors the transaction kinds.
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

// Valid reports whether the kind is one of the closed set.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer:
		return true
	}
	return false
}

var ErrInvalidKind = errors.New("invalid category kind")

// Category is a labeled bucket used for aggregation. It carries no balance
// logic of its own.
type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Kind Kind      `json:"kind"`
}

// NewCategory creates a category with a fresh ID
func NewCategory(name string, kind Kind) (*Category, error) {
	if name == "" {
		return nil, errors.New("category name cannot be empty")
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	return &Category{
		ID:   uuid.New(),
		Name: name,
		Kind: kind,
	}, nil
}
