package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrInsufficientFunds = errors.New("insufficient funds for debit")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrEmptyOwner        = errors.New("owner name cannot be empty")
	ErrEmptyBankName     = errors.New("bank name cannot be empty")
)

// Account represents a bank card with a mutable balance. The balance is only
// ever changed inside a locked ledger operation; amounts are exact decimals,
// never floats.
type Account struct {
	ID         uuid.UUID       `json:"id"`
	BankName   string          `json:"bank_name"`
	Owner      string          `json:"owner"`
	CardNumber string          `json:"card_number"`
	Color      string          `json:"color"`
	Balance    decimal.Decimal `json:"balance"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewAccount creates a new active account with the given parameters
func NewAccount(bankName, owner, cardNumber, color string, initialBalance decimal.Decimal) (*Account, error) {
	if owner == "" {
		return nil, ErrEmptyOwner
	}
	if bankName == "" {
		return nil, ErrEmptyBankName
	}
	if initialBalance.IsNegative() {
		return nil, ErrInvalidAmount
	}
	if color == "" {
		color = "#007bff"
	}

	return &Account{
		ID:         uuid.New(),
		BankName:   bankName,
		Owner:      owner,
		CardNumber: cardNumber,
		Color:      color,
		Balance:    initialBalance,
		Active:     true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}, nil
}

// Deposit adds the specified amount to the account balance
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	a.Balance = a.Balance.Add(amount)
	a.UpdatedAt = time.Now()
	return nil
}

// Withdraw subtracts the specified amount from the account balance.
// The balance is checked before any mutation; a debit that would drive it
// below zero fails with ErrInsufficientFunds and leaves the account untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now()
	return nil
}

// ForceWithdraw subtracts the amount without a funds check. Used when
// reversing a committed transaction: funds received and later spent mean the
// reversal can legitimately drive the balance negative.
func (a *Account) ForceWithdraw(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
	a.UpdatedAt = time.Now()
}

// CanWithdraw checks if the account has sufficient funds for a debit
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return !a.Balance.LessThan(amount)
}
