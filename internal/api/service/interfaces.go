package service

import (
	"context"

	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/gerdoo-personal-ledger/internal/domain/gold"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/gerdoo-personal-ledger/internal/ledger"
	"github.com/gerdoo-personal-ledger/internal/trading"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountService defines the interface for account administration
type AccountService interface {
	// CreateAccount creates a new active account
	CreateAccount(ctx context.Context, bankName, owner, cardNumber, color string, initialBalance decimal.Decimal) (*account.Account, error)

	// GetAccountByID retrieves an account by its ID
	// Returns account.ErrNotFound if the account doesn't exist
	GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// ListAccounts retrieves all accounts, optionally only active ones
	ListAccounts(ctx context.Context, activeOnly bool) ([]*account.Account, error)

	// DeactivateAccount soft-disables an account
	DeactivateAccount(ctx context.Context, id uuid.UUID) error
}

// LedgerService defines the interface for ledger operations.
// Implemented by *ledger.Engine.
type LedgerService interface {
	CreateTransaction(ctx context.Context, intent ledger.CreateIntent) (*transaction.Transaction, error)
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID, page, perPage int) ([]*transaction.Transaction, int64, error)
}

var _ LedgerService = (*ledger.Engine)(nil)

// TradingService defines the interface for the gold workflow.
// Implemented by *trading.Service.
type TradingService interface {
	Purchase(ctx context.Context, params trading.PurchaseParams) (*gold.Lot, error)
	Sell(ctx context.Context, lotID, destinationAccountID uuid.UUID, salePrice decimal.Decimal) (*gold.Lot, error)
	List(ctx context.Context) ([]*gold.Lot, error)
}

var _ TradingService = (*trading.Service)(nil)
