package service

import (
	"context"

	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountServiceImpl implements the AccountService interface
type AccountServiceImpl struct {
	accountRepo account.Repository
}

// NewAccountService creates a new account service
func NewAccountService(accountRepo account.Repository) AccountService {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
	}
}

// CreateAccount creates a new active account with the given details
func (s *AccountServiceImpl) CreateAccount(ctx context.Context, bankName, owner, cardNumber, color string, initialBalance decimal.Decimal) (*account.Account, error) {
	acc, err := account.NewAccount(bankName, owner, cardNumber, color, initialBalance)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Create(ctx, acc); err != nil {
		return nil, err
	}

	return acc, nil
}

// GetAccountByID retrieves an account by its ID, returns account.ErrNotFound if not found
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// ListAccounts retrieves all accounts, optionally only active ones
func (s *AccountServiceImpl) ListAccounts(ctx context.Context, activeOnly bool) ([]*account.Account, error) {
	return s.accountRepo.List(ctx, activeOnly)
}

// DeactivateAccount soft-disables an account
func (s *AccountServiceImpl) DeactivateAccount(ctx context.Context, id uuid.UUID) error {
	return s.accountRepo.Deactivate(ctx, id)
}
