// Package trading implements the gold buy/sell workflow. It owns no balance
// logic of its own: every monetary effect goes through the ledger engine, in
// the same database transaction as the lot write.
package trading

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gerdoo-personal-ledger/internal/domain/category"
	"github.com/gerdoo-personal-ledger/internal/domain/gold"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/gerdoo-personal-ledger/internal/ledger"
	"github.com/gerdoo-personal-ledger/internal/platform/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Category names used by the gold workflow; created on demand.
const (
	purchaseCategoryName = "سرمایه گذاری"
	saleCategoryName     = "فروش دارایی"
)

// TransactionCreator applies a ledger create intent inside an existing
// database transaction. Implemented by *ledger.Engine.
type TransactionCreator interface {
	CreateTransactionTx(ctx context.Context, tx pgx.Tx, intent ledger.CreateIntent) (*transaction.Transaction, error)
}

// PurchaseParams describes a gold purchase. A nil FundingAccountID records a
// gift: the price is forced to zero and no ledger transaction is written.
type PurchaseParams struct {
	Weight           decimal.Decimal
	Price            decimal.Decimal
	FundingAccountID *uuid.UUID
	Description      string
}

// Service is the gold trading workflow
type Service struct {
	db     persistence.TxRunner
	engine TransactionCreator
	lots   gold.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a gold trading service
func NewService(db persistence.TxRunner, engine TransactionCreator, lots gold.Repository, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		engine: engine,
		lots:   lots,
		logger: logger,
		now:    time.Now,
	}
}

// Purchase records a gold lot. A funded purchase debits the funding account
// through an expense transaction and creates the lot in one atomic unit; the
// lot is only durable if the debit succeeded.
func (s *Service) Purchase(ctx context.Context, params PurchaseParams) (*gold.Lot, error) {
	if params.Weight.IsNegative() {
		return nil, ledger.ErrInvalidArgument{Field: "weight", Reason: "cannot be negative"}
	}
	if params.Price.IsNegative() {
		return nil, ledger.ErrInvalidArgument{Field: "price", Reason: "cannot be negative"}
	}

	price := params.Price
	if params.FundingAccountID == nil {
		// Gift: nothing leaves any account
		price = decimal.Zero
	}

	var lot *gold.Lot
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		lot = gold.NewLot(params.Weight, price, s.now(), params.Description)
		if err := s.lots.WithTx(tx).Create(ctx, lot); err != nil {
			return err
		}

		if params.FundingAccountID != nil && price.IsPositive() {
			_, err := s.engine.CreateTransactionTx(ctx, tx, ledger.CreateIntent{
				Kind:        transaction.KindExpense,
				Amount:      price,
				SourceID:    params.FundingAccountID,
				Category:    ledger.CategoryRef{Name: purchaseCategoryName, Kind: category.KindExpense},
				Description: fmt.Sprintf("خرید %s سوت طلا", params.Weight.String()),
				Date:        s.now(),
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("gold lot purchased",
		"lot_id", lot.ID.String(),
		"weight", lot.Weight.String(),
		"price", lot.Price.String(),
		"funded", params.FundingAccountID != nil,
	)
	return lot, nil
}

// Sell marks a lot sold and credits the destination account through an income
// transaction, atomically. The lot row is locked before the is_sold check so
// two concurrent sales of the same lot cannot both succeed.
func (s *Service) Sell(ctx context.Context, lotID, destinationAccountID uuid.UUID, salePrice decimal.Decimal) (*gold.Lot, error) {
	if !salePrice.IsPositive() {
		return nil, ledger.ErrInvalidArgument{Field: "sale_price", Reason: "must be positive"}
	}

	var lot *gold.Lot
	err := s.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		lots := s.lots.WithTx(tx)

		var err error
		lot, err = lots.LockForUpdate(ctx, lotID)
		if err != nil {
			return err
		}

		if err := lot.MarkSold(salePrice, s.now()); err != nil {
			return err
		}
		if err := lots.Update(ctx, lot); err != nil {
			return err
		}

		_, err = s.engine.CreateTransactionTx(ctx, tx, ledger.CreateIntent{
			Kind:          transaction.KindIncome,
			Amount:        salePrice,
			DestinationID: &destinationAccountID,
			Category:      ledger.CategoryRef{Name: saleCategoryName, Kind: category.KindIncome},
			Description:   fmt.Sprintf("فروش %s سوت طلا", lot.Weight.String()),
			Date:          s.now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("gold lot sold",
		"lot_id", lot.ID.String(),
		"sale_price", salePrice.String(),
	)
	return lot, nil
}

// List returns all recorded lots, newest purchases first.
func (s *Service) List(ctx context.Context) ([]*gold.Lot, error) {
	return s.lots.List(ctx)
}
