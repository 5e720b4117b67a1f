// Package gold models purchased lots of gold, the one non-cash asset the
// ledger trades. A lot is written once at purchase and mutated exactly once,
// at sale.
package gold

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lot represents one purchased lot of gold. Weight is measured in soot
// (0.001 gram).
type Lot struct {
	ID           uuid.UUID           `json:"id"`
	Weight       decimal.Decimal     `json:"weight"`
	Price        decimal.Decimal     `json:"price"`
	SalePrice    decimal.NullDecimal `json:"sale_price,omitempty"`
	PurchaseDate time.Time           `json:"purchase_date"`
	SaleDate     *time.Time          `json:"sale_date,omitempty"`
	IsSold       bool                `json:"is_sold"`
	Description  string              `json:"description"`
}

// NewLot creates an unsold lot with a fresh ID
func NewLot(weight, price decimal.Decimal, purchaseDate time.Time, description string) *Lot {
	return &Lot{
		ID:           uuid.New(),
		Weight:       weight,
		Price:        price,
		PurchaseDate: purchaseDate,
		IsSold:       false,
		Description:  description,
	}
}

// MarkSold records the sale. A lot that is already sold cannot be sold again.
func (l *Lot) MarkSold(salePrice decimal.Decimal, saleDate time.Time) error {
	if l.IsSold {
		return ErrAlreadySold{LotID: l.ID}
	}
	l.IsSold = true
	l.SalePrice = decimal.NullDecimal{Decimal: salePrice, Valid: true}
	l.SaleDate = &saleDate
	return nil
}
