package gold

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLot(t *testing.T) {
	purchaseDate := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	lot := NewLot(decimal.NewFromFloat(4.5), decimal.NewFromInt(9_000_000), purchaseDate, "خرید 4.5 سوت طلا")

	assert.False(t, lot.IsSold)
	assert.False(t, lot.SalePrice.Valid)
	assert.Nil(t, lot.SaleDate)
	assert.Equal(t, purchaseDate, lot.PurchaseDate)
}

func TestMarkSold(t *testing.T) {
	lot := NewLot(decimal.NewFromInt(3), decimal.NewFromInt(6_000_000), time.Now(), "")
	saleDate := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, lot.MarkSold(decimal.NewFromInt(7_000_000), saleDate))

	assert.True(t, lot.IsSold)
	require.True(t, lot.SalePrice.Valid)
	assert.True(t, lot.SalePrice.Decimal.Equal(decimal.NewFromInt(7_000_000)))
	require.NotNil(t, lot.SaleDate)
	assert.Equal(t, saleDate, *lot.SaleDate)

	// A second sale of the same lot must fail and change nothing
	err := lot.MarkSold(decimal.NewFromInt(8_000_000), time.Now())
	assert.ErrorIs(t, err, ErrAlreadySold{LotID: lot.ID})
	assert.True(t, lot.SalePrice.Decimal.Equal(decimal.NewFromInt(7_000_000)))
	assert.Equal(t, saleDate, *lot.SaleDate)
}
