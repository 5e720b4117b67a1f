package handler

import (
	"time"

	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/gerdoo-personal-ledger/internal/domain/gold"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// Monetary amounts travel as strings on the wire and are parsed into exact
// decimals; JSON numbers would round-trip through float64.

// CreateAccountRequest represents a request to create a new account
type CreateAccountRequest struct {
	BankName       string `json:"bank_name" binding:"required"`
	Owner          string `json:"owner" binding:"required"`
	CardNumber     string `json:"card_number" binding:"required"`
	Color          string `json:"color,omitempty"`
	InitialBalance string `json:"initial_balance,omitempty"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID         string          `json:"id"`
	BankName   string          `json:"bank_name"`
	Owner      string          `json:"owner"`
	CardNumber string          `json:"card_number"`
	Color      string          `json:"color"`
	Balance    decimal.Decimal `json:"balance"`
	Active     bool            `json:"active"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

// CreateTransactionRequest represents a request to record a ledger event
type CreateTransactionRequest struct {
	Kind          string   `json:"kind" binding:"required,oneof=income expense transfer"`
	Amount        string   `json:"amount" binding:"required"`
	SourceID      string   `json:"source_id,omitempty"`
	DestinationID string   `json:"destination_id,omitempty"`
	CategoryID    string   `json:"category_id,omitempty"`
	CategoryName  string   `json:"category_name,omitempty"`
	Description   string   `json:"description" binding:"required"`
	Date          string   `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Tags          []string `json:"tags,omitempty"`
	Commission    string   `json:"commission,omitempty"` // transfers only
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID                      string              `json:"id"`
	Kind                    string              `json:"kind"`
	Amount                  decimal.Decimal     `json:"amount"`
	SourceID                string              `json:"source_id,omitempty"`
	SourceBalanceAfter      decimal.NullDecimal `json:"source_balance_after,omitempty"`
	DestinationID           string              `json:"destination_id,omitempty"`
	DestinationBalanceAfter decimal.NullDecimal `json:"destination_balance_after,omitempty"`
	CategoryID              string              `json:"category_id"`
	Description             string              `json:"description"`
	Tags                    []string            `json:"tags,omitempty"`
	Date                    string              `json:"date"`
	CreatedAt               string              `json:"created_at"`
}

// PurchaseGoldRequest represents a request to record a gold purchase
type PurchaseGoldRequest struct {
	Weight           string `json:"weight" binding:"required"`
	Price            string `json:"price,omitempty"`
	FundingAccountID string `json:"funding_account_id,omitempty"`
	Description      string `json:"description,omitempty"`
}

// SellGoldRequest represents a request to sell a gold lot
type SellGoldRequest struct {
	DestinationAccountID string `json:"destination_account_id" binding:"required,uuid"`
	SalePrice            string `json:"sale_price" binding:"required"`
}

// GoldLotResponse represents a gold lot in API responses
type GoldLotResponse struct {
	ID           string              `json:"id"`
	Weight       decimal.Decimal     `json:"weight"`
	Price        decimal.Decimal     `json:"price"`
	SalePrice    decimal.NullDecimal `json:"sale_price,omitempty"`
	PurchaseDate string              `json:"purchase_date"`
	SaleDate     string              `json:"sale_date,omitempty"`
	IsSold       bool                `json:"is_sold"`
	Description  string              `json:"description"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

func mapAccountToResponse(acc *account.Account) AccountResponse {
	return AccountResponse{
		ID:         acc.ID.String(),
		BankName:   acc.BankName,
		Owner:      acc.Owner,
		CardNumber: acc.CardNumber,
		Color:      acc.Color,
		Balance:    acc.Balance,
		Active:     acc.Active,
		CreatedAt:  acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  acc.UpdatedAt.Format(time.RFC3339),
	}
}

func mapTransactionToResponse(txn *transaction.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:                      txn.ID.String(),
		Kind:                    string(txn.Kind),
		Amount:                  txn.Amount,
		SourceBalanceAfter:      txn.SourceBalanceAfter,
		DestinationBalanceAfter: txn.DestinationBalanceAfter,
		CategoryID:              txn.CategoryID.String(),
		Description:             txn.Description,
		Tags:                    txn.Tags,
		Date:                    txn.Date.Format("2006-01-02"),
		CreatedAt:               txn.CreatedAt.Format(time.RFC3339),
	}

	if txn.SourceID != nil {
		response.SourceID = txn.SourceID.String()
	}
	if txn.DestinationID != nil {
		response.DestinationID = txn.DestinationID.String()
	}

	return response
}

func mapLotToResponse(lot *gold.Lot) GoldLotResponse {
	response := GoldLotResponse{
		ID:           lot.ID.String(),
		Weight:       lot.Weight,
		Price:        lot.Price,
		SalePrice:    lot.SalePrice,
		PurchaseDate: lot.PurchaseDate.Format(time.RFC3339),
		IsSold:       lot.IsSold,
		Description:  lot.Description,
	}

	if lot.SaleDate != nil {
		response.SaleDate = lot.SaleDate.Format(time.RFC3339)
	}

	return response
}
