package handler

import (
	"log/slog"
	"time"

	"github.com/gerdoo-personal-ledger/internal/api/service"
	"github.com/gerdoo-personal-ledger/internal/domain/category"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/gerdoo-personal-ledger/internal/ledger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles HTTP requests related to ledger transactions
type TransactionHandler struct {
	ledgerService service.LedgerService
	logger        *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService service.LedgerService, logger *slog.Logger) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	intent, err := buildCreateIntent(req)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	txn, err := h.ledgerService.CreateTransaction(c.Request.Context(), intent)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapTransactionToResponse(txn))
}

// GetTransaction handles GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID format")
		return
	}

	txn, err := h.ledgerService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapTransactionToResponse(txn))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id. Deleting a
// transaction reverses its balance effects before removing the row.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid transaction ID format")
		return
	}

	if err := h.ledgerService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}

// buildCreateIntent translates the wire request into an engine intent. Only
// syntactic problems are rejected here; semantic validation belongs to the
// engine.
func buildCreateIntent(req CreateTransactionRequest) (ledger.CreateIntent, error) {
	intent := ledger.CreateIntent{
		Kind:        transaction.Kind(req.Kind),
		Description: req.Description,
		Tags:        req.Tags,
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return intent, ledger.ErrInvalidArgument{Field: "amount", Reason: "must be a decimal number"}
	}
	intent.Amount = amount

	if req.Commission != "" {
		commission, err := decimal.NewFromString(req.Commission)
		if err != nil {
			return intent, ledger.ErrInvalidArgument{Field: "commission", Reason: "must be a decimal number"}
		}
		intent.Commission = commission
	}

	if req.SourceID != "" {
		id, err := uuid.Parse(req.SourceID)
		if err != nil {
			return intent, ledger.ErrInvalidArgument{Field: "source_id", Reason: "must be a UUID"}
		}
		intent.SourceID = &id
	}

	if req.DestinationID != "" {
		id, err := uuid.Parse(req.DestinationID)
		if err != nil {
			return intent, ledger.ErrInvalidArgument{Field: "destination_id", Reason: "must be a UUID"}
		}
		intent.DestinationID = &id
	}

	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return intent, ledger.ErrInvalidArgument{Field: "category_id", Reason: "must be a UUID"}
		}
		intent.Category.ID = id
	} else if req.CategoryName != "" {
		intent.Category.Name = req.CategoryName
		// Name-based categories inherit the kind of the transaction itself
		intent.Category.Kind = category.Kind(req.Kind)
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return intent, ledger.ErrInvalidArgument{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
		intent.Date = date
	}

	return intent, nil
}
