package handler

import (
	"log/slog"
	"net/http"

	"github.com/gerdoo-personal-ledger/internal/api/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountHandler handles HTTP requests related to accounts
type AccountHandler struct {
	accountService service.AccountService
	ledgerService  service.LedgerService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService service.AccountService, ledgerService service.LedgerService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
		logger:         logger,
	}
}

// CreateAccount handles POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		var err error
		initialBalance, err = decimal.NewFromString(req.InitialBalance)
		if err != nil {
			RespondBadRequest(c, "Invalid initial_balance: must be a decimal number")
			return
		}
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), req.BankName, req.Owner, req.CardNumber, req.Color, initialBalance)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetAccount handles GET /api/v1/accounts/:id
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid account ID format")
		return
	}

	acc, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// ListAccounts handles GET /api/v1/accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	activeOnly := c.Query("active_only") == "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), activeOnly)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		responses = append(responses, mapAccountToResponse(acc))
	}

	RespondOK(c, responses)
}

// DeactivateAccount handles POST /api/v1/accounts/:id/deactivate
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid account ID format")
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), id); err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondNoContent(c)
}

// GetAccountTransactions handles GET /api/v1/accounts/:id/transactions
func (h *AccountHandler) GetAccountTransactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid account ID format")
		return
	}

	var params PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}

	txns, total, err := h.ledgerService.ListTransactionsByAccount(c.Request.Context(), id, params.Page, params.PerPage)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, mapTransactionToResponse(txn))
	}

	RespondWithPaginatedData(c, http.StatusOK, responses, params.Page, params.PerPage, int(total))
}
