package handler

import (
	"errors"
	"log/slog"

	"github.com/gerdoo-personal-ledger/internal/domain/account"
	"github.com/gerdoo-personal-ledger/internal/domain/category"
	"github.com/gerdoo-personal-ledger/internal/domain/gold"
	"github.com/gerdoo-personal-ledger/internal/domain/transaction"
	"github.com/gerdoo-personal-ledger/internal/ledger"
	"github.com/gin-gonic/gin"
)

// respondDomainError maps domain errors onto HTTP status codes. Anything not
// recognized is treated as a storage failure and reported as a 500.
func respondDomainError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidArgument{}),
		errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrEmptyOwner),
		errors.Is(err, account.ErrEmptyBankName):
		RespondBadRequest(c, err.Error())
	case errors.Is(err, account.ErrNotFound{}),
		errors.Is(err, transaction.ErrNotFound{}),
		errors.Is(err, category.ErrNotFound{}),
		errors.Is(err, gold.ErrNotFound{}):
		RespondNotFound(c, err.Error())
	case errors.Is(err, account.ErrInsufficientFunds):
		RespondUnprocessable(c, "INSUFFICIENT_FUNDS", err.Error())
	case errors.Is(err, gold.ErrAlreadySold{}):
		RespondConflict(c, err.Error())
	default:
		logger.Error("Unexpected error while handling request",
			"error", err,
			"path", c.Request.URL.Path,
		)
		RespondInternalError(c)
	}
}
