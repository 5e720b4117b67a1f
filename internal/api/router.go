package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gerdoo-personal-ledger/internal/api/handler"
	"github.com/gerdoo-personal-ledger/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	goldHandler *handler.GoldHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Account operations
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.CreateAccount)
			accounts.GET("", accountHandler.ListAccounts)
			accounts.GET("/:id", accountHandler.GetAccount)
			accounts.POST("/:id/deactivate", accountHandler.DeactivateAccount)
			accounts.GET("/:id/transactions", accountHandler.GetAccountTransactions)
		}

		// Ledger operations
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", transactionHandler.CreateTransaction)
			transactions.GET("/:id", transactionHandler.GetTransaction)
			transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
		}

		// Gold trading operations
		gold := v1.Group("/gold")
		{
			gold.GET("", goldHandler.ListLots)
			gold.POST("", goldHandler.PurchaseLot)
			gold.POST("/:id/sell", goldHandler.SellLot)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
