package handler

import (
	"log/slog"

	"github.com/gerdoo-personal-ledger/internal/api/service"
	"github.com/gerdoo-personal-ledger/internal/trading"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoldHandler handles HTTP requests for the gold trading workflow
type GoldHandler struct {
	tradingService service.TradingService
	logger         *slog.Logger
}

// NewGoldHandler creates a new gold handler
func NewGoldHandler(tradingService service.TradingService, logger *slog.Logger) *GoldHandler {
	return &GoldHandler{
		tradingService: tradingService,
		logger:         logger,
	}
}

// ListLots handles GET /api/v1/gold
func (h *GoldHandler) ListLots(c *gin.Context) {
	lots, err := h.tradingService.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	responses := make([]GoldLotResponse, 0, len(lots))
	for _, lot := range lots {
		responses = append(responses, mapLotToResponse(lot))
	}

	RespondOK(c, responses)
}

// PurchaseLot handles POST /api/v1/gold
func (h *GoldHandler) PurchaseLot(c *gin.Context) {
	var req PurchaseGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	weight, err := decimal.NewFromString(req.Weight)
	if err != nil {
		RespondBadRequest(c, "Invalid weight: must be a decimal number")
		return
	}

	params := trading.PurchaseParams{
		Weight:      weight,
		Description: req.Description,
	}

	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			RespondBadRequest(c, "Invalid price: must be a decimal number")
			return
		}
		params.Price = price
	}

	if req.FundingAccountID != "" {
		id, err := uuid.Parse(req.FundingAccountID)
		if err != nil {
			RespondBadRequest(c, "Invalid funding_account_id format")
			return
		}
		params.FundingAccountID = &id
	}

	lot, err := h.tradingService.Purchase(c.Request.Context(), params)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondCreated(c, mapLotToResponse(lot))
}

// SellLot handles POST /api/v1/gold/:id/sell
func (h *GoldHandler) SellLot(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid lot ID format")
		return
	}

	var req SellGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request: "+err.Error())
		return
	}

	destinationID, err := uuid.Parse(req.DestinationAccountID)
	if err != nil {
		RespondBadRequest(c, "Invalid destination_account_id format")
		return
	}

	salePrice, err := decimal.NewFromString(req.SalePrice)
	if err != nil {
		RespondBadRequest(c, "Invalid sale_price: must be a decimal number")
		return
	}

	lot, err := h.tradingService.Sell(c.Request.Context(), lotID, destinationID, salePrice)
	if err != nil {
		respondDomainError(c, h.logger, err)
		return
	}

	RespondOK(c, mapLotToResponse(lot))
}
