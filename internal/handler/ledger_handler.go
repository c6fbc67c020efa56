package handler

import (
	"net/http"
	"strconv"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LedgerHandler handles finance ledger endpoints
type LedgerHandler struct {
	ledgerService *service.LedgerService
	userRepo      repository.UserRepository
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *service.LedgerService, userRepo repository.UserRepository) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, userRepo: userRepo}
}

// Record handles POST /api/v1/finance/transactions
func (h *LedgerHandler) Record(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}

	var req struct {
		Type        string `json:"type" binding:"required"`
		Category    string `json:"category"`
		Amount      string `json:"amount" binding:"required"`
		Description string `json:"description"`
		Cleared     bool   `json:"cleared"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	entry, err := h.ledgerService.Record(actor, service.RecordTransactionInput{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		Cleared:     req.Cleared,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Created(c, entry)
}

// List handles GET /api/v1/finance/transactions
func (h *LedgerHandler) List(c *gin.Context) {
	filter := repository.LedgerFilter{
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Category: c.Query("category"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "50"))

	entries, total, err := h.ledgerService.List(filter)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list transactions", err)
		return
	}
	common.SuccessWithMeta(c, entries, common.NewMeta(filter.Page, filter.PerPage, total))
}

// Reverse handles POST /api/v1/finance/transactions/:id/reverse
func (h *LedgerHandler) Reverse(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	contra, err := h.ledgerService.Reverse(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Created(c, contra)
}

// MarkCleared handles POST /api/v1/finance/transactions/:id/clear
func (h *LedgerHandler) MarkCleared(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.ledgerService.MarkCleared(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, gin.H{"cleared": true})
}

// Balance handles GET /api/v1/finance/balance
func (h *LedgerHandler) Balance(c *gin.Context) {
	balance, err := h.ledgerService.Balance()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute balance", err)
		return
	}
	common.Success(c, gin.H{"balance": balance})
}
