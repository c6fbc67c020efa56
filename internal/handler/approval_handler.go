package handler

import (
	"net/http"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ApprovalHandler handles approval and delegation endpoints
type ApprovalHandler struct {
	approvalService *service.ApprovalService
	contentService  *service.ContentService
	userRepo        repository.UserRepository
}

// NewApprovalHandler creates a new ApprovalHandler
func NewApprovalHandler(
	approvalService *service.ApprovalService,
	contentService *service.ContentService,
	userRepo repository.UserRepository,
) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
		contentService:  contentService,
		userRepo:        userRepo,
	}
}

// Record handles POST /api/v1/contents/:id/approvals
func (h *ApprovalHandler) Record(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Level    string `json:"level" binding:"required"`
		Decision string `json:"decision" binding:"required"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.approvalService.RecordApproval(actor, id, req.Level, req.Decision, req.Comment)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, item)
}

// List handles GET /api/v1/contents/:id/approvals
func (h *ApprovalHandler) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	approvals, err := h.approvalService.ListByItem(id)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list approvals", err)
		return
	}
	common.Success(c, approvals)
}

// State handles GET /api/v1/contents/:id/approvals/state
// Returns the newest decision per level.
func (h *ApprovalHandler) State(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	state, err := h.approvalService.ApprovalState(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, state)
}

// ResolveApprover handles GET /api/v1/contents/:id/approver
// Tells the client whose UI should show the level-2 controls.
func (h *ApprovalHandler) ResolveApprover(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.contentService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, h.approvalService.ResolveApprover(item))
}

// Delegate handles POST /api/v1/delegations
func (h *ApprovalHandler) Delegate(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}

	var req struct {
		Vertical       string `json:"vertical" binding:"required"`
		DelegateUserID uint64 `json:"delegate_user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	delegation, err := h.approvalService.Delegate(actor, req.Vertical, req.DelegateUserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Created(c, delegation)
}

// ListDelegations handles GET /api/v1/delegations
func (h *ApprovalHandler) ListDelegations(c *gin.Context) {
	if vertical := c.Query("vertical"); vertical != "" {
		history, err := h.approvalService.DelegationHistory(vertical)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		common.Success(c, history)
		return
	}

	delegations, err := h.approvalService.ListDelegations()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list delegations", err)
		return
	}
	common.Success(c, delegations)
}

// ClearDelegation handles DELETE /api/v1/delegations/:vertical
func (h *ApprovalHandler) ClearDelegation(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}

	if err := h.approvalService.ClearDelegation(actor, c.Param("vertical")); err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, gin.H{"cleared": true})
}
