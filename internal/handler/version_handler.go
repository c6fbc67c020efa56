package handler

import (
	"net/http"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// VersionHandler handles asset version endpoints
type VersionHandler struct {
	versionService *service.VersionService
	userRepo       repository.UserRepository
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(versionService *service.VersionService, userRepo repository.UserRepository) *VersionHandler {
	return &VersionHandler{versionService: versionService, userRepo: userRepo}
}

// Add handles POST /api/v1/contents/:id/versions
func (h *VersionHandler) Add(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		AssetURL string `json:"asset_url" binding:"required,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	version, err := h.versionService.AddVersion(actor, id, req.AssetURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Created(c, version)
}

// List handles GET /api/v1/contents/:id/versions
func (h *VersionHandler) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	versions, err := h.versionService.ListByItem(id)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list versions", err)
		return
	}
	common.Success(c, versions)
}

// SubmitFeedback handles POST /api/v1/contents/:id/versions/:vid/feedback
func (h *VersionHandler) SubmitFeedback(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	versionID, ok := parseID(c, "vid")
	if !ok {
		return
	}

	var req struct {
		Decision string `json:"decision" binding:"required"`
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	version, err := h.versionService.SubmitFeedback(actor, id, versionID, req.Decision, req.Feedback)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, version)
}
