package handler

import (
	"net/http"
	"time"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ModuleHandler handles campaign module endpoints
type ModuleHandler struct {
	moduleService *service.ModuleService
	userRepo      repository.UserRepository
}

// NewModuleHandler creates a new ModuleHandler
func NewModuleHandler(moduleService *service.ModuleService, userRepo repository.UserRepository) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService, userRepo: userRepo}
}

// Create handles POST /api/v1/modules
func (h *ModuleHandler) Create(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}

	var req struct {
		Name      string `json:"name" binding:"required"`
		Category  string `json:"category" binding:"required"`
		Priority  string `json:"priority"`
		Goal      string `json:"goal"`
		Audience  string `json:"audience"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	module := &domain.ContentModule{
		Name:     req.Name,
		Category: req.Category,
		Priority: req.Priority,
		Goal:     req.Goal,
		Audience: req.Audience,
	}
	if req.StartDate != "" {
		if t, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			module.StartDate = &t
		}
	}
	if req.EndDate != "" {
		if t, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			module.EndDate = &t
		}
	}

	created, err := h.moduleService.Create(actor, module)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Created(c, created)
}

// List handles GET /api/v1/modules
func (h *ModuleHandler) List(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"
	modules, err := h.moduleService.List(includeArchived)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list modules", err)
		return
	}
	common.Success(c, modules)
}

// Get handles GET /api/v1/modules/:id
func (h *ModuleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	module, err := h.moduleService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, module)
}

// Archive handles POST /api/v1/modules/:id/archive
func (h *ModuleHandler) Archive(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.moduleService.Archive(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, gin.H{"archived": true})
}

// Delete handles DELETE /api/v1/modules/:id (CEO only, cascades to items)
func (h *ModuleHandler) Delete(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.moduleService.Delete(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, gin.H{"deleted": true})
}
