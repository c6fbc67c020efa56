package handler

import (
	"net/http"
	"strconv"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ContentHandler handles content item endpoints
type ContentHandler struct {
	contentService *service.ContentService
	userRepo       repository.UserRepository
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(contentService *service.ContentService, userRepo repository.UserRepository) *ContentHandler {
	return &ContentHandler{contentService: contentService, userRepo: userRepo}
}

type briefRequest struct {
	Objective string `json:"objective"`
	Duration  string `json:"duration"`
	Tone      string `json:"tone"`
	MustHaves string `json:"must_haves"`
	CTA       string `json:"cta"`
}

func (b briefRequest) toDomain() domain.Brief {
	return domain.Brief{
		Objective: b.Objective,
		Duration:  b.Duration,
		Tone:      b.Tone,
		MustHaves: b.MustHaves,
		CTA:       b.CTA,
	}
}

// Create handles POST /api/v1/contents
func (h *ContentHandler) Create(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}

	var req struct {
		Title          string       `json:"title" binding:"required"`
		Vertical       string       `json:"vertical" binding:"required"`
		Priority       string       `json:"priority"`
		Platforms      []string     `json:"platforms"`
		Script         string       `json:"script"`
		Brief          briefRequest `json:"brief"`
		ReferenceLinks []string     `json:"reference_links"`
		ModuleID       *uint64      `json:"module_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.contentService.Create(actor, service.CreateContentInput{
		Title:          req.Title,
		Vertical:       req.Vertical,
		Priority:       req.Priority,
		Platforms:      req.Platforms,
		Script:         req.Script,
		Brief:          req.Brief.toDomain(),
		ReferenceLinks: req.ReferenceLinks,
		ModuleID:       req.ModuleID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Created(c, item)
}

// List handles GET /api/v1/contents
func (h *ContentHandler) List(c *gin.Context) {
	filter := repository.ContentFilter{
		Status:          c.Query("status"),
		Vertical:        c.Query("vertical"),
		IncludeArchived: c.Query("include_archived") == "true",
	}
	if v := c.Query("module_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.ModuleID = &id
		}
	}
	if v := c.Query("editor_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			filter.EditorID = &id
		}
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "20"))

	items, total, err := h.contentService.List(filter)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list contents", err)
		return
	}
	common.SuccessWithMeta(c, items, common.NewMeta(filter.Page, filter.PerPage, total))
}

// Get handles GET /api/v1/contents/:id
func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.contentService.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, item)
}

// UpdateDetails handles PATCH /api/v1/contents/:id
func (h *ContentHandler) UpdateDetails(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Script           *string       `json:"script"`
		Priority         *string       `json:"priority"`
		Platforms        []string      `json:"platforms"`
		Brief            *briefRequest `json:"brief"`
		ReferenceLinks   []string      `json:"reference_links"`
		AssignedEditorID *uint64       `json:"assigned_editor_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	input := service.UpdateDetailsInput{
		Script:           req.Script,
		Priority:         req.Priority,
		Platforms:        req.Platforms,
		ReferenceLinks:   req.ReferenceLinks,
		AssignedEditorID: req.AssignedEditorID,
	}
	if req.Brief != nil {
		brief := req.Brief.toDomain()
		input.Brief = &brief
	}

	item, err := h.contentService.UpdateDetails(actor, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, item)
}

// UpdateStatus handles POST /api/v1/contents/:id/status
func (h *ContentHandler) UpdateStatus(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	item, err := h.contentService.UpdateStatus(actor, id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, item)
}

// SubmitForReview handles POST /api/v1/contents/:id/submit-review
func (h *ContentHandler) SubmitForReview(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	item, err := h.contentService.SubmitForReview(actor, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, item)
}

// GetChecklist handles GET /api/v1/contents/:id/checklist
func (h *ContentHandler) GetChecklist(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	checklist, err := h.contentService.GetChecklist(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, checklist)
}

// UpdateChecklist handles PUT /api/v1/contents/:id/checklist
func (h *ContentHandler) UpdateChecklist(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		LogoUsage   bool `json:"logo_usage"`
		BrandColors bool `json:"brand_colors"`
		Captions    bool `json:"captions"`
		SoundLevels bool `json:"sound_levels"`
		Resolution  bool `json:"resolution"`
		CTAPresent  bool `json:"cta_present"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	checklist, err := h.contentService.UpdateChecklist(actor, id, &domain.Checklist{
		LogoUsage:   req.LogoUsage,
		BrandColors: req.BrandColors,
		Captions:    req.Captions,
		SoundLevels: req.SoundLevels,
		Resolution:  req.Resolution,
		CTAPresent:  req.CTAPresent,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, checklist)
}

// Archive handles POST /api/v1/contents/:id/archive
func (h *ContentHandler) Archive(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contentService.Archive(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, gin.H{"archived": true})
}

// Unarchive handles POST /api/v1/contents/:id/unarchive
func (h *ContentHandler) Unarchive(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contentService.Unarchive(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, gin.H{"archived": false})
}

// Delete handles DELETE /api/v1/contents/:id (CEO only)
func (h *ContentHandler) Delete(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contentService.Delete(actor, id); err != nil {
		respondServiceError(c, err)
		return
	}
	common.Success(c, gin.H{"deleted": true})
}
