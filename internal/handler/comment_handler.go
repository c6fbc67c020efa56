package handler

import (
	"net/http"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// CommentHandler handles comment stream endpoints
type CommentHandler struct {
	commentService *service.CommentService
	userRepo       repository.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *service.CommentService, userRepo repository.UserRepository) *CommentHandler {
	return &CommentHandler{commentService: commentService, userRepo: userRepo}
}

// Add handles POST /api/v1/contents/:id/comments
func (h *CommentHandler) Add(c *gin.Context) {
	actor, ok := resolveActor(c, h.userRepo)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
		Type string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.commentService.Add(actor, id, req.Text, req.Type)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	common.Created(c, comment)
}

// List handles GET /api/v1/contents/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	comments, err := h.commentService.ListByItem(id)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list comments", err)
		return
	}
	common.Success(c, comments)
}
