package handler

import (
	"net/http"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user lookup endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListProduction handles GET /api/v1/users/production
// Returns active editors for the assignment dropdowns.
func (h *UserHandler) ListProduction(c *gin.Context) {
	users, err := h.userService.ListProductionUsers()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list production users", err)
		return
	}
	common.Success(c, users)
}
