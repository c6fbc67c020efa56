package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/middleware"
	"github.com/craftlab-hq/ops-backend/internal/repository"
	"github.com/craftlab-hq/ops-backend/internal/service"
	"github.com/craftlab-hq/ops-backend/internal/workflow"
	"github.com/gin-gonic/gin"
)

// resolveActor loads the authenticated user and builds the workflow actor.
// The DB lookup doubles as a deactivation check: tokens of disabled accounts
// stop working immediately.
func resolveActor(c *gin.Context, userRepo repository.UserRepository) (workflow.Actor, bool) {
	userUUID := middleware.GetUserUUID(c)
	if userUUID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated", nil)
		return workflow.Actor{}, false
	}

	user, err := userRepo.FindByUUID(userUUID)
	if err != nil || !user.Active {
		common.ErrorResponse(c, http.StatusUnauthorized, "Unknown or inactive user", nil)
		return workflow.Actor{}, false
	}

	return workflow.Actor{UserID: user.ID, Role: user.Role}, true
}

// parseID parses a numeric path parameter
func parseID(c *gin.Context, param string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid id", err)
		return 0, false
	}
	return id, true
}

// respondServiceError maps service sentinels onto HTTP statuses so every
// handler speaks the same error language
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrModuleNotFound),
		errors.Is(err, service.ErrVersionNotFound),
		errors.Is(err, service.ErrTxNotFound),
		errors.Is(err, service.ErrNoActiveDelegation):
		common.ErrorResponse(c, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, service.ErrRoleNotAllowed),
		errors.Is(err, service.ErrDeleteCEOOnly),
		errors.Is(err, service.ErrNotAssignedEditor),
		errors.Is(err, service.ErrNotChecklistEditor),
		errors.Is(err, workflow.ErrActorNotAllowed):
		common.ErrorResponse(c, http.StatusForbidden, err.Error(), nil)

	case errors.Is(err, workflow.ErrIllegalTransition),
		errors.Is(err, workflow.ErrUnknownStatus),
		errors.Is(err, workflow.ErrUnknownEvent),
		errors.Is(err, service.ErrVersionNotPending),
		errors.Is(err, service.ErrChecklistIncomplete),
		errors.Is(err, repository.ErrAlreadyReversed),
		errors.Is(err, repository.ErrReversalOfReversal),
		errors.Is(err, common.ErrVersionConflict):
		common.ErrorResponse(c, http.StatusConflict, err.Error(), nil)

	case errors.Is(err, service.ErrInvalidVertical),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrModuleName),
		errors.Is(err, service.ErrAssetURLRequired),
		errors.Is(err, service.ErrFeedbackRequired),
		errors.Is(err, service.ErrInvalidVersionStatus),
		errors.Is(err, service.ErrVersionWrongItem),
		errors.Is(err, service.ErrCommentTextRequired),
		errors.Is(err, service.ErrInvalidLevel),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrDelegateNotEligible),
		errors.Is(err, service.ErrEditorNotAssignable),
		errors.Is(err, service.ErrInvalidTxType),
		errors.Is(err, service.ErrAmountNotPositive):
		common.ErrorResponse(c, http.StatusBadRequest, err.Error(), nil)

	default:
		common.ErrorResponse(c, http.StatusInternalServerError, "Internal error", err)
	}
}
