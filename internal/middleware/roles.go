package middleware

import (
	"net/http"

	"github.com/craftlab-hq/ops-backend/internal/common"
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// RequireRole checks that the authenticated user holds one of the roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetUserRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		common.ErrorResponse(c, http.StatusForbidden, "Insufficient role", nil)
		c.Abort()
	}
}

// RequireCEO gates the permanent-delete paths
func RequireCEO() gin.HandlerFunc {
	return RequireRole(domain.RoleCEO)
}
