package routes

import (
	"github.com/craftlab-hq/ops-backend/internal/domain"
	"github.com/craftlab-hq/ops-backend/internal/handler"
	"github.com/craftlab-hq/ops-backend/internal/middleware"
	"github.com/craftlab-hq/ops-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router wires up
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Module   *handler.ModuleHandler
	Content  *handler.ContentHandler
	Approval *handler.ApprovalHandler
	Version  *handler.VersionHandler
	Comment  *handler.CommentHandler
	Ledger   *handler.LedgerHandler
}

// SetupAuth configures authentication routes
func SetupAuth(router *gin.Engine, h *handler.AuthHandler, jwtManager *jwt.Manager) {
	authGroup := router.Group("/api/v1/auth")
	authGroup.POST("/login", h.Login)
	authGroup.POST("/refresh", h.Refresh)
	authGroup.GET("/me", middleware.JWTAuth(jwtManager), h.Me)
}

// Setup configures the authenticated API routes
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager) {
	SetupAuth(router, h.Auth, jwtManager)

	api := router.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtManager))

	// Users
	api.GET("/users/production", h.User.ListProduction)

	// Campaign modules
	modules := api.Group("/modules")
	modules.GET("", h.Module.List)
	modules.POST("", h.Module.Create)
	modules.GET("/:id", h.Module.Get)
	modules.POST("/:id/archive", h.Module.Archive)
	modules.DELETE("/:id", middleware.RequireCEO(), h.Module.Delete)

	// Content items
	contents := api.Group("/contents")
	contents.GET("", h.Content.List)
	contents.POST("", h.Content.Create)
	contents.GET("/:id", h.Content.Get)
	contents.PATCH("/:id", h.Content.UpdateDetails)
	contents.POST("/:id/status", h.Content.UpdateStatus)
	contents.POST("/:id/submit-review", h.Content.SubmitForReview)
	contents.GET("/:id/checklist", h.Content.GetChecklist)
	contents.PUT("/:id/checklist", h.Content.UpdateChecklist)
	contents.POST("/:id/archive", h.Content.Archive)
	contents.POST("/:id/unarchive", h.Content.Unarchive)
	contents.DELETE("/:id", middleware.RequireCEO(), h.Content.Delete)

	// Comment stream (nested under contents)
	contents.GET("/:id/comments", h.Comment.List)
	contents.POST("/:id/comments", h.Comment.Add)

	// Version store (nested under contents)
	contents.GET("/:id/versions", h.Version.List)
	contents.POST("/:id/versions", h.Version.Add)
	contents.POST("/:id/versions/:vid/feedback", h.Version.SubmitFeedback)

	// Approval ledger (nested under contents)
	contents.GET("/:id/approvals", h.Approval.List)
	contents.POST("/:id/approvals", h.Approval.Record)
	contents.GET("/:id/approvals/state", h.Approval.State)
	contents.GET("/:id/approver", h.Approval.ResolveApprover)

	// Delegations
	delegations := api.Group("/delegations")
	delegations.GET("", h.Approval.ListDelegations)
	delegations.POST("", middleware.RequireRole(domain.RoleCEO, domain.RoleAdmin), h.Approval.Delegate)
	delegations.DELETE("/:vertical", middleware.RequireRole(domain.RoleCEO, domain.RoleAdmin), h.Approval.ClearDelegation)

	// Finance ledger
	finance := api.Group("/finance")
	finance.GET("/transactions", h.Ledger.List)
	finance.POST("/transactions", h.Ledger.Record)
	finance.POST("/transactions/:id/reverse", h.Ledger.Reverse)
	finance.POST("/transactions/:id/clear", h.Ledger.MarkCleared)
	finance.GET("/balance", h.Ledger.Balance)
}
