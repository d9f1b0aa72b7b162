package admin

import (
	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/middleware"
)

// RegisterRoutes mounts moderation under the admin group.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// halls & services
	admin.GET("/halls", h.ListHalls)
	admin.PATCH("/halls/:id/approve", h.ApproveHall)
	admin.PATCH("/halls/:id/deactivate", h.DeactivateHall)
	admin.DELETE("/halls/:id", h.DeleteHall)
	admin.GET("/services", h.ListServices)
	admin.PATCH("/services/:id/approve", h.ApproveService)
	admin.PATCH("/services/:id/reject", h.RejectService)

	// users
	admin.GET("/users", h.GetUsers)
	admin.PATCH("/users/:id/suspend", h.SuspendUser)
	admin.PATCH("/users/:id/activate", h.ActivateUser)
	admin.PATCH("/users/:id/role", h.SetUserRole)

	// verifications
	admin.GET("/verifications", h.ListVerifications)
	admin.PATCH("/verifications/:id/approve", h.ApproveVerification)
	admin.PATCH("/verifications/:id/reject", h.RejectVerification)

	admin.GET("/stats", h.GetStats)
}

// RegisterVerificationRoutes lets owners and providers submit documents.
func (h *Handler) RegisterVerificationRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/verifications", middleware.RequireRole(domain.RoleOwner, domain.RoleProvider))
	{
		g.POST("", h.SubmitVerification)
		g.GET("/me", h.MyVerifications)
	}
}
