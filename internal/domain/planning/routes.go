package planning

import (
	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/middleware"
)

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/plan-events", h.Create)
	protected.GET("/plan-events/me", h.ListMine)

	manager := protected.Group("/manager", middleware.RequireRole(domain.RoleEventManager))
	{
		manager.GET("/plan-events", h.ListAssigned)
		manager.PATCH("/plan-events/:id", h.ManagerUpdate)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/plan-events", h.AdminList)
	admin.PATCH("/plan-events/:id/assign", h.Assign)
}
