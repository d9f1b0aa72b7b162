package notification

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications")
	{
		g.GET("", h.GetNotifications)
		g.PATCH("/read-all", h.MarkAllAsRead)
		g.PATCH("/:id/read", h.MarkAsRead)
	}
}
