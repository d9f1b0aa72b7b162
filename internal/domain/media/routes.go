package media

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	g := protected.Group("/media")
	{
		g.POST("", writeLimit, h.Upload)
		g.GET("", h.ListMine)
		g.GET("/:id", h.Get)
		g.DELETE("/:id", h.Delete)
	}
}
