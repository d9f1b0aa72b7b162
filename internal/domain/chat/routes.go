package chat

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the REST endpoints under the protected group and the
// websocket under the public one, since it authenticates by query token.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/ws", h.WebSocket)

	conv := protected.Group("/conversations")
	{
		conv.POST("", h.StartConversation)
		conv.GET("", h.ListConversations)
		conv.GET("/:id/messages", h.GetMessages)
		conv.POST("/:id/messages", h.SendMessage)
		conv.POST("/:id/read", h.MarkRead)
	}
}
