package payment

import (
	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/middleware"
)

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

// RegisterProtectedRoutes mounts the checkout routes. writeLimit guards the
// calls that create gateway orders.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	rg.POST("/payments/create-advance-order", writeLimit, h.CreateAdvanceOrder)
	rg.POST("/bookings/verify-advance-payment", h.VerifyAdvance)
	rg.POST("/payments/remaining/initiate", writeLimit, h.InitiateRemaining)
	rg.POST("/payments/verify-remaining-payment", h.VerifyRemaining)
	rg.POST("/payments/owner/decline", middleware.RequireRole(domain.RoleOwner), h.OwnerDecline)
	rg.GET("/payments/bookings/:id", h.GetBookingPayment)
}
