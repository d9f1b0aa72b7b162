package booking

import (
	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/middleware"
)

// RegisterRoutes mounts the booking routes. writeLimit guards the create call.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup, writeLimit gin.HandlerFunc) {
	bookings := protected.Group("/bookings")
	{
		bookings.POST("", writeLimit, h.CreateBooking)
		bookings.GET("/me", h.GetMyBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.PATCH("/:id/owner-action", h.OwnerAction)
	}

	protected.GET("/owner/bookings", middleware.RequireRole(domain.RoleOwner), h.GetOwnerBookings)
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/bookings", h.AdminListBookings)
	admin.PATCH("/bookings/:id/status", h.AdminUpdateStatus)
	admin.DELETE("/bookings/:id", h.AdminDeleteBooking)
}

func (h *Handler) RegisterInternalRoutes(internal *gin.RouterGroup) {
	internal.POST("/reminders/run", h.RunReminders)
}
