package catalog

import (
	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/middleware"
)

// RegisterPublicRoutes mounts read-only listings. An optional session lets
// owners preview their own pending halls.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	halls := r.Group("/halls")
	{
		halls.GET("", h.ListHalls)
		halls.GET("/:id", h.GetHall)
		halls.GET("/:id/availability", h.GetAvailability)
	}

	services := r.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
	}
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	owner := middleware.RequireRole(domain.RoleOwner)
	r.POST("/halls", owner, h.CreateHall)
	r.PUT("/halls/:id", owner, h.UpdateHall)
	r.DELETE("/halls/:id", owner, h.DeleteHall)
	r.PUT("/halls/:id/availability", owner, h.SetAvailability)
	r.GET("/owner/halls", owner, h.GetMyHalls)

	provider := middleware.RequireRole(domain.RoleProvider)
	r.POST("/services", provider, h.CreateService)
	r.PUT("/services/:id", provider, h.UpdateService)
	r.GET("/provider/services", provider, h.GetMyServices)
	r.GET("/provider/service-bookings", provider, h.GetMyServiceBookings)
	r.PATCH("/service-bookings/:id", provider, h.UpdateServiceBooking)
}
