package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/pkg/response"
	"venuehub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", validator.Summary(errs), errs)
		return false
	}
	return true
}

// ListHalls godoc
// @Summary List active halls
// @Param city query string false "City, case-insensitive"
// @Param q query string false "Free text"
// @Param limit query int false "Max items (default 20, max 100)"
// @Router /api/v1/halls [get]
func (h *Handler) ListHalls(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	halls, err := h.service.ListHalls(c.Request.Context(), HallFilter{
		City:  c.Query("city"),
		Query: c.Query("q"),
		Limit: limit,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"halls": halls, "count": len(halls)})
}

func (h *Handler) GetHall(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	hall, err := h.service.GetHall(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hall": hall})
}

// GetAvailability godoc
// @Summary Day-by-day availability of a hall
// @Param from query string false "YYYY-MM-DD, default today"
// @Param to query string false "YYYY-MM-DD, default from+30d"
// @Router /api/v1/halls/{id}/availability [get]
func (h *Handler) GetAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	from := time.Now()
	if s := c.Query("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, "from must be YYYY-MM-DD")
			return
		}
		from = t
	}
	to := from.AddDate(0, 0, 30)
	if s := c.Query("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, "to must be YYYY-MM-DD")
			return
		}
		to = t
	}

	days, err := h.service.Availability(c.Request.Context(), id, from, to)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hall_id": id, "days": days})
}

func (h *Handler) CreateHall(c *gin.Context) {
	var req CreateHallRequest
	if !bindAndValidate(c, &req) {
		return
	}
	hall, err := h.service.CreateHall(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"hall": hall})
}

func (h *Handler) UpdateHall(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateHallRequest
	if !bindAndValidate(c, &req) {
		return
	}
	hall, err := h.service.UpdateHall(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hall": hall})
}

func (h *Handler) DeleteHall(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateHall(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": domain.HallInactive})
}

func (h *Handler) SetAvailability(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SetAvailabilityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.service.SetAvailability(c.Request.Context(), c.GetInt64("user_id"), id, req); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": len(req.Days)})
}

func (h *Handler) GetMyHalls(c *gin.Context) {
	halls, err := h.service.ListOwnerHalls(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"halls": halls})
}

func (h *Handler) ListServices(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.service.ListServices(c.Request.Context(), ServiceFilter{
		City:     c.Query("city"),
		Category: c.Query("category"),
		Limit:    limit,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": list, "count": len(list)})
}

func (h *Handler) GetService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	vs, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": vs})
}

func (h *Handler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	vs, err := h.service.CreateService(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"service": vs})
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	vs, err := h.service.UpdateService(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": vs})
}

func (h *Handler) GetMyServices(c *gin.Context) {
	list, err := h.service.ListProviderServices(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": list})
}

func (h *Handler) GetMyServiceBookings(c *gin.Context) {
	list, err := h.service.ListProviderServiceBookings(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service_bookings": list})
}

func (h *Handler) UpdateServiceBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateServiceBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sb, err := h.service.UpdateServiceBookingStatus(c.Request.Context(), c.GetInt64("user_id"), id, domain.ServiceBookingStatus(req.Status))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service_booking": sb})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Resource not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, ErrValidation):
		response.BadRequest(c, "Invalid request")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", "Status change not allowed")
	default:
		_ = c.Error(err)
		response.Internal(c, "An internal error occurred")
	}
}
