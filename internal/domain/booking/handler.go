package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
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

func listFilter(c *gin.Context) ListFilter {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	hallID, _ := strconv.ParseInt(c.Query("hall_id"), 10, 64)
	return ListFilter{Status: c.Query("status"), HallID: hallID, Limit: limit, Offset: offset}
}

// CreateBooking godoc
// @Summary Request a hall for a date range
// @Description Price is computed on the server. Starts in pending_advance.
// @Router /api/v1/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	view, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"booking": view})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	view, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": view})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	f := listFilter(c)
	list, total, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list, "total": total})
}

func (h *Handler) GetOwnerBookings(c *gin.Context) {
	list, total, err := h.service.ListForOwner(c.Request.Context(), c.GetInt64("user_id"), listFilter(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list, "total": total})
}

// OwnerAction godoc
// @Summary Hall owner approves or rejects a paid booking request
// @Router /api/v1/bookings/{id}/owner-action [patch]
func (h *Handler) OwnerAction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req OwnerActionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.service.OwnerAction(c.Request.Context(), c.GetInt64("user_id"), id, req.Action)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.service.RequestChange(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	b, err := h.service.Cancel(c.Request.Context(), c.GetInt64("user_id"), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b, "message": "Booking cancelled, refund initiated"})
}

func (h *Handler) AdminListBookings(c *gin.Context) {
	list, total, err := h.service.ListAll(c.Request.Context(), listFilter(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list, "total": total})
}

func (h *Handler) AdminUpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AdminStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.service.AdminOverride(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AdminDeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) RunReminders(c *gin.Context) {
	sent, err := h.service.RunReminders(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent": sent})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Booking not found")
	case errors.Is(err, ErrHallUnavailable):
		response.NotFound(c, "Hall not found or not available")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, ErrDateConflict):
		response.Error(c, http.StatusBadRequest, "DATE_CONFLICT", "Selected dates overlap an existing booking")
	case errors.Is(err, ErrDateBlocked):
		response.Error(c, http.StatusBadRequest, "DATE_BLOCKED", err.Error())
	case errors.Is(err, ErrPastDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Start date cannot be in the past")
	case errors.Is(err, ErrInvalidRange):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE_RANGE", "End date must not be before start date")
	case errors.Is(err, ErrCapacityExceeded):
		response.Error(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", "Guest count exceeds hall capacity")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", "Booking is not in a state that allows this action")
	case errors.Is(err, ErrWindowClosed):
		response.Error(c, http.StatusBadRequest, "CHANGE_WINDOW_CLOSED", "Too close to the start date for this change")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Internal(c, "An internal error occurred")
	}
}
