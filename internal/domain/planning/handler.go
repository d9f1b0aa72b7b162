package planning

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

func (h *Handler) Create(c *gin.Context) {
	var req CreatePlanEventRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ev, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"plan_event": ev})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan_events": list})
}

func (h *Handler) AdminList(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan_events": list})
}

func (h *Handler) Assign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AssignRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ev, err := h.service.Assign(c.Request.Context(), id, req.ManagerID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan_event": ev})
}

func (h *Handler) ListAssigned(c *gin.Context) {
	list, err := h.service.ListAssigned(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan_events": list})
}

func (h *Handler) ManagerUpdate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ManagerUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ev, err := h.service.ManagerUpdate(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plan_event": ev})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Plan event not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "This event is not assigned to you")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "eventDate must be YYYY-MM-DD and not in the past")
	case errors.Is(err, ErrNotEventManager):
		response.Error(c, http.StatusBadRequest, "INVALID_MANAGER", "Assignee must be an active event manager")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS_TRANSITION", "Status change not allowed")
	default:
		_ = c.Error(err)
		response.Internal(c, "An internal error occurred")
	}
}
