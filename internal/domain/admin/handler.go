package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/domain/auth"
	"venuehub/internal/domain/catalog"
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

// -------------------- Halls & services --------------------

func (h *Handler) ListHalls(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	halls, total, err := h.service.ListHalls(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"halls": halls, "total": total})
}

func (h *Handler) ApproveHall(c *gin.Context) {
	h.hallAction(c, h.service.ApproveHall, domain.HallActive)
}

func (h *Handler) DeactivateHall(c *gin.Context) {
	h.hallAction(c, h.service.DeactivateHall, domain.HallInactive)
}

func (h *Handler) hallAction(c *gin.Context, fn func(ctx context.Context, id int64) error, status domain.HallStatus) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hall_id": id, "status": status})
}

func (h *Handler) DeleteHall(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteHall(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) ListServices(c *gin.Context) {
	list, err := h.service.ListServices(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": list})
}

func (h *Handler) ApproveService(c *gin.Context) { h.serviceApproval(c, true) }
func (h *Handler) RejectService(c *gin.Context) { h.serviceApproval(c, false) }

func (h *Handler) serviceApproval(c *gin.Context, approved bool) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.SetServiceApproval(c.Request.Context(), id, approved); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service_id": id, "approved": approved})
}

// -------------------- Users --------------------

// GetUsers godoc
// @Summary List users
// @Tags Admin
// @Security BearerAuth
// @Param role query string false "Role"
// @Param status query string false "active|suspended"
// @Router /api/v1/admin/users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	var f UserListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.BadRequest(c, "Invalid query")
		return
	}
	users, total, err := h.service.ListUsers(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *Handler) SuspendUser(c *gin.Context) { h.userStatus(c, domain.UserSuspended) }
func (h *Handler) ActivateUser(c *gin.Context) { h.userStatus(c, domain.UserActive) }

func (h *Handler) userStatus(c *gin.Context, status domain.UserStatus) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.SetUserStatus(c.Request.Context(), c.GetInt64("user_id"), id, status); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user_id": id, "status": status})
}

func (h *Handler) SetUserRole(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SetRoleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	role := domain.UserRole(req.Role)
	if err := h.service.SetUserRole(c.Request.Context(), c.GetInt64("user_id"), id, role); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user_id": id, "role": role})
}

// -------------------- Verifications --------------------

func (h *Handler) SubmitVerification(c *gin.Context) {
	var req SubmitVerificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.service.SubmitVerification(c.Request.Context(), c.GetInt64("user_id"), req.Documents)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"verification": v})
}

func (h *Handler) MyVerifications(c *gin.Context) {
	list, err := h.service.MyVerifications(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verifications": list})
}

func (h *Handler) ListVerifications(c *gin.Context) {
	list, err := h.service.ListVerifications(c.Request.Context(), c.Query("status"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verifications": list})
}

func (h *Handler) ApproveVerification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	v, err := h.service.ReviewVerification(c.Request.Context(), c.GetInt64("user_id"), id, true, "")
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verification": v})
}

func (h *Handler) RejectVerification(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req RejectRequest
	if !bindAndValidate(c, &req) {
		return
	}
	v, err := h.service.ReviewVerification(c.Request.Context(), c.GetInt64("user_id"), id, false, req.Reason)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"verification": v})
}

// -------------------- Statistics --------------------

func (h *Handler) GetStats(c *gin.Context) {
	st, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, auth.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		response.NotFound(c, "Resource not found")
	case errors.Is(err, ErrValidation), errors.Is(err, catalog.ErrValidation):
		response.BadRequest(c, "Invalid request")
	case errors.Is(err, ErrSelfModeration):
		response.Error(c, http.StatusBadRequest, "SELF_MODERATION", err.Error())
	case errors.Is(err, ErrAlreadyPending):
		response.Error(c, http.StatusConflict, "VERIFICATION_PENDING", err.Error())
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", err.Error())
	case errors.Is(err, ErrRoleNotVerifying):
		response.Forbidden(c, err.Error())
	default:
		_ = c.Error(err)
		response.Internal(c, "An internal error occurred")
	}
}
