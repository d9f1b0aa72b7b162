package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/pkg/response"
	"venuehub/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", validator.Summary(errs), errs)
		return false
	}
	return true
}

// Create godoc
// @Summary      Review a hall after a completed booking
// @Description  One review per hall, user and booking.
// @Tags         Reviews
// @Security     BearerAuth
// @Router       /api/v1/reviews [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if !bind(c, &req) {
		return
	}
	rv, sum, err := h.svc.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"review": rv, "summary": sum})
}

func (h *Handler) GetByHall(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	list, total, err := h.svc.ListByHall(c.Request.Context(), id, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": list, "total": total})
}

func (h *Handler) AddOwnerResponse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req OwnerResponseRequest
	if !bind(c, &req) {
		return
	}
	rv, err := h.svc.AddOwnerResponse(c.Request.Context(), id, c.GetInt64("user_id"), req.Response)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"review": rv})
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req SetStatusRequest
	if !bind(c, &req) {
		return
	}
	sum, err := h.svc.SetStatus(c.Request.Context(), id, domain.ReviewStatus(req.Status))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": req.Status, "summary": sum})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request")
	case errors.Is(err, ErrReviewNotAllowed):
		response.Forbidden(c, "Only guests with a completed booking can review this hall")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "REVIEW_EXISTS", "You already reviewed this booking")
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Review not found")
	default:
		_ = c.Error(err)
		response.Internal(c, "An internal error occurred")
	}
}
