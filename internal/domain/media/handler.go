package media

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuehub/internal/domain"
	"venuehub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload an image or document
// @Tags Media
// @Accept multipart/form-data
// @Security BearerAuth
// @Param file formData file true "File"
// @Param purpose formData string true "hall_image|service_image|review_image|verification_document"
// @Router /api/v1/media [post]
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	mf, err := h.service.Upload(c.Request.Context(), c.GetInt64("user_id"), domain.MediaPurpose(c.PostForm("purpose")), fh)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"file": mf})
}

func (h *Handler) Get(c *gin.Context) {
	mf, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"file": mf})
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), c.Query("purpose"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"files": list})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.GetInt64("user_id"), c.GetString("role")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "File not found")
	case errors.Is(err, ErrNotOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
	case errors.Is(err, ErrInvalidMimeType), errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidPurpose):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
	default:
		_ = c.Error(err)
		response.Internal(c, "Upload failed")
	}
}
