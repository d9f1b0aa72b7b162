package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"venuehub/internal/pkg/jwt"
	"venuehub/internal/pkg/response"
	"venuehub/internal/pkg/validator"
)

// Handler handles HTTP requests for the chat domain
type Handler struct {
	service    *Service
	hub        *Hub
	jwtService *jwt.Service
	log        logrus.FieldLogger
}

func NewHandler(service *Service, hub *Hub, jwtService *jwt.Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, hub: hub, jwtService: jwtService, log: log}
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

// StartConversation godoc
// @Summary Start or get a direct conversation
// @Tags Chat
// @Security BearerAuth
// @Router /api/v1/conversations [post]
func (h *Handler) StartConversation(c *gin.Context) {
	var req StartConversationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	conv, created, err := h.service.StartConversation(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		handleError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{"conversation": conv})
}

func (h *Handler) ListConversations(c *gin.Context) {
	list, err := h.service.ListConversations(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": list})
}

func (h *Handler) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	msgs, err := h.service.Messages(c.Request.Context(), c.GetInt64("user_id"), c.Param("id"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}
	msg, err := h.service.SendMessage(c.Request.Context(), c.GetInt64("user_id"), c.Param("id"), req.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, gin.H{"message": msg})
}

func (h *Handler) MarkRead(c *gin.Context) {
	n, err := h.service.MarkRead(c.Request.Context(), c.GetInt64("user_id"), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked": n})
}

// WebSocket godoc
// @Summary Realtime channel; browsers cannot set headers so the JWT comes in the query
// @Param token query string true "JWT"
// @Router /api/v1/ws [get]
func (h *Handler) WebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c)
		return
	}
	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	ctx := c.Request.Context()
	rooms, err := h.service.RoomsFor(ctx, claims.UserID)
	if err != nil {
		handleError(c, err)
		return
	}

	userID := claims.UserID
	canJoin := func(roomID string) bool {
		return h.service.CanJoin(c.Request.Context(), userID, roomID)
	}
	if err := h.hub.ServeWS(c.Writer, c.Request, userID, rooms, canJoin); err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.WithError(err).WithField("user_id", userID).Warn("ws: upgrade failed")
	}
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrConversationNotFound):
		response.NotFound(c, "Conversation not found")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, ErrNotParticipant):
		response.Forbidden(c, "You are not a participant of this conversation")
	case errors.Is(err, ErrCannotChatSelf):
		response.Error(c, http.StatusBadRequest, "CANNOT_CHAT_SELF", "Cannot start chat with yourself")
	case errors.Is(err, ErrEmptyMessage):
		response.BadRequest(c, "Message content is required")
	default:
		_ = c.Error(err)
		response.Internal(c, "An internal error occurred")
	}
}
