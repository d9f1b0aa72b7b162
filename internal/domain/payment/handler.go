package payment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"venuehub/internal/pkg/response"
	"venuehub/internal/pkg/validator"
)

const maxWebhookBody = 1 << 20

type Handler struct {
	service *Service
	log     logrus.FieldLogger
}

func NewHandler(service *Service, log logrus.FieldLogger) *Handler {
	return &Handler{service: service, log: log}
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

// CreateAdvanceOrder godoc
// @Summary      Create a gateway order for the booking advance
// @Tags         Payments
// @Security     BearerAuth
// @Router       /api/v1/payments/create-advance-order [post]
func (h *Handler) CreateAdvanceOrder(c *gin.Context) {
	var req AdvanceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.service.CreateAdvanceOrder(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// VerifyAdvance godoc
// @Summary      Verify the checkout signature of an advance payment
// @Tags         Payments
// @Security     BearerAuth
// @Router       /api/v1/bookings/verify-advance-payment [post]
func (h *Handler) VerifyAdvance(c *gin.Context) {
	var req VerifyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.service.VerifyAdvance(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Advance payment verified", "booking": b})
}

func (h *Handler) InitiateRemaining(c *gin.Context) {
	var req BookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.service.InitiateRemaining(c.Request.Context(), c.GetInt64("user_id"), req.BookingID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) VerifyRemaining(c *gin.Context) {
	var req VerifyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	b, err := h.service.VerifyRemaining(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Payment completed", "bookingId": b.ID})
}

func (h *Handler) OwnerDecline(c *gin.Context) {
	var req BookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	res, err := h.service.OwnerDecline(c.Request.Context(), c.GetInt64("user_id"), req.BookingID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Webhook godoc
// @Summary      Gateway webhook (payment.captured, order.paid)
// @Tags         Payments
// @Router       /api/v1/payments/webhook [post]
func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		response.BadRequest(c, "Unreadable body")
		return
	}
	applied, err := h.service.HandleWebhook(c.Request.Context(), body, c.GetHeader("X-Razorpay-Signature"))
	if err != nil {
		h.log.WithError(err).Error("webhook failed")
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applied": applied})
}

func (h *Handler) GetBookingPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}
	bp, err := h.service.GetForBooking(c.Request.Context(), c.GetInt64("user_id"), c.GetString("role"), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": bp})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var rangeErr *AdvanceRangeError
	switch {
	case errors.As(err, &rangeErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_ADVANCE", rangeErr.Error(), gin.H{
			"requiredAdvance": rangeErr.Required,
			"minAdvance":      rangeErr.Min,
			"maxAdvance":      rangeErr.Max,
		})
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Booking or payment not found")
	case errors.Is(err, ErrHallNotFound):
		response.NotFound(c, "Hall not found")
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, "You don't have permission to perform this action")
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Payment could not be verified")
	case errors.Is(err, ErrOrderMismatch):
		response.Error(c, http.StatusBadRequest, "ORDER_MISMATCH", "Order does not belong to this booking")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusBadRequest, "INVALID_BOOKING_STATE", "Booking is not in a payable state")
	case errors.Is(err, ErrNothingDue):
		response.Error(c, http.StatusBadRequest, "NO_REMAINING_AMOUNT", "Nothing left to pay")
	case errors.Is(err, ErrAmountTooSmall):
		response.Error(c, http.StatusBadRequest, "AMOUNT_TOO_SMALL", "Amount is below the gateway minimum")
	case errors.Is(err, ErrNoCapturedAdvance):
		response.Error(c, http.StatusBadRequest, "NO_CAPTURED_ADVANCE", "No captured advance to refund")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrGateway):
		_ = c.Error(err)
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Payment gateway unavailable")
	default:
		_ = c.Error(err)
		response.Internal(c, "An internal error occurred")
	}
}
