package payment

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"venuehub/internal/domain"
	"venuehub/internal/pkg/logger"
)

func newRouter(f *fixture, userID int64, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(f.svc, logger.Discard())
	api := r.Group("/api/v1")
	h.RegisterPublicRoutes(api)
	protected := api.Group("", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	})
	h.RegisterProtectedRoutes(protected, func(c *gin.Context) { c.Next() })
	return r
}

func post(r http.Handler, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_VerifyAdvanceMissingFields(t *testing.T) {
	f := newFixture(t)
	w := post(newRouter(f, guestID, "user"), "/api/v1/bookings/verify-advance-payment", `{"bookingId":1,"orderId":"o"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestHandler_AdvanceOutOfRangeDetails(t *testing.T) {
	f := newFixture(t)
	b := f.booking(t, 2000, domain.BookingPendingAdvance)
	body := `{"bookingId":` + itoa(b.ID) + `,"hallId":` + itoa(f.hall.ID) + `,"advance":10}`
	w := post(newRouter(f, guestID, "user"), "/api/v1/payments/create-advance-order", body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ADVANCE")
	assert.Contains(t, w.Body.String(), `"requiredAdvance":1000`)
}

func TestHandler_WebhookSignature(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f, 0, "")
	body := `{"event":"payment.captured","payload":{}}`

	w := post(r, "/api/v1/payments/webhook", body, map[string]string{"X-Razorpay-Signature": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SIGNATURE")

	w = post(r, "/api/v1/payments/webhook", body, map[string]string{"X-Razorpay-Signature": webhookSig([]byte(body))})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"applied":false`)
}

func TestHandler_DeclineRequiresOwnerRole(t *testing.T) {
	f := newFixture(t)
	w := post(newRouter(f, guestID, "user"), "/api/v1/payments/owner/decline", `{"bookingId":1}`, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
