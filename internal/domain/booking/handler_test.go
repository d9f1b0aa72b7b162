package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuehub/internal/domain"
)

func newRouter(f *fixture, userID int64, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	})
	NewHandler(f.svc).RegisterRoutes(api, func(c *gin.Context) { c.Next() })
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_CreateBooking(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f, f.guest.ID, "user")

	w := doJSON(r, http.MethodPost, "/api/v1/bookings", map[string]any{"hallId": f.hall.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	w = doJSON(r, http.MethodPost, "/api/v1/bookings", map[string]any{
		"hallId": f.hall.ID, "startDate": "2026-03-10", "endDate": "2026-03-11", "guests": 20, "totalAmount": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Booking domain.Booking `json:"booking"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1000.0, resp.Data.Booking.TotalPrice)

	f.setStatus(t, resp.Data.Booking.ID, domain.BookingConfirmed)
	w = doJSON(r, http.MethodPost, "/api/v1/bookings", map[string]any{
		"hallId": f.hall.ID, "startDate": "2026-03-11", "endDate": "2026-03-11", "guests": 20,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "DATE_CONFLICT")
}

func TestHandler_OwnerActionErrors(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "2026-03-10", "2026-03-11")
	f.setStatus(t, b.ID, domain.BookingPendingOwnerConfirmation)

	w := doJSON(newRouter(f, 999, "owner"), http.MethodPatch, "/api/v1/bookings/"+itoa(b.ID)+"/owner-action", map[string]any{"action": "approve"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(newRouter(f, ownerID, "owner"), http.MethodPatch, "/api/v1/bookings/"+itoa(b.ID)+"/owner-action", map[string]any{"action": "maybe"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(newRouter(f, ownerID, "owner"), http.MethodPatch, "/api/v1/bookings/"+itoa(b.ID)+"/owner-action", map[string]any{"action": "approve"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
}

func TestHandler_OwnerBookingsRequiresRole(t *testing.T) {
	f := newFixture(t)
	w := doJSON(newRouter(f, f.guest.ID, "user"), http.MethodGet, "/api/v1/owner/bookings", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
