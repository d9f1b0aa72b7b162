package main

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuehub/internal/config"
	"venuehub/internal/database"
	"venuehub/internal/domain"
	"venuehub/internal/domain/auth"
	"venuehub/internal/domain/payment"
	"venuehub/internal/pkg/events"
	"venuehub/internal/pkg/logger"
	"venuehub/internal/pkg/mailer"
)

// fakeGateway hands out sequential order ids and remembers their notes.
type fakeGateway struct {
	mu     sync.Mutex
	seq    int
	orders map[string]*payment.Order
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	o := &payment.Order{ID: fmt.Sprintf("order_%d", g.seq), Amount: amountMinor, Currency: currency, Receipt: receipt, Status: "created", Notes: notes}
	g.orders[o.ID] = o
	return o, nil
}

func (g *fakeGateway) FetchOrder(_ context.Context, id string) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if o, ok := g.orders[id]; ok {
		return o, nil
	}
	return nil, fmt.Errorf("order %s not found", id)
}

func (g *fakeGateway) FetchPayment(context.Context, string) (*payment.GatewayPayment, error) {
	return nil, fmt.Errorf("not supported")
}

func (g *fakeGateway) FetchOrderPayments(context.Context, string) ([]payment.GatewayPayment, error) {
	return nil, nil
}

func (g *fakeGateway) Refund(_ context.Context, paymentID string, amountMinor int64) (*payment.Refund, error) {
	return &payment.Refund{ID: "rfnd_" + paymentID, Amount: amountMinor, Status: "processed"}, nil
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

type suite struct {
	t      *testing.T
	router *gin.Engine
	cfg    *config.Config
}

func setupSuite(t *testing.T) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("APP_ENV", "test")
	t.Setenv("MEDIA_DIR", t.TempDir())
	cfg, err := config.FromEnv()
	require.NoError(t, err)

	db := database.OpenTest(t)
	log := logger.Discard()
	gw := &fakeGateway{orders: map[string]*payment.Order{}}
	r := newRouter(cfg, db, nil, events.Nop{}, mailer.NewConsoleMailer(log), gw, log)

	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		Email: "admin@venuehub.test", PasswordHash: hash, Name: "Admin",
		Role: domain.RoleAdmin, Status: domain.UserActive,
	}).Error)

	return &suite{t: t, router: r, cfg: cfg}
}

func (s *suite) do(method, path, token string, body any) (int, apiResponse) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (s *suite) data(resp apiResponse, v any) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(resp.Data, v))
}

func (s *suite) register(email, role string) string {
	s.t.Helper()
	code, resp := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email": email, "password": "password123", "name": email, "role": role,
	})
	require.Equal(s.t, http.StatusCreated, code)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	s.data(resp, &out)
	require.NotEmpty(s.t, out.AccessToken)
	return out.AccessToken
}

func (s *suite) login(email, password string) string {
	s.t.Helper()
	code, resp := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code)
	var out struct {
		AccessToken string `json:"access_token"`
	}
	s.data(resp, &out)
	return out.AccessToken
}

func (s *suite) sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.Payment.KeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

type bookingOut struct {
	Booking struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	} `json:"booking"`
}

func TestHealth(t *testing.T) {
	s := setupSuite(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAccessControl(t *testing.T) {
	s := setupSuite(t)
	guest := s.register("guest@venuehub.test", "user")

	code, resp := s.do(http.MethodPost, "/api/v1/bookings", "", map[string]any{"hallId": 1})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)

	code, _ = s.do(http.MethodGet, "/api/v1/admin/stats", guest, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/api/v1/halls", guest, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = s.do(http.MethodPost, "/api/v1/internal/reminders/run", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, resp.Success)
}

func TestBookingLifecycle(t *testing.T) {
	s := setupSuite(t)
	owner := s.register("owner@venuehub.test", "owner")
	guest := s.register("guest@venuehub.test", "user")
	admin := s.login("admin@venuehub.test", "admin-password")

	// owner lists a hall; it stays hidden until approved
	code, resp := s.do(http.MethodPost, "/api/v1/halls", owner, map[string]any{
		"name": "Lotus Banquet", "price": 20000, "capacity": 300,
		"address": "12 MG Road", "city": "Pune",
	})
	require.Equal(t, http.StatusCreated, code)
	var hallOut struct {
		Hall struct {
			ID     int64  `json:"id"`
			Status string `json:"status"`
		} `json:"hall"`
	}
	s.data(resp, &hallOut)
	hallID := hallOut.Hall.ID
	assert.Equal(t, string(domain.HallPending), hallOut.Hall.Status)

	var list struct {
		Count int `json:"count"`
	}
	_, resp = s.do(http.MethodGet, "/api/v1/halls?city=Pune", "", nil)
	s.data(resp, &list)
	assert.Equal(t, 0, list.Count)

	code, _ = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/admin/halls/%d/approve", hallID), admin, nil)
	require.Equal(t, http.StatusOK, code)

	_, resp = s.do(http.MethodGet, "/api/v1/halls?city=Pune", "", nil)
	s.data(resp, &list)
	assert.Equal(t, 1, list.Count)

	// guest books one night
	day := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	code, resp = s.do(http.MethodPost, "/api/v1/bookings", guest, map[string]any{
		"hallId": hallID, "startDate": day, "endDate": day, "guests": 120,
	})
	require.Equal(t, http.StatusCreated, code)
	var bk bookingOut
	s.data(resp, &bk)
	bookingID := bk.Booking.ID
	assert.Equal(t, string(domain.BookingPendingAdvance), bk.Booking.Status)

	// advance below the required share is refused
	code, resp = s.do(http.MethodPost, "/api/v1/payments/create-advance-order", guest, map[string]any{
		"bookingId": bookingID, "hallId": hallID, "advance": 100,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_ADVANCE", resp.Error.Code)

	code, resp = s.do(http.MethodPost, "/api/v1/payments/create-advance-order", guest, map[string]any{
		"bookingId": bookingID, "hallId": hallID, "advance": 10000,
	})
	require.Equal(t, http.StatusOK, code)
	var order struct {
		OrderID string `json:"orderId"`
		Amount  int64  `json:"amount"`
	}
	s.data(resp, &order)
	assert.Equal(t, int64(1000000), order.Amount)

	code, resp = s.do(http.MethodPost, "/api/v1/bookings/verify-advance-payment", guest, map[string]any{
		"bookingId": bookingID, "orderId": order.OrderID, "paymentId": "pay_adv", "signature": "forged",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = s.do(http.MethodPost, "/api/v1/bookings/verify-advance-payment", guest, map[string]any{
		"bookingId": bookingID, "orderId": order.OrderID, "paymentId": "pay_adv", "signature": s.sign(order.OrderID, "pay_adv"),
	})
	require.Equal(t, http.StatusOK, code)
	s.data(resp, &bk)
	assert.Equal(t, string(domain.BookingPendingOwnerConfirmation), bk.Booking.Status)

	// owner confirms
	code, resp = s.do(http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/owner-action", bookingID), owner, map[string]string{"action": "approve"})
	require.Equal(t, http.StatusOK, code)
	s.data(resp, &bk)
	assert.Equal(t, string(domain.BookingConfirmed), bk.Booking.Status)

	// guest settles the rest
	code, resp = s.do(http.MethodPost, "/api/v1/payments/remaining/initiate", guest, map[string]any{"bookingId": bookingID})
	require.Equal(t, http.StatusOK, code)
	s.data(resp, &order)
	assert.Equal(t, int64(1000000), order.Amount)

	code, _ = s.do(http.MethodPost, "/api/v1/payments/verify-remaining-payment", guest, map[string]any{
		"bookingId": bookingID, "orderId": order.OrderID, "paymentId": "pay_rem", "signature": s.sign(order.OrderID, "pay_rem"),
	})
	require.Equal(t, http.StatusOK, code)

	code, resp = s.do(http.MethodGet, fmt.Sprintf("/api/v1/bookings/%d", bookingID), guest, nil)
	require.Equal(t, http.StatusOK, code)
	s.data(resp, &bk)
	assert.Equal(t, string(domain.BookingCompleted), bk.Booking.Status)

	// the owner was told about the advance
	code, resp = s.do(http.MethodGet, "/api/v1/notifications", owner, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), "Advance received")
}
