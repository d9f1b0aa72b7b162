package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"venuehub/internal/database"
	"venuehub/internal/domain"
	"venuehub/internal/domain/auth"
	"venuehub/internal/domain/catalog"
	"venuehub/internal/pkg/logger"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyVerification(ctx context.Context, userID int64, approved bool, reason string) error {
	return m.Called(ctx, userID, approved, reason).Error(0)
}

type fixture struct {
	db     *gorm.DB
	svc    *Service
	notifs *mockNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.OpenTest(t)
	notifs := &mockNotifier{}
	cat := catalog.NewService(catalog.NewRepository(db), nil, nil, logger.Discard())
	svc := NewService(NewRepository(db), cat, auth.NewUserRepository(db), notifs, logger.Discard())
	return &fixture{db: db, svc: svc, notifs: notifs}
}

func (f *fixture) user(t *testing.T, id int64, role domain.UserRole) {
	t.Helper()
	require.NoError(t, f.db.Create(&domain.User{
		ID:           id,
		Email:        string(role) + "-" + itoa(id) + "@example.com",
		PasswordHash: "x",
		Role:         role,
		Status:       domain.UserActive,
	}).Error)
}

func TestApproveHall_PublishesAndVerifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, 10, domain.RoleOwner)
	hall := &domain.Hall{OwnerID: 10, Name: "Lotus", City: "Pune", Price: 1000, Capacity: 50, Status: domain.HallPending}
	require.NoError(t, f.db.Create(hall).Error)

	pending, total, err := f.svc.ListHalls(ctx, string(domain.HallPending), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)

	require.NoError(t, f.svc.ApproveHall(ctx, hall.ID))
	var got domain.Hall
	require.NoError(t, f.db.First(&got, hall.ID).Error)
	assert.Equal(t, domain.HallActive, got.Status)
	assert.True(t, got.Verified)

	require.NoError(t, f.svc.DeactivateHall(ctx, hall.ID))
	require.NoError(t, f.db.First(&got, hall.ID).Error)
	assert.Equal(t, domain.HallInactive, got.Status)

	assert.ErrorIs(t, f.svc.ApproveHall(ctx, 999), catalog.ErrNotFound)
}

func TestUserModeration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, 1, domain.RoleAdmin)
	f.user(t, 2, domain.RoleUser)

	assert.ErrorIs(t, f.svc.SetUserStatus(ctx, 1, 1, domain.UserSuspended), ErrSelfModeration)
	require.NoError(t, f.svc.SetUserStatus(ctx, 1, 2, domain.UserSuspended))

	users, total, err := f.svc.ListUsers(ctx, UserListFilter{Status: string(domain.UserSuspended)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(2), users[0].ID)

	require.NoError(t, f.svc.SetUserRole(ctx, 1, 2, domain.RoleEventManager))
	assert.ErrorIs(t, f.svc.SetUserRole(ctx, 1, 2, domain.UserRole("root")), ErrValidation)
	assert.ErrorIs(t, f.svc.SetUserStatus(ctx, 1, 404, domain.UserActive), auth.ErrNotFound)
}

func TestVerificationFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, 1, domain.RoleAdmin)
	f.user(t, 10, domain.RoleOwner)
	f.user(t, 20, domain.RoleUser)

	_, err := f.svc.SubmitVerification(ctx, 20, []string{"https://docs.example.com/id.pdf"})
	assert.ErrorIs(t, err, ErrRoleNotVerifying)

	v, err := f.svc.SubmitVerification(ctx, 10, []string{"https://docs.example.com/gst.pdf"})
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationPending, v.Status)

	_, err = f.svc.SubmitVerification(ctx, 10, []string{"https://docs.example.com/again.pdf"})
	assert.ErrorIs(t, err, ErrAlreadyPending)

	f.notifs.On("NotifyVerification", mock.Anything, int64(10), true, "").Return(nil).Once()
	reviewed, err := f.svc.ReviewVerification(ctx, 1, v.ID, true, "ignored")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, int64(1), *reviewed.ReviewedBy)
	assert.Equal(t, []string{"https://docs.example.com/gst.pdf"}, reviewed.Documents)

	var owner domain.User
	require.NoError(t, f.db.First(&owner, 10).Error)
	assert.True(t, owner.Verified)

	_, err = f.svc.ReviewVerification(ctx, 1, v.ID, false, "late")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	f.notifs.AssertExpectations(t)

	mine, err := f.svc.MyVerifications(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestRejectVerification_ClearsVerifiedFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, 1, domain.RoleAdmin)
	f.user(t, 30, domain.RoleProvider)
	require.NoError(t, f.db.Model(&domain.User{}).Where("id = ?", 30).Update("verified", true).Error)

	v, err := f.svc.SubmitVerification(ctx, 30, []string{"https://docs.example.com/a.pdf"})
	require.NoError(t, err)

	f.notifs.On("NotifyVerification", mock.Anything, int64(30), false, "blurry scan").Return(nil).Once()
	reviewed, err := f.svc.ReviewVerification(ctx, 1, v.ID, false, "blurry scan")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationRejected, reviewed.Status)
	assert.Equal(t, "blurry scan", reviewed.Reason)

	var u domain.User
	require.NoError(t, f.db.First(&u, 30).Error)
	assert.False(t, u.Verified)
}

func TestStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, 1, domain.RoleAdmin)
	f.user(t, 10, domain.RoleOwner)
	f.user(t, 20, domain.RoleUser)
	require.NoError(t, f.db.Create(&domain.Hall{OwnerID: 10, Name: "A", Status: domain.HallPending}).Error)
	require.NoError(t, f.db.Create(&domain.Hall{OwnerID: 10, Name: "B", Status: domain.HallActive}).Error)
	require.NoError(t, f.db.Create(&[]domain.Booking{
		{UserID: 20, HallID: 2, OwnerID: 10, TotalPrice: 4000, Status: domain.BookingCompleted, AdvancePaid: true, AdvanceAmountPaid: 2000},
		{UserID: 20, HallID: 2, OwnerID: 10, TotalPrice: 3000, Status: domain.BookingConfirmed, AdvancePaid: true, AdvanceAmountPaid: 1500},
		{UserID: 20, HallID: 2, OwnerID: 10, TotalPrice: 1000, Status: domain.BookingPendingAdvance},
	}).Error)

	st, err := f.svc.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), st.TotalUsers)
	assert.Equal(t, int64(1), st.UsersByRole["owner"])
	assert.Equal(t, int64(2), st.TotalHalls)
	assert.Equal(t, int64(1), st.PendingHalls)
	assert.Equal(t, int64(3), st.TotalBookings)
	assert.Equal(t, int64(1), st.BookingsByStatus["confirmed"])
	assert.InDelta(t, 3500, st.AdvanceCollected, 0.001)
	assert.InDelta(t, 4000, st.CompletedRevenue, 0.001)
}

func TestHandler_VerificationRoutesRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	h := NewHandler(f.svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(20))
		c.Set("role", "user")
		c.Next()
	})
	h.RegisterVerificationRoutes(r.Group(""))

	body, _ := json.Marshal(SubmitVerificationRequest{Documents: []string{"https://docs.example.com/x.pdf"}})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/verifications", bytes.NewReader(body)))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_RejectNeedsReason(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	h := NewHandler(f.svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", int64(1))
		c.Set("role", "admin")
		c.Next()
	})
	h.RegisterRoutes(r.Group("/admin"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/verifications/1/reject", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
