package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"venuehub/internal/database"
	"venuehub/internal/domain"
	"venuehub/internal/pkg/logger"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyServiceBookingUpdated(ctx context.Context, userID int64, sb *domain.ServiceBooking) error {
	args := m.Called(ctx, userID, sb)
	return args.Error(0)
}

func newTestService(t *testing.T, n ServiceBookingNotifier) (*Service, *Repository) {
	t.Helper()
	repo := NewRepository(database.OpenTest(t))
	return NewService(repo, nil, n, logger.Discard()), repo
}

func sampleHall(city string) CreateHallRequest {
	return CreateHallRequest{Name: "Grand " + city, Price: 1000, Capacity: 200, Address: "1 Main St", City: city}
}

func TestListHalls_OnlyActiveAndCaseInsensitiveCity(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	pune, err := svc.CreateHall(ctx, 1, sampleHall("Pune"))
	require.NoError(t, err)
	_, err = svc.CreateHall(ctx, 1, sampleHall("Mumbai"))
	require.NoError(t, err)

	halls, err := svc.ListHalls(ctx, HallFilter{City: "pune"})
	require.NoError(t, err)
	assert.Empty(t, halls, "pending halls are not listed")

	verified := true
	require.NoError(t, svc.SetHallStatus(ctx, pune.ID, domain.HallActive, &verified))

	halls, err = svc.ListHalls(ctx, HallFilter{City: "  PUNE "})
	require.NoError(t, err)
	require.Len(t, halls, 1)
	assert.Equal(t, pune.ID, halls[0].ID)
	assert.True(t, halls[0].Verified)
}

func TestGetHall_PendingVisibleToOwnerOnly(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, 7, sampleHall("Goa"))
	require.NoError(t, err)

	_, err = svc.GetHall(ctx, h.ID, 0, "")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.GetHall(ctx, h.ID, 7, "owner")
	require.NoError(t, err)
	assert.Equal(t, h.ID, got.ID)

	_, err = svc.GetHall(ctx, h.ID, 99, "admin")
	assert.NoError(t, err)
}

func TestUpdateHall_ForbiddenForOtherOwner(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, 1, sampleHall("Delhi"))
	require.NoError(t, err)

	price := 2500.0
	_, err = svc.UpdateHall(ctx, 2, h.ID, UpdateHallRequest{Price: &price})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateHall(ctx, 1, h.ID, UpdateHallRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, updated.Price)
}

func TestAvailability_OverridesAndBookings(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()

	h, err := svc.CreateHall(ctx, 1, sampleHall("Jaipur"))
	require.NoError(t, err)

	special := 1500.0
	require.NoError(t, svc.SetAvailability(ctx, 1, h.ID, SetAvailabilityRequest{Days: []DayOverride{
		{Date: "2030-05-01", SpecialPrice: &special},
		{Date: "2030-05-03", Blocked: true},
	}}))
	// upsert replaces the earlier override
	require.NoError(t, svc.SetAvailability(ctx, 1, h.ID, SetAvailabilityRequest{Days: []DayOverride{
		{Date: "2030-05-03", Blocked: false, Note: "reopened"},
	}}))

	start := time.Date(2030, 5, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.db.Create(&domain.Booking{
		UserID: 5, HallID: h.ID, OwnerID: 1, StartDate: start, EndDate: start,
		Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPending,
	}).Error)

	days, err := svc.Availability(ctx, h.ID, time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2030, 5, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, 1500.0, days[0].Price)
	assert.False(t, days[0].Booked)
	assert.True(t, days[1].Booked)
	assert.Equal(t, 1000.0, days[1].Price)
	assert.False(t, days[2].Blocked)
}

func TestAvailability_InvalidRange(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Availability(context.Background(), 1, time.Now(), time.Now().AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateServiceBookingStatus(t *testing.T) {
	n := &mockNotifier{}
	svc, repo := newTestService(t, n)
	ctx := context.Background()

	sb := &domain.ServiceBooking{UserID: 3, ServiceID: 1, ProviderID: 9, Price: 100, Status: domain.ServiceBookingPending, PaymentStatus: domain.PaymentPending}
	require.NoError(t, repo.db.Create(sb).Error)

	_, err := svc.UpdateServiceBookingStatus(ctx, 8, sb.ID, domain.ServiceBookingConfirmed)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateServiceBookingStatus(ctx, 9, sb.ID, domain.ServiceBookingCompleted)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	n.On("NotifyServiceBookingUpdated", mock.Anything, int64(3), mock.Anything).Return(nil).Twice()

	got, err := svc.UpdateServiceBookingStatus(ctx, 9, sb.ID, domain.ServiceBookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceBookingConfirmed, got.Status)

	got, err = svc.UpdateServiceBookingStatus(ctx, 9, sb.ID, domain.ServiceBookingPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	n.AssertExpectations(t)
}

func TestServices_ApprovalGatesListing(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	vs, err := svc.CreateService(ctx, 4, CreateServiceRequest{Name: "Tasty", Category: "Catering", City: "Pune", Price: 300})
	require.NoError(t, err)

	list, err := svc.ListServices(ctx, ServiceFilter{City: "pune"})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, svc.SetServiceApproval(ctx, vs.ID, true))
	list, err = svc.ListServices(ctx, ServiceFilter{City: "pune", Category: "catering"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
