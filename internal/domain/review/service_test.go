package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"venuehub/internal/database"
	"venuehub/internal/domain"
	"venuehub/internal/pkg/events"
	"venuehub/internal/pkg/logger"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyNewReview(ctx context.Context, ownerID, hallID, reviewID int64, rating int) error {
	return m.Called(ctx, ownerID, hallID, reviewID, rating).Error(0)
}

const ownerID int64 = 500

func setup(t *testing.T) (*Service, *gorm.DB, *mockNotifier, *domain.Hall) {
	t.Helper()
	db := database.OpenTest(t)
	hall := &domain.Hall{OwnerID: ownerID, Name: "Lotus", Price: 1000, Capacity: 50, Status: domain.HallActive}
	require.NoError(t, db.Create(hall).Error)

	n := &mockNotifier{}
	n.On("NotifyNewReview", mock.Anything, ownerID, hall.ID, mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewService(NewRepository(db), n, events.Nop{}, logger.Discard()), db, n, hall
}

func completedBooking(t *testing.T, db *gorm.DB, userID, hallID int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		UserID: userID, HallID: hallID, OwnerID: ownerID,
		StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
		Status:    status,
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestCreate_RequiresCompletedBooking(t *testing.T) {
	svc, db, _, hall := setup(t)
	ctx := context.Background()

	confirmed := completedBooking(t, db, 1, hall.ID, domain.BookingConfirmed)
	_, _, err := svc.Create(ctx, 1, CreateReviewRequest{HallID: hall.ID, BookingID: confirmed.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrReviewNotAllowed)

	done := completedBooking(t, db, 1, hall.ID, domain.BookingCompleted)
	_, _, err = svc.Create(ctx, 2, CreateReviewRequest{HallID: hall.ID, BookingID: done.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrReviewNotAllowed, "someone else's booking")

	_, _, err = svc.Create(ctx, 1, CreateReviewRequest{HallID: hall.ID + 1, BookingID: done.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrReviewNotAllowed, "booking for another hall")

	_, _, err = svc.Create(ctx, 1, CreateReviewRequest{HallID: hall.ID, BookingID: done.ID, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreate_DuplicateAndAggregate(t *testing.T) {
	svc, db, n, hall := setup(t)
	ctx := context.Background()

	b1 := completedBooking(t, db, 1, hall.ID, domain.BookingCompleted)
	b2 := completedBooking(t, db, 2, hall.ID, domain.BookingCompleted)
	b3 := completedBooking(t, db, 3, hall.ID, domain.BookingCompleted)

	_, sum, err := svc.Create(ctx, 1, CreateReviewRequest{HallID: hall.ID, BookingID: b1.ID, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, sum.AverageRating)

	_, _, err = svc.Create(ctx, 1, CreateReviewRequest{HallID: hall.ID, BookingID: b1.ID, Rating: 3})
	assert.ErrorIs(t, err, ErrConflict)

	_, _, err = svc.Create(ctx, 2, CreateReviewRequest{HallID: hall.ID, BookingID: b2.ID, Rating: 4})
	require.NoError(t, err)
	low, sum, err := svc.Create(ctx, 3, CreateReviewRequest{HallID: hall.ID, BookingID: b3.ID, Rating: 4})
	require.NoError(t, err)

	// (5+4+4)/3 = 4.33 -> 4.3
	assert.Equal(t, 4.3, sum.AverageRating)
	assert.Equal(t, 3, sum.TotalReviews)

	var stored domain.Hall
	require.NoError(t, db.First(&stored, hall.ID).Error)
	assert.Equal(t, 4.3, stored.AverageRating)
	assert.Equal(t, 3, stored.TotalReviews)
	assert.Equal(t, map[string]int{"1": 0, "2": 0, "3": 0, "4": 2, "5": 1}, stored.RatingDistribution)
	n.AssertNumberOfCalls(t, "NotifyNewReview", 3)

	sum, err = svc.SetStatus(ctx, low.ID, domain.ReviewHidden)
	require.NoError(t, err)
	assert.Equal(t, 4.5, sum.AverageRating)
	assert.Equal(t, 2, sum.TotalReviews)

	list, total, err := svc.ListByHall(ctx, hall.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}

func TestAddOwnerResponse(t *testing.T) {
	svc, db, _, hall := setup(t)
	ctx := context.Background()
	b := completedBooking(t, db, 1, hall.ID, domain.BookingCompleted)
	rv, _, err := svc.Create(ctx, 1, CreateReviewRequest{HallID: hall.ID, BookingID: b.ID, Rating: 4, Comment: "Lovely lawns"})
	require.NoError(t, err)

	_, err = svc.AddOwnerResponse(ctx, rv.ID, 999, "thanks")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.AddOwnerResponse(ctx, rv.ID, ownerID, " Thank you! ")
	require.NoError(t, err)
	require.NotNil(t, got.OwnerResponse)
	assert.Equal(t, "Thank you!", *got.OwnerResponse)

	_, err = svc.AddOwnerResponse(ctx, 4242, ownerID, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
