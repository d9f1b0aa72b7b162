package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"venuehub/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Transaction runs fn against a repository bound to one DB transaction.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// forUpdate adds a row lock on dialects that support it. SQLite serialises
// writers on its own.
func (r *Repository) forUpdate() *gorm.DB {
	if r.db.Dialector.Name() == "postgres" {
		return r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.db
}

func (r *Repository) LockHall(ctx context.Context, hallID int64) (*domain.Hall, error) {
	var h domain.Hall
	if err := r.forUpdate().WithContext(ctx).First(&h, hallID).Error; err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *Repository) GetHall(ctx context.Context, hallID int64) (*domain.Hall, error) {
	var h domain.Hall
	if err := r.db.WithContext(ctx).First(&h, hallID).Error; err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *Repository) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *Repository) Overrides(ctx context.Context, hallID int64, from, to time.Time) ([]domain.HallAvailability, error) {
	var days []domain.HallAvailability
	err := r.db.WithContext(ctx).
		Where("hall_id = ? AND date >= ? AND date <= ?", hallID, from, to).
		Find(&days).Error
	return days, err
}

// HasConfirmedOverlap reports whether a confirmed or completed booking of the
// hall shares at least one day with [start, end]. excludeID skips the booking
// itself.
func (r *Repository) HasConfirmedOverlap(ctx context.Context, hallID int64, start, end time.Time, excludeID int64) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("hall_id = ?", hallID).
		Where("status IN ?", domain.DateHoldingStatuses).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *Repository) ActiveServices(ctx context.Context, ids []int64) ([]domain.VendorService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []domain.VendorService
	err := r.db.WithContext(ctx).
		Where("id IN ? AND status = ? AND approved = ?", ids, domain.ServiceActive, true).
		Find(&list).Error
	return list, err
}

func (r *Repository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *Repository) CreateServiceBookings(ctx context.Context, list []domain.ServiceBooking) error {
	if len(list) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&list).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *Repository) LockBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.forUpdate().WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *Repository) ServiceBookingsFor(ctx context.Context, bookingID int64) ([]domain.ServiceBooking, error) {
	var list []domain.ServiceBooking
	err := r.db.WithContext(ctx).Where("hall_booking_id = ?", bookingID).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *Repository) list(ctx context.Context, q *gorm.DB, f ListFilter) ([]domain.Booking, int64, error) {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.HallID > 0 {
		q = q.Where("hall_id = ?", f.HallID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []domain.Booking
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, f ListFilter) ([]domain.Booking, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&domain.Booking{}).Where("user_id = ?", userID), f)
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, f ListFilter) ([]domain.Booking, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&domain.Booking{}).Where("owner_id = ?", ownerID), f)
}

func (r *Repository) ListAll(ctx context.Context, f ListFilter) ([]domain.Booking, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&domain.Booking{}), f)
}

// UpdateFrom applies updates only while the booking is still in one of the
// given statuses. It returns ErrInvalidStatusTransition when no row matched.
func (r *Repository) UpdateFrom(ctx context.Context, id int64, from []domain.BookingStatus, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidStatusTransition
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPaymentStatus moves the linked payment record, if one exists.
func (r *Repository) SetPaymentStatus(ctx context.Context, bookingID int64, status domain.BookingPaymentStatus) error {
	return r.db.WithContext(ctx).Model(&domain.BookingPayment{}).
		Where("booking_id = ?", bookingID).
		Update("status", status).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.Transaction(ctx, func(tx *Repository) error {
		if err := tx.db.Where("hall_booking_id = ?", id).Delete(&domain.ServiceBooking{}).Error; err != nil {
			return err
		}
		if err := tx.db.Where("booking_id = ?", id).Delete(&domain.BookingPayment{}).Error; err != nil {
			return err
		}
		res := tx.db.Delete(&domain.Booking{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// DueReminders lists confirmed bookings starting in [from, until] that have
// not been reminded yet.
func (r *Repository) DueReminders(ctx context.Context, from, until time.Time) ([]domain.Booking, error) {
	var list []domain.Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND reminder_sent = ? AND start_date >= ? AND start_date <= ?",
			domain.BookingConfirmed, false, from, until).
		Order("start_date ASC").
		Find(&list).Error
	return list, err
}

// ClaimReminder flips reminder_sent and reports whether this caller won.
func (r *Repository) ClaimReminder(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND reminder_sent = ?", id, false).
		Update("reminder_sent", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SaveChange stores a pending change request. The struct form is used so the
// json serializer on PendingChange applies.
func (r *Repository) SaveChange(ctx context.Context, b *domain.Booking, from []domain.BookingStatus, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", b.ID, from).
		Select("status", "pending_change", "special_requests", "updated_at").
		Updates(&domain.Booking{
			Status:          b.Status,
			PendingChange:   b.PendingChange,
			SpecialRequests: b.SpecialRequests,
			UpdatedAt:       now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidStatusTransition
	}
	return nil
}
