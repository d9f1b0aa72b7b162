package payment

import (
	"context"
	"errors"

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

func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *Repository) LockBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var b domain.Booking
	if err := q.First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *Repository) GetHall(ctx context.Context, id int64) (*domain.Hall, error) {
	var h domain.Hall
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetByBooking returns the payment record of a booking or ErrNotFound.
func (r *Repository) GetByBooking(ctx context.Context, bookingID int64) (*domain.BookingPayment, error) {
	var bp domain.BookingPayment
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&bp).Error; err != nil {
		return nil, notFound(err)
	}
	return &bp, nil
}

// Save inserts or updates bp by primary key.
func (r *Repository) Save(ctx context.Context, bp *domain.BookingPayment) error {
	return r.db.WithContext(ctx).Save(bp).Error
}

func (r *Repository) UpdateBooking(ctx context.Context, id int64, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
