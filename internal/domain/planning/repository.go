package planning

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"venuehub/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, ev *domain.PlanEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PlanEvent, error) {
	var ev domain.PlanEvent
	err := r.db.WithContext(ctx).First(&ev, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]domain.PlanEvent, error) {
	var list []domain.PlanEvent
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) ListByManager(ctx context.Context, managerID int64) ([]domain.PlanEvent, error) {
	var list []domain.PlanEvent
	err := r.db.WithContext(ctx).Where("manager_id = ?", managerID).Order("event_date ASC").Find(&list).Error
	return list, err
}

func (r *Repository) ListAll(ctx context.Context, status string) ([]domain.PlanEvent, error) {
	q := r.db.WithContext(ctx).Model(&domain.PlanEvent{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []domain.PlanEvent
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.PlanEvent{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) BookingBelongsTo(ctx context.Context, bookingID, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND user_id = ?", bookingID, userID).
		Count(&n).Error
	return n > 0, err
}
