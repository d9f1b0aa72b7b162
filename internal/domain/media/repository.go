package media

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

func (r *Repository) Create(ctx context.Context, f *domain.MediaFile) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.MediaFile, error) {
	var f domain.MediaFile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.MediaFile{}).Error
}

func (r *Repository) ListByUser(ctx context.Context, userID int64, purpose string) ([]domain.MediaFile, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if purpose != "" {
		q = q.Where("purpose = ?", purpose)
	}
	var list []domain.MediaFile
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}
