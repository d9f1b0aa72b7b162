package review

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"gorm.io/gorm"

	"venuehub/internal/database"
	"venuehub/internal/domain"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repository) GetHall(ctx context.Context, id int64) (*domain.Hall, error) {
	var h domain.Hall
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *Repository) Exists(ctx context.Context, hallID, userID, bookingID int64) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Where("hall_id = ? AND user_id = ? AND booking_id = ?", hallID, userID, bookingID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *Repository) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(rv).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rv, nil
}

func (r *Repository) ListByHall(ctx context.Context, hallID int64, includeHidden bool, limit, offset int) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{}).Where("hall_id = ?", hallID)
	if !includeHidden {
		q = q.Where("status = ?", domain.ReviewApproved)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []domain.Review
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *Repository) SetOwnerResponse(ctx context.Context, id int64, response string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", id).
		Updates(map[string]any{"owner_response": response, "responded_at": at}).Error
}

func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.ReviewStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", id).Update("status", status).Error
}

// Recompute rebuilds the hall's rating aggregate from its approved reviews.
func (r *Repository) Recompute(ctx context.Context, hallID int64) (*Summary, error) {
	var rows []struct {
		Rating int
		Count  int
	}
	err := r.db.WithContext(ctx).Model(&domain.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("hall_id = ? AND status = ?", hallID, domain.ReviewApproved).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sum := &Summary{RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}}
	points := 0
	for _, row := range rows {
		sum.RatingDistribution[strconv.Itoa(row.Rating)] = row.Count
		sum.TotalReviews += row.Count
		points += row.Rating * row.Count
	}
	if sum.TotalReviews > 0 {
		sum.AverageRating = math.Round(float64(points)/float64(sum.TotalReviews)*10) / 10
	}

	err = r.db.WithContext(ctx).Model(&domain.Hall{}).Where("id = ?", hallID).
		Select("average_rating", "total_reviews", "rating_distribution").
		Updates(&domain.Hall{
			AverageRating:      sum.AverageRating,
			TotalReviews:       sum.TotalReviews,
			RatingDistribution: sum.RatingDistribution,
		}).Error
	if err != nil {
		return nil, err
	}
	return sum, nil
}
