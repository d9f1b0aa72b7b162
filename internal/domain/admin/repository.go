package admin

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"venuehub/internal/domain"
)

// Repository owns verification requests and the statistics queries.
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

func (r *Repository) CreateVerification(ctx context.Context, v *domain.Verification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *Repository) HasPending(ctx context.Context, userID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Verification{}).
		Where("user_id = ? AND status = ?", userID, domain.VerificationPending).
		Count(&n).Error
	return n > 0, err
}

func (r *Repository) GetVerification(ctx context.Context, id int64) (*domain.Verification, error) {
	var v domain.Verification
	err := r.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) ListVerifications(ctx context.Context, status string, userID int64) ([]domain.Verification, error) {
	q := r.db.WithContext(ctx).Model(&domain.Verification{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if userID > 0 {
		q = q.Where("user_id = ?", userID)
	}
	var list []domain.Verification
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

// Review moves a pending request to its final state. Zero rows means someone got there first.
func (r *Repository) Review(ctx context.Context, id int64, status domain.VerificationStatus, reason string, adminID int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.Verification{}).
		Where("id = ? AND status = ?", id, domain.VerificationPending).
		Updates(map[string]any{
			"status":      status,
			"reason":      reason,
			"reviewed_by": adminID,
			"reviewed_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyReviewed
	}
	return nil
}

func (r *Repository) SetUserVerified(ctx context.Context, userID int64, verified bool) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", userID).
		Update("verified", verified).Error
}

/* ---------- statistics ---------- */

func (r *Repository) count(ctx context.Context, model any, where string, args ...any) (int64, error) {
	q := r.db.WithContext(ctx).Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func (r *Repository) groupCount(ctx context.Context, model any, column string) (map[string]int64, error) {
	var rows []struct {
		Bucket string
		N      int64
	}
	err := r.db.WithContext(ctx).Model(model).
		Select(column + " AS bucket, COUNT(*) AS n").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Bucket] = row.N
	}
	return out, nil
}

func (r *Repository) sum(ctx context.Context, model any, column, where string, args ...any) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(model).
		Select("COALESCE(SUM("+column+"), 0)").
		Where(where, args...).
		Scan(&total).Error
	return total, err
}

func (r *Repository) Statistics(ctx context.Context, now time.Time) (*StatisticsResponse, error) {
	var (
		st  StatisticsResponse
		err error
	)
	if st.TotalUsers, err = r.count(ctx, &domain.User{}, ""); err != nil {
		return nil, err
	}
	if st.UsersByRole, err = r.groupCount(ctx, &domain.User{}, "role"); err != nil {
		return nil, err
	}
	if st.TotalHalls, err = r.count(ctx, &domain.Hall{}, ""); err != nil {
		return nil, err
	}
	if st.PendingHalls, err = r.count(ctx, &domain.Hall{}, "status = ?", domain.HallPending); err != nil {
		return nil, err
	}
	if st.TotalServices, err = r.count(ctx, &domain.VendorService{}, ""); err != nil {
		return nil, err
	}
	if st.PendingServices, err = r.count(ctx, &domain.VendorService{}, "approved = ?", false); err != nil {
		return nil, err
	}
	if st.TotalBookings, err = r.count(ctx, &domain.Booking{}, ""); err != nil {
		return nil, err
	}
	if st.BookingsByStatus, err = r.groupCount(ctx, &domain.Booking{}, "status"); err != nil {
		return nil, err
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if st.TodayBookings, err = r.count(ctx, &domain.Booking{}, "created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour)); err != nil {
		return nil, err
	}
	if st.PendingVerifications, err = r.count(ctx, &domain.Verification{}, "status = ?", domain.VerificationPending); err != nil {
		return nil, err
	}
	if st.AdvanceCollected, err = r.sum(ctx, &domain.Booking{}, "advance_amount_paid", "advance_paid = ?", true); err != nil {
		return nil, err
	}
	if st.CompletedRevenue, err = r.sum(ctx, &domain.Booking{}, "total_price", "status = ?", domain.BookingCompleted); err != nil {
		return nil, err
	}
	return &st, nil
}
