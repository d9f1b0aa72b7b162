package catalog

import (
	"context"
	"errors"
	"strings"
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

/* ---------- halls ---------- */

func (r *Repository) CreateHall(ctx context.Context, h *domain.Hall) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *Repository) SaveHall(ctx context.Context, h *domain.Hall) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *Repository) GetHall(ctx context.Context, id int64) (*domain.Hall, error) {
	var h domain.Hall
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

// ListActiveHalls returns active halls, best rated first.
func (r *Repository) ListActiveHalls(ctx context.Context, f HallFilter) ([]domain.Hall, error) {
	q := r.db.WithContext(ctx).Where("status = ?", domain.HallActive)
	if f.City != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(f.City)))
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var halls []domain.Hall
	err := q.Order("average_rating DESC").Order("created_at DESC").Limit(f.Limit).Find(&halls).Error
	return halls, err
}

func (r *Repository) ListHallsByOwner(ctx context.Context, ownerID int64) ([]domain.Hall, error) {
	var halls []domain.Hall
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&halls).Error
	return halls, err
}

// ListHalls returns halls in any status; used by moderation.
func (r *Repository) ListHalls(ctx context.Context, status string, limit, offset int) ([]domain.Hall, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hall{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var halls []domain.Hall
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&halls).Error
	return halls, total, err
}

func (r *Repository) UpdateHallStatus(ctx context.Context, id int64, status domain.HallStatus, verified *bool) error {
	updates := map[string]any{"status": status}
	if verified != nil {
		updates["verified"] = *verified
	}
	res := r.db.WithContext(ctx).Model(&domain.Hall{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteHall(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hall_id = ?", id).Delete(&domain.HallAvailability{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Hall{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

/* ---------- availability ---------- */

func (r *Repository) UpsertAvailability(ctx context.Context, days []domain.HallAvailability) error {
	if len(days) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hall_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"blocked", "special_price", "note", "updated_at"}),
	}).Create(&days).Error
}

func (r *Repository) ListAvailability(ctx context.Context, hallID int64, from, to time.Time) ([]domain.HallAvailability, error) {
	var days []domain.HallAvailability
	err := r.db.WithContext(ctx).
		Where("hall_id = ? AND date >= ? AND date <= ?", hallID, from, to).
		Order("date ASC").
		Find(&days).Error
	return days, err
}

// BookedRanges returns start/end of bookings holding dates in [from, to].
func (r *Repository) BookedRanges(ctx context.Context, hallID int64, from, to time.Time) ([]dateRange, error) {
	var rows []struct {
		StartDate time.Time
		EndDate   time.Time
	}
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Select("start_date, end_date").
		Where("hall_id = ? AND status IN ? AND start_date <= ? AND end_date >= ?",
			hallID, domain.DateHoldingStatuses, to, from).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]dateRange, 0, len(rows))
	for _, row := range rows {
		out = append(out, dateRange{From: row.StartDate, To: row.EndDate})
	}
	return out, nil
}

/* ---------- vendor services ---------- */

func (r *Repository) CreateService(ctx context.Context, s *domain.VendorService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *Repository) SaveService(ctx context.Context, s *domain.VendorService) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *Repository) GetService(ctx context.Context, id int64) (*domain.VendorService, error) {
	var s domain.VendorService
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *Repository) ListActiveServices(ctx context.Context, f ServiceFilter) ([]domain.VendorService, error) {
	q := r.db.WithContext(ctx).Where("status = ? AND approved = ?", domain.ServiceActive, true)
	if f.City != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(f.City)))
	}
	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(f.Category)))
	}
	var list []domain.VendorService
	err := q.Order("created_at DESC").Limit(f.Limit).Find(&list).Error
	return list, err
}

func (r *Repository) ListServicesByProvider(ctx context.Context, providerID int64) ([]domain.VendorService, error) {
	var list []domain.VendorService
	err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) ListServicesByStatus(ctx context.Context, status string) ([]domain.VendorService, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []domain.VendorService
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) SetServiceApproval(ctx context.Context, id int64, approved bool) error {
	status := domain.ServiceInactive
	if approved {
		status = domain.ServiceActive
	}
	res := r.db.WithContext(ctx).Model(&domain.VendorService{}).Where("id = ?", id).
		Updates(map[string]any{"approved": approved, "status": status})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* ---------- service bookings ---------- */

func (r *Repository) ListServiceBookingsByProvider(ctx context.Context, providerID int64) ([]domain.ServiceBooking, error) {
	var list []domain.ServiceBooking
	err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("date ASC").Find(&list).Error
	return list, err
}

func (r *Repository) GetServiceBooking(ctx context.Context, id int64) (*domain.ServiceBooking, error) {
	var sb domain.ServiceBooking
	if err := r.db.WithContext(ctx).First(&sb, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &sb, nil
}

func (r *Repository) SaveServiceBooking(ctx context.Context, sb *domain.ServiceBooking) error {
	return r.db.WithContext(ctx).Save(sb).Error
}
