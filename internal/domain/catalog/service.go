package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"venuehub/internal/domain"
)

const (
	scopeHalls    = "halls"
	scopeServices = "services"

	defaultListLimit = 20
	maxListLimit     = 100
	maxAvailability  = 370 * 24 * time.Hour
)

// ServiceBookingNotifier is told when a provider changes a service booking.
type ServiceBookingNotifier interface {
	NotifyServiceBookingUpdated(ctx context.Context, userID int64, sb *domain.ServiceBooking) error
}

type Service struct {
	repo   *Repository
	cache  *ListingCache
	notifs ServiceBookingNotifier
	log    logrus.FieldLogger
}

func NewService(repo *Repository, cache *ListingCache, notifs ServiceBookingNotifier, log logrus.FieldLogger) *Service {
	return &Service{repo: repo, cache: cache, notifs: notifs, log: log}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

/* ---------- halls ---------- */

func (s *Service) ListHalls(ctx context.Context, f HallFilter) ([]domain.Hall, error) {
	f.Limit = clampLimit(f.Limit)
	f.City = strings.TrimSpace(f.City)
	f.Query = strings.TrimSpace(f.Query)

	var cached []domain.Hall
	if s.cache.Get(ctx, scopeHalls, &cached, strings.ToLower(f.City), f.Query, f.Limit) {
		return cached, nil
	}

	halls, err := s.repo.ListActiveHalls(ctx, f)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, scopeHalls, halls, strings.ToLower(f.City), f.Query, f.Limit)
	return halls, nil
}

// GetHall hides non-active halls from everyone but their owner and admins.
func (s *Service) GetHall(ctx context.Context, id, viewerID int64, viewerRole string) (*domain.Hall, error) {
	h, err := s.repo.GetHall(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.Status != domain.HallActive && h.OwnerID != viewerID && viewerRole != string(domain.RoleAdmin) {
		return nil, ErrNotFound
	}
	return h, nil
}

func (s *Service) CreateHall(ctx context.Context, ownerID int64, req CreateHallRequest) (*domain.Hall, error) {
	h := &domain.Hall{
		OwnerID:            ownerID,
		Name:               strings.TrimSpace(req.Name),
		Description:        req.Description,
		Images:             req.Images,
		Price:              req.Price,
		Capacity:           req.Capacity,
		Amenities:          req.Amenities,
		Address:            req.Address,
		City:               strings.TrimSpace(req.City),
		State:              req.State,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		Status:             domain.HallPending,
		PlatformFeePercent: req.PlatformFeePercent,
		RatingDistribution: emptyDistribution(),
	}
	if err := s.repo.CreateHall(ctx, h); err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}
	s.log.WithFields(logrus.Fields{"hall_id": h.ID, "owner_id": ownerID}).Info("hall created")
	return h, nil
}

func (s *Service) ownedHall(ctx context.Context, ownerID, hallID int64) (*domain.Hall, error) {
	h, err := s.repo.GetHall(ctx, hallID)
	if err != nil {
		return nil, err
	}
	if h.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return h, nil
}

func (s *Service) UpdateHall(ctx context.Context, ownerID, hallID int64, req UpdateHallRequest) (*domain.Hall, error) {
	h, err := s.ownedHall(ctx, ownerID, hallID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		h.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		h.Description = *req.Description
	}
	if req.Images != nil {
		h.Images = *req.Images
	}
	if req.Price != nil {
		h.Price = *req.Price
	}
	if req.Capacity != nil {
		h.Capacity = *req.Capacity
	}
	if req.Amenities != nil {
		h.Amenities = *req.Amenities
	}
	if req.Address != nil {
		h.Address = *req.Address
	}
	if req.City != nil {
		h.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		h.State = *req.State
	}

	if err := s.repo.SaveHall(ctx, h); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, scopeHalls)
	return h, nil
}

// DeactivateHall hides a hall from listings; bookings are kept.
func (s *Service) DeactivateHall(ctx context.Context, ownerID, hallID int64) error {
	if _, err := s.ownedHall(ctx, ownerID, hallID); err != nil {
		return err
	}
	if err := s.repo.UpdateHallStatus(ctx, hallID, domain.HallInactive, nil); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, scopeHalls)
	return nil
}

func (s *Service) ListOwnerHalls(ctx context.Context, ownerID int64) ([]domain.Hall, error) {
	return s.repo.ListHallsByOwner(ctx, ownerID)
}

// SetHallStatus is the moderation entry point.
func (s *Service) SetHallStatus(ctx context.Context, hallID int64, status domain.HallStatus, verified *bool) error {
	switch status {
	case domain.HallPending, domain.HallActive, domain.HallInactive:
	default:
		return ErrValidation
	}
	if err := s.repo.UpdateHallStatus(ctx, hallID, status, verified); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, scopeHalls)
	return nil
}

func (s *Service) DeleteHall(ctx context.Context, hallID int64) error {
	if err := s.repo.DeleteHall(ctx, hallID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, scopeHalls)
	return nil
}

func (s *Service) ListAllHalls(ctx context.Context, status string, limit, offset int) ([]domain.Hall, int64, error) {
	return s.repo.ListHalls(ctx, status, clampLimit(limit), offset)
}

/* ---------- availability ---------- */

func (s *Service) SetAvailability(ctx context.Context, ownerID, hallID int64, req SetAvailabilityRequest) error {
	if _, err := s.ownedHall(ctx, ownerID, hallID); err != nil {
		return err
	}

	days := make([]domain.HallAvailability, 0, len(req.Days))
	now := time.Now()
	for _, d := range req.Days {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return ErrValidation
		}
		days = append(days, domain.HallAvailability{
			HallID:       hallID,
			Date:         domain.DateOnly(date),
			Blocked:      d.Blocked,
			SpecialPrice: d.SpecialPrice,
			Note:         d.Note,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return s.repo.UpsertAvailability(ctx, days)
}

// Availability lists every day in [from, to] with its effective price and
// whether it is blocked or already taken by a confirmed booking.
func (s *Service) Availability(ctx context.Context, hallID int64, from, to time.Time) ([]AvailabilityDay, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	if to.Before(from) || to.Sub(from) > maxAvailability {
		return nil, ErrValidation
	}

	h, err := s.repo.GetHall(ctx, hallID)
	if err != nil {
		return nil, err
	}
	overrides, err := s.repo.ListAvailability(ctx, hallID, from, to)
	if err != nil {
		return nil, err
	}
	booked, err := s.repo.BookedRanges(ctx, hallID, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]domain.HallAvailability, len(overrides))
	for _, o := range overrides {
		byDay[o.Date.Format("2006-01-02")] = o
	}

	var out []AvailabilityDay
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		day := AvailabilityDay{Date: key, Price: h.Price}
		if o, ok := byDay[key]; ok {
			day.Blocked = o.Blocked
			if o.SpecialPrice != nil {
				day.Price = *o.SpecialPrice
			}
		}
		for _, r := range booked {
			if !d.Before(domain.DateOnly(r.From)) && !d.After(domain.DateOnly(r.To)) {
				day.Booked = true
				break
			}
		}
		out = append(out, day)
	}
	return out, nil
}

/* ---------- vendor services ---------- */

func (s *Service) ListServices(ctx context.Context, f ServiceFilter) ([]domain.VendorService, error) {
	f.Limit = clampLimit(f.Limit)

	var cached []domain.VendorService
	if s.cache.Get(ctx, scopeServices, &cached, strings.ToLower(f.City), strings.ToLower(f.Category), f.Limit) {
		return cached, nil
	}
	list, err := s.repo.ListActiveServices(ctx, f)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, scopeServices, list, strings.ToLower(f.City), strings.ToLower(f.Category), f.Limit)
	return list, nil
}

func (s *Service) GetService(ctx context.Context, id int64) (*domain.VendorService, error) {
	return s.repo.GetService(ctx, id)
}

func (s *Service) CreateService(ctx context.Context, providerID int64, req CreateServiceRequest) (*domain.VendorService, error) {
	vs := &domain.VendorService{
		ProviderID:  providerID,
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		City:        strings.TrimSpace(req.City),
		Price:       req.Price,
		Description: req.Description,
		Images:      req.Images,
		Status:      domain.ServicePending,
	}
	if err := s.repo.CreateService(ctx, vs); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return vs, nil
}

func (s *Service) UpdateService(ctx context.Context, providerID, id int64, req UpdateServiceRequest) (*domain.VendorService, error) {
	vs, err := s.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if vs.ProviderID != providerID {
		return nil, ErrForbidden
	}

	if req.Name != nil {
		vs.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		vs.Category = strings.TrimSpace(*req.Category)
	}
	if req.City != nil {
		vs.City = strings.TrimSpace(*req.City)
	}
	if req.Price != nil {
		vs.Price = *req.Price
	}
	if req.Description != nil {
		vs.Description = *req.Description
	}
	if req.Images != nil {
		vs.Images = *req.Images
	}
	if req.Active != nil && vs.Approved {
		vs.Status = domain.ServiceInactive
		if *req.Active {
			vs.Status = domain.ServiceActive
		}
	}

	if err := s.repo.SaveService(ctx, vs); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, scopeServices)
	return vs, nil
}

func (s *Service) ListProviderServices(ctx context.Context, providerID int64) ([]domain.VendorService, error) {
	return s.repo.ListServicesByProvider(ctx, providerID)
}

func (s *Service) ListServicesForModeration(ctx context.Context, status string) ([]domain.VendorService, error) {
	return s.repo.ListServicesByStatus(ctx, status)
}

func (s *Service) SetServiceApproval(ctx context.Context, id int64, approved bool) error {
	if err := s.repo.SetServiceApproval(ctx, id, approved); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, scopeServices)
	return nil
}

/* ---------- service bookings ---------- */

func (s *Service) ListProviderServiceBookings(ctx context.Context, providerID int64) ([]domain.ServiceBooking, error) {
	return s.repo.ListServiceBookingsByProvider(ctx, providerID)
}

var serviceBookingTransitions = map[domain.ServiceBookingStatus][]domain.ServiceBookingStatus{
	domain.ServiceBookingPending:   {domain.ServiceBookingConfirmed, domain.ServiceBookingCancelled},
	domain.ServiceBookingConfirmed: {domain.ServiceBookingPaid, domain.ServiceBookingCompleted, domain.ServiceBookingCancelled},
	domain.ServiceBookingPaid:      {domain.ServiceBookingCompleted},
}

func (s *Service) UpdateServiceBookingStatus(ctx context.Context, providerID, id int64, status domain.ServiceBookingStatus) (*domain.ServiceBooking, error) {
	if !status.Valid() {
		return nil, ErrValidation
	}
	sb, err := s.repo.GetServiceBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if sb.ProviderID != providerID {
		return nil, ErrForbidden
	}

	allowed := false
	for _, next := range serviceBookingTransitions[sb.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidStatus
	}

	sb.Status = status
	if status == domain.ServiceBookingPaid {
		sb.PaymentStatus = domain.PaymentPaid
	}
	if err := s.repo.SaveServiceBooking(ctx, sb); err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.NotifyServiceBookingUpdated(ctx, sb.UserID, sb)
	}
	return sb, nil
}

func emptyDistribution() map[string]int {
	return map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
}
