package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"venuehub/internal/config"
	"venuehub/internal/domain"
	"venuehub/internal/pkg/events"
	"venuehub/internal/pkg/mailer"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type Service struct {
	repo   *Repository
	notifs Notifier
	events events.Publisher
	mail   mailer.Mailer
	cfg    config.BookingConfig
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewService(
	repo *Repository,
	notifs Notifier,
	pub events.Publisher,
	mail mailer.Mailer,
	cfg config.BookingConfig,
	log logrus.FieldLogger,
) *Service {
	return &Service{
		repo:   repo,
		notifs: notifs,
		events: pub,
		mail:   mail,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

func clampFilter(f ListFilter) ListFilter {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// quote prices [start, end] against the hall rate and per-day overrides.
// Every day in the range must be open; nights are billed from start.
func quote(h *domain.Hall, overrides []domain.HallAvailability, start, end time.Time) (float64, error) {
	byDay := make(map[string]domain.HallAvailability, len(overrides))
	for _, o := range overrides {
		byDay[o.Date.Format(dateLayout)] = o
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if o, ok := byDay[d.Format(dateLayout)]; ok && o.Blocked {
			return 0, fmt.Errorf("%w: %s", ErrDateBlocked, d.Format(dateLayout))
		}
	}

	var total float64
	nights := domain.NightsBetween(start, end)
	for i := 0; i < nights; i++ {
		d := start.AddDate(0, 0, i)
		price := h.Price
		if o, ok := byDay[d.Format(dateLayout)]; ok && o.SpecialPrice != nil {
			price = *o.SpecialPrice
		}
		total += price
	}
	return math.Round(total*100) / 100, nil
}

/* ---------- create ---------- */

func (s *Service) Create(ctx context.Context, userID int64, req CreateBookingRequest) (*BookingView, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.Before(domain.DateOnly(s.now())) {
		return nil, ErrPastDate
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	var (
		b        *domain.Booking
		services []domain.ServiceBooking
	)
	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		hall, err := tx.LockHall(ctx, req.HallID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return ErrHallUnavailable
			}
			return err
		}
		if hall.Status != domain.HallActive {
			return ErrHallUnavailable
		}
		if hall.Capacity > 0 && req.Guests > hall.Capacity {
			return ErrCapacityExceeded
		}

		overrides, err := tx.Overrides(ctx, hall.ID, start, end)
		if err != nil {
			return err
		}
		price, err := quote(hall, overrides, start, end)
		if err != nil {
			return err
		}

		conflict, err := tx.HasConfirmedOverlap(ctx, hall.ID, start, end, 0)
		if err != nil {
			return err
		}
		if conflict {
			return ErrDateConflict
		}

		addons, err := tx.ActiveServices(ctx, uniqueIDs(req.Services))
		if err != nil {
			return err
		}
		if len(addons) != len(uniqueIDs(req.Services)) {
			return fmt.Errorf("%w: unknown or inactive service", ErrValidation)
		}
		for _, a := range addons {
			price += a.Price
		}

		b = &domain.Booking{
			UserID:          userID,
			HallID:          hall.ID,
			OwnerID:         hall.OwnerID,
			StartDate:       start,
			EndDate:         end,
			Guests:          req.Guests,
			SpecialRequests: strings.TrimSpace(req.SpecialRequests),
			TotalPrice:      math.Round(price*100) / 100,
			Status:          domain.BookingPendingAdvance,
			PaymentStatus:   domain.PaymentPending,
		}
		b.RemainingAmount = domain.Remaining(b.TotalPrice, 0)
		if err := tx.Create(ctx, b); err != nil {
			return err
		}

		for _, a := range addons {
			services = append(services, domain.ServiceBooking{
				UserID:        userID,
				ServiceID:     a.ID,
				ProviderID:    a.ProviderID,
				HallBookingID: &b.ID,
				Date:          start,
				Price:         a.Price,
				Status:        domain.ServiceBookingPending,
				PaymentStatus: domain.PaymentPending,
			})
		}
		return tx.CreateServiceBookings(ctx, services)
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"booking_id": b.ID, "hall_id": b.HallID, "user_id": userID, "total": b.TotalPrice}
	if req.TotalAmount != nil && math.Abs(*req.TotalAmount-b.TotalPrice) >= 0.01 {
		s.log.WithFields(fields).WithField("client_total", *req.TotalAmount).Warn("client total ignored")
	}
	s.log.WithFields(fields).Info("booking created")

	if err := s.notifs.NotifyBookingCreated(ctx, b.OwnerID, b); err != nil {
		s.log.WithError(err).WithField("booking_id", b.ID).Warn("notify owner failed")
	}
	s.publish(ctx, events.BookingCreated, b)

	return &BookingView{Booking: b, Services: services}, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

/* ---------- read ---------- */

func (s *Service) Get(ctx context.Context, id, viewerID int64, viewerRole string) (*BookingView, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if viewerRole != string(domain.RoleAdmin) && b.UserID != viewerID && b.OwnerID != viewerID {
		return nil, ErrForbidden
	}
	services, err := s.repo.ServiceBookingsFor(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &BookingView{Booking: b, Services: services}, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, f ListFilter) ([]domain.Booking, int64, error) {
	return s.repo.ListByUser(ctx, userID, clampFilter(f))
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64, f ListFilter) ([]domain.Booking, int64, error) {
	return s.repo.ListByOwner(ctx, ownerID, clampFilter(f))
}

func (s *Service) ListAll(ctx context.Context, f ListFilter) ([]domain.Booking, int64, error) {
	return s.repo.ListAll(ctx, clampFilter(f))
}

/* ---------- owner decision ---------- */

func (s *Service) OwnerAction(ctx context.Context, ownerID, id int64, action string) (*domain.Booking, error) {
	if action != "approve" && action != "reject" {
		return nil, ErrValidation
	}

	var b *domain.Booking
	err := s.repo.Transaction(ctx, func(tx *Repository) error {
		var err error
		b, err = tx.LockBooking(ctx, id)
		if err != nil {
			return err
		}
		hall, err := tx.LockHall(ctx, b.HallID)
		if err != nil {
			return err
		}
		if hall.OwnerID != ownerID {
			return ErrForbidden
		}
		if b.Status != domain.BookingPendingOwnerConfirmation {
			return ErrInvalidStatusTransition
		}

		from := []domain.BookingStatus{domain.BookingPendingOwnerConfirmation}
		if action == "reject" {
			now := s.now().UTC()
			if err := tx.UpdateFrom(ctx, b.ID, from, map[string]any{
				"status":       domain.BookingCancelled,
				"cancelled_at": now,
			}); err != nil {
				return err
			}
			b.Status = domain.BookingCancelled
			b.CancelledAt = &now
			return tx.SetPaymentStatus(ctx, b.ID, domain.BookingPaymentOwnerDeclined)
		}

		conflict, err := tx.HasConfirmedOverlap(ctx, b.HallID, b.StartDate, b.EndDate, b.ID)
		if err != nil {
			return err
		}
		if conflict {
			return ErrDateConflict
		}
		// an advance that covered the whole total leaves nothing to collect
		if b.AdvancePaid && domain.Remaining(b.TotalPrice, b.AdvanceAmountPaid) <= 0 {
			if err := tx.UpdateFrom(ctx, b.ID, from, map[string]any{
				"status":               domain.BookingCompleted,
				"payment_status":       domain.PaymentPaid,
				"remaining_amount":     0,
				"final_payment_status": "paid",
				"final_payment_method": "online",
			}); err != nil {
				return err
			}
			b.Status = domain.BookingCompleted
			b.PaymentStatus = domain.PaymentPaid
			b.RemainingAmount = 0
			b.FinalPaymentStatus = "paid"
			b.FinalPaymentMethod = "online"
			return tx.SetPaymentStatus(ctx, b.ID, domain.BookingPaymentCompleted)
		}

		if err := tx.UpdateFrom(ctx, b.ID, from, map[string]any{"status": domain.BookingConfirmed}); err != nil {
			return err
		}
		b.Status = domain.BookingConfirmed
		return tx.SetPaymentStatus(ctx, b.ID, domain.BookingPaymentOwnerApproved)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "owner_id": ownerID, "action": action}).Info("owner decided booking")

	if b.Status != domain.BookingCancelled {
		if err := s.notifs.NotifyBookingConfirmed(ctx, b.UserID, b); err != nil {
			s.log.WithError(err).Warn("notify user failed")
		}
		s.publish(ctx, events.BookingConfirmed, b)
	} else {
		if err := s.notifs.NotifyBookingRejected(ctx, b.UserID, b); err != nil {
			s.log.WithError(err).Warn("notify user failed")
		}
		s.publish(ctx, events.BookingRejected, b)
	}
	return b, nil
}

/* ---------- user changes ---------- */

// RequestChange records a reschedule or cancellation request on a confirmed
// booking for the owner to act on. A specialRequests-only edit is applied
// directly.
func (s *Service) RequestChange(ctx context.Context, userID, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidStatusTransition
	}
	now := s.now().UTC()
	if b.StartDate.Sub(now) <= s.cfg.RescheduleWindow {
		return nil, ErrWindowClosed
	}

	updates := map[string]any{}
	if req.SpecialRequests != nil {
		b.SpecialRequests = strings.TrimSpace(*req.SpecialRequests)
		updates["special_requests"] = b.SpecialRequests
	}

	var change *domain.PendingChange
	switch {
	case req.Status != nil:
		if domain.BookingStatus(*req.Status) != domain.BookingCancelled {
			return nil, fmt.Errorf("%w: only cancellation can be requested", ErrValidation)
		}
		change = &domain.PendingChange{Type: domain.ChangeCancel, Reason: req.Reason, RequestedAt: now}

	case req.StartDate != nil || req.EndDate != nil:
		start, end := b.StartDate, b.EndDate
		if req.StartDate != nil {
			if start, err = parseDate(*req.StartDate); err != nil {
				return nil, err
			}
		}
		if req.EndDate != nil {
			if end, err = parseDate(*req.EndDate); err != nil {
				return nil, err
			}
		}
		if end.Before(start) {
			return nil, ErrInvalidRange
		}
		if start.Before(domain.DateOnly(now)) {
			return nil, ErrPastDate
		}
		change = &domain.PendingChange{
			Type:        domain.ChangeReschedule,
			StartDate:   &start,
			EndDate:     &end,
			Reason:      req.Reason,
			RequestedAt: now,
		}
	}

	if change == nil && len(updates) == 0 {
		return nil, ErrValidation
	}

	from := []domain.BookingStatus{domain.BookingConfirmed}
	if change != nil {
		b.PendingChange = change
		b.Status = domain.BookingPendingApproval
		err = s.repo.SaveChange(ctx, b, from, now)
	} else {
		err = s.repo.UpdateFrom(ctx, b.ID, from, updates)
	}
	if err != nil {
		return nil, err
	}

	if change != nil {
		s.log.WithFields(logrus.Fields{"booking_id": b.ID, "change": change.Type}).Info("booking change requested")
		if err := s.notifs.NotifyChangeRequested(ctx, b.OwnerID, b); err != nil {
			s.log.WithError(err).Warn("notify owner failed")
		}
		s.publish(ctx, events.BookingChangeRequested, b)
	}
	return b, nil
}

// Cancel cancels a confirmed booking outright when check-in is far enough
// away. The booking is marked refunded.
func (s *Service) Cancel(ctx context.Context, userID, id int64) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidStatusTransition
	}
	now := s.now().UTC()
	if domain.DaysUntil(b.StartDate, now) < s.cfg.CancelWindowDays {
		return nil, ErrWindowClosed
	}

	err = s.repo.Transaction(ctx, func(tx *Repository) error {
		if err := tx.UpdateFrom(ctx, b.ID, []domain.BookingStatus{domain.BookingConfirmed}, map[string]any{
			"status":         domain.BookingCancelled,
			"payment_status": domain.PaymentRefunded,
			"cancelled_at":   now,
		}); err != nil {
			return err
		}
		return tx.SetPaymentStatus(ctx, b.ID, domain.BookingPaymentRefunded)
	})
	if err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled
	b.PaymentStatus = domain.PaymentRefunded
	b.CancelledAt = &now

	s.log.WithField("booking_id", b.ID).Info("booking cancelled by user")

	if err := s.notifs.NotifyBookingCancelled(ctx, b.OwnerID, b); err != nil {
		s.log.WithError(err).Warn("notify owner failed")
	}
	s.mailUser(ctx, b.UserID,
		fmt.Sprintf("Booking #%d cancelled", b.ID),
		fmt.Sprintf("Your booking for %s to %s has been cancelled. The amount paid of %.2f will be refunded.",
			b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout), b.AdvanceAmountPaid))
	s.publish(ctx, events.BookingCancelled, b)
	return b, nil
}

/* ---------- admin ---------- */

// AdminOverride sets status and/or payment status without lifecycle checks.
func (s *Service) AdminOverride(ctx context.Context, adminID, id int64, req AdminStatusRequest) (*domain.Booking, error) {
	updates := map[string]any{}
	if req.Status != "" {
		st := domain.BookingStatus(req.Status)
		if !st.Valid() {
			return nil, ErrValidation
		}
		updates["status"] = st
		if st == domain.BookingCancelled {
			updates["cancelled_at"] = s.now().UTC()
		}
	}
	if req.PaymentStatus != "" {
		ps := domain.PaymentStatus(req.PaymentStatus)
		if !ps.Valid() {
			return nil, ErrValidation
		}
		updates["payment_status"] = ps
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"booking_id": id, "admin_id": adminID, "updates": updates}).Warn("booking status overridden")
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

/* ---------- reminders ---------- */

// RunReminders notifies users whose confirmed booking starts within the
// reminder lead. Each booking is claimed before sending so overlapping runs
// never remind twice.
func (s *Service) RunReminders(ctx context.Context) (int, error) {
	now := s.now().UTC()
	due, err := s.repo.DueReminders(ctx, domain.DateOnly(now), now.Add(s.cfg.ReminderLead))
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		b := &due[i]
		claimed, err := s.repo.ClaimReminder(ctx, b.ID)
		if err != nil {
			return sent, err
		}
		if !claimed {
			continue
		}
		b.ReminderSent = true
		if err := s.notifs.NotifyReminder(ctx, b.UserID, b); err != nil {
			s.log.WithError(err).WithField("booking_id", b.ID).Warn("reminder notification failed")
		}
		s.mailUser(ctx, b.UserID,
			fmt.Sprintf("Reminder: booking #%d", b.ID),
			fmt.Sprintf("Your booking starts on %s.", b.StartDate.Format(dateLayout)))
		sent++
	}
	s.log.WithField("sent", sent).Info("reminders run")
	return sent, nil
}

/* ---------- helpers ---------- */

func (s *Service) publish(ctx context.Context, key string, b *domain.Booking) {
	if err := s.events.PublishJSON(ctx, key, newBookingEvent(b)); err != nil {
		s.log.WithError(err).WithField("event", key).Warn("publish event failed")
	}
}

func (s *Service) mailUser(ctx context.Context, userID int64, subject, body string) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("mail recipient lookup failed")
		return
	}
	if err := s.mail.Send(ctx, u.Email, subject, body); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("send mail failed")
	}
}
