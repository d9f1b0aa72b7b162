package notification

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"venuehub/internal/domain"
	"venuehub/internal/pkg/realtime"
)

const dateLayout = "02 Jan 2006"

type Service struct {
	repo *Repository
	push realtime.Publisher
	log  logrus.FieldLogger
}

func NewService(repo *Repository, push realtime.Publisher, log logrus.FieldLogger) *Service {
	if push == nil {
		push = realtime.Discard{}
	}
	return &Service{repo: repo, push: push, log: log}
}

// Create stores a notification and pushes it to the recipient if connected.
func (s *Service) Create(ctx context.Context, userID int64, t domain.NotificationType, title, message string, data map[string]any) error {
	n := &domain.Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"user_id": userID, "type": t}).Warn("notification not stored")
		return err
	}
	s.push.PublishToUser(userID, &realtime.Event{Type: realtime.EventNotification, Payload: n})
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Notification, int64, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	list, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}
	return list, unread, total, nil
}

func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func bookingData(b *domain.Booking) map[string]any {
	return map[string]any{
		"booking_id": b.ID,
		"hall_id":    b.HallID,
		"status":     b.Status,
	}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, ownerID int64, b *domain.Booking) error {
	return s.Create(ctx, ownerID, domain.NotifBookingCreated,
		"New booking request",
		fmt.Sprintf("A booking for %s to %s is awaiting the advance payment", b.StartDate.Format(dateLayout), b.EndDate.Format(dateLayout)),
		bookingData(b))
}

func (s *Service) NotifyAdvanceReceived(ctx context.Context, ownerID int64, b *domain.Booking) error {
	return s.Create(ctx, ownerID, domain.NotifAdvanceReceived,
		"Advance received",
		fmt.Sprintf("Advance of %.2f received for booking #%d. Please accept or reject it.", b.AdvanceAmountPaid, b.ID),
		bookingData(b))
}

func (s *Service) NotifyBookingConfirmed(ctx context.Context, userID int64, b *domain.Booking) error {
	return s.Create(ctx, userID, domain.NotifBookingConfirmed,
		"Booking confirmed",
		fmt.Sprintf("Your booking #%d was confirmed by the venue", b.ID),
		bookingData(b))
}

func (s *Service) NotifyBookingRejected(ctx context.Context, userID int64, b *domain.Booking) error {
	return s.Create(ctx, userID, domain.NotifBookingRejected,
		"Booking rejected",
		fmt.Sprintf("Your booking #%d was rejected by the venue", b.ID),
		bookingData(b))
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, recipientID int64, b *domain.Booking) error {
	return s.Create(ctx, recipientID, domain.NotifBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("Booking #%d for %s was cancelled", b.ID, b.StartDate.Format(dateLayout)),
		bookingData(b))
}

func (s *Service) NotifyChangeRequested(ctx context.Context, ownerID int64, b *domain.Booking) error {
	kind := "change"
	if b.PendingChange != nil {
		kind = string(b.PendingChange.Type)
	}
	return s.Create(ctx, ownerID, domain.NotifBookingChangeRequested,
		"Booking change requested",
		fmt.Sprintf("The guest requested a %s for booking #%d", kind, b.ID),
		bookingData(b))
}

func (s *Service) NotifyReminder(ctx context.Context, userID int64, b *domain.Booking) error {
	return s.Create(ctx, userID, domain.NotifBookingReminder,
		"Upcoming event",
		fmt.Sprintf("Your booking #%d starts on %s", b.ID, b.StartDate.Format(dateLayout)),
		bookingData(b))
}

func (s *Service) NotifyPaymentCompleted(ctx context.Context, recipientID int64, b *domain.Booking) error {
	return s.Create(ctx, recipientID, domain.NotifPaymentCompleted,
		"Payment completed",
		fmt.Sprintf("Booking #%d is fully paid", b.ID),
		bookingData(b))
}

func (s *Service) NotifyRefunded(ctx context.Context, userID int64, b *domain.Booking, amount float64) error {
	data := bookingData(b)
	data["amount"] = amount
	return s.Create(ctx, userID, domain.NotifPaymentRefunded,
		"Advance refunded",
		fmt.Sprintf("The venue declined booking #%d; %.2f will be refunded", b.ID, amount),
		data)
}

func (s *Service) NotifyNewReview(ctx context.Context, ownerID, hallID, reviewID int64, rating int) error {
	return s.Create(ctx, ownerID, domain.NotifNewReview,
		"New review",
		fmt.Sprintf("Your hall received a %d-star review", rating),
		map[string]any{"hall_id": hallID, "review_id": reviewID})
}

func (s *Service) NotifyVerification(ctx context.Context, userID int64, approved bool, reason string) error {
	if approved {
		return s.Create(ctx, userID, domain.NotifVerificationApproved,
			"Verification approved", "Your account has been verified", nil)
	}
	return s.Create(ctx, userID, domain.NotifVerificationRejected,
		"Verification rejected", reason, nil)
}

func (s *Service) NotifyPlanEventAssigned(ctx context.Context, recipientID int64, ev *domain.PlanEvent) error {
	return s.Create(ctx, recipientID, domain.NotifPlanEventAssigned,
		"Event manager assigned",
		fmt.Sprintf("Event %q now has a manager", ev.Title),
		map[string]any{"plan_event_id": ev.ID})
}

func (s *Service) NotifyServiceBookingUpdated(ctx context.Context, userID int64, sb *domain.ServiceBooking) error {
	return s.Create(ctx, userID, domain.NotifServiceBookingUpdated,
		"Service booking updated",
		fmt.Sprintf("Service booking #%d is now %s", sb.ID, sb.Status),
		map[string]any{"service_booking_id": sb.ID, "status": sb.Status})
}

func (s *Service) NotifyNewMessage(ctx context.Context, recipientID int64, conversationID string, senderID int64) error {
	return s.Create(ctx, recipientID, domain.NotifNewMessage,
		"New message", "You have a new message",
		map[string]any{"conversation_id": conversationID, "sender_id": senderID})
}
