package booking

import (
	"context"

	"venuehub/internal/domain"
)

// Notifier delivers in-app notifications for booking lifecycle changes.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, ownerID int64, b *domain.Booking) error
	NotifyBookingConfirmed(ctx context.Context, userID int64, b *domain.Booking) error
	NotifyBookingRejected(ctx context.Context, userID int64, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, recipientID int64, b *domain.Booking) error
	NotifyChangeRequested(ctx context.Context, ownerID int64, b *domain.Booking) error
	NotifyReminder(ctx context.Context, userID int64, b *domain.Booking) error
}
