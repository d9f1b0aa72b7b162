package payment

import (
	"context"

	"venuehub/internal/domain"
)

type Notifier interface {
	NotifyAdvanceReceived(ctx context.Context, ownerID int64, b *domain.Booking) error
	NotifyPaymentCompleted(ctx context.Context, recipientID int64, b *domain.Booking) error
	NotifyRefunded(ctx context.Context, userID int64, b *domain.Booking, amount float64) error
}
