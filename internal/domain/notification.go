package domain

import "time"

type NotificationType string

const (
	NotifBookingCreated         NotificationType = "booking_created"
	NotifBookingConfirmed       NotificationType = "booking_confirmed"
	NotifBookingRejected        NotificationType = "booking_rejected"
	NotifBookingCancelled       NotificationType = "booking_cancelled"
	NotifBookingChangeRequested NotificationType = "booking_change_requested"
	NotifBookingReminder        NotificationType = "booking_reminder"
	NotifAdvanceReceived        NotificationType = "advance_received"
	NotifPaymentCompleted       NotificationType = "payment_completed"
	NotifPaymentRefunded        NotificationType = "payment_refunded"
	NotifNewReview              NotificationType = "new_review"
	NotifVerificationApproved   NotificationType = "verification_approved"
	NotifVerificationRejected   NotificationType = "verification_rejected"
	NotifNewMessage             NotificationType = "new_message"
	NotifPlanEventAssigned      NotificationType = "plan_event_assigned"
	NotifServiceBookingUpdated  NotificationType = "service_booking_updated"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"user_id" gorm:"index;not null"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	IsRead    bool             `json:"is_read"`
	Data      map[string]any   `json:"data,omitempty" gorm:"serializer:json;type:text"`
	CreatedAt time.Time        `json:"created_at"`
}
