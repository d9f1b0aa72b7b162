package domain

import "time"

type BookingPaymentStatus string

const (
	BookingPaymentRequestSent   BookingPaymentStatus = "request_sent"
	BookingPaymentOwnerApproved BookingPaymentStatus = "owner_approved"
	BookingPaymentOwnerDeclined BookingPaymentStatus = "owner_declined"
	BookingPaymentRefunded      BookingPaymentStatus = "refunded"
	BookingPaymentCompleted     BookingPaymentStatus = "completed"
)

const (
	LegCreated  = "created"
	LegPaid     = "paid"
	LegRefunded = "refunded"
)

// BookingPayment tracks the advance and remaining gateway legs of one booking.
type BookingPayment struct {
	ID                     int64                `json:"id" gorm:"primaryKey"`
	BookingID              int64                `json:"booking_id" gorm:"uniqueIndex;not null"`
	UserID                 int64                `json:"user_id" gorm:"index"`
	HallID                 int64                `json:"hall_id" gorm:"index"`
	Currency               string               `json:"currency"`
	TotalAmount            float64              `json:"total_amount"`
	AdvanceAmount          float64              `json:"advance_amount"`
	AdvanceOrderID         string               `json:"advance_order_id,omitempty" gorm:"index"`
	AdvancePaymentID       string               `json:"advance_payment_id,omitempty"`
	AdvancePaymentStatus   string               `json:"advance_payment_status,omitempty"`
	RemainingAmount        float64              `json:"remaining_amount"`
	RemainingOrderID       string               `json:"remaining_order_id,omitempty" gorm:"index"`
	RemainingPaymentID     string               `json:"remaining_payment_id,omitempty"`
	RemainingPaymentStatus string               `json:"remaining_payment_status,omitempty"`
	RefundID               string               `json:"refund_id,omitempty"`
	Status                 BookingPaymentStatus `json:"status" gorm:"not null"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
}
