package domain

import (
	"math"
	"time"
)

type BookingStatus string

const (
	BookingPendingAdvance           BookingStatus = "pending_advance"
	BookingPendingOwnerConfirmation BookingStatus = "pending_owner_confirmation"
	BookingConfirmed                BookingStatus = "confirmed"
	BookingPendingApproval          BookingStatus = "pending_approval"
	BookingCancelled                BookingStatus = "cancelled"
	BookingCompleted                BookingStatus = "completed"
	BookingPaid                     BookingStatus = "paid"

	// BookingApproved is written by older clients in place of confirmed.
	BookingApproved BookingStatus = "approved"
)

// DateHoldingStatuses are the statuses that keep a hall's dates taken.
var DateHoldingStatuses = []BookingStatus{BookingConfirmed, BookingCompleted}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPendingAdvance, BookingPendingOwnerConfirmation, BookingConfirmed,
		BookingPendingApproval, BookingCancelled, BookingCompleted, BookingPaid, BookingApproved:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentRefunded
}

type ChangeType string

const (
	ChangeReschedule ChangeType = "reschedule"
	ChangeCancel     ChangeType = "cancel"
)

// PendingChange is a user request on a confirmed booking waiting for the owner.
type PendingChange struct {
	Type        ChangeType `json:"type"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
}

type Booking struct {
	ID                 int64          `json:"id" gorm:"primaryKey"`
	UserID             int64          `json:"user_id" gorm:"index;not null"`
	HallID             int64          `json:"hall_id" gorm:"index;not null"`
	OwnerID            int64          `json:"owner_id" gorm:"index"`
	StartDate          time.Time      `json:"start_date" gorm:"not null"`
	EndDate            time.Time      `json:"end_date" gorm:"not null"`
	Guests             int            `json:"guests"`
	SpecialRequests    string         `json:"special_requests,omitempty" gorm:"type:text"`
	TotalPrice         float64        `json:"total_price"`
	Status             BookingStatus  `json:"status" gorm:"index;not null"`
	PaymentStatus      PaymentStatus  `json:"payment_status"`
	OrderID            string         `json:"order_id,omitempty"`
	PaymentID          string         `json:"payment_id,omitempty"`
	AdvancePaid        bool           `json:"advance_paid"`
	AdvanceAmountPaid  float64        `json:"advance_amount_paid"`
	RemainingAmount    float64        `json:"remaining_amount"`
	FinalPaymentMethod string         `json:"final_payment_method,omitempty"`
	FinalPaymentStatus string         `json:"final_payment_status,omitempty"`
	PendingChange      *PendingChange `json:"pending_change,omitempty" gorm:"serializer:json;type:text"`
	ReminderSent       bool           `json:"reminder_sent"`
	CancelledAt        *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Nights is the number of billable days, at least one.
func (b *Booking) Nights() int {
	return NightsBetween(b.StartDate, b.EndDate)
}

func NightsBetween(start, end time.Time) int {
	n := int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// DaysUntil returns whole days from now until start, rounded down.
func DaysUntil(start, now time.Time) int {
	return int(math.Floor(start.Sub(now).Hours() / 24))
}

// Remaining is max(total-advance, 0) rounded to two decimals.
func Remaining(total, advance float64) float64 {
	r := total - advance
	if r < 0 {
		return 0
	}
	return math.Round(r*100) / 100
}
