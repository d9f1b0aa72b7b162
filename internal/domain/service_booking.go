package domain

import "time"

type ServiceBookingStatus string

const (
	ServiceBookingPending   ServiceBookingStatus = "pending"
	ServiceBookingConfirmed ServiceBookingStatus = "confirmed"
	ServiceBookingPaid      ServiceBookingStatus = "paid"
	ServiceBookingCancelled ServiceBookingStatus = "cancelled"
	ServiceBookingCompleted ServiceBookingStatus = "completed"
)

func (s ServiceBookingStatus) Valid() bool {
	switch s {
	case ServiceBookingPending, ServiceBookingConfirmed, ServiceBookingPaid,
		ServiceBookingCancelled, ServiceBookingCompleted:
		return true
	}
	return false
}

type ServiceBooking struct {
	ID            int64                `json:"id" gorm:"primaryKey"`
	UserID        int64                `json:"user_id" gorm:"index;not null"`
	ServiceID     int64                `json:"service_id" gorm:"index;not null"`
	ProviderID    int64                `json:"provider_id" gorm:"index"`
	HallBookingID *int64               `json:"hall_booking_id,omitempty" gorm:"index"`
	Date          time.Time            `json:"date"`
	Price         float64              `json:"price"`
	Status        ServiceBookingStatus `json:"status"`
	PaymentStatus PaymentStatus        `json:"payment_status"`
	Notes         string               `json:"notes,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}
