package booking

import (
	"strings"
	"time"

	"venuehub/internal/domain"
)

type CreateBookingRequest struct {
	HallID          int64   `json:"hallId" validate:"required,gt=0"`
	StartDate       string  `json:"startDate" validate:"required"`
	EndDate         string  `json:"endDate" validate:"required"`
	Guests          int     `json:"guests" validate:"required,gt=0"`
	SpecialRequests string  `json:"specialRequests"`
	Services        []int64 `json:"services" validate:"omitempty,dive,gt=0"`

	// TotalAmount is what the client computed. It is only compared against
	// the server price.
	TotalAmount *float64 `json:"totalAmount,omitempty"`
}

type UpdateBookingRequest struct {
	StartDate       *string `json:"startDate,omitempty"`
	EndDate         *string `json:"endDate,omitempty"`
	Status          *string `json:"status,omitempty"`
	Reason          string  `json:"reason,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

type OwnerActionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

type AdminStatusRequest struct {
	Status        string `json:"status" validate:"omitempty"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty"`
}

type ListFilter struct {
	Status string
	HallID int64
	Limit  int
	Offset int
}

// BookingView is a booking with the add-on service bookings made with it.
type BookingView struct {
	*domain.Booking
	Services []domain.ServiceBooking `json:"services,omitempty"`
}

type bookingEvent struct {
	BookingID  int64                `json:"booking_id"`
	HallID     int64                `json:"hall_id"`
	UserID     int64                `json:"user_id"`
	OwnerID    int64                `json:"owner_id"`
	Status     domain.BookingStatus `json:"status"`
	TotalPrice float64              `json:"total_price"`
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
}

func newBookingEvent(b *domain.Booking) bookingEvent {
	return bookingEvent{
		BookingID:  b.ID,
		HallID:     b.HallID,
		UserID:     b.UserID,
		OwnerID:    b.OwnerID,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		StartDate:  b.StartDate.Format(dateLayout),
		EndDate:    b.EndDate.Format(dateLayout),
	}
}

const dateLayout = "2006-01-02"

// parseDate accepts a calendar date or an RFC 3339 timestamp and returns the
// UTC day it falls on.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return domain.DateOnly(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrValidation
	}
	return domain.DateOnly(t), nil
}
