package domain

import "time"

type ReviewStatus string

const (
	ReviewApproved ReviewStatus = "approved"
	ReviewHidden   ReviewStatus = "hidden"
)

type Review struct {
	ID            int64        `json:"id" gorm:"primaryKey"`
	HallID        int64        `json:"hall_id" gorm:"uniqueIndex:idx_reviews_hall_user_booking;not null"`
	UserID        int64        `json:"user_id" gorm:"uniqueIndex:idx_reviews_hall_user_booking;not null"`
	BookingID     int64        `json:"booking_id" gorm:"uniqueIndex:idx_reviews_hall_user_booking;not null"`
	Rating        int          `json:"rating"`
	Comment       string       `json:"comment,omitempty" gorm:"type:text"`
	Images        []string     `json:"images,omitempty" gorm:"serializer:json;type:text"`
	Status        ReviewStatus `json:"status" gorm:"default:'approved'"`
	OwnerResponse *string      `json:"owner_response,omitempty"`
	RespondedAt   *time.Time   `json:"responded_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
