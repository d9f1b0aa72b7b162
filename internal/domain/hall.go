package domain

import "time"

type HallStatus string

const (
	HallPending  HallStatus = "pending"
	HallActive   HallStatus = "active"
	HallInactive HallStatus = "inactive"
)

type Hall struct {
	ID                 int64          `json:"id" gorm:"primaryKey"`
	OwnerID            int64          `json:"owner_id" gorm:"index;not null"`
	Name               string         `json:"name" gorm:"not null"`
	Description        string         `json:"description,omitempty" gorm:"type:text"`
	Images             []string       `json:"images,omitempty" gorm:"serializer:json;type:text"`
	Price              float64        `json:"price"`
	Capacity           int            `json:"capacity"`
	Amenities          []string       `json:"amenities,omitempty" gorm:"serializer:json;type:text"`
	Address            string         `json:"address,omitempty"`
	City               string         `json:"city" gorm:"index"`
	State              string         `json:"state,omitempty"`
	Latitude           float64        `json:"latitude,omitempty"`
	Longitude          float64        `json:"longitude,omitempty"`
	Status             HallStatus     `json:"status" gorm:"default:'pending';index"`
	Verified           bool           `json:"verified"`
	PlatformFeePercent float64        `json:"platform_fee_percent"`
	AverageRating      float64        `json:"average_rating"`
	TotalReviews       int            `json:"total_reviews"`
	RatingDistribution map[string]int `json:"rating_distribution" gorm:"serializer:json;type:text"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// HallAvailability overrides a single calendar day of a hall: either blocked
// or priced differently from Hall.Price.
type HallAvailability struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	HallID       int64     `json:"hall_id" gorm:"uniqueIndex:idx_hall_availability_day;not null"`
	Date         time.Time `json:"date" gorm:"uniqueIndex:idx_hall_availability_day;not null"`
	Blocked      bool      `json:"blocked"`
	SpecialPrice *float64  `json:"special_price,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (HallAvailability) TableName() string { return "hall_availability" }

// DateOnly truncates t to midnight UTC of the same calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
