package catalog

import "time"

type CreateHallRequest struct {
	Name               string   `json:"name" validate:"required"`
	Description        string   `json:"description"`
	Images             []string `json:"images"`
	Price              float64  `json:"price" validate:"required,gt=0"`
	Capacity           int      `json:"capacity" validate:"required,gt=0"`
	Amenities          []string `json:"amenities"`
	Address            string   `json:"address" validate:"required"`
	City               string   `json:"city" validate:"required"`
	State              string   `json:"state"`
	Latitude           float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude          float64  `json:"longitude" validate:"gte=-180,lte=180"`
	PlatformFeePercent float64  `json:"platform_fee_percent" validate:"gte=0,lte=100"`
}

type UpdateHallRequest struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	Capacity    *int      `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Amenities   *[]string `json:"amenities,omitempty"`
	Address     *string   `json:"address,omitempty"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
}

type HallFilter struct {
	City  string
	Query string
	Limit int
}

type DayOverride struct {
	Date         string   `json:"date" validate:"required,datetime=2006-01-02"`
	Blocked      bool     `json:"blocked"`
	SpecialPrice *float64 `json:"special_price,omitempty" validate:"omitempty,gt=0"`
	Note         string   `json:"note"`
}

type SetAvailabilityRequest struct {
	Days []DayOverride `json:"days" validate:"required,min=1,dive"`
}

type AvailabilityDay struct {
	Date    string  `json:"date"`
	Blocked bool    `json:"blocked"`
	Booked  bool    `json:"booked"`
	Price   float64 `json:"price"`
}

type CreateServiceRequest struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	City        string   `json:"city" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

type UpdateServiceRequest struct {
	Name        *string   `json:"name,omitempty"`
	Category    *string   `json:"category,omitempty"`
	City        *string   `json:"city,omitempty"`
	Price       *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Active      *bool     `json:"active,omitempty"`
}

type ServiceFilter struct {
	City     string
	Category string
	Limit    int
}

type UpdateServiceBookingRequest struct {
	Status string `json:"status" validate:"required"`
}

type dateRange struct {
	From time.Time
	To   time.Time
}
