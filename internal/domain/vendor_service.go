package domain

import "time"

type ServiceStatus string

const (
	ServicePending  ServiceStatus = "pending"
	ServiceActive   ServiceStatus = "active"
	ServiceInactive ServiceStatus = "inactive"
)

// VendorService is an offering (catering, decor, photography...) listed by a provider.
type VendorService struct {
	ID          int64         `json:"id" gorm:"primaryKey"`
	ProviderID  int64         `json:"provider_id" gorm:"index;not null"`
	Name        string        `json:"name" gorm:"not null"`
	Category    string        `json:"category" gorm:"index"`
	City        string        `json:"city" gorm:"index"`
	Price       float64       `json:"price"`
	Description string        `json:"description,omitempty" gorm:"type:text"`
	Images      []string      `json:"images,omitempty" gorm:"serializer:json;type:text"`
	Status      ServiceStatus `json:"status" gorm:"default:'pending'"`
	Approved    bool          `json:"approved"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (VendorService) TableName() string { return "vendor_services" }
