package domain

import "time"

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

type Verification struct {
	ID         int64              `json:"id" gorm:"primaryKey"`
	UserID     int64              `json:"user_id" gorm:"index;not null"`
	Documents  []string           `json:"documents" gorm:"serializer:json;type:text"`
	Status     VerificationStatus `json:"status" gorm:"default:'pending'"`
	Reason     string             `json:"reason,omitempty"`
	ReviewedBy *int64             `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time         `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
