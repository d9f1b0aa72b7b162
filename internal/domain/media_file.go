package domain

import "time"

type MediaPurpose string

const (
	MediaHallImage    MediaPurpose = "hall_image"
	MediaServiceImage MediaPurpose = "service_image"
	MediaReviewImage  MediaPurpose = "review_image"
	MediaVerification MediaPurpose = "verification_document"
)

// MediaFile is an uploaded file kept on local disk and served under a static prefix.
type MediaFile struct {
	ID           string       `json:"id" gorm:"primaryKey;size:36"`
	UserID       int64        `json:"user_id" gorm:"index;not null"`
	Purpose      MediaPurpose `json:"purpose" gorm:"index"`
	OriginalName string       `json:"name"`
	FilePath     string       `json:"-"`
	URL          string       `json:"url"`
	MimeType     string       `json:"mime_type"`
	Size         int64        `json:"size"`
	CreatedAt    time.Time    `json:"created_at"`
}
