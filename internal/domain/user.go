package domain

import "time"

type UserRole string

const (
	RoleUser         UserRole = "user"
	RoleAdmin        UserRole = "admin"
	RoleOwner        UserRole = "owner"
	RoleProvider     UserRole = "provider"
	RoleEventManager UserRole = "event_manager"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner, RoleProvider, RoleEventManager:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserSuspended UserStatus = "suspended"
)

type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone,omitempty"`
	Role         UserRole   `json:"role" gorm:"default:'user';index"`
	Status       UserStatus `json:"status" gorm:"default:'active'"`
	Verified     bool       `json:"verified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
