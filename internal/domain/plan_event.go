package domain

import "time"

type PlanEventStatus string

const (
	PlanEventNew        PlanEventStatus = "new"
	PlanEventAssigned   PlanEventStatus = "assigned"
	PlanEventInProgress PlanEventStatus = "in_progress"
	PlanEventDone       PlanEventStatus = "done"
	PlanEventCancelled  PlanEventStatus = "cancelled"
)

// PlanEvent is a request for help planning an event, handled by an event manager.
type PlanEvent struct {
	ID           int64           `json:"id" gorm:"primaryKey"`
	UserID       int64           `json:"user_id" gorm:"index;not null"`
	ManagerID    *int64          `json:"manager_id,omitempty" gorm:"index"`
	BookingID    *int64          `json:"booking_id,omitempty"`
	Title        string          `json:"title"`
	EventType    string          `json:"event_type"`
	EventDate    time.Time       `json:"event_date"`
	Guests       int             `json:"guests"`
	Budget       float64         `json:"budget"`
	City         string          `json:"city"`
	Notes        string          `json:"notes,omitempty" gorm:"type:text"`
	ManagerNotes string          `json:"manager_notes,omitempty" gorm:"type:text"`
	Status       PlanEventStatus `json:"status" gorm:"default:'new'"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
