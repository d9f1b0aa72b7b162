package planning

type CreatePlanEventRequest struct {
	Title     string  `json:"title" validate:"required,max=200"`
	EventType string  `json:"eventType" validate:"required,max=100"`
	EventDate string  `json:"eventDate" validate:"required"`
	Guests    int     `json:"guests" validate:"gte=0"`
	Budget    float64 `json:"budget" validate:"gte=0"`
	City      string  `json:"city" validate:"max=100"`
	Notes     string  `json:"notes" validate:"max=4000"`
	BookingID *int64  `json:"bookingId,omitempty" validate:"omitempty,gt=0"`
}

type AssignRequest struct {
	ManagerID int64 `json:"managerId" validate:"required,gt=0"`
}

type ManagerUpdateRequest struct {
	Status string  `json:"status" validate:"omitempty,oneof=in_progress done cancelled"`
	Notes  *string `json:"notes" validate:"omitempty,max=4000"`
}
