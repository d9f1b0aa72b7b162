package review

type CreateReviewRequest struct {
	HallID    int64    `json:"hallId" validate:"required,gt=0"`
	BookingID int64    `json:"bookingId" validate:"required,gt=0"`
	Rating    int      `json:"rating" validate:"required,min=1,max=5"`
	Comment   string   `json:"comment" validate:"max=2000"`
	Images    []string `json:"images" validate:"max=10,dive,url"`
}

type OwnerResponseRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved hidden"`
}

// Summary is the rating aggregate stored on the hall.
type Summary struct {
	AverageRating      float64        `json:"average_rating"`
	TotalReviews       int            `json:"total_reviews"`
	RatingDistribution map[string]int `json:"rating_distribution"`
}
