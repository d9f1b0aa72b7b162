package payment

type AdvanceOrderRequest struct {
	BookingID   *int64  `json:"bookingId,omitempty"`
	UserID      int64   `json:"userId"`
	HallID      int64   `json:"hallId" validate:"required,gt=0"`
	TotalAmount float64 `json:"totalAmount" validate:"gte=0"`
	Advance     float64 `json:"advance" validate:"required,gt=0"`
}

type OrderResponse struct {
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	KeyID     string `json:"keyId"`
	BookingID int64  `json:"bookingId,omitempty"`

	RequiredAdvance float64 `json:"requiredAdvance,omitempty"`
}

type VerifyRequest struct {
	BookingID int64  `json:"bookingId" validate:"required,gt=0"`
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type BookingRequest struct {
	BookingID int64 `json:"bookingId" validate:"required,gt=0"`
}

type RefundResult struct {
	BookingID int64   `json:"bookingId"`
	RefundID  string  `json:"refundId"`
	Amount    float64 `json:"amount"`
}

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity map[string]interface{} `json:"entity"`
		} `json:"payment"`
		Order struct {
			Entity map[string]interface{} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

type paymentEvent struct {
	BookingID int64   `json:"booking_id"`
	UserID    int64   `json:"user_id"`
	HallID    int64   `json:"hall_id"`
	OrderID   string  `json:"order_id,omitempty"`
	PaymentID string  `json:"payment_id,omitempty"`
	Amount    float64 `json:"amount"`
}
