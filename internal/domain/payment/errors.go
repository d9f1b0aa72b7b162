package payment

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not_found")
	ErrHallNotFound      = errors.New("hall not found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation error")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrOrderMismatch     = errors.New("order does not belong to booking")
	ErrInvalidState      = errors.New("booking is not in a payable state")
	ErrNothingDue        = errors.New("no remaining amount")
	ErrAmountTooSmall    = errors.New("amount below gateway minimum")
	ErrNoCapturedAdvance = errors.New("no captured advance to refund")
	ErrAdvanceOutOfRange = errors.New("advance out of range")
	ErrGateway           = errors.New("payment gateway error")
)

// AdvanceRangeError carries the accepted bounds for an advance.
type AdvanceRangeError struct {
	Required float64
	Min      float64
	Max      float64
}

func (e *AdvanceRangeError) Error() string {
	return fmt.Sprintf("advance must be between %.2f and %.2f and at least %.2f", e.Min, e.Max, e.Required)
}

func (e *AdvanceRangeError) Unwrap() error { return ErrAdvanceOutOfRange }
