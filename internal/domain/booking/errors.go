package booking

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrPastDate                = errors.New("start date is in the past")
	ErrInvalidRange            = errors.New("end date before start date")
	ErrCapacityExceeded        = errors.New("guests exceed hall capacity")
	ErrDateBlocked             = errors.New("date blocked by owner")
	ErrDateConflict            = errors.New("dates overlap a confirmed booking")
	ErrHallUnavailable         = errors.New("hall not found or not active")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid_status_transition")
	ErrWindowClosed            = errors.New("change window closed")
	ErrNotFound                = errors.New("not_found")
)
