package planning

import "errors"

var (
	ErrNotFound          = errors.New("not_found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation error")
	ErrNotEventManager   = errors.New("assignee is not an event manager")
	ErrInvalidTransition = errors.New("invalid status transition")
)
