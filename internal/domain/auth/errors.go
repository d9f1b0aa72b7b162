package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAccountSuspended   = errors.New("account suspended")
	ErrRoleNotAllowed     = errors.New("role not allowed")
	ErrNotFound           = errors.New("not_found")
)
