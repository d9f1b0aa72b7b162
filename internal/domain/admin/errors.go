package admin

import "errors"

var (
	ErrNotFound         = errors.New("not_found")
	ErrValidation       = errors.New("validation error")
	ErrSelfModeration   = errors.New("admins cannot change their own account")
	ErrAlreadyPending   = errors.New("a verification request is already pending")
	ErrAlreadyReviewed  = errors.New("verification already reviewed")
	ErrRoleNotVerifying = errors.New("only owners and providers submit verification")
)
