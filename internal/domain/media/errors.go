package media

import "errors"

var (
	ErrNotFound        = errors.New("file not found")
	ErrNotOwner        = errors.New("you do not own this file")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed for this purpose")
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidPurpose  = errors.New("unknown purpose")
)
