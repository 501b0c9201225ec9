package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrNotConfigured   = errors.New("not configured")
	ErrPhotoTooLarge   = errors.New("photo exceeds 10MB limit")
	ErrProviderFailure = errors.New("provider failure")
)
