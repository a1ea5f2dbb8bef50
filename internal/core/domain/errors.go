package domain

import "errors"

// Store-level outcomes, produced by repository adapters.
var (
	ErrDuplicateEmail     = errors.New("email address already registered")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Service-level taxonomy. These are the only errors that escape the auth
// service; raw lower-level causes are logged, never returned.
var (
	ErrEmailTaken         = errors.New("email address is already registered")
	ErrInvalidCredentials = errors.New("invalid email address or password")
	ErrInvalidToken       = errors.New("invalid token provided")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
)
