package domain

import "errors"

// Sentinel errors returned by the core. The API layer maps each of these to
// an HTTP status code in exactly one place (internal/api/error_handler.go).
var (
	ErrValidation         = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token expired")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrStoreUnavailable   = errors.New("user store unavailable")
)
