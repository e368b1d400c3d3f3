package domain

import "errors"

// Error taxonomy for the auth core. Infrastructure failures are always
// narrowed to one of these before they reach a handler; raw backend error
// text never crosses the API boundary.
var (
	// ErrInvalidCredentials covers both unknown-email and wrong-password so
	// the response shape cannot be used for email enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrNetwork          = errors.New("backend unreachable")
	ErrPermissionDenied = errors.New("permission denied")
	ErrSessionExpired   = errors.New("session expired")
	ErrValidation       = errors.New("validation failed")
	ErrDatabase         = errors.New("database error")
)
