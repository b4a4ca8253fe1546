package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP statuses; anything else is treated as an internal error.
var (
	ErrNotFound           = errors.New("not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAlreadyJoined      = errors.New("already joined this event")
)
