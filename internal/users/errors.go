package users

import "errors"

// Lookup errors.
var (
	ErrInvalidID    = errors.New("invalid user id")
	ErrUserNotFound = errors.New("user not found")
)

// Validation errors.
var (
	ErrInvalidAge  = errors.New("age must be an integer")
	ErrInvalidRole = errors.New("unknown role")
)
