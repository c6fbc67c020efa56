package common

import "errors"

// Business logic errors
var (
	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")

	// Concurrency errors
	ErrVersionConflict = errors.New("record was modified concurrently")
)
