package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Entity-specific validation errors wrap it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is returned when a word cannot move from its
	// current status to the requested one.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidTimeoutDuration is returned when a timeout is requested with a
	// number of minutes outside 1..MaxTimeoutMinutes.
	ErrInvalidTimeoutDuration = errors.New("timeout duration must be between 1 minute and 1 year")
)
