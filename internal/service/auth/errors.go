package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingAPIKey indicates a device request carried no API key.
	ErrMissingAPIKey = errors.New("api key is missing")

	// ErrInvalidAPIKey indicates the API key is unknown or its device is inactive.
	ErrInvalidAPIKey = errors.New("invalid api key")
)
