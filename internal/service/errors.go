package service

import (
	"errors"
	"fmt"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/generation"
	"github.com/lexicard/lexicard-api/internal/store"
)

// Sentinel errors shared by the service implementations.
// The API layer maps them to HTTP status codes.
var (
	// ErrNotOwned indicates the resource belongs to another user.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrWordGroupMismatch indicates a word was addressed through a group it does not belong to.
	ErrWordGroupMismatch = fmt.Errorf("%w: word does not belong to the word group", domain.ErrValidation)

	// ErrUpstream indicates an external dependency returned an unusable answer.
	ErrUpstream = errors.New("upstream service failure")

	// ErrGenerationDisabled indicates no AI generator is configured.
	ErrGenerationDisabled = errors.New("word generation is not configured")
)

// sentinels are returned to callers without additional wrapping.
var sentinels = []error{
	ErrNotOwned,
	ErrUpstream,
	ErrGenerationDisabled,
	domain.ErrValidation,
	domain.ErrInvalidTransition,
	domain.ErrInvalidTimeoutDuration,
	store.ErrNotFound,
	store.ErrDuplicate,
	store.ErrInvalidEntity,
}

// ServiceError wraps an unexpected failure with the operation that produced it.
// Sentinel errors stay reachable through errors.Is.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapError returns known sentinel errors unchanged and wraps everything else.
func wrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) || isSentinel(err) {
		return err
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}

func isSentinel(err error) bool {
	if generation.IsGenerationError(err) {
		return true
	}
	for _, target := range sentinels {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
