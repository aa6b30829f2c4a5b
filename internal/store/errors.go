package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation or a
	// database constraint. Check the wrapped error for details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrBatchTooLarge is returned when a batched write exceeds MaxBatchSize.
	ErrBatchTooLarge = fmt.Errorf("batch exceeds %d rows", MaxBatchSize)

	ErrUserNotFound      = fmt.Errorf("%w: user", ErrNotFound)
	ErrWordNotFound      = fmt.Errorf("%w: word", ErrNotFound)
	ErrWordGroupNotFound = fmt.Errorf("%w: word group", ErrNotFound)
	ErrDeviceNotFound    = fmt.Errorf("%w: device", ErrNotFound)

	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// StoreError adds the entity and operation to a failed store call.
type StoreError struct {
	Entity    string
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Entity, e.Err)
}

// Unwrap supports errors.Is/errors.As on the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the entity and operation it happened in.
func NewStoreError(entity, operation string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Err: err}
}
