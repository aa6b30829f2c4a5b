package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/generation"
	"github.com/lexicard/lexicard-api/internal/importer"
	"github.com/lexicard/lexicard-api/internal/service"
	"github.com/lexicard/lexicard-api/internal/service/auth"
	"github.com/lexicard/lexicard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing the error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingAPIKey):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrInvalidAPIKey),
		errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidTimeoutDuration),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, store.ErrBatchTooLarge),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrGenerationDisabled):
		return http.StatusServiceUnavailable

	case errors.Is(err, service.ErrUpstream),
		generation.IsGenerationError(err):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Internal
// error text is never included.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken):
		return "Invalid token"
	case errors.Is(err, auth.ErrMissingAPIKey):
		return "API key required"
	case errors.Is(err, auth.ErrInvalidAPIKey):
		return "Invalid API key"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not have access to this resource"

	case errors.Is(err, store.ErrWordNotFound):
		return "Word not found"
	case errors.Is(err, store.ErrWordGroupNotFound):
		return "Word group not found"
	case errors.Is(err, store.ErrDeviceNotFound):
		return "Device not found"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, service.ErrWordGroupMismatch):
		return "Word does not belong to this word group"
	case errors.Is(err, domain.ErrInvalidTimeoutDuration):
		return "Timeout must be between 1 minute and 1 year"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "Invalid status transition"
	case errors.Is(err, store.ErrBatchTooLarge),
		errors.Is(err, importer.ErrTooManyRows):
		return fmt.Sprintf("Too many words, the limit is %d", store.MaxBatchSize)
	case importer.IsImportError(err):
		return importMessage(err)
	case errors.Is(err, domain.ErrValidation):
		return validationMessage(err)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, service.ErrGenerationDisabled):
		return "Word generation is not available"
	case errors.Is(err, generation.ErrContentBlocked):
		return "Generated content was blocked"
	case errors.Is(err, service.ErrUpstream),
		generation.IsGenerationError(err):
		return "Word generation failed, please try again"

	default:
		return "An unexpected error occurred"
	}
}

// validationMessage exposes the domain's own validation text, which never
// carries internal details, with the leading sentinel text removed.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		msg = msg[i+len(prefix):]
	}
	if msg == "" || msg == domain.ErrValidation.Error() {
		return "Validation error"
	}
	return capitalize(msg)
}

func importMessage(err error) string {
	if errors.Is(err, importer.ErrInvalidWorkbook) {
		return "File is not a valid xlsx workbook"
	}
	return validationMessage(err)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// SanitizeValidationError turns validator errors into a message naming the
// first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_without":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "must be positive"
	default:
		return "validation failed"
	}
}
