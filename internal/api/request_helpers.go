package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/redact"
)

// errInvalidID is returned for malformed path and query identifiers.
var errInvalidID = fmt.Errorf("%w: invalid identifier", domain.ErrValidation)

// requireUserID extracts the authenticated user, writing a 401 when absent.
func requireUserID(w http.ResponseWriter, r *http.Request, log *slog.Logger) (uuid.UUID, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUID parses a path or query value, naming the parameter on failure.
func parseUUID(name, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", errInvalidID, name)
	}
	return id, nil
}

// handleUserIDAndPathUUID extracts the user ID and the named path UUID,
// writing the error response when either is missing.
func handleUserIDAndPathUUID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
	log *slog.Logger,
) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := requireUserID(w, r, log)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	pathID, err := parseUUID(paramName, chi.URLParam(r, paramName))
	if err != nil {
		log.Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, pathID, true
}

// parseCurrentWordQuery reads the ?word=&group= pair of the set-current-word routes.
func parseCurrentWordQuery(r *http.Request) (groupID, wordID uuid.UUID, err error) {
	q := r.URL.Query()
	if wordID, err = parseUUID("word", q.Get("word")); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if groupID, err = parseUUID("group", q.Get("group")); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return groupID, wordID, nil
}

// decodeAndValidate reads the JSON body into v and validates it, writing a
// 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}, log *slog.Logger) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		log.Warn("invalid request format", redact.Attr(err))
		if errors.Is(err, shared.ErrEmptyBody) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Request body is required")
			return false
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		log.Warn("validation error", redact.Attr(err))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}

// HandleAPIError writes the status code and safe message for err.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
