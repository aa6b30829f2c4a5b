package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/api/shared"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/redact"
	"github.com/lexicard/lexicard-api/internal/service/auth"
)

// APIKeyHeader carries the device API key.
const APIKeyHeader = "X-API-Key"

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// Authenticate validates the bearer token and adds the user ID to the
// request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("failed to validate token", redact.Attr(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), claims.UserID)))
	})
}

// OwnerResolver maps a device API key to the user that paired the device.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, key string) (uuid.UUID, error)
}

// APIKeyMiddleware authenticates IoT devices by the X-API-Key header.
type APIKeyMiddleware struct {
	resolver OwnerResolver
}

// NewAPIKeyMiddleware creates an APIKeyMiddleware.
func NewAPIKeyMiddleware(resolver OwnerResolver) *APIKeyMiddleware {
	return &APIKeyMiddleware{resolver: resolver}
}

// Authenticate rejects requests without a key with 401 and requests with an
// unknown or inactive key with 403. Otherwise the device owner's ID is added
// to the request context.
func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
		if key == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "API key required")
			return
		}

		userID, err := m.resolver.ResolveOwner(r.Context(), key)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingAPIKey):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "API key required")
			case errors.Is(err, auth.ErrInvalidAPIKey):
				shared.RespondWithError(w, r, http.StatusForbidden, "Invalid API key")
			default:
				logger.FromContextOrDefault(r.Context(), slog.Default()).
					Error("failed to resolve api key", redact.Attr(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := context.WithValue(withUser(r.Context(), userID), shared.DeviceKeyContextKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withUser stores the user ID and tags the request logger with it.
func withUser(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = shared.WithUserID(ctx, userID)
	return logger.WithLogger(ctx, logger.FromContext(ctx).With(slog.String("user_id", userID.String())))
}

// GetUserID extracts the user ID from the request context.
func GetUserID(r *http.Request) (uuid.UUID, bool) {
	return shared.UserIDFromContext(r.Context())
}
