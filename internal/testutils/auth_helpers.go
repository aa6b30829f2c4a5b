package testutils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/config"
	"github.com/lexicard/lexicard-api/internal/service/auth"
)

// TestJWTSecret is a signing secret long enough to pass config validation.
const TestJWTSecret = "test-jwt-secret-thatis32characterslong"

// TestAuthConfig returns an auth configuration suitable for tests.
func TestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            TestJWTSecret,
		TokenLifetimeMinutes: 60,
		BCryptCost:           4,
	}
}

// MustCreateJWTService creates a JWT service from TestAuthConfig.
func MustCreateJWTService(t *testing.T) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(TestAuthConfig())
	require.NoError(t, err, "Failed to create JWT service")
	return svc
}

// GenerateAuthHeader returns an Authorization header value for userID.
func GenerateAuthHeader(t *testing.T, svc auth.JWTService, userID uuid.UUID) string {
	t.Helper()

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err, "Failed to generate token")
	return "Bearer " + token
}
