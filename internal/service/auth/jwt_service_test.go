package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/config"
)

const testSecret = "test-jwt-secret-thatis32characterslong"

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC)
	clock := now
	svc, err := newHMACJWTService(testSecret, time.Hour, func() time.Time { return clock })
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.IssuedAt.Equal(now))
	assert.True(t, claims.ExpiresAt.Equal(now.Add(time.Hour)))
	assert.NotEmpty(t, claims.ID)

	t.Run("within leeway", func(t *testing.T) {
		clock = now.Add(time.Hour + time.Minute)
		_, err := svc.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		clock = now.Add(2 * time.Hour)
		_, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestValidateToken_Rejections(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, err := newHMACJWTService(testSecret, time.Hour, time.Now)
	require.NoError(t, err)

	other, err := newHMACJWTService("another-secret-that-is-long-enough-too", time.Hour, time.Now)
	require.NoError(t, err)
	foreign, err := other.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"uid": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwtCustomClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	nilUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: foreign},
		{name: "none algorithm", token: noneToken},
		{name: "unexpected algorithm", token: hs512},
		{name: "missing user", token: nilUser},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tc.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
