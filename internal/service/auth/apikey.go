package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

// apiKeyBytes is the amount of randomness in a generated device key.
const apiKeyBytes = 32

// APIKeyPrefix marks device keys so they are recognisable in logs and configuration.
const APIKeyPrefix = "lxd_"

// GenerateAPIKey returns a new random device key and the hash to store for it.
func GenerateAPIKey() (key string, hash string, err error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to generate api key: %w", err)
	}
	key = APIKeyPrefix + base64.RawURLEncoding.EncodeToString(b)
	return key, HashAPIKey(key), nil
}

// HashAPIKey returns the hex SHA3-256 digest under which a key is stored.
// The digest is unsalted so a key can be found by its hash.
func HashAPIKey(key string) string {
	sum := sha3.Sum256([]byte(strings.TrimSpace(key)))
	return hex.EncodeToString(sum[:])
}

// APIKeyAuthenticator resolves device API keys to their owners.
type APIKeyAuthenticator struct {
	devices store.DeviceStore
}

// NewAPIKeyAuthenticator creates an authenticator backed by the device store.
func NewAPIKeyAuthenticator(devices store.DeviceStore) *APIKeyAuthenticator {
	if devices == nil {
		panic("devices cannot be nil")
	}
	return &APIKeyAuthenticator{devices: devices}
}

// IsValid reports whether key belongs to an active device.
func (a *APIKeyAuthenticator) IsValid(ctx context.Context, key string) bool {
	_, err := a.lookup(ctx, key)
	return err == nil
}

// ResolveOwner returns the user that paired the device holding key.
// Returns ErrMissingAPIKey, ErrInvalidAPIKey, or a store error.
func (a *APIKeyAuthenticator) ResolveOwner(ctx context.Context, key string) (uuid.UUID, error) {
	d, err := a.lookup(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}
	return d.UserID, nil
}

func (a *APIKeyAuthenticator) lookup(ctx context.Context, key string) (*domain.Device, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrMissingAPIKey
	}

	d, err := a.devices.GetByKeyHash(ctx, HashAPIKey(key))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, fmt.Errorf("failed to look up api key: %w", err)
	}
	if !d.IsActive {
		return nil, ErrInvalidAPIKey
	}
	return d, nil
}
