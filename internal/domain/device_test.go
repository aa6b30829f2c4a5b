package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexicard/lexicard-api/internal/domain"
)

func TestNewDevice(t *testing.T) {
	userID := uuid.New()

	d, err := domain.NewDevice(userID, " esp32-a1 ", "hash")

	require.NoError(t, err)
	assert.Equal(t, "esp32-a1", d.DeviceID)
	assert.True(t, d.IsActive)
	assert.True(t, d.IsOwnedBy(userID))

	_, err = domain.NewDevice(userID, "", "hash")
	assert.ErrorIs(t, err, domain.ErrDeviceIDEmpty)
	_, err = domain.NewDevice(uuid.Nil, "esp32", "hash")
	assert.ErrorIs(t, err, domain.ErrDeviceUserIDEmpty)
	_, err = domain.NewDevice(userID, "esp32", "")
	assert.ErrorIs(t, err, domain.ErrDeviceKeyHashEmpty)
}
