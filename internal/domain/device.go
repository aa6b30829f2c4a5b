package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Device validation errors
var (
	ErrDeviceIDEmpty      = fmt.Errorf("%w: device ID cannot be empty", ErrValidation)
	ErrDeviceUserIDEmpty  = fmt.Errorf("%w: device user ID cannot be empty", ErrValidation)
	ErrDeviceKeyHashEmpty = fmt.Errorf("%w: device key hash cannot be empty", ErrValidation)
)

// Device is a paired IoT companion. It authenticates with an opaque API key,
// of which only a hash is stored.
type Device struct {
	ID        uuid.UUID `json:"id"`
	DeviceID  string    `json:"device_id"`
	UserID    uuid.UUID `json:"user_id"`
	KeyHash   string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDevice creates an active device paired to userID.
func NewDevice(userID uuid.UUID, deviceID, keyHash string) (*Device, error) {
	now := time.Now().UTC()
	d := &Device{
		ID:        uuid.New(),
		DeviceID:  strings.TrimSpace(deviceID),
		UserID:    userID,
		KeyHash:   keyHash,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks the device's required fields.
func (d *Device) Validate() error {
	if d.DeviceID == "" {
		return ErrDeviceIDEmpty
	}
	if d.UserID == uuid.Nil {
		return ErrDeviceUserIDEmpty
	}
	if d.KeyHash == "" {
		return ErrDeviceKeyHashEmpty
	}
	return nil
}

// IsOwnedBy reports whether userID owns the device.
func (d *Device) IsOwnedBy(userID uuid.UUID) bool {
	return d.UserID == userID
}
