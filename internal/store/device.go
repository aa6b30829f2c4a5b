package store

import (
	"context"

	"github.com/lexicard/lexicard-api/internal/domain"
)

// DeviceStore defines persistence for paired IoT devices.
type DeviceStore interface {
	// Upsert inserts the device, or replaces owner and key of an existing
	// record with the same DeviceID.
	Upsert(ctx context.Context, device *domain.Device) error

	// GetByDeviceID returns ErrDeviceNotFound if no device has the hardware id.
	GetByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error)

	// GetByKeyHash returns ErrDeviceNotFound if no device has the key hash.
	GetByKeyHash(ctx context.Context, keyHash string) (*domain.Device, error)

	// Delete removes the device. Returns ErrDeviceNotFound if it does not exist.
	Delete(ctx context.Context, deviceID string) error
}
