package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/platform/logger"
	"github.com/lexicard/lexicard-api/internal/service/auth"
	"github.com/lexicard/lexicard-api/internal/store"
)

const deviceServiceName = "device service"

// PairRequest is sent by the companion app while pairing a device over Bluetooth.
type PairRequest struct {
	DeviceID     string `json:"deviceId"     validate:"required,max=128"`
	WifiSSID     string `json:"wifiSSID"     validate:"max=32"`
	WifiPassword string `json:"wifiPassword" validate:"max=64"`
}

// PairResult is returned once per pairing. APIKey is never retrievable again.
type PairResult struct {
	DeviceID     string `json:"deviceId"`
	APIKey       string `json:"apiKey"`
	WifiSSID     string `json:"wifiSSID,omitempty"`
	WifiPassword string `json:"wifiPassword,omitempty"`
}

// DeviceService pairs and resets IoT devices.
type DeviceService interface {
	// Pair creates or re-keys the device for userID. A device paired to
	// another user must be reset first.
	Pair(ctx context.Context, userID uuid.UUID, req PairRequest) (*PairResult, error)

	// Reset forgets the device; its API key stops working immediately.
	Reset(ctx context.Context, userID uuid.UUID, deviceID string) error
}

type deviceServiceImpl struct {
	devices store.DeviceStore
	keyGen  func() (string, string, error)
	logger  *slog.Logger
}

var _ DeviceService = (*deviceServiceImpl)(nil)

// NewDeviceService creates a DeviceService.
func NewDeviceService(devices store.DeviceStore, log *slog.Logger) (DeviceService, error) {
	if devices == nil {
		return nil, &ServiceError{Service: deviceServiceName, Operation: "create_service", Err: errors.New("device store cannot be nil")}
	}
	if log == nil {
		log = slog.Default()
	}
	return &deviceServiceImpl{
		devices: devices,
		keyGen:  auth.GenerateAPIKey,
		logger:  log.With(slog.String("component", "device_service")),
	}, nil
}

func (s *deviceServiceImpl) Pair(ctx context.Context, userID uuid.UUID, req PairRequest) (*PairResult, error) {
	deviceID := strings.TrimSpace(req.DeviceID)
	if deviceID == "" {
		return nil, domain.ErrDeviceIDEmpty
	}

	existing, err := s.devices.GetByDeviceID(ctx, deviceID)
	switch {
	case err == nil && !existing.IsOwnedBy(userID):
		return nil, ErrNotOwned
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return nil, wrapError(deviceServiceName, "pair", err)
	}

	key, hash, err := s.keyGen()
	if err != nil {
		return nil, wrapError(deviceServiceName, "pair", err)
	}
	device, err := domain.NewDevice(userID, deviceID, hash)
	if err != nil {
		return nil, err
	}
	if err := s.devices.Upsert(ctx, device); err != nil {
		return nil, wrapError(deviceServiceName, "pair", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("device paired",
		slog.String("device_id", deviceID),
		slog.String("user_id", userID.String()),
		slog.Bool("rekeyed", existing != nil))

	return &PairResult{
		DeviceID:     deviceID,
		APIKey:       key,
		WifiSSID:     req.WifiSSID,
		WifiPassword: req.WifiPassword,
	}, nil
}

func (s *deviceServiceImpl) Reset(ctx context.Context, userID uuid.UUID, deviceID string) error {
	device, err := s.devices.GetByDeviceID(ctx, strings.TrimSpace(deviceID))
	if err != nil {
		return wrapError(deviceServiceName, "reset", err)
	}
	if !device.IsOwnedBy(userID) {
		return ErrNotOwned
	}
	if err := s.devices.Delete(ctx, device.DeviceID); err != nil {
		return wrapError(deviceServiceName, "reset", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("device reset", slog.String("device_id", device.DeviceID))
	return nil
}
