package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

// MockDeviceStore is a mock of store.DeviceStore.
type MockDeviceStore struct {
	mock.Mock
}

var _ store.DeviceStore = (*MockDeviceStore)(nil)

func (m *MockDeviceStore) Upsert(ctx context.Context, device *domain.Device) error {
	args := m.Called(ctx, device)
	return args.Error(0)
}

func (m *MockDeviceStore) GetByDeviceID(ctx context.Context, deviceID string) (*domain.Device, error) {
	args := m.Called(ctx, deviceID)
	if device, ok := args.Get(0).(*domain.Device); ok {
		return device, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeviceStore) GetByKeyHash(ctx context.Context, keyHash string) (*domain.Device, error) {
	args := m.Called(ctx, keyHash)
	if device, ok := args.Get(0).(*domain.Device); ok {
		return device, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeviceStore) Delete(ctx context.Context, deviceID string) error {
	args := m.Called(ctx, deviceID)
	return args.Error(0)
}
