package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

// MockWordGroupStore is a mock of store.WordGroupStore.
type MockWordGroupStore struct {
	mock.Mock
}

var _ store.WordGroupStore = (*MockWordGroupStore)(nil)

func (m *MockWordGroupStore) Create(ctx context.Context, group *domain.WordGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockWordGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.WordGroup, error) {
	args := m.Called(ctx, id)
	if group, ok := args.Get(0).(*domain.WordGroup); ok {
		return group, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWordGroupStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.WordGroup, error) {
	args := m.Called(ctx, userID)
	if groups, ok := args.Get(0).([]*domain.WordGroup); ok {
		return groups, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWordGroupStore) Update(ctx context.Context, group *domain.WordGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

func (m *MockWordGroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordGroupStore) AdjustCounters(ctx context.Context, id uuid.UUID, totalDelta, learnedDelta int) error {
	args := m.Called(ctx, id, totalDelta, learnedDelta)
	return args.Error(0)
}

func (m *MockWordGroupStore) SetCurrentWord(ctx context.Context, id uuid.UUID, wordID *uuid.UUID) error {
	args := m.Called(ctx, id, wordID)
	return args.Error(0)
}

func (m *MockWordGroupStore) ClearCurrentWordIf(ctx context.Context, id uuid.UUID, wordID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, wordID)
	return args.Bool(0), args.Error(1)
}

// WithTx returns the mock itself.
func (m *MockWordGroupStore) WithTx(*sql.Tx) store.WordGroupStore {
	return m
}
