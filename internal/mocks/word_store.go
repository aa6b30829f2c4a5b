package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/store"
)

// MockWordStore is a mock of store.WordStore.
type MockWordStore struct {
	mock.Mock
}

var _ store.WordStore = (*MockWordStore)(nil)

func (m *MockWordStore) Create(ctx context.Context, word *domain.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	args := m.Called(ctx, id)
	if word, ok := args.Get(0).(*domain.Word); ok {
		return word, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWordStore) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Word, error) {
	args := m.Called(ctx, groupID)
	if words, ok := args.Get(0).([]*domain.Word); ok {
		return words, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWordStore) Update(ctx context.Context, word *domain.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWordStore) DeleteByGroup(ctx context.Context, groupID uuid.UUID) (int64, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWordStore) FindByStatus(ctx context.Context, status domain.WordStatus) ([]*domain.Word, error) {
	args := m.Called(ctx, status)
	if words, ok := args.Get(0).([]*domain.Word); ok {
		return words, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWordStore) ReactivateBatch(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, ids, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWordStore) Now(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

// WithTx returns the mock itself.
func (m *MockWordStore) WithTx(*sql.Tx) store.WordStore {
	return m
}
