package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lexicard/lexicard-api/internal/domain"
	"github.com/lexicard/lexicard-api/internal/service"
)

// MockWordService is a mock of service.WordService.
type MockWordService struct {
	mock.Mock
}

var _ service.WordService = (*MockWordService)(nil)

func (m *MockWordService) GetWord(ctx context.Context, userID, wordID uuid.UUID) (*domain.Word, error) {
	args := m.Called(ctx, userID, wordID)
	return wordResult(args)
}

func (m *MockWordService) ListWords(ctx context.Context, userID, groupID uuid.UUID) ([]*domain.Word, error) {
	args := m.Called(ctx, userID, groupID)
	return wordsResult(args)
}

func (m *MockWordService) AddWord(
	ctx context.Context,
	userID, groupID uuid.UUID,
	input service.NewWordInput,
) (*domain.Word, error) {
	args := m.Called(ctx, userID, groupID, input)
	return wordResult(args)
}

func (m *MockWordService) AddWords(
	ctx context.Context,
	userID, groupID uuid.UUID,
	inputs []service.NewWordInput,
) ([]*domain.Word, error) {
	args := m.Called(ctx, userID, groupID, inputs)
	return wordsResult(args)
}

func (m *MockWordService) UpdateWord(
	ctx context.Context,
	userID, wordID uuid.UUID,
	update domain.WordUpdate,
) (*domain.Word, error) {
	args := m.Called(ctx, userID, wordID, update)
	return wordResult(args)
}

func (m *MockWordService) DeleteWord(ctx context.Context, userID, wordID uuid.UUID) error {
	args := m.Called(ctx, userID, wordID)
	return args.Error(0)
}

func (m *MockWordService) SetTimeout(
	ctx context.Context,
	userID, wordID uuid.UUID,
	minutes int,
) (*domain.Word, error) {
	args := m.Called(ctx, userID, wordID, minutes)
	return wordResult(args)
}

// MockWordGroupService is a mock of service.WordGroupService.
type MockWordGroupService struct {
	mock.Mock
}

var _ service.WordGroupService = (*MockWordGroupService)(nil)

func (m *MockWordGroupService) CreateGroup(ctx context.Context, userID uuid.UUID, name string) (*domain.WordGroup, error) {
	args := m.Called(ctx, userID, name)
	return groupResult(args)
}

func (m *MockWordGroupService) ListGroups(ctx context.Context, userID uuid.UUID) ([]*domain.WordGroup, error) {
	args := m.Called(ctx, userID)
	if groups, ok := args.Get(0).([]*domain.WordGroup); ok {
		return groups, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWordGroupService) GetGroup(ctx context.Context, userID, groupID uuid.UUID) (*domain.WordGroup, error) {
	args := m.Called(ctx, userID, groupID)
	return groupResult(args)
}

func (m *MockWordGroupService) UpdateGroup(
	ctx context.Context,
	userID, groupID uuid.UUID,
	update domain.WordGroupUpdate,
) (*domain.WordGroup, error) {
	args := m.Called(ctx, userID, groupID, update)
	return groupResult(args)
}

func (m *MockWordGroupService) DeleteGroup(ctx context.Context, userID, groupID uuid.UUID) error {
	args := m.Called(ctx, userID, groupID)
	return args.Error(0)
}

func (m *MockWordGroupService) SetCurrentWord(
	ctx context.Context,
	userID, groupID, wordID uuid.UUID,
) (*domain.WordGroup, error) {
	args := m.Called(ctx, userID, groupID, wordID)
	return groupResult(args)
}

func (m *MockWordGroupService) ListDecks(ctx context.Context, userID uuid.UUID) ([]service.Deck, error) {
	args := m.Called(ctx, userID)
	if decks, ok := args.Get(0).([]service.Deck); ok {
		return decks, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockGenerationService is a mock of service.GenerationService.
type MockGenerationService struct {
	mock.Mock
}

var _ service.GenerationService = (*MockGenerationService)(nil)

func (m *MockGenerationService) GenerateGroup(ctx context.Context, userID uuid.UUID) (*service.GeneratedGroup, error) {
	args := m.Called(ctx, userID)
	if generated, ok := args.Get(0).(*service.GeneratedGroup); ok {
		return generated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGenerationService) GenerateWords(ctx context.Context, userID, groupID uuid.UUID) ([]*domain.Word, error) {
	args := m.Called(ctx, userID, groupID)
	return wordsResult(args)
}

// MockDeviceService is a mock of service.DeviceService.
type MockDeviceService struct {
	mock.Mock
}

var _ service.DeviceService = (*MockDeviceService)(nil)

func (m *MockDeviceService) Pair(
	ctx context.Context,
	userID uuid.UUID,
	req service.PairRequest,
) (*service.PairResult, error) {
	args := m.Called(ctx, userID, req)
	if result, ok := args.Get(0).(*service.PairResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDeviceService) Reset(ctx context.Context, userID uuid.UUID, deviceID string) error {
	args := m.Called(ctx, userID, deviceID)
	return args.Error(0)
}

func wordResult(args mock.Arguments) (*domain.Word, error) {
	if word, ok := args.Get(0).(*domain.Word); ok {
		return word, args.Error(1)
	}
	return nil, args.Error(1)
}

func wordsResult(args mock.Arguments) ([]*domain.Word, error) {
	if words, ok := args.Get(0).([]*domain.Word); ok {
		return words, args.Error(1)
	}
	return nil, args.Error(1)
}

func groupResult(args mock.Arguments) (*domain.WordGroup, error) {
	if group, ok := args.Get(0).(*domain.WordGroup); ok {
		return group, args.Error(1)
	}
	return nil, args.Error(1)
}
