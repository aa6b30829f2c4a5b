package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lexicard/lexicard-api/internal/generation"
)

// MockGenerator is a mock of generation.Generator.
type MockGenerator struct {
	mock.Mock
}

var _ generation.Generator = (*MockGenerator)(nil)

func (m *MockGenerator) GenerateGroup(ctx context.Context, excludedTopics []string) (*generation.Batch, error) {
	args := m.Called(ctx, excludedTopics)
	if batch, ok := args.Get(0).(*generation.Batch); ok {
		return batch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGenerator) GenerateWords(
	ctx context.Context,
	topic string,
	excludedWords []string,
) (*generation.Batch, error) {
	args := m.Called(ctx, topic, excludedWords)
	if batch, ok := args.Get(0).(*generation.Batch); ok {
		return batch, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockPronouncer is a mock of service.Pronouncer.
type MockPronouncer struct {
	mock.Mock
}

func (m *MockPronouncer) Lookup(ctx context.Context, term string) (string, error) {
	args := m.Called(ctx, term)
	return args.String(0), args.Error(1)
}
