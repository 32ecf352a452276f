package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"quizdeck/internal/models"
	"quizdeck/internal/opentdb"
)

// MockTriviaClient is a mock implementation of opentdb.ClientInterface
type MockTriviaClient struct {
	mock.Mock
}

func (m *MockTriviaClient) FetchQuestions(ctx context.Context, amount int, category *int, difficulty string) ([]opentdb.RawQuestion, error) {
	args := m.Called(ctx, amount, category, difficulty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]opentdb.RawQuestion), args.Error(1)
}

func (m *MockTriviaClient) FetchCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}
