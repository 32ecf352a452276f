package opentdb

import (
	"context"

	"quizdeck/internal/models"
)

// ClientInterface defines the interface for Open Trivia DB operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	FetchQuestions(ctx context.Context, amount int, category *int, difficulty string) ([]RawQuestion, error)
	FetchCategories(ctx context.Context) ([]models.Category, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
