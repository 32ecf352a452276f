package repository

import (
	"context"

	"quizdeck/internal/models"
)

// ResultRepository is the durable record of completed quiz attempts. Records
// are append-only: deletable individually or in bulk, never updated.
//
// The store does not deduplicate by content; two genuinely identical attempts
// are two records. At-most-once persistence per completed session is the
// caller's responsibility.
type ResultRepository interface {
	Save(ctx context.Context, result models.QuizResult) (int64, error)
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]models.ResultRecord, error)
	AverageScore(ctx context.Context) (int, error)
	PassedCount(ctx context.Context) (int, error)
	Stats(ctx context.Context) (*models.ResultStats, error)
	FindByCategory(ctx context.Context, category string) ([]models.ResultRecord, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ClearAll(ctx context.Context) (int64, error)
}
