package worker

import (
	"context"

	"quizdeck/internal/logger"
	"quizdeck/internal/models"
	"quizdeck/internal/repository"
)

// SaveResultJob persists one completed quiz result in the background.
type SaveResultJob struct {
	Repo   repository.ResultRepository
	Result models.QuizResult
}

func (j *SaveResultJob) Name() string { return "save_result" }

func (j *SaveResultJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("quiz_id", j.Result.ID)

	id, err := j.Repo.Save(ctx, j.Result)
	if err != nil {
		log.Error("failed to persist result: %v", err)
		return err
	}
	log.Info("result persisted: record_id=%d, score=%d/%d", id, j.Result.Score, j.Result.TotalQuestions)
	return nil
}
