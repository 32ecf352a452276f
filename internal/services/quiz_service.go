package services

import (
	"context"
	"sync"

	"quizdeck/internal/errors"
	"quizdeck/internal/logger"
	"quizdeck/internal/models"
	"quizdeck/internal/questions"
	"quizdeck/internal/repository"
	"quizdeck/internal/session"
	"quizdeck/internal/worker"
)

// QuestionSource supplies normalized questions and the selectable category
// list. Satisfied by questions.Source.
type QuestionSource interface {
	Fetch(ctx context.Context, amount int, category *int, difficulty string) ([]models.Question, bool)
	Categories(ctx context.Context) []models.Category
}

var _ QuestionSource = (*questions.Source)(nil)

// QuizService handles quiz lifecycle business logic
type QuizService interface {
	StartQuiz(ctx context.Context) (session.State, error)
	SelectAnswer(ctx context.Context, answer string) session.State
	Advance(ctx context.Context) session.State
	FinishQuiz(ctx context.Context) (*models.QuizResult, error)
	ResetQuiz(ctx context.Context, full bool) session.State
	State(ctx context.Context) session.State

	SetCategory(ctx context.Context, category *models.Category) session.State
	SetDifficulty(ctx context.Context, difficulty string) (session.State, error)
	SetQuestionCount(ctx context.Context, count int) (session.State, error)
	Categories(ctx context.Context) []models.Category

	Stats(ctx context.Context) (*models.ResultStats, error)
	RecentResults(ctx context.Context, limit int) ([]models.ResultRecord, error)
	ResultsByCategory(ctx context.Context, category string) ([]models.ResultRecord, error)
	DeleteResult(ctx context.Context, id int64) error
	ClearResults(ctx context.Context) (int64, error)
}

type quizService struct {
	machine    *session.Machine
	source     QuestionSource
	resultRepo repository.ResultRepository
	pool       *worker.Pool

	// saveMu and savedResults implement the at-most-once persistence guard.
	// Finishing a session produces exactly one result id; a result id that has
	// already been handed to the worker pool is never submitted again.
	saveMu       sync.Mutex
	savedResults map[string]bool
}

// NewQuizService creates a new QuizService
func NewQuizService(machine *session.Machine, source QuestionSource, resultRepo repository.ResultRepository, pool *worker.Pool) QuizService {
	return &quizService{
		machine:      machine,
		source:       source,
		resultRepo:   resultRepo,
		pool:         pool,
		savedResults: make(map[string]bool),
	}
}

func (s *quizService) StartQuiz(ctx context.Context) (session.State, error) {
	log := logger.FromContext(ctx)

	current := s.machine.Snapshot()
	amount := current.QuestionCount
	if amount <= 0 {
		amount = session.DefaultQuestionCount
	}

	var categoryID *int
	categoryName := "any"
	if current.Category != nil {
		id := current.Category.ID
		categoryID = &id
		categoryName = current.Category.Name
	}
	log.Debug("starting quiz: amount=%d, category=%s, difficulty=%q", amount, categoryName, current.Difficulty)

	qs, usedFallback := s.source.Fetch(ctx, amount, categoryID, current.Difficulty)
	if usedFallback {
		log.Warn("serving %d fallback questions", len(qs))
	}
	if len(qs) == 0 {
		err := errors.NewNoQuestionsError()
		s.machine.SetError(err.Message)
		return s.machine.Snapshot(), err
	}

	if err := s.machine.Start(qs); err != nil {
		log.Error("failed to start session: %v", err)
		return s.machine.Snapshot(), err
	}
	return s.machine.Snapshot(), nil
}

func (s *quizService) SelectAnswer(ctx context.Context, answer string) session.State {
	s.machine.SelectAnswer(answer)
	return s.machine.Snapshot()
}

func (s *quizService) Advance(ctx context.Context) session.State {
	s.machine.Advance()
	return s.machine.Snapshot()
}

func (s *quizService) FinishQuiz(ctx context.Context) (*models.QuizResult, error) {
	log := logger.FromContext(ctx)

	result, err := s.machine.Finish()
	if err != nil {
		log.Debug("finish rejected: %v", err)
		return nil, err
	}

	s.persistOnce(ctx, *result)
	return result, nil
}

// persistOnce hands the result to the worker pool at most one time, keyed by
// the result id the state machine assigned when the session finished.
func (s *quizService) persistOnce(ctx context.Context, result models.QuizResult) {
	log := logger.FromContext(ctx)

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if s.savedResults[result.ID] {
		log.Debug("result %s already queued for persistence, skipping", result.ID)
		return
	}
	s.savedResults[result.ID] = true

	job := &worker.SaveResultJob{Repo: s.resultRepo, Result: result}
	if !s.pool.TrySubmit(job) {
		// Queue pressure should not lose a finished quiz.
		log.Warn("persistence queue full, saving result %s inline", result.ID)
		if _, err := s.resultRepo.Save(ctx, result); err != nil {
			log.Error("inline save failed for result %s: %v", result.ID, err)
		}
	}
}

func (s *quizService) ResetQuiz(ctx context.Context, full bool) session.State {
	s.machine.Reset(full)
	return s.machine.Snapshot()
}

func (s *quizService) State(ctx context.Context) session.State {
	return s.machine.Snapshot()
}

func (s *quizService) SetCategory(ctx context.Context, category *models.Category) session.State {
	s.machine.SetCategory(category)
	return s.machine.Snapshot()
}

func (s *quizService) SetDifficulty(ctx context.Context, difficulty string) (session.State, error) {
	if err := s.machine.SetDifficulty(difficulty); err != nil {
		return s.machine.Snapshot(), err
	}
	return s.machine.Snapshot(), nil
}

func (s *quizService) SetQuestionCount(ctx context.Context, count int) (session.State, error) {
	if err := s.machine.SetQuestionCount(count); err != nil {
		return s.machine.Snapshot(), err
	}
	return s.machine.Snapshot(), nil
}

func (s *quizService) Categories(ctx context.Context) []models.Category {
	return s.source.Categories(ctx)
}

func (s *quizService) Stats(ctx context.Context) (*models.ResultStats, error) {
	log := logger.FromContext(ctx)

	stats, err := s.resultRepo.Stats(ctx)
	if err != nil {
		log.Error("failed to get result stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *quizService) RecentResults(ctx context.Context, limit int) ([]models.ResultRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting recent results: limit=%d", limit)

	records, err := s.resultRepo.Recent(ctx, limit)
	if err != nil {
		log.Error("failed to get recent results: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}

func (s *quizService) ResultsByCategory(ctx context.Context, category string) ([]models.ResultRecord, error) {
	log := logger.FromContext(ctx)

	if category == "" {
		return nil, errors.NewValidationError("category", "cannot be empty")
	}

	records, err := s.resultRepo.FindByCategory(ctx, category)
	if err != nil {
		log.Error("failed to get results by category: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}

func (s *quizService) DeleteResult(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	deleted, err := s.resultRepo.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete result %d: %v", id, err)
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("result", id)
	}
	return nil
}

func (s *quizService) ClearResults(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	affected, err := s.resultRepo.ClearAll(ctx)
	if err != nil {
		log.Error("failed to clear results: %v", err)
		return 0, errors.NewInternalError(err)
	}
	log.Info("cleared %d results", affected)
	return affected, nil
}
