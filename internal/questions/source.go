package questions

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quizdeck/internal/logger"
	"quizdeck/internal/models"
	"quizdeck/internal/opentdb"
)

// Source produces normalized, shuffled questions for a quiz session. Remote
// failures are recovered locally by sampling the bundled fallback bank; Fetch
// never fails past that point.
type Source struct {
	client opentdb.ClientInterface
	log    *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Source.
type Option func(*Source)

// WithRand sets the random source used for shuffling. Intended for tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Source) {
		s.rng = rng
	}
}

// NewSource creates a question source backed by the given trivia client.
func NewSource(client opentdb.ClientInterface, opts ...Option) *Source {
	s := &Source{
		client: client,
		log:    logger.Default().WithPrefix("questions"),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns amount questions for the given parameters. The returned bool
// reports whether fallback content was served instead of remote questions;
// it is diagnostic only and the caller may ignore it.
func (s *Source) Fetch(ctx context.Context, amount int, category *int, difficulty string) ([]models.Question, bool) {
	log := logger.FromContext(ctx).WithPrefix("questions")

	raw, err := s.client.FetchQuestions(ctx, amount, category, difficulty)
	if err != nil {
		log.Warn("remote fetch failed, serving fallback questions: %v", err)
		return s.fallback(amount), true
	}

	processed := s.process(raw)
	if len(processed) == 0 {
		log.Warn("remote fetch produced no usable questions, serving fallback")
		return s.fallback(amount), true
	}

	log.Info("prepared %d questions", len(processed))
	return processed, false
}

// Categories returns the selectable category list, falling back to a fixed
// built-in list when the remote service is unavailable.
func (s *Source) Categories(ctx context.Context) []models.Category {
	log := logger.FromContext(ctx).WithPrefix("questions")

	cats, err := s.client.FetchCategories(ctx)
	if err != nil || len(cats) == 0 {
		log.Warn("category fetch failed, serving built-in list: %v", err)
		out := make([]models.Category, len(builtinCategories))
		copy(out, builtinCategories)
		return out
	}
	return cats
}

// process normalizes raw questions: entity decoding on every text field,
// option order fixed by one unbiased shuffle, fresh session-unique ids.
func (s *Source) process(raw []opentdb.RawQuestion) []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Question, 0, len(raw))
	for i, rq := range raw {
		correct := DecodeEntities(rq.CorrectAnswer)
		incorrect := make([]string, 0, len(rq.IncorrectAnswers))
		for _, a := range rq.IncorrectAnswers {
			incorrect = append(incorrect, DecodeEntities(a))
		}
		if correct == "" || len(incorrect) == 0 {
			continue
		}

		out = append(out, models.Question{
			ID:            fmt.Sprintf("question-%d-%s", i, uuid.NewString()),
			Text:          DecodeEntities(rq.Question),
			Options:       shuffleOptions(s.rng, correct, incorrect),
			CorrectAnswer: correct,
			Category:      DecodeEntities(rq.Category),
			Difficulty:    rq.Difficulty,
		})
	}
	return out
}

func (s *Source) fallback(amount int) []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fallbackQuestions(s.rng, amount)
}
