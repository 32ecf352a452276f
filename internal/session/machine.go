package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"quizdeck/internal/errors"
	"quizdeck/internal/logger"
	"quizdeck/internal/models"
)

// Machine owns the single active quiz session. Every transition is a
// synchronous, atomic state update; the mutex only guards against the HTTP
// boundary delivering transitions from concurrent connections.
type Machine struct {
	mu    sync.Mutex
	state State
	now   func() time.Time
	newID func() string
	log   *logger.Logger
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithClock sets the time source. Intended for tests.
func WithClock(now func() time.Time) MachineOption {
	return func(m *Machine) {
		m.now = now
	}
}

// WithIDGenerator sets the result id generator. Intended for tests.
func WithIDGenerator(newID func() string) MachineOption {
	return func(m *Machine) {
		m.newID = newID
	}
}

// NewMachine creates an Idle machine.
func NewMachine(opts ...MachineOption) *Machine {
	m := &Machine{
		state: NewState(),
		now:   time.Now,
		newID: func() string { return "quiz-result-" + uuid.NewString() },
		log:   logger.Default().WithPrefix("session"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns an independent copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Start begins a new session over the given questions, discarding any session
// already in progress.
func (m *Machine) Start(qs []models.Question) error {
	if len(qs) == 0 {
		return errors.NewValidationError("questions", "cannot start a session without questions")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Phase == PhaseActive {
		m.log.Warn("starting a new session over an active one, discarding %d answered questions", len(m.state.Answers))
	}
	m.state = Apply(m.state, Start{Questions: qs, At: m.now()})
	m.log.Info("session started with %d questions", len(qs))
	return nil
}

// SelectAnswer records the answer for the current question. Duplicate calls
// for the same question are no-ops.
func (m *Machine) SelectAnswer(answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.state.Answers)
	m.state = Apply(m.state, SelectAnswer{Answer: answer})
	if len(m.state.Answers) == before {
		m.log.Debug("select_answer ignored: phase=%s, has_answered=%v", m.state.Phase, m.state.HasAnswered)
		return
	}
	rec := m.state.Answers[len(m.state.Answers)-1]
	m.log.Debug("answer recorded: index=%d, correct=%v, score=%d", m.state.CurrentIndex, rec.IsCorrect, m.state.Score)
}

// Advance moves to the next question once the current one has been answered.
func (m *Machine) Advance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Apply(m.state, Advance{})
}

// Finish completes the session and returns the immutable result. It fails
// when any question is still unanswered.
func (m *Machine) Finish() (*models.QuizResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := Apply(m.state, Finish{ResultID: m.newID(), At: m.now()})
	if next.Phase != PhaseFinished || next.LastResult == nil {
		return nil, errors.NewNotCompletedError()
	}
	m.state = next

	result := *next.LastResult
	result.Answers = append([]models.AnswerRecord(nil), next.LastResult.Answers...)
	m.log.Info("session finished: score=%d/%d, percentage=%d", result.Score, result.TotalQuestions, result.Percentage)
	return &result, nil
}

// Reset returns to Idle. Soft resets keep category, difficulty and question
// count; full resets clear them too.
func (m *Machine) Reset(full bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Apply(m.state, Reset{Full: full})
	m.log.Debug("session reset: full=%v", full)
}

// SetError records a fetch-time error for the presentation layer to render.
func (m *Machine) SetError(message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Apply(m.state, SetError{Message: message})
}

// ClearError removes a previously recorded error.
func (m *Machine) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Apply(m.state, ClearError{})
}

// SetCategory selects the quiz category; nil means "any category".
func (m *Machine) SetCategory(c *models.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Apply(m.state, SetCategory{Category: c})
}

// SetDifficulty selects the quiz difficulty; empty means "any difficulty".
func (m *Machine) SetDifficulty(difficulty string) error {
	switch difficulty {
	case "", "easy", "medium", "hard":
	default:
		return errors.NewValidationError("difficulty", "must be 'easy', 'medium', 'hard' or empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Apply(m.state, SetDifficulty{Difficulty: difficulty})
	return nil
}

// SetQuestionCount selects the question count for the next session.
func (m *Machine) SetQuestionCount(count int) error {
	if !models.ValidQuestionCount(count) {
		return errors.NewValidationError("question_count", "must be one of 5, 10, 15 or 20")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Apply(m.state, SetQuestionCount{Count: count})
	return nil
}
