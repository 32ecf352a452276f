package session

import (
	"time"

	"quizdeck/internal/models"
)

// Phase is the lifecycle phase of a quiz session.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

// DefaultQuestionCount is used until the caller selects another count.
const DefaultQuestionCount = 10

// State is the full session state. It is a value: Apply never mutates its
// input, so snapshots taken at different points stay independent.
type State struct {
	Phase        Phase                 `json:"phase"`
	Questions    []models.Question     `json:"questions"`
	CurrentIndex int                   `json:"current_index"`
	Answers      []models.AnswerRecord `json:"answers"`
	Score        int                   `json:"score"`

	// Per-question transient state, reset on every advance.
	SelectedAnswer *string `json:"selected_answer"`
	HasAnswered    bool    `json:"has_answered"`

	StartedAt *time.Time `json:"started_at"`
	Err       string     `json:"error,omitempty"` // Errored substate of Idle

	// Quiz configuration; survives a soft reset.
	Category      *models.Category `json:"category"`
	Difficulty    string           `json:"difficulty"` // empty means "any"
	QuestionCount int              `json:"question_count"`

	LastResult *models.QuizResult `json:"last_result"`
}

// NewState returns the initial Idle state.
func NewState() State {
	return State{
		Phase:         PhaseIdle,
		QuestionCount: DefaultQuestionCount,
	}
}

// CurrentQuestion returns the question at the cursor, or nil outside an
// active session.
func (s State) CurrentQuestion() *models.Question {
	if s.Phase != PhaseActive || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	q := s.Questions[s.CurrentIndex]
	return &q
}

// IsLastQuestion reports whether the cursor sits on the final question.
func (s State) IsLastQuestion() bool {
	return len(s.Questions) > 0 && s.CurrentIndex == len(s.Questions)-1
}

// clone returns a copy with its own slices, so the caller can hold it across
// later transitions.
func (s State) clone() State {
	out := s
	if s.Questions != nil {
		out.Questions = append([]models.Question(nil), s.Questions...)
	}
	if s.Answers != nil {
		out.Answers = append([]models.AnswerRecord(nil), s.Answers...)
	}
	if s.SelectedAnswer != nil {
		v := *s.SelectedAnswer
		out.SelectedAnswer = &v
	}
	if s.StartedAt != nil {
		t := *s.StartedAt
		out.StartedAt = &t
	}
	if s.Category != nil {
		c := *s.Category
		out.Category = &c
	}
	if s.LastResult != nil {
		r := *s.LastResult
		r.Answers = append([]models.AnswerRecord(nil), s.LastResult.Answers...)
		out.LastResult = &r
	}
	return out
}
