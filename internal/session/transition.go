package session

import (
	"math"
	"time"

	"quizdeck/internal/models"
)

// Transition is one variant of the session transition union. The interface is
// sealed so Apply can enumerate every case.
type Transition interface {
	isTransition()
}

// Start begins a brand-new session over the given questions. Starting while a
// session is already active discards the in-progress state by design; there
// is no separate abort transition.
type Start struct {
	Questions []models.Question
	At        time.Time
}

// SelectAnswer records the answer for the current question. Ignored when the
// question was already answered, which absorbs duplicate taps.
type SelectAnswer struct {
	Answer string
}

// Advance moves the cursor to the next question. On the last question it is
// ignored; the caller finishes instead.
type Advance struct{}

// Finish completes the session and produces the immutable result. The id and
// timestamp are stamped by the caller so the reducer stays deterministic.
type Finish struct {
	ResultID string
	At       time.Time
}

// Reset returns to Idle. A soft reset keeps the quiz configuration for a
// retry-similar-quiz flow; a full reset clears it too.
type Reset struct {
	Full bool
}

// SetError places the machine in the errored substate of Idle.
type SetError struct {
	Message string
}

// ClearError removes a previously set error.
type ClearError struct{}

// SetCategory selects the quiz category; nil means "any category".
type SetCategory struct {
	Category *models.Category
}

// SetDifficulty selects the quiz difficulty; empty means "any difficulty".
type SetDifficulty struct {
	Difficulty string
}

// SetQuestionCount selects how many questions the next session uses.
type SetQuestionCount struct {
	Count int
}

func (Start) isTransition()            {}
func (SelectAnswer) isTransition()     {}
func (Advance) isTransition()          {}
func (Finish) isTransition()           {}
func (Reset) isTransition()            {}
func (SetError) isTransition()         {}
func (ClearError) isTransition()       {}
func (SetCategory) isTransition()      {}
func (SetDifficulty) isTransition()    {}
func (SetQuestionCount) isTransition() {}

// Apply is the pure reducer over session state. Invalid transitions return
// the state unchanged; they are expected races from rapid UI interaction,
// not errors.
func Apply(s State, t Transition) State {
	switch t := t.(type) {
	case Start:
		if len(t.Questions) == 0 {
			return s
		}
		out := s.clone()
		out.Phase = PhaseActive
		out.Questions = append([]models.Question(nil), t.Questions...)
		out.CurrentIndex = 0
		out.Answers = nil
		out.Score = 0
		out.SelectedAnswer = nil
		out.HasAnswered = false
		at := t.At
		out.StartedAt = &at
		out.Err = ""
		out.LastResult = nil
		return out

	case SelectAnswer:
		if s.Phase != PhaseActive || s.HasAnswered {
			return s
		}
		q := s.CurrentQuestion()
		if q == nil {
			return s
		}
		out := s.clone()
		isCorrect := t.Answer == q.CorrectAnswer
		answer := t.Answer
		out.SelectedAnswer = &answer
		out.HasAnswered = true
		if isCorrect {
			out.Score++
		}
		out.Answers = append(out.Answers, models.AnswerRecord{
			Question:       q.Text,
			SelectedAnswer: t.Answer,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      isCorrect,
		})
		return out

	case Advance:
		if s.Phase != PhaseActive || !s.HasAnswered || s.IsLastQuestion() {
			return s
		}
		out := s.clone()
		out.CurrentIndex++
		out.SelectedAnswer = nil
		out.HasAnswered = false
		return out

	case Finish:
		if s.Phase != PhaseActive || len(s.Questions) == 0 || len(s.Answers) != len(s.Questions) {
			return s
		}
		out := s.clone()
		total := len(out.Questions)
		category := "General"
		if out.Category != nil {
			category = out.Category.Name
		}
		difficulty := out.Difficulty
		if difficulty == "" {
			difficulty = "mixed"
		}
		out.LastResult = &models.QuizResult{
			ID:             t.ResultID,
			Category:       category,
			Difficulty:     difficulty,
			Score:          out.Score,
			TotalQuestions: total,
			Percentage:     percentage(out.Score, total),
			Timestamp:      t.At,
			Answers:        append([]models.AnswerRecord(nil), out.Answers...),
		}
		out.Phase = PhaseFinished
		return out

	case Reset:
		out := NewState()
		if !t.Full {
			out.Category = s.Category
			out.Difficulty = s.Difficulty
			out.QuestionCount = s.QuestionCount
		}
		return out

	case SetError:
		if s.Phase == PhaseActive || s.Phase == PhaseFinished {
			return s
		}
		out := s.clone()
		out.Err = t.Message
		return out

	case ClearError:
		out := s.clone()
		out.Err = ""
		return out

	case SetCategory:
		out := s.clone()
		if t.Category == nil {
			out.Category = nil
		} else {
			c := *t.Category
			out.Category = &c
		}
		return out

	case SetDifficulty:
		out := s.clone()
		out.Difficulty = t.Difficulty
		return out

	case SetQuestionCount:
		if !models.ValidQuestionCount(t.Count) {
			return s
		}
		out := s.clone()
		out.QuestionCount = t.Count
		return out
	}
	return s
}

// percentage rounds score/total to the nearest whole percent.
func percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
