package session_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/internal/models"
	"quizdeck/internal/session"
)

func makeQuestions(n int) []models.Question {
	qs := make([]models.Question, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, models.Question{
			ID:            fmt.Sprintf("q-%d", i),
			Text:          fmt.Sprintf("question %d", i),
			Options:       []string{"right", "wrong-a", "wrong-b", "wrong-c"},
			CorrectAnswer: "right",
			Category:      "General Knowledge",
			Difficulty:    "easy",
		})
	}
	return qs
}

func startedState(n int) session.State {
	return session.Apply(session.NewState(), session.Start{Questions: makeQuestions(n), At: time.Now()})
}

func TestApply_StartInitializes(t *testing.T) {
	s := startedState(3)

	assert.Equal(t, session.PhaseActive, s.Phase)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Len(t, s.Questions, 3)
	assert.Empty(t, s.Answers)
	assert.Zero(t, s.Score)
	assert.False(t, s.HasAnswered)
	assert.Nil(t, s.SelectedAnswer)
	assert.NotNil(t, s.StartedAt)
	assert.Nil(t, s.LastResult)
}

func TestApply_StartWithNoQuestionsIsNoop(t *testing.T) {
	s := session.NewState()
	next := session.Apply(s, session.Start{At: time.Now()})
	assert.Equal(t, session.PhaseIdle, next.Phase)
}

func TestApply_StartWhileActiveDiscardsProgress(t *testing.T) {
	s := startedState(3)
	s = session.Apply(s, session.SelectAnswer{Answer: "right"})
	require.Equal(t, 1, s.Score)

	s = session.Apply(s, session.Start{Questions: makeQuestions(5), At: time.Now()})

	assert.Equal(t, session.PhaseActive, s.Phase)
	assert.Len(t, s.Questions, 5)
	assert.Zero(t, s.Score)
	assert.Empty(t, s.Answers)
}

func TestApply_StartClearsError(t *testing.T) {
	s := session.Apply(session.NewState(), session.SetError{Message: "network down"})
	require.Equal(t, "network down", s.Err)

	s = session.Apply(s, session.Start{Questions: makeQuestions(2), At: time.Now()})
	assert.Empty(t, s.Err)
}

func TestApply_SelectAnswerRecordsOnce(t *testing.T) {
	s := startedState(2)

	s = session.Apply(s, session.SelectAnswer{Answer: "right"})
	require.Len(t, s.Answers, 1)
	require.Equal(t, 1, s.Score)
	require.True(t, s.HasAnswered)
	require.NotNil(t, s.SelectedAnswer)
	assert.Equal(t, "right", *s.SelectedAnswer)

	// A second selection, same or different, must not change anything.
	again := session.Apply(s, session.SelectAnswer{Answer: "wrong-a"})
	assert.Equal(t, 1, again.Score)
	assert.Len(t, again.Answers, 1)
	assert.Equal(t, "right", *again.SelectedAnswer)

	again = session.Apply(s, session.SelectAnswer{Answer: "right"})
	assert.Equal(t, 1, again.Score)
	assert.Len(t, again.Answers, 1)
}

func TestApply_SelectAnswerIncorrect(t *testing.T) {
	s := startedState(2)
	s = session.Apply(s, session.SelectAnswer{Answer: "wrong-b"})

	require.Len(t, s.Answers, 1)
	assert.Zero(t, s.Score)
	assert.False(t, s.Answers[0].IsCorrect)
	assert.Equal(t, "wrong-b", s.Answers[0].SelectedAnswer)
	assert.Equal(t, "right", s.Answers[0].CorrectAnswer)
}

func TestApply_AdvanceRequiresAnswer(t *testing.T) {
	s := startedState(3)

	next := session.Apply(s, session.Advance{})
	assert.Equal(t, 0, next.CurrentIndex, "advance before answering is a no-op")

	s = session.Apply(s, session.SelectAnswer{Answer: "right"})
	s = session.Apply(s, session.Advance{})
	assert.Equal(t, 1, s.CurrentIndex)
	assert.False(t, s.HasAnswered)
	assert.Nil(t, s.SelectedAnswer)
}

func TestApply_AdvanceOnLastQuestionIsNoop(t *testing.T) {
	s := startedState(1)
	s = session.Apply(s, session.SelectAnswer{Answer: "right"})

	next := session.Apply(s, session.Advance{})
	assert.Equal(t, 0, next.CurrentIndex)
	assert.True(t, next.HasAnswered)
}

func TestApply_FinishRequiresAllAnswered(t *testing.T) {
	s := startedState(2)
	s = session.Apply(s, session.SelectAnswer{Answer: "right"})

	next := session.Apply(s, session.Finish{ResultID: "r1", At: time.Now()})
	assert.Equal(t, session.PhaseActive, next.Phase)
	assert.Nil(t, next.LastResult)
}

func TestApply_FinishComputesPercentage(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		want    int
	}{
		{"four of five", 5, 4, 80},
		{"one of three rounds down", 3, 1, 33},
		{"two of three rounds up", 3, 2, 67},
		{"none", 5, 0, 0},
		{"all", 5, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startedState(tt.total)
			for i := 0; i < tt.total; i++ {
				answer := "right"
				if i >= tt.correct {
					answer = "wrong-a"
				}
				s = session.Apply(s, session.SelectAnswer{Answer: answer})
				if i < tt.total-1 {
					s = session.Apply(s, session.Advance{})
				}
			}

			at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
			s = session.Apply(s, session.Finish{ResultID: "r1", At: at})

			require.Equal(t, session.PhaseFinished, s.Phase)
			require.NotNil(t, s.LastResult)
			assert.Equal(t, "r1", s.LastResult.ID)
			assert.Equal(t, tt.correct, s.LastResult.Score)
			assert.Equal(t, tt.total, s.LastResult.TotalQuestions)
			assert.Equal(t, tt.want, s.LastResult.Percentage)
			assert.Equal(t, at, s.LastResult.Timestamp)
			assert.Len(t, s.LastResult.Answers, tt.total)
			assert.GreaterOrEqual(t, s.LastResult.Percentage, 0)
			assert.LessOrEqual(t, s.LastResult.Percentage, 100)
		})
	}
}

func TestApply_FinishCopiesAnswers(t *testing.T) {
	s := startedState(1)
	s = session.Apply(s, session.SelectAnswer{Answer: "right"})
	s = session.Apply(s, session.Finish{ResultID: "r1", At: time.Now()})
	require.NotNil(t, s.LastResult)

	// Resetting the session must not disturb the produced result.
	result := s.LastResult
	_ = session.Apply(s, session.Reset{})
	assert.Len(t, result.Answers, 1)
	assert.Equal(t, "right", result.Answers[0].SelectedAnswer)
}

func TestApply_SoftResetKeepsConfig(t *testing.T) {
	s := session.NewState()
	s = session.Apply(s, session.SetCategory{Category: &models.Category{ID: 22, Name: "Geography"}})
	s = session.Apply(s, session.SetDifficulty{Difficulty: "hard"})
	s = session.Apply(s, session.SetQuestionCount{Count: 15})
	s = session.Apply(s, session.Start{Questions: makeQuestions(1), At: time.Now()})
	s = session.Apply(s, session.SelectAnswer{Answer: "right"})
	s = session.Apply(s, session.Finish{ResultID: "r1", At: time.Now()})
	require.NotNil(t, s.LastResult)

	s = session.Apply(s, session.Reset{Full: false})

	assert.Equal(t, session.PhaseIdle, s.Phase)
	require.NotNil(t, s.Category)
	assert.Equal(t, "Geography", s.Category.Name)
	assert.Equal(t, "hard", s.Difficulty)
	assert.Equal(t, 15, s.QuestionCount)
	assert.Empty(t, s.Questions)
	assert.Empty(t, s.Answers)
	assert.Zero(t, s.Score)
	assert.Nil(t, s.LastResult)
}

func TestApply_FullResetClearsConfig(t *testing.T) {
	s := session.NewState()
	s = session.Apply(s, session.SetCategory{Category: &models.Category{ID: 22, Name: "Geography"}})
	s = session.Apply(s, session.SetDifficulty{Difficulty: "hard"})
	s = session.Apply(s, session.SetQuestionCount{Count: 20})

	s = session.Apply(s, session.Reset{Full: true})

	assert.Nil(t, s.Category)
	assert.Empty(t, s.Difficulty)
	assert.Equal(t, session.DefaultQuestionCount, s.QuestionCount)
}

func TestApply_SetErrorOnlyBeforeStart(t *testing.T) {
	s := session.Apply(session.NewState(), session.SetError{Message: "offline"})
	assert.Equal(t, "offline", s.Err)
	assert.Equal(t, session.PhaseIdle, s.Phase)

	s = session.Apply(s, session.ClearError{})
	assert.Empty(t, s.Err)

	active := startedState(1)
	active = session.Apply(active, session.SetError{Message: "late"})
	assert.Empty(t, active.Err, "errors cannot be injected into an active session")
}

func TestApply_SetQuestionCountRejectsUnknownValues(t *testing.T) {
	s := session.NewState()
	s = session.Apply(s, session.SetQuestionCount{Count: 7})
	assert.Equal(t, session.DefaultQuestionCount, s.QuestionCount)

	s = session.Apply(s, session.SetQuestionCount{Count: 20})
	assert.Equal(t, 20, s.QuestionCount)
}

// TestApply_RandomTransitionSequences drives the reducer with random
// transition streams and checks the structural invariants after every step.
func TestApply_RandomTransitionSequences(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		rng := rand.New(rand.NewSource(seed))
		s := session.NewState()

		for step := 0; step < 400; step++ {
			s = session.Apply(s, randomTransition(rng))
			assertInvariants(t, s, seed, step)
		}
	}
}

func randomTransition(rng *rand.Rand) session.Transition {
	answers := []string{"right", "wrong-a", "wrong-b", "wrong-c"}
	switch rng.Intn(9) {
	case 0:
		return session.Start{Questions: makeQuestions(1 + rng.Intn(5)), At: time.Now()}
	case 1:
		return session.SelectAnswer{Answer: answers[rng.Intn(len(answers))]}
	case 2:
		return session.Advance{}
	case 3:
		return session.Finish{ResultID: fmt.Sprintf("r-%d", rng.Int()), At: time.Now()}
	case 4:
		return session.Reset{Full: rng.Intn(2) == 0}
	case 5:
		return session.SetError{Message: "boom"}
	case 6:
		return session.SetCategory{Category: &models.Category{ID: rng.Intn(30), Name: "cat"}}
	case 7:
		return session.SetDifficulty{Difficulty: []string{"", "easy", "medium", "hard"}[rng.Intn(4)]}
	default:
		return session.SetQuestionCount{Count: []int{5, 7, 10, 15, 20, 50}[rng.Intn(6)]}
	}
}

func assertInvariants(t *testing.T, s session.State, seed int64, step int) {
	t.Helper()

	correct := 0
	for _, a := range s.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	require.Equal(t, correct, s.Score, "seed=%d step=%d: score must equal correct answers", seed, step)
	require.LessOrEqual(t, len(s.Answers), len(s.Questions), "seed=%d step=%d", seed, step)

	if s.Phase == session.PhaseActive {
		require.GreaterOrEqual(t, s.CurrentIndex, 0, "seed=%d step=%d", seed, step)
		require.Less(t, s.CurrentIndex, len(s.Questions), "seed=%d step=%d", seed, step)
	}
	if s.Phase == session.PhaseFinished {
		require.NotNil(t, s.LastResult, "seed=%d step=%d", seed, step)
		require.Equal(t, len(s.Questions), len(s.LastResult.Answers), "seed=%d step=%d", seed, step)
		require.GreaterOrEqual(t, s.LastResult.Percentage, 0, "seed=%d step=%d", seed, step)
		require.LessOrEqual(t, s.LastResult.Percentage, 100, "seed=%d step=%d", seed, step)
	}
	require.True(t, models.ValidQuestionCount(s.QuestionCount), "seed=%d step=%d", seed, step)
}
