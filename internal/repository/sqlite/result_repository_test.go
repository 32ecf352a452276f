package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"quizdeck/internal/models"
	"quizdeck/internal/repository"
	"quizdeck/internal/repository/sqlite"
	"quizdeck/internal/testutil"
)

type ResultRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ResultRepository
}

func (s *ResultRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewResultRepository(s.db, sqlite.DefaultPassingScore)
}

func (s *ResultRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ResultRepositorySuite) makeResult(quizID string, score, total int, at time.Time) models.QuizResult {
	percentage := score * 100 / total
	return models.QuizResult{
		ID:             quizID,
		Category:       "General",
		Difficulty:     "mixed",
		Score:          score,
		TotalQuestions: total,
		Percentage:     percentage,
		Timestamp:      at,
	}
}

func (s *ResultRepositorySuite) TestEmptyStore() {
	ctx := context.Background()

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	avg, err := s.repo.AverageScore(ctx)
	s.Require().NoError(err)
	s.Equal(0, avg)

	passed, err := s.repo.PassedCount(ctx)
	s.Require().NoError(err)
	s.Equal(0, passed)

	recent, err := s.repo.Recent(ctx, 5)
	s.Require().NoError(err)
	s.Empty(recent)
}

func (s *ResultRepositorySuite) TestSaveAndCount() {
	ctx := context.Background()

	id, err := s.repo.Save(ctx, s.makeResult("quiz-1", 8, 10, time.Now()))
	s.Require().NoError(err)
	s.Greater(id, int64(0))

	// Identical content is a second record, not a dedup target.
	id2, err := s.repo.Save(ctx, s.makeResult("quiz-1", 8, 10, time.Now()))
	s.Require().NoError(err)
	s.NotEqual(id, id2)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *ResultRepositorySuite) TestRecentOrderingAndLimit() {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		_, err := s.repo.Save(ctx, s.makeResult("quiz-a", i+1, 10, base.Add(time.Duration(i)*time.Minute)))
		s.Require().NoError(err)
	}

	recent, err := s.repo.Recent(ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(recent, 5)

	// Newest first.
	s.Equal(7, recent[0].Score)
	s.Equal(3, recent[4].Score)
	for i := 1; i < len(recent); i++ {
		s.True(recent[i-1].CreatedAt.After(recent[i].CreatedAt) ||
			recent[i-1].CreatedAt.Equal(recent[i].CreatedAt))
	}
}

func (s *ResultRepositorySuite) TestRecentDefaultLimit() {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		_, err := s.repo.Save(ctx, s.makeResult("quiz-a", 5, 10, base.Add(time.Duration(i)*time.Minute)))
		s.Require().NoError(err)
	}

	recent, err := s.repo.Recent(ctx, 0)
	s.Require().NoError(err)
	s.Len(recent, 5)
}

func (s *ResultRepositorySuite) TestPassedThreshold() {
	ctx := context.Background()
	now := time.Now()

	// 70 percent exactly passes, 69 does not.
	_, err := s.repo.Save(ctx, s.makeResult("quiz-pass", 7, 10, now))
	s.Require().NoError(err)
	_, err = s.repo.Save(ctx, s.makeResult("quiz-fail", 69, 100, now))
	s.Require().NoError(err)

	passed, err := s.repo.PassedCount(ctx)
	s.Require().NoError(err)
	s.Equal(1, passed)

	recent, err := s.repo.Recent(ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(recent, 2)
	for _, rec := range recent {
		if rec.QuizID == "quiz-pass" {
			s.True(rec.Passed)
		} else {
			s.False(rec.Passed)
		}
	}
}

func (s *ResultRepositorySuite) TestStats() {
	ctx := context.Background()
	now := time.Now()

	_, err := s.repo.Save(ctx, s.makeResult("quiz-1", 8, 10, now))
	s.Require().NoError(err)
	_, err = s.repo.Save(ctx, s.makeResult("quiz-2", 5, 10, now))
	s.Require().NoError(err)
	_, err = s.repo.Save(ctx, s.makeResult("quiz-3", 10, 10, now))
	s.Require().NoError(err)

	stats, err := s.repo.Stats(ctx)
	s.Require().NoError(err)
	s.Equal(3, stats.TotalQuizzes)
	s.Equal(2, stats.PassedQuizzes)
	// (80 + 50 + 100) / 3 = 76.67, rounded.
	s.Equal(77, stats.AverageScore)
}

func (s *ResultRepositorySuite) TestFindByCategory() {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	science := s.makeResult("quiz-sci", 9, 10, base)
	science.Category = "Science"
	_, err := s.repo.Save(ctx, science)
	s.Require().NoError(err)

	history := s.makeResult("quiz-hist", 6, 10, base.Add(time.Minute))
	history.Category = "History"
	_, err = s.repo.Save(ctx, history)
	s.Require().NoError(err)

	science2 := s.makeResult("quiz-sci-2", 7, 10, base.Add(2*time.Minute))
	science2.Category = "Science"
	_, err = s.repo.Save(ctx, science2)
	s.Require().NoError(err)

	records, err := s.repo.FindByCategory(ctx, "Science")
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("quiz-sci-2", records[0].QuizID)
	s.Equal("quiz-sci", records[1].QuizID)

	none, err := s.repo.FindByCategory(ctx, "Geography")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *ResultRepositorySuite) TestNullDifficulty() {
	ctx := context.Background()

	result := s.makeResult("quiz-any", 5, 10, time.Now())
	result.Difficulty = ""
	_, err := s.repo.Save(ctx, result)
	s.Require().NoError(err)

	recent, err := s.repo.Recent(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(recent, 1)
	s.Equal("", recent[0].Difficulty)

	var stored sql.NullString
	err = s.db.QueryRowContext(ctx, `SELECT difficulty FROM quiz_results WHERE quiz_id = ?`, "quiz-any").Scan(&stored)
	s.Require().NoError(err)
	s.False(stored.Valid)
}

func (s *ResultRepositorySuite) TestDelete() {
	ctx := context.Background()

	id, err := s.repo.Save(ctx, s.makeResult("quiz-1", 8, 10, time.Now()))
	s.Require().NoError(err)

	deleted, err := s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.True(deleted)

	// Deleting again reports false without error.
	deleted, err = s.repo.Delete(ctx, id)
	s.Require().NoError(err)
	s.False(deleted)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)
}

func (s *ResultRepositorySuite) TestClearAll() {
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := s.repo.Save(ctx, s.makeResult("quiz", 5, 10, now))
		s.Require().NoError(err)
	}

	affected, err := s.repo.ClearAll(ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), affected)

	count, err := s.repo.Count(ctx)
	s.Require().NoError(err)
	s.Equal(0, count)

	affected, err = s.repo.ClearAll(ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), affected)
}

func TestResultRepositorySuite(t *testing.T) {
	suite.Run(t, new(ResultRepositorySuite))
}

// TestLazyInit exercises the repository against a database that never had
// migrations applied; the first call must create the table itself.
func TestLazyInit(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	repo := sqlite.NewResultRepository(db, sqlite.DefaultPassingScore)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count on uninitialized store: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}

	if _, err := repo.Save(ctx, models.QuizResult{
		ID:             "quiz-lazy",
		Category:       "General",
		Score:          7,
		TotalQuestions: 10,
		Percentage:     70,
		Timestamp:      time.Now(),
	}); err != nil {
		t.Fatalf("save on uninitialized store: %v", err)
	}
}
