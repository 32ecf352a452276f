package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"sync"

	"github.com/Masterminds/squirrel"

	"quizdeck/internal/logger"
	"quizdeck/internal/models"
	"quizdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// DefaultPassingScore is the percentage cutoff above which a stored result is
// marked passed.
const DefaultPassingScore = 70

type resultRepository struct {
	db           *sql.DB
	passingScore int

	initOnce sync.Once
	initErr  error
}

// NewResultRepository creates a ResultRepository backed by SQLite. A
// passingScore outside 1..100 falls back to the default threshold.
func NewResultRepository(db *sql.DB, passingScore int) repository.ResultRepository {
	if passingScore < 1 || passingScore > 100 {
		passingScore = DefaultPassingScore
	}
	return &resultRepository{db: db, passingScore: passingScore}
}

// ensure lazily creates the results table. Every entry point calls it, so an
// uninitialized store works on first use; the statement is idempotent.
func (r *resultRepository) ensure(ctx context.Context) error {
	r.initOnce.Do(func() {
		_, r.initErr = r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS quiz_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    quiz_id TEXT NOT NULL,
    category TEXT NOT NULL,
    difficulty TEXT,
    score INTEGER NOT NULL,
    total_questions INTEGER NOT NULL,
    percentage INTEGER NOT NULL,
    passed BOOLEAN NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	})
	return r.initErr
}

func (r *resultRepository) Save(ctx context.Context, result models.QuizResult) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	if err := r.ensure(ctx); err != nil {
		return 0, err
	}

	passed := result.Percentage >= r.passingScore
	log.Debug("saving result: quiz_id=%s, score=%d/%d, percentage=%d, passed=%v",
		result.ID, result.Score, result.TotalQuestions, result.Percentage, passed)

	var difficulty interface{}
	if result.Difficulty != "" {
		difficulty = result.Difficulty
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_results (quiz_id, category, difficulty, score, total_questions, percentage, passed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, result.ID, result.Category, difficulty, result.Score, result.TotalQuestions, result.Percentage, passed, result.Timestamp)
	if err != nil {
		log.Error("failed to save result: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get result record id: %v", err)
		return 0, err
	}
	log.Debug("result saved: id=%d", id)
	return id, nil
}

func (r *resultRepository) Count(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	if err := r.ensure(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quiz_results`).Scan(&count); err != nil {
		log.Error("failed to count results: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *resultRepository) Recent(ctx context.Context, limit int) ([]models.ResultRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("fetching recent results: limit=%d", limit)
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}

	query := sqlBuilder.
		Select("id", "quiz_id", "category", "difficulty", "score", "total_questions", "percentage", "passed", "created_at").
		From("quiz_results").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build recent query: %v", err)
		return nil, err
	}
	return r.queryRecords(ctx, sqlStr, args...)
}

func (r *resultRepository) AverageScore(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	if err := r.ensure(ctx); err != nil {
		return 0, err
	}

	var avg sql.NullFloat64
	if err := r.db.QueryRowContext(ctx, `SELECT AVG(percentage) FROM quiz_results`).Scan(&avg); err != nil {
		log.Error("failed to compute average score: %v", err)
		return 0, err
	}
	if !avg.Valid {
		// Empty store, not an error.
		return 0, nil
	}
	return int(math.Round(avg.Float64)), nil
}

func (r *resultRepository) PassedCount(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	if err := r.ensure(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quiz_results WHERE passed = 1`).Scan(&count); err != nil {
		log.Error("failed to count passed results: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *resultRepository) Stats(ctx context.Context) (*models.ResultStats, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}
	passed, err := r.PassedCount(ctx)
	if err != nil {
		return nil, err
	}
	avg, err := r.AverageScore(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ResultStats{
		TotalQuizzes:  total,
		PassedQuizzes: passed,
		AverageScore:  avg,
	}, nil
}

func (r *resultRepository) FindByCategory(ctx context.Context, category string) ([]models.ResultRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("fetching results by category: category=%s", category)
	if err := r.ensure(ctx); err != nil {
		return nil, err
	}

	query := sqlBuilder.
		Select("id", "quiz_id", "category", "difficulty", "score", "total_questions", "percentage", "passed", "created_at").
		From("quiz_results").
		Where(squirrel.Eq{"category": category}).
		OrderBy("created_at DESC", "id DESC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build category query: %v", err)
		return nil, err
	}
	return r.queryRecords(ctx, sqlStr, args...)
}

func (r *resultRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	log.Debug("deleting result: id=%d", id)
	if err := r.ensure(ctx); err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM quiz_results WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete result: %v", err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *resultRepository) ClearAll(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")
	if err := r.ensure(ctx); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM quiz_results`)
	if err != nil {
		log.Error("failed to clear results: %v", err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	log.Info("cleared %d result records", affected)
	return affected, nil
}

func (r *resultRepository) queryRecords(ctx context.Context, sqlStr string, args ...interface{}) ([]models.ResultRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("result_repo")

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query results: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ResultRecord
	for rows.Next() {
		var rec models.ResultRecord
		var difficulty sql.NullString
		if err := rows.Scan(&rec.ID, &rec.QuizID, &rec.Category, &difficulty, &rec.Score,
			&rec.TotalQuestions, &rec.Percentage, &rec.Passed, &rec.CreatedAt); err != nil {
			log.Error("failed to scan result row: %v", err)
			return nil, err
		}
		if difficulty.Valid {
			rec.Difficulty = difficulty.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	log.Debug("found %d result records", len(records))
	return records, nil
}
