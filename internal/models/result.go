package models

import "time"

// QuizResult is the immutable summary of one completed quiz session.
type QuizResult struct {
	ID             string         `json:"id"`
	Category       string         `json:"category"`
	Difficulty     string         `json:"difficulty"` // empty means "mixed"
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     int            `json:"percentage"` // rounded, 0..100
	Timestamp      time.Time      `json:"timestamp"`
	Answers        []AnswerRecord `json:"answers"`
}

// ResultRecord is the durable, storage-assigned form of a QuizResult.
type ResultRecord struct {
	ID             int64     `json:"id"`
	QuizID         string    `json:"quiz_id"`
	Category       string    `json:"category"`
	Difficulty     string    `json:"difficulty,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	Passed         bool      `json:"passed"`
	CreatedAt      time.Time `json:"created_at"`
}

// ResultStats is the aggregate view over all stored results.
type ResultStats struct {
	TotalQuizzes  int `json:"total_quizzes"`
	PassedQuizzes int `json:"passed_quizzes"`
	AverageScore  int `json:"average_score"` // mean percentage, rounded
}
