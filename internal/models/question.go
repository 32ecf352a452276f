package models

// Question is one normalized multiple-choice question as consumed by a quiz
// session. Produced by the question source adapter; immutable afterwards.
type Question struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Options       []string `json:"options"` // shuffled once, fixed for the session
	CorrectAnswer string   `json:"correct_answer"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"` // "easy", "medium", "hard"
}

// AnswerRecord captures one answered question. Created exactly once per
// question; IsCorrect is frozen at selection time.
type AnswerRecord struct {
	Question       string `json:"question"`
	SelectedAnswer string `json:"selected_answer"`
	CorrectAnswer  string `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
}
