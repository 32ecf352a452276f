package models

// Category is one selectable trivia category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// AllowedQuestionCounts are the question counts a session may be configured
// with.
var AllowedQuestionCounts = []int{5, 10, 15, 20}

// ValidQuestionCount reports whether n is one of the selectable counts.
func ValidQuestionCount(n int) bool {
	for _, c := range AllowedQuestionCounts {
		if n == c {
			return true
		}
	}
	return false
}
