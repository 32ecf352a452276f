package questions

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"quizdeck/internal/models"
)

// fallbackBank is the bundled question set served when the remote trivia
// service is unavailable.
var fallbackBank = []models.Question{
	{ID: "fallback-1", Text: "What is the capital of France?", Options: []string{"Paris", "London", "Berlin", "Madrid"}, CorrectAnswer: "Paris", Category: "Geography", Difficulty: "easy"},
	{ID: "fallback-2", Text: "Which planet is known as the Red Planet?", Options: []string{"Mars", "Venus", "Jupiter", "Saturn"}, CorrectAnswer: "Mars", Category: "Science & Nature", Difficulty: "easy"},
	{ID: "fallback-3", Text: "What is the largest mammal in the world?", Options: []string{"Blue Whale", "African Elephant", "Giraffe", "Hippopotamus"}, CorrectAnswer: "Blue Whale", Category: "Animals", Difficulty: "easy"},
	{ID: "fallback-4", Text: "In what year did World War II end?", Options: []string{"1945", "1944", "1946", "1943"}, CorrectAnswer: "1945", Category: "History", Difficulty: "easy"},
	{ID: "fallback-5", Text: "What programming language is primarily used for iOS app development?", Options: []string{"Swift", "Java", "Python", "C#"}, CorrectAnswer: "Swift", Category: "Science: Computers", Difficulty: "medium"},
	{ID: "fallback-6", Text: "What is the chemical symbol for gold?", Options: []string{"Au", "Ag", "Fe", "Cu"}, CorrectAnswer: "Au", Category: "Science & Nature", Difficulty: "easy"},
	{ID: "fallback-7", Text: "Which country hosted the 2016 Summer Olympics?", Options: []string{"Brazil", "China", "United Kingdom", "Japan"}, CorrectAnswer: "Brazil", Category: "Sports", Difficulty: "medium"},
	{ID: "fallback-8", Text: "What is the largest ocean on Earth?", Options: []string{"Pacific Ocean", "Atlantic Ocean", "Indian Ocean", "Arctic Ocean"}, CorrectAnswer: "Pacific Ocean", Category: "Geography", Difficulty: "easy"},
	{ID: "fallback-9", Text: "Who painted the Mona Lisa?", Options: []string{"Leonardo da Vinci", "Michelangelo", "Raphael", "Vincent van Gogh"}, CorrectAnswer: "Leonardo da Vinci", Category: "Art", Difficulty: "easy"},
	{ID: "fallback-10", Text: "What is the smallest prime number?", Options: []string{"2", "1", "0", "3"}, CorrectAnswer: "2", Category: "Science: Mathematics", Difficulty: "easy"},
	{ID: "fallback-11", Text: "Which element has the atomic number 1?", Options: []string{"Hydrogen", "Helium", "Oxygen", "Carbon"}, CorrectAnswer: "Hydrogen", Category: "Science & Nature", Difficulty: "easy"},
	{ID: "fallback-12", Text: "What is the currency of Japan?", Options: []string{"Yen", "Won", "Yuan", "Ringgit"}, CorrectAnswer: "Yen", Category: "General Knowledge", Difficulty: "easy"},
	{ID: "fallback-13", Text: "Which company developed the React Native framework?", Options: []string{"Facebook (Meta)", "Google", "Microsoft", "Apple"}, CorrectAnswer: "Facebook (Meta)", Category: "Science: Computers", Difficulty: "medium"},
	{ID: "fallback-14", Text: "What year was the first iPhone released?", Options: []string{"2007", "2006", "2008", "2005"}, CorrectAnswer: "2007", Category: "Science: Computers", Difficulty: "medium"},
	{ID: "fallback-15", Text: "What is the speed of light in a vacuum (approximately)?", Options: []string{"300,000 km/s", "150,000 km/s", "500,000 km/s", "1,000,000 km/s"}, CorrectAnswer: "300,000 km/s", Category: "Science & Nature", Difficulty: "medium"},
	{ID: "fallback-16", Text: "Which planet has the most moons?", Options: []string{"Saturn", "Jupiter", "Uranus", "Neptune"}, CorrectAnswer: "Saturn", Category: "Science & Nature", Difficulty: "hard"},
	{ID: "fallback-17", Text: `What does "HTTP" stand for?`, Options: []string{"HyperText Transfer Protocol", "High Transfer Text Protocol", "HyperText Transmission Protocol", "High Text Transfer Protocol"}, CorrectAnswer: "HyperText Transfer Protocol", Category: "Science: Computers", Difficulty: "easy"},
	{ID: "fallback-18", Text: "Which instrument has 88 keys?", Options: []string{"Piano", "Organ", "Accordion", "Harpsichord"}, CorrectAnswer: "Piano", Category: "Entertainment: Music", Difficulty: "easy"},
	{ID: "fallback-19", Text: "What is the largest desert in the world?", Options: []string{"Antarctica", "Sahara", "Arabian", "Gobi"}, CorrectAnswer: "Antarctica", Category: "Geography", Difficulty: "hard"},
	{ID: "fallback-20", Text: "In which year did the Berlin Wall fall?", Options: []string{"1989", "1991", "1987", "1990"}, CorrectAnswer: "1989", Category: "History", Difficulty: "medium"},
	{ID: "fallback-21", Text: "What is the main ingredient in guacamole?", Options: []string{"Avocado", "Tomato", "Onion", "Lime"}, CorrectAnswer: "Avocado", Category: "General Knowledge", Difficulty: "easy"},
	{ID: "fallback-22", Text: "Which programming language was created by Brendan Eich?", Options: []string{"JavaScript", "Python", "Java", "C++"}, CorrectAnswer: "JavaScript", Category: "Science: Computers", Difficulty: "medium"},
	{ID: "fallback-23", Text: "What is the capital of Australia?", Options: []string{"Canberra", "Sydney", "Melbourne", "Perth"}, CorrectAnswer: "Canberra", Category: "Geography", Difficulty: "medium"},
	{ID: "fallback-24", Text: "How many bones are in the adult human body?", Options: []string{"206", "208", "204", "212"}, CorrectAnswer: "206", Category: "Science & Nature", Difficulty: "medium"},
	{ID: "fallback-25", Text: "Which gas do plants absorb from the atmosphere?", Options: []string{"Carbon Dioxide", "Oxygen", "Nitrogen", "Hydrogen"}, CorrectAnswer: "Carbon Dioxide", Category: "Science & Nature", Difficulty: "easy"},
}

// builtinCategories is returned when the remote category list cannot be
// fetched.
var builtinCategories = []models.Category{
	{ID: 9, Name: "General Knowledge"},
	{ID: 17, Name: "Science & Nature"},
	{ID: 18, Name: "Science: Computers"},
	{ID: 21, Name: "Sports"},
	{ID: 22, Name: "Geography"},
	{ID: 23, Name: "History"},
	{ID: 27, Name: "Animals"},
}

// BankSize returns the number of bundled fallback questions.
func BankSize() int {
	return len(fallbackBank)
}

// fallbackQuestions samples min(amount, bank size) questions from the bundled
// bank. Each selected question gets a fresh id suffix, so repeated fallback
// sessions never collide, and freshly shuffled options.
func fallbackQuestions(rng *rand.Rand, amount int) []models.Question {
	if amount <= 0 {
		return []models.Question{}
	}
	if amount > len(fallbackBank) {
		amount = len(fallbackBank)
	}

	perm := rng.Perm(len(fallbackBank))
	selected := make([]models.Question, 0, amount)
	for _, idx := range perm[:amount] {
		q := fallbackBank[idx]
		q.ID = fmt.Sprintf("%s-%s", q.ID, uuid.NewString())
		q.Options = shuffleStrings(rng, q.Options)
		selected = append(selected, q)
	}
	return selected
}
