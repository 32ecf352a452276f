package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	TriviaBaseURL        string
	TriviaTimeoutSeconds int
	PersistWorkerCount   int
	PersistQueueSize     int
	PassingScore         int
	DefaultQuestionCount int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:quizdeck.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		TriviaBaseURL:        envOr("TRIVIA_BASE_URL", "https://opentdb.com"),
		TriviaTimeoutSeconds: envIntOr("TRIVIA_TIMEOUT_SECONDS", 10),
		PersistWorkerCount:   envIntOr("PERSIST_WORKER_COUNT", 1),
		PersistQueueSize:     envIntOr("PERSIST_QUEUE_SIZE", 16),
		PassingScore:         envIntOr("PASSING_SCORE", 70),
		DefaultQuestionCount: envIntOr("DEFAULT_QUESTION_COUNT", 10),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.TriviaBaseURL == "" {
		return fmt.Errorf("TRIVIA_BASE_URL cannot be empty")
	}
	if c.TriviaTimeoutSeconds <= 0 {
		return fmt.Errorf("TRIVIA_TIMEOUT_SECONDS must be positive")
	}
	if c.PersistWorkerCount <= 0 {
		return fmt.Errorf("PERSIST_WORKER_COUNT must be positive")
	}
	if c.PersistQueueSize <= 0 {
		return fmt.Errorf("PERSIST_QUEUE_SIZE must be positive")
	}
	if c.PassingScore < 0 || c.PassingScore > 100 {
		return fmt.Errorf("PASSING_SCORE must be between 0 and 100")
	}
	if c.DefaultQuestionCount < 1 || c.DefaultQuestionCount > 50 {
		return fmt.Errorf("DEFAULT_QUESTION_COUNT must be between 1 and 50")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
