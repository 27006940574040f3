package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/xo101/internal/logger"
)

type Config struct {
	Addr               string
	DBPath             string
	PuzzlesPath        string
	AnalyticsPath      string
	LogLevel           string
	AttemptWorkerCount int
	AttemptQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// .env is optional outside development.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:xo101.db"),
		PuzzlesPath:        envOr("PUZZLES_PATH", "data/puzzles.json"),
		AnalyticsPath:      envOr("ANALYTICS_PATH", "data/analytics.json"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		AttemptWorkerCount: envIntOr("ATTEMPT_WORKER_COUNT", 1),
		AttemptQueueSize:   envIntOr("ATTEMPT_QUEUE_SIZE", 64),
	}
}

// Validate reports every invalid setting in a single error.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if strings.TrimSpace(c.PuzzlesPath) == "" {
		problems = append(problems, "PUZZLES_PATH cannot be empty")
	}
	if strings.TrimSpace(c.AnalyticsPath) == "" {
		problems = append(problems, "ANALYTICS_PATH cannot be empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.AttemptWorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("ATTEMPT_WORKER_COUNT must be at least 1 (got %d)", c.AttemptWorkerCount))
	}
	if c.AttemptQueueSize < 1 {
		problems = append(problems, fmt.Sprintf("ATTEMPT_QUEUE_SIZE must be at least 1 (got %d)", c.AttemptQueueSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
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
