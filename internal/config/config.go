// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"homework_bot/internal/practicum"
)

const defaultRetryInterval = 600 * time.Second

// Config holds the application configuration.
type Config struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID string
	Endpoint       string
	RetryInterval  time.Duration
	DatabasePath   string
	LogLevel       string
}

// Load reads configuration from a .env file (if present) and environment
// variables. Variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		PracticumToken: os.Getenv("PRACTICUM_TOKEN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		TelegramChatID: strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		Endpoint:       envOrDefault("PRACTICUM_ENDPOINT", practicum.DefaultEndpoint),
		DatabasePath:   envOrDefault("DATABASE_PATH", "./data/homework_bot.db"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
	}

	var missing []string
	for _, v := range []struct{ key, val string }{
		{"PRACTICUM_TOKEN", cfg.PracticumToken},
		{"TELEGRAM_TOKEN", cfg.TelegramToken},
		{"TELEGRAM_CHAT_ID", cfg.TelegramChatID},
	} {
		if v.val == "" {
			missing = append(missing, v.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	interval, err := parseInterval(os.Getenv("RETRY_TIME"))
	if err != nil {
		return nil, fmt.Errorf("invalid RETRY_TIME: %w", err)
	}
	cfg.RetryInterval = interval

	return cfg, nil
}

// parseInterval accepts a Go duration ("10m") or a number of seconds ("600").
func parseInterval(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultRetryInterval, nil
	}
	var d time.Duration
	if secs, err := strconv.Atoi(raw); err == nil {
		d = time.Duration(secs) * time.Second
	} else {
		d, err = time.ParseDuration(raw)
		if err != nil {
			return 0, err
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", raw)
	}
	return d, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
