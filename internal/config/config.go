package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken        string
	LogLevel        string
	PostgresDSN     string
	DefaultCurrency string
	ReportFormat    string // "xlsx" or "pdf"
	ScheduleInput   string // "text" or "pick"
	RemindInterval  time.Duration
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("BOT_TOKEN is not set")
	}

	dsn, err := postgresDSN()
	if err != nil {
		return nil, err
	}

	interval := 30 * time.Second
	if v := os.Getenv("REMIND_POLL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("bad REMIND_POLL_SECONDS %q: %w", v, err)
		}
		interval = time.Duration(secs) * time.Second
	}

	cfg := &Config{
		BotToken:        token,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		PostgresDSN:     dsn,
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "TJS"),
		ReportFormat:    getEnv("REPORT_FORMAT", "xlsx"),
		ScheduleInput:   getEnv("SCHEDULE_INPUT", "text"),
		RemindInterval:  interval,
	}

	switch cfg.ReportFormat {
	case "xlsx", "pdf":
	default:
		return nil, fmt.Errorf("bad REPORT_FORMAT %q, want xlsx or pdf", cfg.ReportFormat)
	}
	switch cfg.ScheduleInput {
	case "text", "pick":
	default:
		return nil, fmt.Errorf("bad SCHEDULE_INPUT %q, want text or pick", cfg.ScheduleInput)
	}

	return cfg, nil
}

// postgresDSN prefers DATABASE_URL and falls back to the discrete DB_* vars.
func postgresDSN() (string, error) {
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		if _, err := url.Parse(raw); err != nil {
			return "", fmt.Errorf("bad DATABASE_URL: %w", err)
		}
		return raw, nil
	}

	port := getEnv("DB_PORT", "5432")
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("bad DB_PORT %q: %w", port, err)
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_HOST", "localhost"),
		port,
		os.Getenv("DB_NAME"),
	), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
