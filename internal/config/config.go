package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	TelegramToken  string
	RedisAddr      string
	RedisDB        int
	LogLevel       string
	PrometheusPort string
	OwnerChatID    int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		PrometheusPort: getEnvOrDefault("PROMETHEUS_PORT", "9090"),
	}

	if cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN"); cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB must be an integer, got %q", raw)
		}
		cfg.RedisDB = db
	}

	// Optional: restrict the bot to a single chat.
	if raw := os.Getenv("OWNER_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("OWNER_CHAT_ID must be an integer, got %q", raw)
		}
		cfg.OwnerChatID = id
	}

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
