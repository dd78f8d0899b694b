// Package config provides configuration for the relay service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Muskan2320/Realtime-AI-backend/internal/llm"
)

// Config holds the relay service configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Generation backend settings
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string

	// Background summarization
	SummaryWorkers int

	// WebSocket settings
	PingInterval   time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	MaxMessageSize int64
}

// Load loads configuration from environment variables. A missing required
// variable is a startup error, not a runtime one.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:       getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		Model:          getEnv("CHATRELAY_MODEL", "gpt-4o-mini"),
		SummaryWorkers: getEnvInt("SUMMARY_WORKERS", 8),
		PingInterval:   time.Duration(getEnvInt("WS_PING_INTERVAL_MS", 30000)) * time.Millisecond,
		WriteTimeout:   time.Duration(getEnvInt("WS_WRITE_TIMEOUT_MS", 10000)) * time.Millisecond,
		ReadTimeout:    time.Duration(getEnvInt("WS_READ_TIMEOUT_MS", 60000)) * time.Millisecond,
		MaxMessageSize: int64(getEnvInt("WS_MAX_MESSAGE_SIZE", 65536)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.OpenAIAPIKey == "" && os.Getenv(llm.EnvRelayMode) != llm.ModeMock {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
