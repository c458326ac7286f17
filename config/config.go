package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort string
	GinMode  string

	// DBDriver selects between "mysql" and "sqlite". The sqlite fallback
	// keeps local development working without a running MySQL.
	DBDriver string
	DBDSN    string

	AnthropicAPIKey string
	AnthropicModel  string

	StatusRefreshInterval time.Duration
	EventPollInterval     time.Duration
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:              getEnv("PORT", "8080"),
		GinMode:               getEnv("GIN_MODE", ""),
		DBDriver:              getEnv("DB_DRIVER", "sqlite"),
		DBDSN:                 getEnv("DATABASE_URL", "waiterd.db"),
		AnthropicAPIKey:       getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:        getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		StatusRefreshInterval: getDuration("STATUS_REFRESH_INTERVAL_SECONDS", 30),
		EventPollInterval:     getDuration("EVENT_POLL_INTERVAL_SECONDS", 5),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, defSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(defSeconds) * time.Second
}
