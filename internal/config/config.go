package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv        string
	DataDir       string
	StoreID       string
	LogLevel      string
	LogFormat     string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:        valueOrDefault(k.String("APP_ENV"), "development"),
		DataDir:       valueOrDefault(k.String("DATA_DIR"), "data"),
		StoreID:       strings.TrimSpace(k.String("STORE_ID")),
		LogLevel:      valueOrDefault(k.String("LOG_LEVEL"), "info"),
		LogFormat:     valueOrDefault(k.String("LOG_FORMAT"), "console"),
		LogFile:       strings.TrimSpace(k.String("LOG_FILE")),
		LogMaxSizeMB:  parseInt(k.String("LOG_MAX_SIZE_MB"), 20),
		LogMaxBackups: parseInt(k.String("LOG_MAX_BACKUPS"), 5),
	}

	return cfg, nil
}

// TablePath resolves a flat-file table name inside the data directory.
func (c *Config) TablePath(name string) string {
	return filepath.Join(c.DataDir, name)
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
