// Package config loads the settings of the spsheet command from the
// environment and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the command settings.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string
	// DumpFormat is the default output of the dump command, yaml or json.
	DumpFormat string
}

// Load reads .env from the working directory when present, then the
// SPSHEET_* variables of the environment.  Variables already set in the
// environment take precedence over .env.
func Load() (*Config, error) {
	return LoadFiles()
}

// LoadFiles is like Load but reads the given .env files instead of the
// default one.  Missing files are ignored.
func LoadFiles(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("config: %s: %w", f, err)
		}
	}

	cfg := &Config{
		LogLevel:   strings.ToLower(getEnv("SPSHEET_LOG_LEVEL", "info")),
		DumpFormat: strings.ToLower(getEnv("SPSHEET_DUMP_FORMAT", "yaml")),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: SPSHEET_LOG_LEVEL %q must be debug, info, warn or error", c.LogLevel)
	}
	switch c.DumpFormat {
	case "yaml", "json":
	default:
		return fmt.Errorf("config: SPSHEET_DUMP_FORMAT %q must be yaml or json", c.DumpFormat)
	}
	return nil
}

// Level returns LogLevel as a slog level.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
