package common

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Batch    BatchConfig
	Log      LogConfig
}

// DatabaseConfig holds database-related configuration. DSN takes precedence
// over File when both are set.
type DatabaseConfig struct {
	DSN  string
	File string
}

// ServerConfig holds the staff HTTP server configuration
type ServerConfig struct {
	HTTPAddr string
}

// BatchConfig holds receipt batch defaults, overridable per run by flags
type BatchConfig struct {
	Dir     string
	Pattern string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from a .env file (when present) and the
// environment.
func LoadConfig() *Config {
	// Missing .env is fine; real environment variables win anyway.
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			DSN:  getEnv("DB_URL", ""),
			File: getEnv("DB_FILE", "facturas.db"),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		},
		Batch: BatchConfig{
			Dir:     getEnv("TICKETS_DIR", "facturas"),
			Pattern: getEnv("TICKETS_PATTERN", "factura_*.txt"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// ArchiveDSN resolves the archive connection string: the Postgres DSN when
// configured, otherwise the SQLite file path.
func (c *Config) ArchiveDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	return c.Database.File
}

// SlogLevel maps the configured level name to a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
