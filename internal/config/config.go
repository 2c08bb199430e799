// Package config loads process settings from the environment and the ledger
// book from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// HTTP server
	Port string

	// Storage
	StorageBackend string
	DBPath         string

	// Ledger book
	BookPath string

	// Auth. Empty OperatorPasswordHash disables auth on the ledger service.
	JWTSecret            string
	TokenTTL             time.Duration
	OperatorEmail        string
	OperatorPasswordHash string

	// Undo depth; 0 means unbounded.
	HistoryLimit int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads a .env file from the working directory when one exists, then
// builds a Config from the environment. Values already set in the
// environment win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendSQLite),
		DBPath:         getEnv("DB_PATH", "./data/ledger.db"),

		BookPath: getEnv("BOOK_PATH", "./configs/book.yaml"),

		JWTSecret:            getEnv("JWT_SECRET", ""),
		TokenTTL:             getEnvDuration("TOKEN_TTL", 24*time.Hour),
		OperatorEmail:        getEnv("OPERATOR_EMAIL", ""),
		OperatorPasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),

		HistoryLimit: getEnvInt("HISTORY_LIMIT", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// AuthEnabled reports whether an operator account is configured.
func (c *Config) AuthEnabled() bool {
	return c.OperatorPasswordHash != ""
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	backends := []string{BackendSQLite, BackendMemory}
	if !slices.Contains(backends, c.StorageBackend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.StorageBackend, backends))
	}
	if c.StorageBackend == BackendSQLite && c.DBPath == "" {
		problems = append(problems, "database path cannot be empty when using sqlite backend")
	}

	if c.BookPath == "" {
		problems = append(problems, "book path cannot be empty")
	}

	if c.AuthEnabled() {
		if len(c.JWTSecret) < 32 {
			problems = append(problems, "JWT secret must be at least 32 characters when auth is enabled")
		}
		if c.OperatorEmail == "" {
			problems = append(problems, "operator email cannot be empty when auth is enabled")
		}
		if !strings.HasPrefix(c.OperatorPasswordHash, "$2") {
			problems = append(problems, "operator password hash must be a bcrypt hash")
		}
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid token TTL %s: must be positive", c.TokenTTL))
	}

	if c.HistoryLimit < 0 {
		problems = append(problems, fmt.Sprintf("invalid history limit %d: must not be negative", c.HistoryLimit))
	}

	if !slices.Contains([]string{"text", "json"}, c.LogFormat) {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
