package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `validate:"required,oneof=development test production"`
	Port        string `validate:"required,numeric"`
	BaseURL     string `validate:"required,url"`
	LogLevel    string `validate:"omitempty,oneof=debug info warn error"`

	API struct {
		URL     string        `validate:"required,url"`
		Timeout time.Duration `validate:"gt=0"`
	}

	Session struct {
		Secret     string        `validate:"required,min=16"`
		Timeout    time.Duration `validate:"gt=0"`
		MonitorTTL time.Duration `validate:"gtefield=Timeout"`
		// AuthWait is how long a page waits for the session check before
		// serving the loading placeholder. Zero waits for the answer.
		AuthWait time.Duration `validate:"gte=0"`
	}
}

// IsProduction reports whether cookies should be marked Secure
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LoadConfig reads .env files (if present) and the environment
func LoadConfig() (*Config, error) {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to load env file", "file", file, "error", err)
		}
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
	}

	var err error

	// API
	config.API.URL = getEnv("API_URL", "http://localhost:5000")
	if config.API.Timeout, err = getDuration("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Session
	config.Session.Secret = getEnv("SESSION_SECRET", "development-session-secret")
	if config.Session.Timeout, err = getDuration("SESSION_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if config.Session.MonitorTTL, err = getDuration("SESSION_MONITOR_TTL", 2*time.Hour); err != nil {
		return nil, err
	}
	if config.Session.AuthWait, err = getDuration("AUTH_WAIT", 0); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the config, refusing the development secret in production
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.IsProduction() && c.Session.Secret == "development-session-secret" {
		return errors.New("invalid config: SESSION_SECRET must be set in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration accepts Go durations ("90s") or a bare number of seconds
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
