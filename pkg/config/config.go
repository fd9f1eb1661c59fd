package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// Config holds the environment-driven configuration for the timeloom CLI.
type Config struct {
	AppEnv     string `validate:"required,oneof=development production test"`
	LogLevel   string `validate:"required,oneof=debug info warn error"`
	LogFormat  string `validate:"required,oneof=text json"`
	LogFile    string
	RunTimeout int `validate:"gte=0"`
}

// Load reads configuration from the environment (and an optional .env file),
// applies defaults, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("TIMELOOM_ENV", "development"),
		LogLevel:   getEnv("TIMELOOM_LOG_LEVEL", "info"),
		LogFormat:  getEnv("TIMELOOM_LOG_FORMAT", "text"),
		LogFile:    getEnv("TIMELOOM_LOG_FILE", ""),
		RunTimeout: getIntEnv("TIMELOOM_RUN_TIMEOUT_SECONDS", 30),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}
