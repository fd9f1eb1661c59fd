package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvVars() {
	for _, v := range []string{
		"TIMELOOM_ENV", "TIMELOOM_LOG_LEVEL", "TIMELOOM_LOG_FORMAT",
		"TIMELOOM_LOG_FILE", "TIMELOOM_RUN_TIMEOUT_SECONDS",
	} {
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, 30, cfg.RunTimeout)
}

func TestLoad_WithCustomEnvVars(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("TIMELOOM_ENV", "production")
	os.Setenv("TIMELOOM_LOG_LEVEL", "debug")
	os.Setenv("TIMELOOM_LOG_FORMAT", "json")
	os.Setenv("TIMELOOM_RUN_TIMEOUT_SECONDS", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 120, cfg.RunTimeout)
}

func TestLoad_RejectsInvalidAppEnv(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("TIMELOOM_ENV", "staging-typo")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RejectsInvalidLogLevel(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("TIMELOOM_LOG_LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		appEnv   string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"test", false},
	}

	for _, tt := range tests {
		t.Run(tt.appEnv, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.appEnv}
			assert.Equal(t, tt.expected, cfg.IsDevelopment())
		})
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		appEnv   string
		expected bool
	}{
		{"development", false},
		{"production", true},
		{"test", false},
	}

	for _, tt := range tests {
		t.Run(tt.appEnv, func(t *testing.T) {
			cfg := &Config{AppEnv: tt.appEnv}
			assert.Equal(t, tt.expected, cfg.IsProduction())
		})
	}
}

func TestGetEnv(t *testing.T) {
	value := getEnv("NON_EXISTENT_VAR", "default")
	assert.Equal(t, "default", value)

	os.Setenv("TEST_VAR", "custom")
	defer os.Unsetenv("TEST_VAR")
	value = getEnv("TEST_VAR", "default")
	assert.Equal(t, "custom", value)
}

func TestGetIntEnv(t *testing.T) {
	value := getIntEnv("NON_EXISTENT_INT", 42)
	assert.Equal(t, 42, value)

	os.Setenv("TEST_INT", "100")
	defer os.Unsetenv("TEST_INT")
	value = getIntEnv("TEST_INT", 42)
	assert.Equal(t, 100, value)

	os.Setenv("TEST_INVALID_INT", "not-a-number")
	defer os.Unsetenv("TEST_INVALID_INT")
	value = getIntEnv("TEST_INVALID_INT", 42)
	assert.Equal(t, 42, value)
}
