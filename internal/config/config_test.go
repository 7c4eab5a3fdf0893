package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/recommendations.db", cfg.DatabasePath)
	assert.Equal(t, "", cfg.APIKey, "auth must be disabled unless a key is configured")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("API_KEY", "sekret")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DatabasePath)
	assert.Equal(t, "sekret", cfg.APIKey)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}
