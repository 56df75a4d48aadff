package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8080/api", cfg.BackendURL)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.BackendToken)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://inspections.example.com/api")
	t.Setenv("DEBOUNCE_MS", "500")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "https://inspections.example.com/api", cfg.BackendURL)
	assert.Equal(t, 500*time.Millisecond, cfg.DebounceDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("DEBOUNCE_MS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceDelay)
}
