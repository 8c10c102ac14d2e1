package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	unsetAll(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "./data/commands.db", cfg.DBPath)
	assert.Equal(t, "./config/tools.json", cfg.ToolsConfigPath)
	assert.Equal(t, DefaultCORSOrigins, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "/bin/sh", cfg.Exec.Shell)
	assert.Equal(t, 30*time.Second, cfg.Exec.Timeout)
	assert.Equal(t, 50, cfg.Exec.MaxLines)
	assert.Equal(t, "192.168.1.0/24", cfg.Discovery.Subnet)
	assert.Equal(t, 256, cfg.History.QueueSize)
	assert.Equal(t, 50, cfg.History.DefaultLimit)
	assert.Equal(t, "auto", cfg.LLM.Provider)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
}

func TestLoadOverrides(t *testing.T) {
	unsetAll(t)
	t.Setenv("PORT", "9001")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("EXEC_TIMEOUT", "5")
	t.Setenv("LLM_TIMEOUT", "1500ms")
	t.Setenv("LLM_PROVIDER", "Anthropic")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOOLS_CONFIG_PATH", "tools.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Second, cfg.Exec.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.LLM.Timeout)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "tools.yaml", cfg.ToolsConfigPath)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", ""},
		{"DB_PATH", ""},
		{"TOOLS_CONFIG_PATH", "tools.toml"},
		{"EXEC_MAX_LINES", "0"},
		{"HISTORY_QUEUE_SIZE", "-1"},
		{"LLM_PROVIDER", "gemini"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			unsetAll(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("X_INT", "nope")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_LEVEL", "loud")
	t.Setenv("X_LIST", " , ")

	assert.Equal(t, 3, getEnvInt("X_INT", 3))
	assert.Equal(t, time.Minute, getEnvDuration("X_DUR", time.Minute))
	assert.Equal(t, slog.LevelWarn, getEnvLevel("X_LEVEL", slog.LevelWarn))
	assert.Equal(t, []string{"a"}, getEnvList("X_LIST", []string{"a"}))
}

var envKeys = []string{
	"PORT", "DB_PATH", "TOOLS_CONFIG_PATH", "CORS_ORIGINS", "LOG_LEVEL",
	"EXEC_SHELL", "EXEC_TIMEOUT", "EXEC_MAX_LINES", "DISCOVERY_SUBNET",
	"HISTORY_QUEUE_SIZE", "HISTORY_DEFAULT_LIMIT", "LLM_PROVIDER",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "ANTHROPIC_API_KEY", "LLM_MODEL", "LLM_TIMEOUT",
}

// unsetAll clears every variable Load reads; t.Setenv restores them afterwards.
func unsetAll(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
