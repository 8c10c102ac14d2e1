// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port            string
	DBPath          string
	ToolsConfigPath string
	CORSOrigins     []string
	LogLevel        slog.Level
	Exec            ExecConfig
	Discovery       DiscoveryConfig
	History         HistoryConfig
	LLM             LLMConfig
}

// ExecConfig controls command execution.
type ExecConfig struct {
	Shell    string
	Timeout  time.Duration
	MaxLines int
}

// DiscoveryConfig controls the network sweep.
type DiscoveryConfig struct {
	Subnet string
}

// HistoryConfig controls command history persistence.
type HistoryConfig struct {
	QueueSize    int
	DefaultLimit int
}

// LLMConfig selects and authenticates the language-model provider.
type LLMConfig struct {
	Provider      string // "auto", "openai", "anthropic" or "none"
	OpenAIKey     string
	OpenAIBaseURL string
	AnthropicKey  string
	Model         string
	Timeout       time.Duration
}

// DefaultCORSOrigins are the local frontend dev servers.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		DBPath:          getEnv("DB_PATH", "./data/commands.db"),
		ToolsConfigPath: getEnv("TOOLS_CONFIG_PATH", "./config/tools.json"),
		CORSOrigins:     getEnvList("CORS_ORIGINS", DefaultCORSOrigins),
		LogLevel:        getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		Exec: ExecConfig{
			Shell:    getEnv("EXEC_SHELL", "/bin/sh"),
			Timeout:  getEnvDuration("EXEC_TIMEOUT", 30*time.Second),
			MaxLines: getEnvInt("EXEC_MAX_LINES", 50),
		},
		Discovery: DiscoveryConfig{
			Subnet: getEnv("DISCOVERY_SUBNET", "192.168.1.0/24"),
		},
		History: HistoryConfig{
			QueueSize:    getEnvInt("HISTORY_QUEUE_SIZE", 256),
			DefaultLimit: getEnvInt("HISTORY_DEFAULT_LIMIT", 50),
		},
		LLM: LLMConfig{
			Provider:      strings.ToLower(getEnv("LLM_PROVIDER", "auto")),
			OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			AnthropicKey:  getEnv("ANTHROPIC_API_KEY", ""),
			Model:         getEnv("LLM_MODEL", ""),
			Timeout:       getEnvDuration("LLM_TIMEOUT", 20*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ToolsConfigPath == "" {
		return fmt.Errorf("TOOLS_CONFIG_PATH cannot be empty")
	}
	switch strings.ToLower(filepath.Ext(c.ToolsConfigPath)) {
	case ".json", ".yaml", ".yml":
	default:
		return fmt.Errorf("TOOLS_CONFIG_PATH must be a .json, .yaml or .yml file")
	}
	if c.Exec.Shell == "" {
		return fmt.Errorf("EXEC_SHELL cannot be empty")
	}
	if c.Exec.Timeout <= 0 {
		return fmt.Errorf("EXEC_TIMEOUT must be > 0")
	}
	if c.Exec.MaxLines <= 0 {
		return fmt.Errorf("EXEC_MAX_LINES must be > 0")
	}
	if c.Discovery.Subnet == "" {
		return fmt.Errorf("DISCOVERY_SUBNET cannot be empty")
	}
	if c.History.QueueSize <= 0 {
		return fmt.Errorf("HISTORY_QUEUE_SIZE must be > 0")
	}
	if c.History.DefaultLimit <= 0 {
		return fmt.Errorf("HISTORY_DEFAULT_LIMIT must be > 0")
	}
	switch c.LLM.Provider {
	case "auto", "openai", "anthropic", "none":
	default:
		return fmt.Errorf("LLM_PROVIDER %q is not supported", c.LLM.Provider)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be > 0")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

// getEnvDuration accepts Go durations ("30s") and bare seconds ("30").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return fallback
	}
	return level
}
