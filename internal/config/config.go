// Package config loads service configuration from an optional YAML file, environment variables and defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gotify/configor"

	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/timeline"
)

// DefaultFile is read when no explicit config path is given. Its absence is not an error.
const DefaultFile = "config.yml"

// Chat providers. ProviderRules answers with keyword rules and needs no model.
const (
	ProviderRules  = "rules"
	ProviderGemini = string(llm.ProviderGemini)
	ProviderOllama = string(llm.ProviderOllama)
)

// Configuration holds every tunable of the service and the CLI.
type Configuration struct {
	App struct {
		Port               int    `default:"3002" env:"PORT"`
		AllowedOrigins     string `default:"http://localhost:3000,http://localhost:3001,http://localhost:3002,http://localhost:3003,http://localhost:3004" env:"CORS_ALLOWED_ORIGINS"`
		MaxUploadBytes     int64  `default:"5242880" env:"MAX_UPLOAD_BYTES"`
		ReadTimeoutSeconds int    `default:"15" env:"READ_TIMEOUT_SECONDS"`
		// Chat calls to an LLM can take a while.
		WriteTimeoutSeconds int `default:"90" env:"WRITE_TIMEOUT_SECONDS"`
	}
	Log struct {
		Level  string `default:"info" env:"LOG_LEVEL"`
		Format string `default:"text" env:"LOG_FORMAT"`
	}
	Analysis struct {
		TimelineMode   string `default:"chronological" env:"TIMELINE_MODE"`
		VocabularyFile string `default:"" env:"SKILL_VOCABULARY_FILE"`
	}
	Chat struct {
		Provider       string `default:"rules" env:"CHAT_PROVIDER"`
		GeminiAPIKey   string `default:"" env:"GEMINI_API_KEY"`
		GeminiModel    string `default:"gemini-2.5-flash" env:"GEMINI_MODEL"`
		OllamaURL      string `default:"http://localhost:11434" env:"OLLAMA_URL"`
		OllamaModel    string `default:"mistral" env:"OLLAMA_MODEL"`
		TimeoutSeconds int    `default:"60" env:"CHAT_TIMEOUT_SECONDS"`
	}
	RateLimit struct {
		Enabled        *bool `default:"true" env:"RATE_LIMIT_ENABLED"`
		MatchPerMinute int   `default:"30" env:"RATE_LIMIT_MATCH_PER_MINUTE"`
		ChatPerMinute  int   `default:"20" env:"RATE_LIMIT_CHAT_PER_MINUTE"`
		// Comma-separated client IPs that are never limited.
		Whitelist string `default:"" env:"RATE_LIMIT_WHITELIST"`
	}
}

// Load reads path (or DefaultFile when path is empty), then applies environment overrides and defaults.
// An explicit path that does not exist is an error.
func Load(path string) (*Configuration, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	} else {
		path = DefaultFile
	}

	conf := new(Configuration)
	if err := configor.New(&configor.Config{}).Load(conf, path); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return conf, nil
}

// Validate checks that the configuration has valid values.
func (c *Configuration) Validate() error {
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("config error: port must be between 1 and 65535, got %d", c.App.Port)
	}
	if c.App.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: max upload bytes must be positive")
	}
	if _, err := timeline.ParseMode(c.Analysis.TimelineMode); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Chat.Provider {
	case ProviderRules, ProviderOllama:
	case ProviderGemini:
		if c.Chat.GeminiAPIKey == "" {
			return fmt.Errorf("config error: GEMINI_API_KEY is required when chat provider is %q", ProviderGemini)
		}
	default:
		return fmt.Errorf("config error: unknown chat provider %q (want %s, %s or %s)",
			c.Chat.Provider, ProviderRules, ProviderGemini, ProviderOllama)
	}

	if c.RateLimitEnabled() && (c.RateLimit.MatchPerMinute <= 0 || c.RateLimit.ChatPerMinute <= 0) {
		return fmt.Errorf("config error: rate limits must be positive when rate limiting is enabled")
	}
	return nil
}

// Origins splits AllowedOrigins into a trimmed, non-empty list.
func (c *Configuration) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.App.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// TimelineMode returns the parsed timeline mode, falling back to the default.
func (c *Configuration) TimelineMode() timeline.Mode {
	mode, err := timeline.ParseMode(c.Analysis.TimelineMode)
	if err != nil {
		return timeline.DefaultMode
	}
	return mode
}

// RateLimitEnabled reports whether request rate limiting is on.
func (c *Configuration) RateLimitEnabled() bool {
	return c.RateLimit.Enabled == nil || *c.RateLimit.Enabled
}

// ReadTimeout returns the HTTP server read timeout.
func (c *Configuration) ReadTimeout() time.Duration {
	return time.Duration(c.App.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the HTTP server write timeout.
func (c *Configuration) WriteTimeout() time.Duration {
	return time.Duration(c.App.WriteTimeoutSeconds) * time.Second
}

// LLM returns the model configuration for the chat provider, or nil for ProviderRules.
func (c *Configuration) LLM() *llm.Config {
	var cfg *llm.Config
	switch c.Chat.Provider {
	case ProviderGemini:
		cfg = llm.DefaultGeminiConfig(c.Chat.GeminiAPIKey)
		if c.Chat.GeminiModel != "" {
			cfg.Model = c.Chat.GeminiModel
		}
	case ProviderOllama:
		cfg = llm.DefaultOllamaConfig()
		cfg.BaseURL = c.Chat.OllamaURL
		if c.Chat.OllamaModel != "" {
			cfg.Model = c.Chat.OllamaModel
		}
	default:
		return nil
	}
	if c.Chat.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.Chat.TimeoutSeconds) * time.Second
	}
	return cfg
}
