// Package llm provides the language-model clients used to answer questions about a match result.
package llm

import (
	"fmt"
	"time"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini API
	ProviderGemini Provider = "gemini"
	// ProviderOllama is a local or self-hosted Ollama server
	ProviderOllama Provider = "ollama"
)

// Config holds the model configuration for a client.
type Config struct {
	Provider    Provider
	Model       string
	APIKey      string // Gemini only
	BaseURL     string // Ollama only
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig(apiKey string) *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		APIKey:      apiKey,
		Temperature: 0.7,
		MaxTokens:   1024,
		Timeout:     30 * time.Second,
	}
}

// DefaultOllamaConfig returns the default Ollama configuration
func DefaultOllamaConfig() *Config {
	return &Config{
		Provider:    ProviderOllama,
		Model:       "mistral",
		BaseURL:     "http://localhost:11434",
		Temperature: 0.7,
		MaxTokens:   1024,
		Timeout:     60 * time.Second,
	}
}

// Validate checks that the provider-specific fields are present.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("llm config: model is required")
	}
	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("llm config: API key is required for %s", c.Provider)
		}
	case ProviderOllama:
		if c.BaseURL == "" {
			return fmt.Errorf("llm config: base URL is required for %s", c.Provider)
		}
	default:
		return fmt.Errorf("llm config: unknown provider %q", c.Provider)
	}
	return nil
}

// WithModel returns a copy of the config using model.
func (c *Config) WithModel(model string) *Config {
	next := *c
	next.Model = model
	return &next
}
