package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGeminiConfig(t *testing.T) {
	config := DefaultGeminiConfig("key")

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.Model)
	assert.Equal(t, float32(0.7), config.Temperature)
	assert.Equal(t, 1024, config.MaxTokens)
	assert.NoError(t, config.Validate())
}

func TestDefaultOllamaConfig(t *testing.T) {
	config := DefaultOllamaConfig()

	assert.Equal(t, ProviderOllama, config.Provider)
	assert.Equal(t, "mistral", config.Model)
	assert.Equal(t, "http://localhost:11434", config.BaseURL)
	assert.NoError(t, config.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		msg    string
	}{
		{"gemini without key", DefaultGeminiConfig(""), "API key is required"},
		{"ollama without url", &Config{Provider: ProviderOllama, Model: "mistral"}, "base URL is required"},
		{"no model", &Config{Provider: ProviderOllama, BaseURL: "http://x"}, "model is required"},
		{"unknown provider", &Config{Provider: "other", Model: "m"}, "unknown provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestWithModel(t *testing.T) {
	original := DefaultOllamaConfig()
	modified := original.WithModel("llama3")

	assert.Equal(t, "llama3", modified.Model)
	assert.Equal(t, "mistral", original.Model)
	assert.Equal(t, original.BaseURL, modified.BaseURL)
}

func TestNewClient_Ollama(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultOllamaConfig())
	require.NoError(t, err)
	defer client.Close()

	assert.IsType(t, &OllamaClient{}, client)
	assert.Equal(t, "mistral", client.Model())
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(context.Background(), DefaultGeminiConfig(""))
	assert.Error(t, err)
}
