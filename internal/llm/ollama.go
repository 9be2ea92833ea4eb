package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ollamaMessage is one chat turn in the Ollama /api/chat protocol.
type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
	Error   string        `json:"error,omitempty"`
}

// OllamaClient implements Client against an Ollama server
type OllamaClient struct {
	config *Config
	http   *http.Client
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(config *Config) *OllamaClient {
	return &OllamaClient{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
	}
}

func (c *OllamaClient) getLogger() *log.Entry {
	return log.
		WithField("llm", "ollama").
		WithField("model", c.config.Model)
}

// Chat sends one non-streaming chat request
func (c *OllamaClient) Chat(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]ollamaMessage, 0, 2)
	if system != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: system})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(ollamaChatRequest{
		Model:    c.config.Model,
		Messages: messages,
		Stream:   false,
		Options: ollamaOptions{
			Temperature: c.config.Temperature,
			NumPredict:  c.config.MaxTokens,
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode ollama request")
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to build ollama request")
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "ollama request failed")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read ollama response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out ollamaChatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", errors.Wrap(err, "failed to decode ollama response")
	}
	if out.Error != "" {
		return "", fmt.Errorf("ollama error: %s", out.Error)
	}

	c.getLogger().
		WithField("answer_duration_sec", time.Since(started).Seconds()).
		Debug("ollama chat completed")

	return out.Message.Content, nil
}

// Model returns the Ollama model name
func (c *OllamaClient) Model() string {
	return c.config.Model
}

// Close is a no-op; the HTTP client holds no dedicated resources.
func (c *OllamaClient) Close() error {
	return nil
}
