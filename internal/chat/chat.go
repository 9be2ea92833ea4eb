// Package chat answers free-form questions about a MatchResult, either through an LLM or with
// keyword rules when no model is configured.
package chat

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/prompts"
	"github.com/jonathan/resume-match/internal/types"
)

// FallbackMessage is returned when the model cannot be reached or returns nothing.
const FallbackMessage = "I apologize, but I'm having trouble accessing the AI system. Please try again later."

const promptFile = "chat.json"

// Responder produces an answer for one question. Implementations never fail; degraded
// paths return a readable message instead.
type Responder interface {
	Respond(ctx context.Context, result *types.MatchResult, message string) string
}

// New returns an LLM-backed responder, or the rule-based one when client is nil.
func New(client llm.Client) Responder {
	if client == nil {
		return RuleResponder{}
	}
	return NewAssistant(client)
}

// Assistant sends the match result and question to an LLM.
type Assistant struct {
	client llm.Client
}

// NewAssistant creates an Assistant using client.
func NewAssistant(client llm.Client) *Assistant {
	return &Assistant{client: client}
}

func (a *Assistant) getLogger() *log.Entry {
	return log.WithField("component", "chat").WithField("model", a.client.Model())
}

// Respond asks the model and falls back to FallbackMessage on any failure.
func (a *Assistant) Respond(ctx context.Context, result *types.MatchResult, message string) string {
	system, user, err := BuildPrompt(result, message)
	if err != nil {
		a.getLogger().WithError(err).Error("failed to build chat prompt")
		return FallbackMessage
	}

	answer, err := a.client.Chat(ctx, system, user)
	if err != nil {
		a.getLogger().WithError(err).Warn("llm chat failed, returning fallback")
		return FallbackMessage
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		a.getLogger().Warn("llm returned an empty answer, returning fallback")
		return FallbackMessage
	}
	return answer
}

type promptData struct {
	*types.MatchResult
	Question string
}

// BuildPrompt renders the system instruction and the user prompt for a question.
func BuildPrompt(result *types.MatchResult, message string) (system, user string, err error) {
	if result == nil {
		return "", "", fmt.Errorf("match result is required")
	}

	system, err = prompts.Render(promptFile, "chat-system", nil)
	if err != nil {
		return "", "", err
	}
	user, err = prompts.Render(promptFile, "chat-user", promptData{MatchResult: result, Question: message})
	if err != nil {
		return "", "", err
	}
	return system, user, nil
}
