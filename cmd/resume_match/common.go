package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/chat"
	"github.com/jonathan/resume-match/internal/config"
	"github.com/jonathan/resume-match/internal/ingestion"
	"github.com/jonathan/resume-match/internal/llm"
	"github.com/jonathan/resume-match/internal/matching"
	"github.com/jonathan/resume-match/internal/observability"
	"github.com/jonathan/resume-match/internal/skills"
	"github.com/jonathan/resume-match/internal/timeline"
)

var (
	configPath string
	appConfig  *config.Configuration
)

// loadAppConfig runs before every subcommand.
func loadAppConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := observability.SetupLogger(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// buildAnalyzer creates the analyzer from config; non-empty arguments override it.
func buildAnalyzer(cfg *config.Configuration, modeOverride, vocabularyOverride string) (*matching.Analyzer, error) {
	mode := cfg.TimelineMode()
	if modeOverride != "" {
		parsed, err := timeline.ParseMode(modeOverride)
		if err != nil {
			return nil, err
		}
		mode = parsed
	}

	opts := []matching.Option{matching.WithTimelineMode(mode)}

	vocabularyFile := cfg.Analysis.VocabularyFile
	if vocabularyOverride != "" {
		vocabularyFile = vocabularyOverride
	}
	if vocabularyFile != "" {
		vocab, err := skills.LoadVocabulary(vocabularyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, matching.WithVocabulary(vocab))
	}

	return matching.NewAnalyzer(opts...), nil
}

// buildResponder creates the chat responder for the configured provider.
// The returned close function must be called when done.
func buildResponder(ctx context.Context, cfg *config.Configuration) (chat.Responder, func(), error) {
	llmConfig := cfg.LLM()
	if llmConfig == nil {
		return chat.RuleResponder{}, func() {}, nil
	}

	client, err := llm.NewClient(ctx, llmConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s client: %w", llmConfig.Provider, err)
	}
	return chat.New(client), func() { _ = client.Close() }, nil
}

func readTextFile(path string) (string, error) {
	doc, err := ingestion.ReadFile(path)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

func currentYear() int {
	return time.Now().Year()
}
