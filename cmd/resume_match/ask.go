package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/observability"
	"github.com/jonathan/resume-match/internal/schemas"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask the chat assistant about a saved match result",
	Long:  "Load a MatchResult JSON file (as written by `analyze --json`) and answer a question about it with the configured chat provider.",
	RunE:  runAsk,
}

var (
	askResultFile string
	askQuestion   string
)

func init() {
	askCmd.Flags().StringVar(&askResultFile, "result", "", "Path to a MatchResult JSON file")
	askCmd.Flags().StringVarP(&askQuestion, "question", "q", "", "Question about the match")

	_ = askCmd.MarkFlagRequired("result")
	_ = askCmd.MarkFlagRequired("question")

	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(askResultFile)
	if err != nil {
		return fmt.Errorf("failed to read match result: %w", err)
	}

	result, err := schemas.DecodeMatchResult(data)
	if err != nil {
		return fmt.Errorf("invalid match result in %s: %w", askResultFile, err)
	}

	responder, closeResponder, err := buildResponder(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer closeResponder()

	answer := responder.Respond(cmd.Context(), result, askQuestion)
	observability.NewPrinter(cmd.OutOrStdout()).PrintAnswer(askQuestion, answer)
	return nil
}
