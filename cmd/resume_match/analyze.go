package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/matching"
	"github.com/jonathan/resume-match/internal/observability"
	"github.com/jonathan/resume-match/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one or more résumés against a job description",
	Long: "Analyze plain-text résumés against a plain-text job description. Several résumés are analyzed " +
		"concurrently and reported in the order given.",
	RunE: runAnalyze,
}

var (
	analyzeResumes     []string
	analyzeJob         string
	analyzeYear        int
	analyzeMode        string
	analyzeVocabulary  string
	analyzeJSON        bool
	analyzeConcurrency int
)

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeResumes, "resume", "r", nil, "Path to a résumé text file (repeatable)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to the job description text file")
	analyzeCmd.Flags().IntVar(&analyzeYear, "year", 0, "Year used for Present/Current ranges (default: this year)")
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", "", "Timeline mode: chronological or scan-order (overrides TIMELINE_MODE)")
	analyzeCmd.Flags().StringVar(&analyzeVocabulary, "vocabulary", "", "Path to a skill vocabulary YAML file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print JSON instead of a formatted summary")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 4, "Maximum résumés analyzed at once")

	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(analyzeCmd)
}

// fileResult is the outcome for one résumé file.
type fileResult struct {
	File   string             `json:"file"`
	Result *types.MatchResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	analyzer, err := buildAnalyzer(appConfig, analyzeMode, analyzeVocabulary)
	if err != nil {
		return err
	}

	year := analyzeYear
	if year == 0 {
		year = currentYear()
	}

	results, err := analyzeFiles(cmd.Context(), analyzer, analyzeResumes, analyzeJob, year, analyzeConcurrency)
	if err != nil {
		return err
	}

	if err := writeAnalyzeOutput(cmd.OutOrStdout(), results, analyzeJSON); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(results))
	}
	return nil
}

// analyzeFiles reads every file and runs the batch. Unreadable files fail the whole call;
// per-résumé analysis errors are reported in the result.
func analyzeFiles(ctx context.Context, analyzer *matching.Analyzer, resumePaths []string, jobPath string, year, concurrency int) ([]fileResult, error) {
	job, err := readTextFile(jobPath)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(resumePaths))
	for i, path := range resumePaths {
		if texts[i], err = readTextFile(path); err != nil {
			return nil, err
		}
	}

	items, err := analyzer.AnalyzeBatch(ctx, texts, job, year, concurrency)
	if err != nil {
		return nil, err
	}

	results := make([]fileResult, len(items))
	for i, item := range items {
		results[i] = fileResult{File: resumePaths[item.Index], Result: item.Result}
		if item.Err != nil {
			results[i].Error = item.Err.Error()
		}
	}
	return results, nil
}

// writeAnalyzeOutput prints a single MatchResult as plain JSON, several as a JSON array of
// fileResult, or boxed summaries when asJSON is false.
func writeAnalyzeOutput(w io.Writer, results []fileResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(results) == 1 && results[0].Error == "" {
			return enc.Encode(results[0].Result)
		}
		return enc.Encode(results)
	}

	printer := observability.NewPrinter(w)
	for _, r := range results {
		label := filepath.Base(r.File)
		if r.Error != "" {
			printer.PrintError(label, fmt.Errorf("%s", r.Error))
			continue
		}
		printer.PrintMatchResult(label, r.Result)
	}
	return nil
}
