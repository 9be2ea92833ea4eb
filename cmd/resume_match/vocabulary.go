package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/observability"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the active skill vocabulary",
	RunE:  runVocabulary,
}

var (
	vocabularyFile string
	vocabularyJSON bool
)

func init() {
	vocabularyCmd.Flags().StringVar(&vocabularyFile, "file", "", "Path to a skill vocabulary YAML file (overrides SKILL_VOCABULARY_FILE)")
	vocabularyCmd.Flags().BoolVar(&vocabularyJSON, "json", false, "Print the skills as a JSON array")
	rootCmd.AddCommand(vocabularyCmd)
}

func runVocabulary(cmd *cobra.Command, _ []string) error {
	analyzer, err := buildAnalyzer(appConfig, "", vocabularyFile)
	if err != nil {
		return err
	}
	skillNames := analyzer.Vocabulary().Skills()

	if vocabularyJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(skillNames)
	}

	source := "embedded default"
	switch {
	case vocabularyFile != "":
		source = vocabularyFile
	case appConfig.Analysis.VocabularyFile != "":
		source = appConfig.Analysis.VocabularyFile
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintVocabulary(source, skillNames)
	return nil
}
