// Package main provides the entry point for the résumé match CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_match",
	Short: "Résumé to job description match analysis",
	Long: "resume_match scores how well a résumé fits a job description: skill overlap, experience timeline, " +
		"letter grade and screening questions. Results can be explored with a chat assistant.",
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: ./config.yml if present)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
