package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/server"
	"github.com/jonathan/resume-match/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing /api/match, /api/chat, /api/vocabulary and /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	port := cfg.App.Port
	if servePort > 0 {
		port = servePort
	}

	analyzer, err := buildAnalyzer(cfg, "", "")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	responder, closeResponder, err := buildResponder(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeResponder()

	srv, err := server.New(server.Config{
		Port:           port,
		AllowedOrigins: cfg.Origins(),
		MaxUploadBytes: cfg.App.MaxUploadBytes,
		ReadTimeout:    cfg.ReadTimeout(),
		WriteTimeout:   cfg.WriteTimeout(),
		RateLimit: ratelimit.NewConfig(
			cfg.RateLimitEnabled(),
			cfg.RateLimit.MatchPerMinute,
			cfg.RateLimit.ChatPerMinute,
			cfg.RateLimit.Whitelist,
		),
		Analyzer:  analyzer,
		Responder: responder,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
