package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/chat"
	"github.com/jonathan/resume-match/internal/matching"
	"github.com/jonathan/resume-match/internal/schemas"
	"github.com/jonathan/resume-match/internal/types"
)

var version = "dev"

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the analysis as MCP tools over stdio",
	Long:  "Run a Model Context Protocol server on stdin/stdout exposing the analyze_match and explain_match tools.",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// AnalyzeMatchInput is the input for analyze_match.
type AnalyzeMatchInput struct {
	Resume         string `json:"resume"`
	JobDescription string `json:"job_description"`
	CurrentYear    int    `json:"current_year,omitempty"`
}

// ExplainMatchInput is the input for explain_match. MatchResult is left untyped so it is
// checked against the MatchResult schema exactly as /api/chat checks it.
type ExplainMatchInput struct {
	MatchResult any    `json:"match_result"`
	Question    string `json:"question"`
}

// ExplainMatchOutput is the structured output of explain_match.
type ExplainMatchOutput struct {
	Answer string `json:"answer"`
}

func runMCP(cmd *cobra.Command, _ []string) error {
	analyzer, err := buildAnalyzer(appConfig, "", "")
	if err != nil {
		return err
	}

	responder, closeResponder, err := buildResponder(cmd.Context(), appConfig)
	if err != nil {
		return err
	}
	defer closeResponder()

	server := newMCPServer(analyzer, responder)
	log.WithField("tools", 2).Info("mcp server starting on stdio")
	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}

func newMCPServer(analyzer *matching.Analyzer, responder chat.Responder) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "resume_match",
		Version: version,
	}, nil)

	registerAnalyzeMatch(server, analyzer)
	registerExplainMatch(server, responder)
	return server
}

func registerAnalyzeMatch(server *mcp.Server, analyzer *matching.Analyzer) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "analyze_match",
		Description: "Score a plain-text resume against a plain-text job description. Returns overall percentage and " +
			"letter grade, matching and missing skills, total experience, employment gaps and screening questions.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input AnalyzeMatchInput) (*mcp.CallToolResult, *types.MatchResult, error) {
		if strings.TrimSpace(input.Resume) == "" {
			return nil, nil, errors.New("resume is required")
		}
		if strings.TrimSpace(input.JobDescription) == "" {
			return nil, nil, errors.New("job_description is required")
		}

		year := input.CurrentYear
		if year == 0 {
			year = currentYear()
		}
		result, err := analyzer.Analyze(input.Resume, input.JobDescription, year)
		if err != nil {
			return nil, nil, err
		}
		return nil, result, nil
	})
}

func registerExplainMatch(server *mcp.Server, responder chat.Responder) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "explain_match",
		Description: "Answer a question about a result previously returned by analyze_match, e.g. " +
			"\"what skills are missing?\" or \"any concerns?\".",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ExplainMatchInput) (*mcp.CallToolResult, *ExplainMatchOutput, error) {
		if strings.TrimSpace(input.Question) == "" {
			return nil, nil, errors.New("question is required")
		}
		raw, err := json.Marshal(input.MatchResult)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid match_result: %w", err)
		}
		result, err := schemas.DecodeMatchResult(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid match_result: %w", err)
		}
		return nil, &ExplainMatchOutput{Answer: responder.Respond(ctx, result, input.Question)}, nil
	})
}
