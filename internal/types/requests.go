package types

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest is the JSON form of a match request.
type AnalyzeRequest struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"jobDescription" validate:"required"`
}

// ChatRequest asks a question about a previously computed MatchResult.
// MatchResult is kept raw so it can be checked against the schema before decoding.
type ChatRequest struct {
	Message     string          `json:"message" validate:"required"`
	MatchResult json.RawMessage `json:"matchResult" validate:"required"`
}

// ChatResponse carries the assistant's answer.
type ChatResponse struct {
	Response string `json:"response"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
