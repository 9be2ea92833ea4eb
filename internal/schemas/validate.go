// Package schemas validates MatchResult documents received from clients against an embedded JSON Schema.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-match/internal/types"
)

//go:embed match_result.schema.json
var matchResultSchema string

const matchResultSchemaName = "match_result.schema.json"

var loadMatchResultSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(matchResultSchema))
	if err != nil {
		return nil, &SchemaLoadError{Path: matchResultSchemaName, Message: "invalid embedded schema", Cause: err}
	}
	return schema, nil
})

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// MatchResultSchema returns the raw JSON Schema text.
func MatchResultSchema() string {
	return matchResultSchema
}

// ValidateMatchResult checks raw JSON against the MatchResult schema.
// A document that is not JSON at all is reported as a ValidationError on (root).
func ValidateMatchResult(raw []byte) error {
	schema, err := loadMatchResultSchema()
	if err != nil {
		return err
	}

	if !json.Valid(raw) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document is not valid JSON"}}}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// DecodeMatchResult validates raw and decodes it.
func DecodeMatchResult(raw []byte) (*types.MatchResult, error) {
	if err := ValidateMatchResult(raw); err != nil {
		return nil, err
	}

	var result types.MatchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("failed to decode match result: %w", err)
	}
	if result.Experience.JobHistory == nil {
		result.Experience.JobHistory = []types.JobRecord{}
	}
	return &result, nil
}
