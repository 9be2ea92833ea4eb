package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-match/internal/schemas"
	"github.com/jonathan/resume-match/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnsupportedMedia indicates a request body or upload the service cannot read as text
type ErrUnsupportedMedia struct {
	Part   string
	Reason string
}

func (e *ErrUnsupportedMedia) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("unsupported media: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported media in %s: %s", e.Part, e.Reason)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		mediaErr      *ErrUnsupportedMedia
		tooLargeErr   *http.MaxBytesError
	)

	switch {
	case errors.Is(err, types.ErrInvalidInput),
		errors.As(err, &validationErr),
		errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &mediaErr):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// errorBody converts err into the response body for status.
func errorBody(status int, err error) ErrorResponse {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
	)

	switch {
	case status == http.StatusInternalServerError:
		return ErrorResponse{Error: "Internal server error", Details: err.Error()}
	case errors.As(err, &validationErr):
		return ErrorResponse{Error: validationErr.Message, Details: validationErr.Field}
	case errors.As(err, &schemaErr):
		return ErrorResponse{Error: "Invalid match result", Details: schemaErr.Error()}
	case status == http.StatusRequestEntityTooLarge:
		return ErrorResponse{Error: "Upload too large", Details: err.Error()}
	default:
		return ErrorResponse{Error: err.Error()}
	}
}
