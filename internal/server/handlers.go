package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-match/internal/ingestion"
	"github.com/jonathan/resume-match/internal/schemas"
	"github.com/jonathan/resume-match/internal/types"
)

const (
	resumePart  = "resume"
	jobDescPart = "jobDesc"

	msgFilesRequired  = "Resume and job description files are required"
	msgFieldsRequired = "Missing required fields"
)

// VocabularyResponse lists the skills the analyzer recognizes
type VocabularyResponse struct {
	Count  int      `json:"count"`
	Skills []string `json:"skills"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVocabulary returns the active skill vocabulary
func (s *Server) handleVocabulary(w http.ResponseWriter, _ *http.Request) {
	vocab := s.analyzer.Vocabulary()
	s.jsonResponse(w, http.StatusOK, VocabularyResponse{Count: vocab.Len(), Skills: vocab.Skills()})
}

// handleMatch analyzes a résumé against a job description.
// Accepts multipart uploads (resume, jobDesc) or a JSON AnalyzeRequest.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	req, err := s.readMatchRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.analyzer.Analyze(req.Resume, req.JobDescription, s.now().Year())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	requestLogger(r).
		WithField("percentage", result.OverallMatch.Percentage).
		WithField("grade", result.OverallMatch.Grade).
		Debug("match analyzed")

	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) readMatchRequest(r *http.Request) (*types.AnalyzeRequest, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, &ErrUnsupportedMedia{Reason: "missing or malformed content type"}
	}

	var req types.AnalyzeRequest
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, tooLarge
			}
			// multipart does not always wrap the reader error
			if strings.Contains(err.Error(), "request body too large") {
				return nil, &http.MaxBytesError{Limit: s.maxUploadBytes}
			}
			return nil, &ErrValidation{Field: "form", Message: "Invalid multipart form: " + err.Error()}
		}
		if req.Resume, err = readTextPart(r, resumePart); err != nil {
			return nil, err
		}
		if req.JobDescription, err = readTextPart(r, jobDescPart); err != nil {
			return nil, err
		}
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, tooLarge
			}
			return nil, &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()}
		}
		if !utf8.ValidString(req.Resume) || !utf8.ValidString(req.JobDescription) {
			return nil, &ErrUnsupportedMedia{Reason: "documents must be UTF-8 text"}
		}
		req.Resume = ingestion.CleanText(req.Resume)
		req.JobDescription = ingestion.CleanText(req.JobDescription)
	default:
		return nil, &ErrUnsupportedMedia{Reason: "content type " + mediaType}
	}

	if err := req.Validate(); err != nil {
		return nil, &ErrValidation{Field: "resume,jobDesc", Message: msgFilesRequired}
	}
	return &req, nil
}

// readTextPart returns the named upload (or plain form value) as normalized UTF-8 text.
func readTextPart(r *http.Request, name string) (string, error) {
	file, header, err := r.FormFile(name)
	if errors.Is(err, http.ErrMissingFile) {
		return ingestion.CleanText(r.FormValue(name)), nil
	}
	if err != nil {
		return "", &ErrValidation{Field: name, Message: "Invalid upload: " + err.Error()}
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !isTextUpload(ct) {
		return "", &ErrUnsupportedMedia{Part: name, Reason: "content type " + ct}
	}

	data, err := readAll(file)
	if err != nil {
		return "", err
	}
	doc, err := ingestion.Decode(data)
	if err != nil {
		return "", &ErrUnsupportedMedia{Part: name, Reason: "not UTF-8 text"}
	}
	requestLogger(r).WithField("part", name).WithField("sha256", doc.Hash).Debug("upload decoded")
	return doc.Text, nil
}

func readAll(file multipart.File) ([]byte, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// isTextUpload accepts text/* and the generic binary type browsers send for unknown extensions.
func isTextUpload(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/octet-stream"
}

// handleChat answers a question about a match result
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, tooLarge)
			return
		}
		s.writeError(w, r, &ErrValidation{Field: "body", Message: "Invalid request body: " + err.Error()})
		return
	}

	if req.Validate() != nil || strings.TrimSpace(req.Message) == "" || string(req.MatchResult) == "null" {
		s.writeError(w, r, &ErrValidation{Field: "message,matchResult", Message: msgFieldsRequired})
		return
	}

	result, err := schemas.DecodeMatchResult(req.MatchResult)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	answer := s.responder.Respond(r.Context(), result, req.Message)
	s.jsonResponse(w, http.StatusOK, types.ChatResponse{Response: answer})
}
