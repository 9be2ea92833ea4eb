package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-match/internal/server/ratelimit"
	"github.com/jonathan/resume-match/internal/types"
)

const (
	testResume = "Senior engineer with React and Node.js.\nAcme 2015 - 2018\nGlobex 2019 - 2023\n"
	testJob    = "We need React, TypeScript and AWS."
)

type fakeResponder struct {
	message string
	result  *types.MatchResult
}

func (f *fakeResponder) Respond(_ context.Context, result *types.MatchResult, message string) string {
	f.message = message
	f.result = result
	return "fake answer"
}

func newTestServer(t *testing.T, mutate ...func(*Config)) *Server {
	t.Helper()
	cfg := Config{
		AllowedOrigins: []string{"http://localhost:3000"},
		Now:            func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
	for _, m := range mutate {
		m(&cfg)
	}

	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, parts map[string][]byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range parts {
		fw, err := mw.CreateFormFile(name, name+".txt")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/match", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")

	w := do(s, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestMatch_JSON(t *testing.T) {
	s := newTestServer(t)

	w := do(s, jsonRequest(t, http.MethodPost, "/api/match", types.AnalyzeRequest{Resume: testResume, JobDescription: testJob}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 53, result.OverallMatch.Percentage)
	assert.Equal(t, types.GradeD, result.OverallMatch.Grade)
	assert.Equal(t, []types.MatchingSkill{{Name: "React", Match: 100}}, result.Skills.Matching)
	assert.Equal(t, []types.MissingSkill{
		{Name: "TypeScript", Importance: "High"},
		{Name: "AWS", Importance: "High"},
	}, result.Skills.Missing)
	assert.Equal(t, 7, result.Experience.TotalExperienceYears)
	assert.Contains(t, w.Body.String(), `"jobHistory":[]`)
}

func TestMatch_Multipart(t *testing.T) {
	s := newTestServer(t)

	w := do(s, multipartRequest(t, map[string][]byte{
		resumePart:  []byte(testResume),
		jobDescPart: []byte(testJob),
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 53, result.OverallMatch.Percentage)
}

func TestMatch_MissingPart(t *testing.T) {
	s := newTestServer(t)

	w := do(s, multipartRequest(t, map[string][]byte{resumePart: []byte(testResume)}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgFilesRequired, decodeError(t, w).Error)
}

func TestMatch_NonUTF8Upload(t *testing.T) {
	s := newTestServer(t)

	w := do(s, multipartRequest(t, map[string][]byte{
		resumePart:  {0xff, 0xfe, 0x00, 0x41},
		jobDescPart: []byte(testJob),
	}))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestMatch_UnsupportedContentType(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/match", strings.NewReader("<xml/>"))
	req.Header.Set("Content-Type", "text/xml")

	w := do(s, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestMatch_JobWithoutSkills(t *testing.T) {
	s := newTestServer(t)

	w := do(s, jsonRequest(t, http.MethodPost, "/api/match", types.AnalyzeRequest{Resume: testResume, JobDescription: "Friendly team, great coffee."}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "no recognized skills")
}

func TestMatch_BlankResume(t *testing.T) {
	s := newTestServer(t)

	w := do(s, jsonRequest(t, http.MethodPost, "/api/match", types.AnalyzeRequest{Resume: "   ", JobDescription: testJob}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatch_TooLarge(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.MaxUploadBytes = 64 })

	w := do(s, jsonRequest(t, http.MethodPost, "/api/match", types.AnalyzeRequest{Resume: strings.Repeat("React ", 100), JobDescription: testJob}))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMatch_InvalidJSON(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/match", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")

	w := do(s, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_RoundTripWithRules(t *testing.T) {
	s := newTestServer(t)

	match := do(s, jsonRequest(t, http.MethodPost, "/api/match", types.AnalyzeRequest{Resume: testResume, JobDescription: testJob}))
	require.Equal(t, http.StatusOK, match.Code)

	w := do(s, jsonRequest(t, http.MethodPost, "/api/chat", map[string]any{
		"message":     "What is the score?",
		"matchResult": json.RawMessage(match.Body.Bytes()),
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The overall match is 53% (D). Partial match with significant skill gaps", resp.Response)
}

func TestChat_UsesResponder(t *testing.T) {
	responder := &fakeResponder{}
	s := newTestServer(t, func(c *Config) { c.Responder = responder })

	w := do(s, jsonRequest(t, http.MethodPost, "/api/chat", map[string]any{
		"message": "Any concerns?",
		"matchResult": map[string]any{
			"overallMatch":       map[string]any{"percentage": 91, "grade": "A+", "summary": "Excellent match with the job requirements"},
			"skills":             map[string]any{"matching": []any{}, "missing": []any{}},
			"experience":         map[string]any{"averageTenure": "3 years", "gaps": []any{}},
			"screeningQuestions": []string{},
		},
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.JSONEq(t, `{"response":"fake answer"}`, w.Body.String())
	assert.Equal(t, "Any concerns?", responder.message)
	require.NotNil(t, responder.result)
	assert.Equal(t, 91, responder.result.OverallMatch.Percentage)
}

func TestChat_MissingFields(t *testing.T) {
	s := newTestServer(t)

	bodies := []map[string]any{
		{"message": "hi"},
		{"message": "", "matchResult": map[string]any{}},
		{"message": "hi", "matchResult": nil},
		{"message": "   ", "matchResult": map[string]any{"a": 1}},
	}
	for _, body := range bodies {
		w := do(s, jsonRequest(t, http.MethodPost, "/api/chat", body))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, msgFieldsRequired, decodeError(t, w).Error)
	}
}

func TestChat_InvalidMatchResult(t *testing.T) {
	s := newTestServer(t)

	w := do(s, jsonRequest(t, http.MethodPost, "/api/chat", map[string]any{
		"message":     "score?",
		"matchResult": map[string]any{"overallMatch": map[string]any{"percentage": "high"}},
	}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "Invalid match result", body.Error)
	assert.NotEmpty(t, body.Details)
}

func TestVocabularyEndpoint(t *testing.T) {
	s := newTestServer(t)

	w := do(s, httptest.NewRequest(http.MethodGet, "/api/vocabulary", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp VocabularyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, s.analyzer.Vocabulary().Len(), resp.Count)
	assert.Contains(t, resp.Skills, "React")
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := do(s, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = do(s, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/match", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w = do(s, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestCORS_Wildcard(t *testing.T) {
	s := newTestServer(t, func(c *Config) { c.AllowedOrigins = []string{"*"} })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example")
	w := do(s, req)

	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *Config) {
		c.RateLimit = &ratelimit.Config{
			Enabled: true,
			EndpointConfigs: []ratelimit.EndpointConfig{
				{Path: "/api/match", Method: "POST", Limit: 1, Window: time.Minute, Burst: 1},
			},
		}
	})

	first := do(s, jsonRequest(t, http.MethodPost, "/api/match", types.AnalyzeRequest{Resume: testResume, JobDescription: testJob}))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := do(s, jsonRequest(t, http.MethodPost, "/api/match", types.AnalyzeRequest{Resume: testResume, JobDescription: testJob}))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(s, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	}
}

func TestNew_InvalidPort(t *testing.T) {
	_, err := New(Config{Port: -1})
	assert.Error(t, err)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(s, httptest.NewRequest(http.MethodGet, "/nope", nil)).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(s, httptest.NewRequest(http.MethodGet, "/api/match", nil)).Code)
}
