// Package server provides the HTTP API for résumé matching and match-result chat.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/jonathan/resume-match/internal/chat"
	"github.com/jonathan/resume-match/internal/matching"
	"github.com/jonathan/resume-match/internal/server/ratelimit"
)

const (
	defaultMaxUploadBytes = 5 << 20
	shutdownTimeout       = 30 * time.Second
	requestIDHeader       = "X-Request-ID"
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	analyzer       *matching.Analyzer
	responder      chat.Responder
	rateLimiter    *ratelimit.Limiter
	allowedOrigins map[string]bool
	allowAnyOrigin bool
	maxUploadBytes int64
	now            func() time.Time
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins []string // "*" allows any origin
	MaxUploadBytes int64
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RateLimit      *ratelimit.Config // nil disables rate limiting
	Analyzer       *matching.Analyzer
	Responder      chat.Responder
	Now            func() time.Time // supplies the current year for "Present" ranges
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	s := &Server{
		analyzer:       cfg.Analyzer,
		responder:      cfg.Responder,
		allowedOrigins: make(map[string]bool),
		maxUploadBytes: cfg.MaxUploadBytes,
		now:            cfg.Now,
	}
	if s.analyzer == nil {
		s.analyzer = matching.NewAnalyzer()
	}
	if s.responder == nil {
		s.responder = chat.RuleResponder{}
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = defaultMaxUploadBytes
	}
	if s.now == nil {
		s.now = time.Now
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			s.allowAnyOrigin = true
		}
		s.allowedOrigins[origin] = true
	}

	rl := cfg.RateLimit
	if rl == nil {
		rl = &ratelimit.Config{Enabled: false}
	}
	s.rateLimiter = ratelimit.NewLimiter(rl)

	readTimeout, writeTimeout := cfg.ReadTimeout, cfg.WriteTimeout
	if readTimeout <= 0 {
		readTimeout = 15 * time.Second
	}
	if writeTimeout <= 0 {
		writeTimeout = 90 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/match", s.handleMatch)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/vocabulary", s.handleVocabulary)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withLogging(s.withCORS(s.withRateLimit(mux)))
}

// Handler returns the fully wrapped request handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers for allowed origins
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (s.allowAnyOrigin || s.allowedOrigins[origin]) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging assigns a request ID and logs every request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(withRequestID(r.Context(), requestID)))

		entry := log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Info("request completed")
		}
	})
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request ID stored by the logging middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestLogger(r *http.Request) *log.Entry {
	return log.WithField("request_id", RequestID(r.Context()))
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("failed to encode JSON response")
	}
}

// writeError maps err to a status code and writes the error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		requestLogger(r).WithError(err).Error("request failed")
	}
	s.jsonResponse(w, status, errorBody(status, err))
}

// extractClientID uses the remote IP address as the client identifier.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	retryAfter := int(math.Ceil(info.RetryAfter.Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))

	requestLogger(r).
		WithField("client", extractClientID(r)).
		WithField("path", r.URL.Path).
		WithField("limit", info.Limit).
		Warn("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, ErrorResponse{
		Error:   "Rate limit exceeded. Please try again later.",
		Details: fmt.Sprintf("retry after %d seconds", retryAfter),
	})
}
