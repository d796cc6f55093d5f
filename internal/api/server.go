// Package api exposes the radio engine over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mwindeman/djradio/internal/app/session"
	"github.com/mwindeman/djradio/internal/app/synth"
	"github.com/mwindeman/djradio/internal/infra/config"
)

// Server holds the HTTP handler state.
type Server struct {
	synth    session.Synthesizer
	sessions *session.Manager
	defaults synthDefaults
	limiter  *clientLimiter
}

// synthDefaults fills request fields the caller omitted.
type synthDefaults struct {
	voice string
	rate  float64
	pitch float64
}

// NewServer creates the API server.
func NewServer(cfg *config.Config, synthesizer session.Synthesizer, sessions *session.Manager) *Server {
	return &Server{
		synth:    synthesizer,
		sessions: sessions,
		defaults: synthDefaults{
			voice: cfg.Synthesis.DefaultVoice,
			rate:  cfg.Synthesis.DefaultRate,
			pitch: cfg.Synthesis.DefaultPitch,
		},
		limiter: newClientLimiter(
			cfg.Synthesis.RateLimit.Requests,
			time.Duration(cfg.Synthesis.RateLimit.WindowSec)*time.Second,
		),
	}
}

// Handler returns the routed HTTP handler with h2c support so clients can
// speak HTTP/2 without TLS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /synthesize", s.handleSynthesize)
	mux.HandleFunc("GET /voices", s.handleVoices)
	mux.HandleFunc("GET /stations", s.handleStations)
	mux.HandleFunc("POST /sessions", s.handleOpenSession)
	mux.HandleFunc("POST /sessions/{id}/next", s.handleNextTurn)
	mux.HandleFunc("POST /sessions/{id}/request", s.handleRequest)
	mux.HandleFunc("POST /sessions/{id}/feedback", s.handleFeedback)
	mux.HandleFunc("POST /sessions/{id}/station", s.handleChangeStation)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleCloseSession)

	return h2c.NewHandler(logRequests(mux), &http2.Server{})
}

// logRequests logs each request at debug level.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zlog.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("handled request")
	})
}

// errorBody is the JSON error envelope. Details carries the underlying
// cause chain on 5xx responses and is omitted otherwise.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Warn().Err(err).Msg("failed to write response body")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeErrorDetails(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// statusFor maps a synthesis error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, synth.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, synth.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, synth.ErrSynthesisTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
