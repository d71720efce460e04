// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/report"
	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers.
type Dependencies interface {
	// Generate runs a request synchronously and stores the match.
	Generate(ctx context.Context, req service.GenerateRequest) (types.Match, error)
	// Submit queues a request; duplicate is set for a repeated request id.
	Submit(ctx context.Context, req service.GenerateRequest) (id string, duplicate bool, err error)

	Match(ctx context.Context, id string) (types.Match, error)
	Recent(ctx context.Context, n int) ([]types.Match, error)
	ScoreCard(ctx context.Context, a, b []model.Player) (report.BalanceScoreCard, error)
	MaxListLimit() int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	generateHandler  *GenerateHandler
	matchesHandler   *MatchesHandler
	scoreCardHandler *ScoreCardHandler

	logger logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the access logger. The default discards output.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		generateHandler:  NewGenerateHandler(deps),
		matchesHandler:   NewMatchesHandler(deps),
		scoreCardHandler: NewScoreCardHandler(deps),
		logger:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.instrument("healthz", s.healthHandler.HandleHealth))
	mux.HandleFunc("GET /stats", s.instrument("stats", s.statsHandler.HandleStats))
	mux.HandleFunc("POST /generate", s.instrument("generate", s.generateHandler.HandleGenerate))
	mux.HandleFunc("POST /matches", s.instrument("matches_submit", s.matchesHandler.HandleSubmit))
	mux.HandleFunc("GET /matches", s.instrument("matches_list", s.matchesHandler.HandleList))
	mux.HandleFunc("GET /matches/{id}", s.instrument("matches_get", s.matchesHandler.HandleGet))
	mux.HandleFunc("POST /scorecard", s.instrument("scorecard", s.scoreCardHandler.HandleScoreCard))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err with the status of its kind.
func writeError(w http.ResponseWriter, err error) {
	code, name := status(err)
	msg := http.StatusText(code)
	if err != nil && code < http.StatusInternalServerError {
		msg = err.Error()
	}
	writeJSON(w, code, errorResponse{Code: name, Message: msg})
}

// decodeJSON reads one JSON document into v, rejecting unknown fields and
// trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("decode body: trailing data after JSON document")
	}
	return nil
}
