package chi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cyync-lookup/internal/domain"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/scope"
	"github.com/kailas-cloud/cyync-lookup/internal/logger"
	healthuc "github.com/kailas-cloud/cyync-lookup/internal/usecase/health"
)

const maxBodyBytes = 4 << 20

// LookupService runs the lookup pipeline.
type LookupService interface {
	Lookup(ctx context.Context, entities []domain.Entity, opts domain.Options) ([]domain.LookupResult, error)
}

// Server serves the lookup HTTP API.
type Server struct {
	lookup LookupService
	health *healthuc.Service
	conn   domain.Connection
	logger *zap.Logger
}

// NewServer creates an HTTP API server. conn holds the configured CYYNC
// connection, used when a validation request omits url or access token.
func NewServer(lookup LookupService, health *healthuc.Service, conn domain.Connection, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{lookup: lookup, health: health, conn: conn, logger: logger}
}

// Register mounts the API routes on r.
func (s *Server) Register(r chi.Router) {
	r.Post("/lookup", s.Lookup)
	r.Post("/options/validate", s.ValidateOptions)
	r.Get("/scopes", s.ListScopes)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// LookupRequest is the body of POST /lookup.
type LookupRequest struct {
	Entities []domain.Entity `json:"entities"`
	Options  domain.Options  `json:"options"`
}

// LookupResponse is the body of a successful POST /lookup.
type LookupResponse struct {
	Results []domain.LookupResult `json:"results"`
}

// Lookup handles POST /lookup.
func (s *Server) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.handleBadBody(w, r, err)
		return
	}

	for i := range req.Entities {
		req.Entities[i].Types = nonNilTypes(req.Entities[i].Types)
	}

	results, err := s.lookup.Lookup(r.Context(), req.Entities, req.Options)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	if results == nil {
		results = []domain.LookupResult{}
	}
	for i := range results {
		results[i].Entity.Types = nonNilTypes(results[i].Entity.Types)
	}
	writeJSON(w, http.StatusOK, LookupResponse{Results: results})
}

func nonNilTypes(types []string) []string {
	if types == nil {
		return []string{}
	}
	return types
}

// ValidateRequest is the body of POST /options/validate.
type ValidateRequest struct {
	domain.Connection
	domain.Options
}

// ValidateResponse lists every validation failure; empty means valid.
type ValidateResponse struct {
	Errors []domain.ValidationError `json:"errors"`
}

// ValidateOptions handles POST /options/validate.
func (s *Server) ValidateOptions(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.handleBadBody(w, r, err)
		return
	}
	if req.URL == "" {
		req.URL = s.conn.URL
	}
	if req.AccessToken == "" {
		req.AccessToken = s.conn.AccessToken
	}

	errs := domain.ValidateOptions(req.Connection, req.Options)
	if errs == nil {
		errs = []domain.ValidationError{}
	}
	writeJSON(w, http.StatusOK, ValidateResponse{Errors: errs})
}

// ListScopes handles GET /scopes.
func (s *Server) ListScopes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]scope.Scope{"scopes": scope.All()})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleBadBody(w http.ResponseWriter, r *http.Request, err error) {
	s.requestLogger(r).Debug("invalid request body", zap.Error(err))
	if s.handled(w, err) {
		return
	}
	writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
}

func (s *Server) handled(w http.ResponseWriter, err error) bool {
	for _, h := range errorHandlers {
		if h(w, err) {
			return true
		}
	}
	return false
}

func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	return logger.FromContextOr(r.Context(), s.logger)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
