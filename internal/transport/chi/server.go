// Package chi exposes the search engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	chiv5 "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/enthusiast-garage/dealersearch/internal/domain"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/request"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/result"
	"github.com/enthusiast-garage/dealersearch/internal/domain/search/scope"
	healthuc "github.com/enthusiast-garage/dealersearch/internal/usecase/health"
	recommenduc "github.com/enthusiast-garage/dealersearch/internal/usecase/recommend"
	searchuc "github.com/enthusiast-garage/dealersearch/internal/usecase/search"
)

// Error response codes.
type errorCode string

const (
	codeBadRequest          errorCode = "bad_request"
	codeValidationFailed    errorCode = "validation_failed"
	codeVehicleNotFound     errorCode = "vehicle_not_found"
	codeProductNotFound     errorCode = "product_not_found"
	codeNotFound            errorCode = "not_found"
	codeRateLimited         errorCode = "rate_limited"
	codeUpstreamUnavailable errorCode = "upstream_unavailable"
	codeInternalError       errorCode = "internal_error"
)

// IndexRefresher rebuilds the search indexes on demand.
type IndexRefresher interface {
	RefreshAll(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the search and recommendation services.
type Server struct {
	search        *searchuc.Service
	recommend     *recommenduc.Service
	refresher     IndexRefresher
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	recommend *recommenduc.Service,
	refresher IndexRefresher,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		recommend: recommend,
		refresher: refresher,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrVehicleNotFound, http.StatusNotFound, codeVehicleNotFound),
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, codeProductNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, codeRateLimited),
		sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusBadGateway, codeUpstreamUnavailable),
	}
	return s
}

// RegisterRoutes mounts all API routes on the router. Middleware is the
// caller's concern.
func (s *Server) RegisterRoutes(r chiv5.Router) {
	r.Get("/search", s.Search)
	r.Get("/vehicles/{slug}/parts", s.CompatibleParts)
	r.Get("/products/{handle}/vehicles", s.VehiclesWithPart)
	r.Post("/index/refresh", s.RefreshIndexes)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchResponse struct {
	Results      []result.Result `json:"results"`
	TotalResults int             `json:"totalResults"`
	SearchTimeMs int64           `json:"searchTimeMs"`
}

// Search handles GET /search?q=...&type=...&limit=...
//
// The service treats a short query as "nothing to search" and answers
// empty; at the HTTP boundary a caller sending one is holding the API
// wrong, so it gets a 400 instead.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < request.MinQueryLength || len(q) > request.MaxQueryLength {
		msg := fmt.Sprintf("q must be between %d and %d characters", request.MinQueryLength, request.MaxQueryLength)
		writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, codeValidationFailed, "limit must be a positive integer")
			return
		}
		limit = v
	}

	start := time.Now()
	results, err := s.search.Search(r.Context(), q, scope.Scope(r.URL.Query().Get("type")), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results:      results,
		TotalResults: len(results),
		SearchTimeMs: time.Since(start).Milliseconds(),
	})
}

type compatiblePartsResponse struct {
	Parts []recommenduc.RankedPart `json:"parts"`
	Total int                      `json:"total"`
}

// CompatibleParts handles GET /vehicles/{slug}/parts.
func (s *Server) CompatibleParts(w http.ResponseWriter, r *http.Request) {
	slug := chiv5.URLParam(r, "slug")

	parts, err := s.recommend.CompatibleParts(r.Context(), slug)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, compatiblePartsResponse{Parts: parts, Total: len(parts)})
}

type vehiclesWithPartResponse struct {
	Vehicles []domain.Vehicle `json:"vehicles"`
	Total    int              `json:"total"`
}

// VehiclesWithPart handles GET /products/{handle}/vehicles.
func (s *Server) VehiclesWithPart(w http.ResponseWriter, r *http.Request) {
	handle := chiv5.URLParam(r, "handle")

	vehicles, err := s.recommend.VehiclesWithPart(r.Context(), handle)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, vehiclesWithPartResponse{Vehicles: vehicles, Total: len(vehicles)})
}

// RefreshIndexes handles POST /index/refresh.
func (s *Server) RefreshIndexes(w http.ResponseWriter, r *http.Request) {
	if err := s.refresher.RefreshAll(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshed"})
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: report.Status, Checks: report.Checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrVehicleNotFound,
		domain.ErrProductNotFound,
		domain.ErrNotFound,
		domain.ErrRateLimited,
		domain.ErrUpstreamUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
