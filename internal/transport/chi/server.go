// Package chi exposes the search service over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hollowbrook/sitesearch/internal/domain"
	"github.com/hollowbrook/sitesearch/internal/metrics"
	searchuc "github.com/hollowbrook/sitesearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes search requests to the per-locale engines.
type Server struct {
	engines       map[string]*searchuc.Service
	defaultLocale string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server over one search engine per locale.
func NewServer(engines map[string]*searchuc.Service, defaultLocale string, logger *zap.Logger) *Server {
	s := &Server{
		engines:       engines,
		defaultLocale: defaultLocale,
		logger:        logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrUnknownLocale, http.StatusNotFound, "unknown_locale"),
		sentinelHandler(domain.ErrInvalidOptions, http.StatusBadRequest, "invalid_options"),
	}
	return s
}

// Routes registers the API endpoints on a router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/api/search", s.SearchDocuments)
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type searchResponse struct {
	Query   string       `json:"query"`
	Lang    string       `json:"lang"`
	Count   int          `json:"count"`
	Results []resultItem `json:"results"`
}

type resultItem struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Permalink     string   `json:"permalink"`
	Summary       string   `json:"summary,omitempty"`
	Score         float64  `json:"score"`
	MatchedFields []string `json:"matched_fields"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchDocuments handles GET /api/search?q=...&lang=...
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = s.defaultLocale
	}

	engine, ok := s.engines[lang]
	if !ok {
		metrics.SearchQueriesTotal.WithLabelValues(lang, "error").Inc()
		s.handleDomainError(w, domain.ErrUnknownLocale)
		return
	}

	start := time.Now()
	matches, err := engine.Search(r.Context(), query)
	metrics.SearchQueryDuration.WithLabelValues(lang).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchQueriesTotal.WithLabelValues(lang, "error").Inc()
		s.handleDomainError(w, err)
		return
	}

	outcome := "miss"
	if len(matches) > 0 {
		outcome = "hit"
	}
	metrics.SearchQueriesTotal.WithLabelValues(lang, outcome).Inc()
	metrics.SearchResultCount.WithLabelValues(lang).Observe(float64(len(matches)))

	idx := engine.Index()
	results := make([]resultItem, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		item := resultItem{
			ID:            m.ID(),
			Score:         m.Score(),
			MatchedFields: m.MatchedFields(),
		}
		if doc, ok := idx.Lookup(m.ID()); ok {
			item.Title, _ = doc.Original("title")
			item.Permalink, _ = doc.Original("permalink")
			item.Summary, _ = doc.Original("summary")
		}
		results = append(results, item)
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Query:   query,
		Lang:    lang,
		Count:   len(results),
		Results: results,
	})
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	locales := make(map[string]int, len(s.engines))
	for locale, engine := range s.engines {
		locales[locale] = engine.Index().Len()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"locales": locales,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrUnknownLocale,
		domain.ErrInvalidOptions,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
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
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
