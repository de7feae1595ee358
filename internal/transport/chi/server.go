package chi

import (
	"net/http"
	"strconv"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsim/internal/domain/result"
	checkuc "github.com/kailas-cloud/docsim/internal/usecase/check"
	healthuc "github.com/kailas-cloud/docsim/internal/usecase/health"
)

const defaultMaxFileBytes = 20 << 20

// Options tunes request handling.
type Options struct {
	MaxFileBytes int64
}

// Server serves the upload form and the comparison API.
type Server struct {
	checks        *checkuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxFileBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server.
func NewServer(checks *checkuc.Service, health *healthuc.Service, logger *zap.Logger, opts Options) *Server {
	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxFileBytes
	}
	return &Server{
		checks:        checks,
		health:        health,
		logger:        logger,
		maxFileBytes:  maxBytes,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts all routes on r.
func (s *Server) Register(r gochi.Router) {
	r.Get("/", s.Index)
	r.Post("/", s.SubmitForm)
	r.Route("/api/v1/comparisons", func(r gochi.Router) {
		r.Post("/", s.CreateComparison)
		r.Get("/", s.ListComparisons)
		r.Get("/{id}", s.GetComparison)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
}

// ReportResponse carries token and vocabulary statistics of a comparison.
type ReportResponse struct {
	TokensA    int `json:"tokens_a"`
	TokensB    int `json:"tokens_b"`
	Vocabulary int `json:"vocabulary"`
	Shared     int `json:"shared"`
}

// ComparisonResponse is a stored or freshly computed comparison.
type ComparisonResponse struct {
	ID        string          `json:"id"`
	FileA     string          `json:"file_a"`
	FileB     string          `json:"file_b"`
	Score     float64         `json:"score"`
	Percent   string          `json:"percent"`
	CreatedAt time.Time       `json:"created_at"`
	Persisted *bool           `json:"persisted,omitempty"`
	Report    *ReportResponse `json:"report,omitempty"`
}

// ComparisonListResponse wraps a page of records.
type ComparisonListResponse struct {
	Items []ComparisonResponse `json:"items"`
}

// HealthResponse reports aggregated health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// CreateComparison handles POST /api/v1/comparisons.
func (s *Server) CreateComparison(w http.ResponseWriter, r *http.Request) {
	a, b, err := readUploads(w, r, s.maxFileBytes)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	res, err := s.checks.Check(r.Context(), a, b)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := recordToResponse(res.Record)
	persisted := res.Persisted
	resp.Persisted = &persisted
	resp.Report = &ReportResponse{
		TokensA:    res.Report.TokensA,
		TokensB:    res.Report.TokensB,
		Vocabulary: res.Report.Vocabulary,
		Shared:     res.Report.Shared,
	}
	if persisted {
		w.Header().Set("Location", "/api/v1/comparisons/"+res.Record.ID)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListComparisons handles GET /api/v1/comparisons.
func (s *Server) ListComparisons(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, CodeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	recs, err := s.checks.Recent(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]ComparisonResponse, len(recs))
	for i, rec := range recs {
		items[i] = recordToResponse(rec)
	}
	writeJSON(w, http.StatusOK, ComparisonListResponse{Items: items})
}

// GetComparison handles GET /api/v1/comparisons/{id}.
func (s *Server) GetComparison(w http.ResponseWriter, r *http.Request) {
	rec, err := s.checks.Get(r.Context(), gochi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToResponse(rec))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func recordToResponse(rec result.Record) ComparisonResponse {
	return ComparisonResponse{
		ID:        rec.ID,
		FileA:     rec.FileA,
		FileB:     rec.FileB,
		Score:     rec.Score,
		Percent:   rec.Percent(),
		CreatedAt: rec.CreatedAt,
	}
}
