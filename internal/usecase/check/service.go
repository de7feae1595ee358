package check

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsim/internal/domain"
	"github.com/kailas-cloud/docsim/internal/domain/document"
	"github.com/kailas-cloud/docsim/internal/domain/result"
	"github.com/kailas-cloud/docsim/internal/logger"
	"github.com/kailas-cloud/docsim/internal/metrics"
	"github.com/kailas-cloud/docsim/internal/pipeline"
)

const defaultSaveTimeout = 2 * time.Second

// Result is a finished comparison and its audit record.
type Result struct {
	Record    result.Record
	Report    pipeline.Report
	Persisted bool
}

// Service runs comparisons and records their outcome.
type Service struct {
	cmp             Comparer
	store           ResultStore
	saveTimeout     time.Duration
	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
	newID           func() string
}

// New creates a check service. store may be nil, in which case nothing is persisted.
func New(cmp Comparer, store ResultStore) *Service {
	return &Service{
		cmp:             cmp,
		store:           store,
		saveTimeout:     defaultSaveTimeout,
		defaultPageSize: 20,
		maxPageSize:     100,
		now:             time.Now,
		newID:           uuid.NewString,
	}
}

// WithSaveTimeout bounds each result save.
func (s *Service) WithSaveTimeout(d time.Duration) *Service {
	if d > 0 {
		s.saveTimeout = d
	}
	return s
}

// WithPagination configures history page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// HistoryEnabled reports whether a result store is configured.
func (s *Service) HistoryEnabled() bool { return s.store != nil }

// Check compares a and b and saves the outcome. A failed save is logged and
// counted; the score is returned regardless.
func (s *Service) Check(ctx context.Context, a, b document.Document) (Result, error) {
	log := logger.FromContext(ctx).With(
		zap.String("file_a", a.Name()),
		zap.String("file_b", b.Name()),
		zap.String("format_a", string(a.Format())),
		zap.String("format_b", string(b.Format())),
	)

	start := time.Now()
	report, err := s.cmp.CompareDetailed(a, b)
	elapsed := time.Since(start)
	metrics.ComparisonDuration.Observe(elapsed.Seconds())

	if err != nil {
		status := statusLabel(err)
		metrics.ComparisonsTotal.WithLabelValues(status).Inc()
		var ee *domain.ExtractionError
		if errors.As(err, &ee) {
			metrics.ExtractionErrorsTotal.WithLabelValues(ee.Format, statusLabel(ee.Kind)).Inc()
		}
		log.Info("comparison rejected", zap.String("status", status), zap.Error(err), zap.Duration("duration", elapsed))
		return Result{}, err
	}

	metrics.ComparisonsTotal.WithLabelValues("ok").Inc()
	metrics.SimilarityScore.Observe(report.Score.Float64())

	rec := result.Record{
		ID:        s.newID(),
		FileA:     a.Name(),
		FileB:     b.Name(),
		Score:     report.Score.Float64(),
		CreatedAt: s.now().UTC(),
	}
	log.Info("comparison completed",
		zap.String("id", rec.ID),
		zap.Float64("score", rec.Score),
		zap.Int("vocabulary", report.Vocabulary),
		zap.Duration("duration", elapsed),
	)

	persisted := s.save(ctx, log, rec)
	return Result{Record: rec, Report: report, Persisted: persisted}, nil
}

func (s *Service) save(ctx context.Context, log *zap.Logger, rec result.Record) bool {
	if s.store == nil {
		return false
	}
	// The save outlives a cancelled request but never the timeout.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.saveTimeout)
	defer cancel()

	if err := s.store.Save(saveCtx, rec); err != nil {
		metrics.ResultStoreErrorsTotal.WithLabelValues("save").Inc()
		log.Warn("failed to save comparison result", zap.String("id", rec.ID), zap.Error(err))
		return false
	}
	return true
}

// Recent returns up to limit records, newest first. limit <= 0 uses the default page size.
func (s *Service) Recent(ctx context.Context, limit int) ([]result.Record, error) {
	if s.store == nil {
		return nil, domain.ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	recs, err := s.store.List(ctx, limit)
	if err != nil {
		metrics.ResultStoreErrorsTotal.WithLabelValues("list").Inc()
		return nil, fmt.Errorf("list results: %w", err)
	}
	return recs, nil
}

// Get returns a stored record by id.
func (s *Service) Get(ctx context.Context, id string) (result.Record, error) {
	if s.store == nil {
		return result.Record{}, domain.ErrHistoryDisabled
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			metrics.ResultStoreErrorsTotal.WithLabelValues("get").Inc()
		}
		return result.Record{}, fmt.Errorf("get result: %w", err)
	}
	return rec, nil
}

var selfTestDoc = document.New("probe.txt", document.FormatPlainText,
	document.Bytes("document similarity health probe"))

// HealthCheck compares a fixed document with itself and expects a full match.
func (s *Service) HealthCheck(_ context.Context) error {
	report, err := s.cmp.CompareDetailed(selfTestDoc, selfTestDoc)
	if err != nil {
		return fmt.Errorf("self-comparison: %w", err)
	}
	if report.Score.Float64() < 0.999 {
		return fmt.Errorf("self-comparison scored %s", report.Score.Percent())
	}
	return nil
}

// statusLabel names the error kind for metrics.
func statusLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return "unsupported_format"
	case errors.Is(err, domain.ErrDecode):
		return "decode_failed"
	case errors.Is(err, domain.ErrParse):
		return "parse_failed"
	case errors.Is(err, domain.ErrEmptyDocument):
		return "empty_document"
	default:
		return "error"
	}
}
