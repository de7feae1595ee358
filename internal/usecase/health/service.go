package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates comparisons work but results cannot be recorded.
	Degraded Status = "degraded"
	// Unhealthy indicates the comparison pipeline itself is failing.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db         DBPinger
	comparison ComparisonChecker
}

// New creates a Service. db is nil when no result store is configured.
func New(db DBPinger, comparison ComparisonChecker) *Service {
	return &Service{db: db, comparison: comparison}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			checks["result_store"] = CheckError
		} else {
			checks["result_store"] = CheckOK
		}
	}

	if s.comparison != nil {
		if err := s.comparison.HealthCheck(ctx); err != nil {
			checks["comparison"] = CheckError
		} else {
			checks["comparison"] = CheckOK
		}
	}

	status := Healthy
	switch {
	case checks["comparison"] == CheckError:
		status = Unhealthy
	case checks["result_store"] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
