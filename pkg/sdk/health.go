package docsim

import (
	"context"
	"errors"
	"time"

	healthuc "github.com/kailas-cloud/docsim/internal/usecase/health"
)

var errDegraded = errors.New("degraded")

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}

// Health probes the comparison pipeline and, when configured, the result store.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)
	var err error
	if report.Status != healthuc.Healthy {
		err = errDegraded
	}
	c.obs.observe("health", start, err)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
