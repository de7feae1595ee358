package health

import "context"

// DBPinger checks result store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// ComparisonChecker checks that the comparison pipeline produces sane scores.
type ComparisonChecker interface {
	HealthCheck(ctx context.Context) error
}
