package check

import (
	"context"

	"github.com/kailas-cloud/docsim/internal/domain/document"
	"github.com/kailas-cloud/docsim/internal/domain/result"
	"github.com/kailas-cloud/docsim/internal/pipeline"
)

// Comparer scores two documents.
type Comparer interface {
	CompareDetailed(a, b document.Document) (pipeline.Report, error)
}

// ResultStore defines the storage contract for comparison records.
type ResultStore interface {
	Save(ctx context.Context, rec result.Record) error
	Get(ctx context.Context, id string) (result.Record, error)
	List(ctx context.Context, limit int) ([]result.Record, error)
}
