package docsim

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsim/internal/bootstrap"
	"github.com/kailas-cloud/docsim/internal/config"
	"github.com/kailas-cloud/docsim/internal/domain/document"
	"github.com/kailas-cloud/docsim/internal/domain/result"
	"github.com/kailas-cloud/docsim/internal/pipeline"
	"github.com/kailas-cloud/docsim/internal/similarity"
	checkuc "github.com/kailas-cloud/docsim/internal/usecase/check"
	healthuc "github.com/kailas-cloud/docsim/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "docsim:"
)

// Internal interface, swapped out in tests.
type checkUseCase interface {
	Check(ctx context.Context, a, b document.Document) (checkuc.Result, error)
	Recent(ctx context.Context, limit int) ([]result.Record, error)
	Get(ctx context.Context, id string) (result.Record, error)
}

// Client is the docsim SDK entry point. It is safe for concurrent use.
type Client struct {
	checkSvc  checkUseCase
	healthSvc healthUseCase
	store     *bootstrap.ResultStore
	obs       *observer
}

// New creates a Client. When a result store is configured, the provided context
// bounds the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:         config.DriverNone,
		keyPrefix:      defaultKeyPrefix,
		minTokenLength: 1,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	sc, err := storageConfig(cfg)
	if err != nil {
		return nil, err
	}
	rs, err := bootstrap.OpenResultStore(ctx, sc, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("docsim: %w", err)
	}

	p := pipeline.New(similarity.Options{MinTokenLength: cfg.minTokenLength})
	checkSvc := checkuc.New(p, rs.Store).WithSaveTimeout(cfg.saveTimeout)
	healthSvc := healthuc.New(rs.Pinger, checkSvc)

	return &Client{
		checkSvc:  checkSvc,
		healthSvc: healthSvc,
		store:     rs,
		obs:       obs,
	}, nil
}

func storageConfig(cfg *clientConfig) (config.StorageConfig, error) {
	sc := config.StorageConfig{
		Driver:           cfg.driver,
		Addrs:            cfg.addrs,
		Password:         cfg.password,
		DB:               cfg.db,
		SQLitePath:       cfg.sqlitePath,
		KeyPrefix:        cfg.keyPrefix,
		HistoryLimit:     cfg.historyLimit,
		ReadinessTimeout: int(defaultReadinessTimeout / time.Second),
	}
	switch cfg.driver {
	case config.DriverNone:
	case config.DriverRedis, config.DriverValkey:
		if len(cfg.addrs) == 0 || cfg.addrs[0] == "" {
			return sc, fmt.Errorf("docsim: %s address required", cfg.driver)
		}
	case config.DriverSQLite:
		if cfg.sqlitePath == "" {
			return sc, fmt.Errorf("docsim: sqlite path required")
		}
	default:
		return sc, fmt.Errorf("docsim: unknown driver %q", cfg.driver)
	}
	return sc, nil
}

// Close releases the result store connection.
func (c *Client) Close() {
	c.store.Close()
}

// Compare scores two documents and records the outcome when history is enabled.
func (c *Client) Compare(ctx context.Context, a, b Document) (Comparison, error) {
	start := time.Now()
	res, err := c.checkSvc.Check(ctx, a.doc, b.doc)
	c.obs.observe("compare", start, err)
	if err != nil {
		return Comparison{}, err //nolint:wrapcheck // domain errors are re-exported as is
	}
	return comparisonFromResult(res), nil
}

// CompareFiles loads two files by path and compares them. The format is taken
// from each file extension.
func (c *Client) CompareFiles(ctx context.Context, pathA, pathB string) (Comparison, error) {
	a, err := FromFile(pathA)
	if err != nil {
		return Comparison{}, err
	}
	b, err := FromFile(pathB)
	if err != nil {
		return Comparison{}, err
	}
	return c.Compare(ctx, a, b)
}

// Recent returns up to limit records, newest first. limit <= 0 selects the default page size.
func (c *Client) Recent(ctx context.Context, limit int) ([]Record, error) {
	start := time.Now()
	recs, err := c.checkSvc.Recent(ctx, limit)
	c.obs.observe("results.list", start, err)
	if err != nil {
		return nil, err //nolint:wrapcheck // domain errors are re-exported as is
	}
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = recordFromDomain(r)
	}
	return out, nil
}

// Get returns one recorded comparison by ID.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	start := time.Now()
	rec, err := c.checkSvc.Get(ctx, id)
	c.obs.observe("results.get", start, err)
	if err != nil {
		return Record{}, err //nolint:wrapcheck // domain errors are re-exported as is
	}
	return recordFromDomain(rec), nil
}
