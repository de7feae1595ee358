// Package bootstrap performs host initialization shared by the server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docsim/internal/config"
	dbRedis "github.com/kailas-cloud/docsim/internal/db/redis"
	"github.com/kailas-cloud/docsim/internal/db/sqlite"
	"github.com/kailas-cloud/docsim/internal/domain"
	resultrepo "github.com/kailas-cloud/docsim/internal/repository/result"
	checkuc "github.com/kailas-cloud/docsim/internal/usecase/check"
	healthuc "github.com/kailas-cloud/docsim/internal/usecase/health"
)

// ResultStore is an opened result store together with its connectivity probe.
// Store and Pinger are nil when the driver is "none".
type ResultStore struct {
	Store  checkuc.ResultStore
	Pinger healthuc.DBPinger
	close  func()
}

// Close releases the underlying connection.
func (r *ResultStore) Close() {
	if r != nil && r.close != nil {
		r.close()
	}
}

// OpenResultStore connects the configured result store and waits until it answers.
// Failures are wrapped in domain.ErrSetup.
func OpenResultStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*ResultStore, error) {
	readiness := time.Duration(cfg.ReadinessTimeout) * time.Second

	switch cfg.Driver {
	case config.DriverNone:
		logger.Info("Result history disabled")
		return &ResultStore{}, nil

	case config.DriverRedis, config.DriverValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: create %s store: %w", domain.ErrSetup, cfg.Driver, err)
		}
		if err := store.WaitForReady(ctx, readiness); err != nil {
			store.Close()
			return nil, fmt.Errorf("%w: %s not ready: %w", domain.ErrSetup, cfg.Driver, err)
		}
		logger.Info("Connected to result store",
			zap.String("driver", cfg.Driver),
			zap.Strings("addrs", cfg.Addrs),
		)
		return &ResultStore{
			Store:  resultrepo.NewRedis(store, cfg.KeyPrefix, cfg.HistoryLimit),
			Pinger: store,
			close:  store.Close,
		}, nil

	case config.DriverSQLite:
		d, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%w: open sqlite: %w", domain.ErrSetup, err)
		}
		if err := d.WaitForReady(ctx, readiness); err != nil {
			_ = d.Close()
			return nil, fmt.Errorf("%w: sqlite not ready: %w", domain.ErrSetup, err)
		}
		logger.Info("Opened result store",
			zap.String("driver", cfg.Driver),
			zap.String("path", d.Path()),
		)
		return &ResultStore{
			Store:  resultrepo.NewSQL(d),
			Pinger: d,
			close:  func() { _ = d.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", domain.ErrSetup, cfg.Driver)
	}
}
