package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsim/internal/bootstrap"
	"github.com/kailas-cloud/docsim/internal/config"
	"github.com/kailas-cloud/docsim/internal/domain"
	logpkg "github.com/kailas-cloud/docsim/internal/logger"
	"github.com/kailas-cloud/docsim/internal/pipeline"
	"github.com/kailas-cloud/docsim/internal/similarity"
	checkuc "github.com/kailas-cloud/docsim/internal/usecase/check"
)

type globalFlags struct {
	env        string
	configPath string
	verbose    bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *zap.Logger

	store *bootstrap.ResultStore
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (config.Config, error) {
	c.configOnce.Do(func() {
		var (
			cfg config.Config
			err error
		)
		if path := strings.TrimSpace(c.flags.configPath); path != "" {
			cfg, err = config.LoadFile(path)
		} else {
			cfg, err = config.Load(c.flags.env)
		}
		if err != nil {
			c.configErr = fmt.Errorf("%w: %w", domain.ErrSetup, err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) log() *zap.Logger {
	c.loggerOnce.Do(func() {
		l, err := logpkg.NewCLILogger(c.flags.verbose)
		if err != nil {
			l = zap.NewNop()
		}
		c.logger = l
	})
	return c.logger
}

// checkService builds the comparison service. The result store is opened only when
// withStore is set.
func (c *commandContext) checkService(cmdCtx context.Context, withStore bool) (*checkuc.Service, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	var store checkuc.ResultStore
	if withStore {
		rs, err := bootstrap.OpenResultStore(cmdCtx, cfg.Storage, c.log())
		if err != nil {
			return nil, err
		}
		c.store = rs
		store = rs.Store
	}

	p := pipeline.New(similarity.Options{MinTokenLength: cfg.Similarity.MinTokenLength})
	return checkuc.New(p, store).
		WithSaveTimeout(time.Duration(cfg.Storage.SaveTimeoutMs) * time.Millisecond).
		WithPagination(cfg.Storage.PageSize, cfg.Storage.MaxPageSize), nil
}

func (c *commandContext) close() {
	c.store.Close()
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
