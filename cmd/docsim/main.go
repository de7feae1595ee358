package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsim/internal/bootstrap"
	"github.com/kailas-cloud/docsim/internal/config"
	"github.com/kailas-cloud/docsim/internal/domain"
	logpkg "github.com/kailas-cloud/docsim/internal/logger"
	"github.com/kailas-cloud/docsim/internal/metrics"
	"github.com/kailas-cloud/docsim/internal/pipeline"
	"github.com/kailas-cloud/docsim/internal/similarity"
	chiTransport "github.com/kailas-cloud/docsim/internal/transport/chi"
	checkuc "github.com/kailas-cloud/docsim/internal/usecase/check"
	healthuc "github.com/kailas-cloud/docsim/internal/usecase/health"
	"github.com/kailas-cloud/docsim/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: load config: %v\n", domain.ErrSetup, err)
		os.Exit(1)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: create logger: %v\n", domain.ErrSetup, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docsim server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	ctx := context.Background()
	rs, err := bootstrap.OpenResultStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Result store unavailable", zap.Error(err))
	}
	defer rs.Close()

	// Register comparison metrics explicitly (no init())
	metrics.RegisterComparisonMetrics()

	p := pipeline.New(similarity.Options{MinTokenLength: cfg.Similarity.MinTokenLength})
	checkSvc := checkuc.New(p, rs.Store).
		WithSaveTimeout(time.Duration(cfg.Storage.SaveTimeoutMs) * time.Millisecond).
		WithPagination(cfg.Storage.PageSize, cfg.Storage.MaxPageSize)
	healthSvc := healthuc.New(rs.Pinger, checkSvc)

	server := chiTransport.NewServer(checkSvc, healthSvc, logger, chiTransport.Options{
		MaxFileBytes: cfg.Upload.MaxFileBytes,
	})

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
