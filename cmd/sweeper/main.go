package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/config"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/metrics"
	"github.com/porcinet/herdbook/internal/store"
	"github.com/porcinet/herdbook/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	once       = flag.Bool("once", false, "Run a single reconciliation cycle and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "herdbook-sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()

	registry := prometheus.NewRegistry()
	sweeperMetrics := metrics.New(registry)

	reconciler := sweeper.NewStaleMigrationReconciler(&sweeper.StaleMigrationReconcilerConfig{
		Schedule:       cfg.Reconciler.Schedule,
		StaleAfter:     cfg.Reconciler.StaleAfter,
		BatchSize:      cfg.Reconciler.BatchSize,
		WorkerPoolSize: cfg.Reconciler.Worker.WorkerPoolSize,
	}, dataStore, clock, sweeperMetrics)

	if *once {
		n, err := reconciler.RunCycle(ctx)
		if err != nil {
			logger.FatalCtx(ctx, "Reconciliation cycle failed", zap.Error(err), zap.Int("reconciled", n))
		}
		logger.InfoCtx(ctx, "Reconciliation cycle finished", zap.Int("reconciled", n))
		return
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorCtx(ctx, err, zap.String("component", "metrics"))
			}
		}()
	}

	logger.InfoCtx(ctx, "Initialized stale migration reconciler",
		zap.String("schedule", cfg.Reconciler.Schedule),
		zap.Duration("stale_after", cfg.Reconciler.StaleAfter),
		zap.Int("batch_size", cfg.Reconciler.BatchSize),
		zap.Int("worker_pool_size", cfg.Reconciler.Worker.WorkerPoolSize),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if err := serve(ctx, reconciler, sigCh, 10*time.Second); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("sweeper", reconciler.Name()))
	}

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}

	logger.Info("Sweeper stopped")
}

// serve runs s until a signal arrives or s fails, then stops it within shutdownTimeout
func serve(ctx context.Context, s sweeper.Sweeper, sigCh <-chan os.Signal, shutdownTimeout time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	var runErr error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case runErr = <-errChan:
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := s.Stop(shutdownCtx); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to stop %s: %w", s.Name(), err))
	}
	return runErr
}
