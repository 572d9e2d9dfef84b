package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/metrics"
	"github.com/porcinet/herdbook/internal/store"
)

// StaleMigrationReconcilerConfig holds configuration for the stale migration reconciler
type StaleMigrationReconcilerConfig struct {
	Schedule       string        // Cron spec of the reconcile cycles, e.g. "@every 5m"
	StaleAfter     time.Duration // Records in_progress for longer than this are abandoned
	BatchSize      int           // Records reconciled per cycle
	WorkerPoolSize int           // Concurrent workers
}

// StaleMigrationReconciler implements the Sweeper interface. A migration whose process died between
// creating its record and writing the terminal status leaves the record in_progress forever;
// the reconciler closes such records as failed.
type StaleMigrationReconciler struct {
	config    *StaleMigrationReconcilerConfig
	store     store.Store
	clock     adapter.Clock
	metrics   *metrics.Metrics
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewStaleMigrationReconciler creates a new stale migration reconciler
func NewStaleMigrationReconciler(
	config *StaleMigrationReconcilerConfig,
	st store.Store,
	clock adapter.Clock,
	m *metrics.Metrics,
) *StaleMigrationReconciler {
	return &StaleMigrationReconciler{
		config:    config,
		store:     st,
		clock:     clock,
		metrics:   m,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *StaleMigrationReconciler) Name() string {
	return "stale-migration-reconciler"
}

// Start schedules the reconcile cycles and blocks until the context is canceled or Stop is called
func (s *StaleMigrationReconciler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	// A slow cycle is never overlapped by the next one
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.config.Schedule, func() {
		if _, err := s.RunCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}
	}); err != nil {
		return fmt.Errorf("invalid reconcile schedule %q: %w", s.config.Schedule, err)
	}

	logger.InfoCtx(ctx, "Starting stale migration reconciler",
		zap.String("schedule", s.config.Schedule),
		zap.Duration("stale_after", s.config.StaleAfter),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)
	c.Start()

	select {
	case <-ctx.Done():
		logger.InfoCtx(ctx, "Stale migration reconciler stopping due to context cancellation", zap.Error(ctx.Err()))
	case <-s.stopChan:
		logger.InfoCtx(ctx, "Stale migration reconciler stop requested")
	}

	// Wait for a running cycle to finish
	<-c.Stop().Done()
	return nil
}

// Stop gracefully stops the sweeper with timeout support
func (s *StaleMigrationReconciler) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping stale migration reconciler")

	// Signal stop to the main loop
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Stale migration reconciler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Stale migration reconciler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// RunCycle marks every stale in_progress record of one batch as failed and returns how many it
// closed. A record that reached a terminal status meanwhile is left as it is.
func (s *StaleMigrationReconciler) RunCycle(ctx context.Context) (int, error) {
	startTime := s.clock.Now()
	cutoff := startTime.Add(-s.config.StaleAfter)

	records, err := s.store.ListStaleMigrationRecords(ctx, cutoff, s.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale migration records: %w", err)
	}
	if len(records) == 0 {
		logger.DebugCtx(ctx, "No stale migration records")
		return 0, nil
	}

	logger.InfoCtx(ctx, "Found stale migration records", zap.Int("count", len(records)))

	message := fmt.Sprintf("abandoned: no terminal status recorded within %s", s.config.StaleAfter)
	var reconciled, skipped, failed atomic.Int32

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(len(records)),
		pond.WithContext(ctx),
	)
	for _, record := range records {
		pool.Submit(func() {
			err := s.store.FailMigrationRecord(ctx, record.ID, message, s.clock.Now())
			switch {
			case err == nil:
				reconciled.Add(1)
				logger.WarnCtx(ctx, "Abandoned migration marked failed",
					zap.String("migration_id", record.ID),
					zap.String("migration_type", string(record.MigrationType)),
					zap.String("project_id", record.ProjectID),
					zap.Time("started_at", record.StartedAt),
				)
			case errors.Is(err, domain.ErrMigrationNotInProgress):
				skipped.Add(1)
				logger.DebugCtx(ctx, "Migration reached a terminal status meanwhile", zap.String("migration_id", record.ID))
			default:
				failed.Add(1)
				logger.ErrorCtx(ctx, err, zap.String("migration_id", record.ID))
			}
		})
	}

	// Wait for all writes to complete
	pool.StopAndWait()

	s.metrics.ObserveReconciled(int(reconciled.Load()))
	logger.InfoCtx(ctx, "Reconcile cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int32("reconciled", reconciled.Load()),
		zap.Int32("skipped", skipped.Load()),
		zap.Int32("failed", failed.Load()),
	)

	if n := failed.Load(); n > 0 {
		return int(reconciled.Load()), fmt.Errorf("failed to reconcile %d migration records", n)
	}
	return int(reconciled.Load()), nil
}

var _ Sweeper = (*StaleMigrationReconciler)(nil)
