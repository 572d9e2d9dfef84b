// Package migration converts populations between batch and individual bookkeeping
package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/porcinet/herdbook/internal/access"
	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/emitter"
	"github.com/porcinet/herdbook/internal/growth"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/metrics"
	"github.com/porcinet/herdbook/internal/store"
	"github.com/porcinet/herdbook/internal/store/schema"
)

// Config holds the migration engine settings
type Config struct {
	// DefaultStdDevPercent is the normal distribution spread used when the options leave it unset
	DefaultStdDevPercent    float64
	ExplodeWarningThreshold int
	FoldWarningThreshold    int
	// HistoryLimit caps the number of records History returns
	HistoryLimit int
	// FailureRetryInterval and FailureRetryMaxElapsed bound the retries of the failed-status write
	FailureRetryInterval   time.Duration
	FailureRetryMaxElapsed time.Duration
}

func (c Config) withDefaults() Config {
	if c.DefaultStdDevPercent <= 0 {
		c.DefaultStdDevPercent = domain.DEFAULT_STD_DEV_PERCENT
	}
	if c.ExplodeWarningThreshold <= 0 {
		c.ExplodeWarningThreshold = domain.EXPLODE_WARNING_THRESHOLD
	}
	if c.FoldWarningThreshold <= 0 {
		c.FoldWarningThreshold = domain.FOLD_WARNING_THRESHOLD
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = domain.DEFAULT_HISTORY_LIMIT
	}
	if c.FailureRetryInterval <= 0 {
		c.FailureRetryInterval = 200 * time.Millisecond
	}
	if c.FailureRetryMaxElapsed <= 0 {
		c.FailureRetryMaxElapsed = 10 * time.Second
	}
	return c
}

// ExplodeRequest asks to convert one batch into individual animals
type ExplodeRequest struct {
	BatchID string
	UserID  string
	Options ExplodeOptions
}

// ExplodeResult summarizes a completed explode
type ExplodeResult struct {
	MigrationID     string
	PigsCreated     int
	RecordsMigrated int
	AnimalIDs       []string
}

// FoldRequest asks to group individual animals into batches
type FoldRequest struct {
	AnimalIDs []string
	UserID    string
	Options   FoldOptions
}

// FoldResult summarizes a completed fold
type FoldResult struct {
	MigrationID       string
	BatchesCreated    int
	PigsMigrated      int
	SkippedGroups     int
	RecordsAggregated int
	BatchIDs          []string
}

// Service converts populations between batch and individual bookkeeping
//
//go:generate mockgen -source=engine.go -destination=../mocks/migration.go -package=mocks -mock_names=Service=MockMigrationService
type Service interface {
	// ExplodeBatch creates one individual animal per batch member and carries the batch history over
	ExplodeBatch(ctx context.Context, req ExplodeRequest) (*ExplodeResult, error)
	// FoldIndividuals groups individual animals into new batches
	FoldIndividuals(ctx context.Context, req FoldRequest) (*FoldResult, error)
	// PreviewExplode reports what ExplodeBatch would create, without writing
	PreviewExplode(ctx context.Context, req ExplodeRequest) (*ExplodePreview, error)
	// PreviewFold reports what FoldIndividuals would create, without writing
	PreviewFold(ctx context.Context, req FoldRequest) (*FoldPreview, error)
	// History lists a project's migration records, newest first
	History(ctx context.Context, projectID, userID string) ([]*schema.MigrationRecord, error)
}

// Engine is the Service implementation
type Engine struct {
	store      store.Store
	checker    access.OwnershipChecker
	classifier growth.StageClassifier
	clock      adapter.Clock
	random     adapter.Random
	json       adapter.JSON
	jcs        adapter.JCS
	emitter    emitter.Emitter
	metrics    *metrics.Metrics
	config     Config
}

// NewEngine creates a new migration engine
func NewEngine(
	st store.Store,
	checker access.OwnershipChecker,
	classifier growth.StageClassifier,
	clock adapter.Clock,
	random adapter.Random,
	jsonAdapter adapter.JSON,
	jcsAdapter adapter.JCS,
	em emitter.Emitter,
	m *metrics.Metrics,
	cfg Config,
) *Engine {
	return &Engine{
		store:      st,
		checker:    checker,
		classifier: classifier,
		clock:      clock,
		random:     random,
		json:       jsonAdapter,
		jcs:        jcsAdapter,
		emitter:    em,
		metrics:    m,
		config:     cfg.withDefaults(),
	}
}

// attempt describes one migration run for the audit ledger
type attempt struct {
	direction domain.MigrationDirection
	projectID string
	userID    string
	sourceIDs []string
	options   any
}

// applyFunc performs the migration inside the transaction and returns the created ids and the
// statistics stored on the record
type applyFunc func(tx store.Store) (targetIDs []string, statistics map[string]any, err error)

// execute records the attempt, runs apply in one transaction and completes the record in that same
// transaction. On failure everything apply wrote is rolled back and the record is marked failed by a
// separate write.
func (e *Engine) execute(ctx context.Context, a attempt, apply applyFunc) (*schema.MigrationRecord, error) {
	start := e.clock.Now()

	options, err := adapter.Canonicalize(e.json, e.jcs, a.options)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize options: %w", err)
	}

	record := &schema.MigrationRecord{
		ID:            ulid.MustNew(ulid.Timestamp(start), ulid.DefaultEntropy()).String(),
		MigrationType: a.direction,
		ProjectID:     a.projectID,
		UserID:        a.userID,
		SourceIDs:     schema.IDList(a.sourceIDs),
		Options:       options,
		Status:        domain.MigrationStatusInProgress,
		StartedAt:     start,
	}
	if err := e.store.CreateMigrationRecord(ctx, record); err != nil {
		return nil, domain.Errorf(domain.ErrTransactionFailure, "failed to create migration record: %w", err)
	}

	ctx = logger.WithOperation(ctx, logger.Operation{
		Name:      string(a.direction),
		ProjectID: a.projectID,
		UserID:    a.userID,
		SubjectID: record.ID,
	})
	logger.InfoCtx(ctx, "Migration started", zap.Int("sources", len(a.sourceIDs)))

	var statistics map[string]any
	err = e.store.WithTx(ctx, func(tx store.Store) error {
		targetIDs, stats, err := apply(tx)
		if err != nil {
			return err
		}
		statsJSON, err := e.json.Marshal(stats)
		if err != nil {
			return fmt.Errorf("failed to marshal statistics: %w", err)
		}
		statistics = stats
		return tx.CompleteMigrationRecord(ctx, store.CompleteMigrationInput{
			ID:          record.ID,
			TargetIDs:   targetIDs,
			Statistics:  statsJSON,
			CompletedAt: e.clock.Now(),
		})
	})
	elapsed := e.clock.Since(start)

	if err != nil {
		err = domain.AsTransactionFailure(err)
		logger.ErrorCtx(ctx, err, zap.String("message", "migration failed"), zap.Duration("elapsed", elapsed))

		e.markFailed(ctx, record.ID, err)
		e.metrics.ObserveMigration(string(a.direction), string(domain.MigrationStatusFailed), elapsed)
		e.emitter.Emit(ctx, domain.EventMigrationFailed, a.projectID, record.ID, map[string]any{
			"direction": string(a.direction),
			"error":     err.Error(),
		})
		return nil, err
	}

	e.metrics.ObserveMigration(string(a.direction), string(domain.MigrationStatusCompleted), elapsed)
	logger.InfoCtx(ctx, "Migration completed", zap.Any("statistics", statistics), zap.Duration("elapsed", elapsed))

	data := map[string]any{"direction": string(a.direction)}
	for k, v := range statistics {
		data[k] = v
	}
	e.emitter.Emit(ctx, domain.EventMigrationCompleted, a.projectID, record.ID, data)

	return record, nil
}

// markFailed writes the failed status outside the rolled-back transaction. It retries with
// exponential backoff and gives up quietly: the reconciler fails records left in_progress.
func (e *Engine) markFailed(ctx context.Context, id string, cause error) {
	ctx = context.WithoutCancel(ctx)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.config.FailureRetryInterval
	b.MaxElapsedTime = e.config.FailureRetryMaxElapsed

	operation := func() error {
		err := e.store.FailMigrationRecord(ctx, id, cause.Error(), e.clock.Now())
		if errors.Is(err, domain.ErrMigrationNotInProgress) {
			return backoff.Permanent(err)
		}
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, next time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Failed-status write failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "failed to mark migration record failed"),
			zap.String("migration_id", id))
	}
}

// History lists a project's migration records, newest first
func (e *Engine) History(ctx context.Context, projectID, userID string) ([]*schema.MigrationRecord, error) {
	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	if project == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "project %s not found", projectID)
	}
	if err := access.Authorize(ctx, e.checker, projectID, userID); err != nil {
		return nil, err
	}

	records, err := e.store.ListMigrationRecords(ctx, projectID, e.config.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list migration records: %w", err)
	}
	return records, nil
}

var _ Service = (*Engine)(nil)
