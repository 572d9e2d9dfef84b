// Package weighing attributes batch-level scale readings to anonymous batch members
package weighing

import (
	"context"
	"fmt"
	"time"

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

// Config holds the weighing engine settings
type Config struct {
	// DefaultADG is the daily gain in kg used when neither the batch nor the origin batch states one
	DefaultADG float64
}

// Request is one weighing session
type Request struct {
	BatchID      string
	UserID       string
	Measurements []float64
	// WeighingDate defaults to now
	WeighingDate *time.Time
	Notes        string
}

// Result is the recorded weighing event
type Result struct {
	ProjectID   string
	Weighing    *schema.BatchWeighing
	Assignments []schema.WeighingAssignment
	// BatchAverageWeightKg is the batch's recomputed average over all members
	BatchAverageWeightKg float64
}

// Service records weighings
//
//go:generate mockgen -source=engine.go -destination=../mocks/weighing.go -package=mocks -mock_names=Service=MockWeighingService
type Service interface {
	// RecordWeighing assigns each measurement to a distinct batch member and rolls the batch average forward
	RecordWeighing(ctx context.Context, req Request) (*Result, error)
}

// Engine is the Service implementation
type Engine struct {
	store   store.Store
	checker access.OwnershipChecker
	clock   adapter.Clock
	random  adapter.Random
	json    adapter.JSON
	emitter emitter.Emitter
	metrics *metrics.Metrics
	config  Config
}

// NewEngine creates a new weighing engine
func NewEngine(
	st store.Store,
	checker access.OwnershipChecker,
	clock adapter.Clock,
	random adapter.Random,
	jsonAdapter adapter.JSON,
	em emitter.Emitter,
	m *metrics.Metrics,
	cfg Config,
) *Engine {
	if cfg.DefaultADG <= 0 {
		cfg.DefaultADG = domain.DEFAULT_ADG_KG_PER_DAY
	}
	return &Engine{
		store:   st,
		checker: checker,
		clock:   clock,
		random:  random,
		json:    jsonAdapter,
		emitter: em,
		metrics: m,
		config:  cfg,
	}
}

// RecordWeighing assigns each measurement to a distinct batch member and rolls the batch average forward.
// Every write happens in one transaction; on error nothing is persisted.
func (e *Engine) RecordWeighing(ctx context.Context, req Request) (*Result, error) {
	ctx = logger.WithOperation(ctx, logger.Operation{Name: "record_weighing", UserID: req.UserID, SubjectID: req.BatchID})

	result, err := e.recordWeighing(ctx, req)
	e.metrics.ObserveWeighing(domain.KindName(err))
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "weighing failed"))
		return nil, err
	}

	logger.InfoCtx(ctx, "Weighing recorded",
		zap.String("weighing_id", result.Weighing.ID),
		zap.Int("count", result.Weighing.Count),
		zap.Float64("batch_average_weight_kg", result.BatchAverageWeightKg))

	e.emitter.Emit(ctx, domain.EventWeighingRecorded, result.ProjectID, req.BatchID, map[string]any{
		"weighing_id":             result.Weighing.ID,
		"count":                   result.Weighing.Count,
		"average_weight_kg":       result.Weighing.AverageWeightKg,
		"batch_average_weight_kg": result.BatchAverageWeightKg,
	})

	return result, nil
}

func (e *Engine) recordWeighing(ctx context.Context, req Request) (*Result, error) {
	measurements := FilterMeasurements(req.Measurements)
	if len(measurements) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "no valid measurement: at least one positive weight is required")
	}

	weighedAt := e.clock.Now()
	if req.WeighingDate != nil && !req.WeighingDate.IsZero() {
		weighedAt = req.WeighingDate.UTC()
	}

	batch, err := e.store.GetBatch(ctx, req.BatchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	if batch == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "batch %s not found", req.BatchID)
	}
	if err := access.Authorize(ctx, e.checker, batch.ProjectID, req.UserID); err != nil {
		return nil, err
	}
	if len(measurements) > batch.TotalCount {
		return nil, domain.Errorf(domain.ErrInvalidInput,
			"%d measurements exceed the %d animals in batch %s", len(measurements), batch.TotalCount, batch.PenName)
	}

	var result *Result
	err = e.store.WithTx(ctx, func(tx store.Store) error {
		var txErr error
		result, txErr = e.apply(ctx, tx, req, measurements, weighedAt)
		return txErr
	})
	if err != nil {
		return nil, domain.AsTransactionFailure(err)
	}

	return result, nil
}

// apply runs inside the transaction
func (e *Engine) apply(ctx context.Context, tx store.Store, req Request, measurements []float64, weighedAt time.Time) (*Result, error) {
	batch, err := tx.LockBatch(ctx, req.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "batch %s not found", req.BatchID)
	}

	members, err := tx.ListBatchAnimals(ctx, batch.ID)
	if err != nil {
		return nil, err
	}
	if len(measurements) > len(members) {
		return nil, domain.Errorf(domain.ErrInvalidInput,
			"%d measurements exceed the %d animals in batch %s", len(measurements), len(members), batch.PenName)
	}

	selected := selectCandidates(members, len(measurements))
	candidates, err := e.project(ctx, tx, batch, selected, weighedAt)
	if err != nil {
		return nil, err
	}
	assignments := assign(e.random, candidates, measurements)

	assignmentsJSON, err := e.json.Marshal(assignments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal assignments: %w", err)
	}

	mean, lo, hi := summarize(measurements)
	weighing := &schema.BatchWeighing{
		BatchID:         batch.ID,
		WeighingDate:    weighedAt,
		AverageWeightKg: mean,
		MinWeightKg:     lo,
		MaxWeightKg:     hi,
		Count:           len(assignments),
		Assignments:     assignmentsJSON,
		Notes:           req.Notes,
	}
	if err := tx.CreateBatchWeighing(ctx, weighing); err != nil {
		return nil, err
	}

	updates := make([]store.BatchAnimalWeightUpdate, 0, len(assignments))
	assigned := make(map[string]float64, len(assignments))
	for _, a := range assignments {
		updates = append(updates, store.BatchAnimalWeightUpdate{AnimalID: a.AnimalID, WeightKg: a.WeightKg, WeighedAt: weighedAt})
		assigned[a.AnimalID] = a.WeightKg
	}
	if err := tx.UpdateBatchAnimalWeights(ctx, updates); err != nil {
		return nil, err
	}

	weights := make([]float64, 0, len(members))
	for _, m := range members {
		if w, ok := assigned[m.ID]; ok {
			weights = append(weights, w)
		} else {
			weights = append(weights, m.CurrentWeightKg)
		}
	}
	batchMean, _, _ := summarize(weights)
	if err := tx.UpdateBatchAverageWeight(ctx, batch.ID, batchMean); err != nil {
		return nil, err
	}

	return &Result{
		ProjectID:            batch.ProjectID,
		Weighing:             weighing,
		Assignments:          assignments,
		BatchAverageWeightKg: batchMean,
	}, nil
}

// project computes the expected weight of every selected member that has a weighing history
func (e *Engine) project(ctx context.Context, tx store.Store, batch *schema.Batch, selected []*schema.BatchAnimal, at time.Time) ([]candidate, error) {
	withHistory := make([]string, 0, len(selected))
	for _, m := range selected {
		if hasHistory(m) {
			withHistory = append(withHistory, m.ID)
		}
	}

	transfers, err := tx.GetLatestTransfersInto(ctx, batch.ID, withHistory)
	if err != nil {
		return nil, err
	}

	originIDs := make([]string, 0, len(transfers))
	for _, t := range transfers {
		if t.FromBatchID != nil {
			originIDs = append(originIDs, *t.FromBatchID)
		}
	}
	origins, err := tx.GetBatchesByIDs(ctx, originIDs)
	if err != nil {
		return nil, err
	}
	originADG := make(map[string]*float64, len(origins))
	for _, o := range origins {
		originADG[o.ID] = o.AvgDailyGain
	}

	out := make([]candidate, 0, len(selected))
	for _, m := range selected {
		c := candidate{member: m}
		if hasHistory(m) {
			transfer := transfers[m.ID]
			var origin *float64
			if transfer != nil && transfer.FromBatchID != nil {
				origin = originADG[*transfer.FromBatchID]
			}
			adg, source := growth.ResolveADG(batch.AvgDailyGain, origin, movedSince(transfer, *m.LastWeighingDate), e.config.DefaultADG)
			expected := growth.ExpectedWeight(m.CurrentWeightKg, *m.LastWeighingDate, adg, at)
			c.expected = &expected

			logger.DebugCtx(ctx, "Projected weight",
				zap.String("animal_id", m.ID),
				zap.Float64("adg", adg),
				zap.String("adg_source", string(source)),
				zap.Float64("expected_kg", expected))
		}
		out = append(out, c)
	}
	return out, nil
}

var _ Service = (*Engine)(nil)
