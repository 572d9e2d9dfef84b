package migration

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/logger"
)

// ExplodePreview is what ExplodeBatch would create for the same request
type ExplodePreview struct {
	BatchName                string   `json:"batch_name"`
	Category                 string   `json:"category"`
	AverageWeightKg          float64  `json:"average_weight_kg"`
	PigsToCreate             int      `json:"pigs_to_create"`
	RecordsToMigrate         int      `json:"records_to_migrate"`
	EstimatedDurationSeconds int      `json:"estimated_duration_seconds"`
	SampleIdentifiers        []string `json:"sample_identifiers"`
	Warnings                 []string `json:"warnings"`
}

// GroupSummary describes one fold group
type GroupSummary struct {
	Key             string  `json:"key"`
	Size            int     `json:"size"`
	BatchNumber     string  `json:"batch_number,omitempty"`
	Category        string  `json:"category"`
	AverageWeightKg float64 `json:"average_weight_kg"`
}

// FoldPreview is what FoldIndividuals would create for the same request
type FoldPreview struct {
	BatchesToCreate          int            `json:"batches_to_create"`
	PigsToMigrate            int            `json:"pigs_to_migrate"`
	RecordsToMigrate         int            `json:"records_to_migrate"`
	EstimatedDurationSeconds int            `json:"estimated_duration_seconds"`
	Groups                   []GroupSummary `json:"groups"`
	SkippedGroups            []GroupSummary `json:"skipped_groups"`
	Warnings                 []string       `json:"warnings"`
}

// PreviewExplode runs the explode checks and counts without writing anything
func (e *Engine) PreviewExplode(ctx context.Context, req ExplodeRequest) (*ExplodePreview, error) {
	ctx = logger.WithOperation(ctx, logger.Operation{Name: "preview_explode", UserID: req.UserID, SubjectID: req.BatchID})

	batch, opts, err := e.prepareExplode(ctx, req)
	if err != nil {
		return nil, err
	}

	counts, err := e.store.CountBatchRecords(ctx, batch.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count batch records: %w", err)
	}

	n := batch.TotalCount
	codes := identifiersFor(batch, opts, e.clock.Now().Year(), min(n, domain.PREVIEW_SAMPLE_SIZE))

	preview := &ExplodePreview{
		BatchName:                batch.PenName,
		Category:                 batch.Category,
		AverageWeightKg:          batch.AverageWeightKg,
		PigsToCreate:             n,
		RecordsToMigrate:         int(counts.Total()),
		EstimatedDurationSeconds: estimatedSeconds(n, domain.EXPLODE_SECONDS_PER_HUNDRED),
		SampleIdentifiers:        codes,
		Warnings:                 []string{},
	}
	if n > e.config.ExplodeWarningThreshold {
		preview.Warnings = append(preview.Warnings,
			fmt.Sprintf("Large migration: %d animals will be created, this may take a while", n))
	}
	if batch.AverageWeightKg <= 0 {
		preview.Warnings = append(preview.Warnings, "Batch has no average weight, generated weights will be zero")
	}

	logger.DebugCtx(ctx, "Explode previewed", zap.Int("pigs_to_create", n))
	return preview, nil
}

// PreviewFold runs the fold checks and grouping without writing anything. Unlike FoldIndividuals it
// does not reject a selection where every group is below the minimum size.
func (e *Engine) PreviewFold(ctx context.Context, req FoldRequest) (*FoldPreview, error) {
	ctx = logger.WithOperation(ctx, logger.Operation{Name: "preview_fold", UserID: req.UserID})

	animals, opts, err := e.prepareFold(ctx, req)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	plan := planFold(e.classifier, animals, opts, now)
	pigs := plan.migratedCount()

	preview := &FoldPreview{
		BatchesToCreate:          len(plan.accepted),
		PigsToMigrate:            pigs,
		RecordsToMigrate:         pigs * 2,
		EstimatedDurationSeconds: estimatedSeconds(pigs, domain.FOLD_SECONDS_PER_HUNDRED),
		Groups:                   summarize(plan.accepted, now),
		SkippedGroups:            summarize(plan.skipped, now),
		Warnings:                 []string{},
	}
	if pigs > e.config.FoldWarningThreshold {
		preview.Warnings = append(preview.Warnings,
			fmt.Sprintf("Large migration: %d animals will be grouped, this may take a while", pigs))
	}
	if len(plan.skipped) > 0 {
		skipped := len(animals) - pigs
		preview.Warnings = append(preview.Warnings,
			fmt.Sprintf("%d groups below the minimum size of %d, %d animals stay individually tracked",
				len(plan.skipped), opts.MinimumBatchSize, skipped))
	}

	logger.DebugCtx(ctx, "Fold previewed",
		zap.Int("batches_to_create", preview.BatchesToCreate),
		zap.Int("pigs_to_migrate", pigs))
	return preview, nil
}

func summarize(groups []*foldGroup, now time.Time) []GroupSummary {
	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupSummary{
			Key:             g.key,
			Size:            len(g.animals),
			BatchNumber:     g.batchNumber,
			Category:        string(g.dominantStage()),
			AverageWeightKg: computeGroupStats(g, now).averageWeightKg,
		})
	}
	return out
}
