package migration

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/porcinet/herdbook/internal/access"
	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/generator"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/store"
	"github.com/porcinet/herdbook/internal/store/schema"
)

// prepareExplode runs the checks shared by PreviewExplode and ExplodeBatch
func (e *Engine) prepareExplode(ctx context.Context, req ExplodeRequest) (*schema.Batch, ExplodeOptions, error) {
	opts := req.Options.withDefaults(e.config.DefaultStdDevPercent)
	if err := opts.validate(); err != nil {
		return nil, opts, err
	}

	batch, err := e.store.GetBatch(ctx, req.BatchID)
	if err != nil {
		return nil, opts, fmt.Errorf("failed to get batch: %w", err)
	}
	if batch == nil {
		return nil, opts, domain.Errorf(domain.ErrNotFound, "batch %s not found", req.BatchID)
	}
	if err := access.Authorize(ctx, e.checker, batch.ProjectID, req.UserID); err != nil {
		return nil, opts, err
	}
	if err := checkExplodable(batch, opts); err != nil {
		return nil, opts, err
	}
	return batch, opts, nil
}

// checkExplodable validates the options against the batch size
func checkExplodable(batch *schema.Batch, opts ExplodeOptions) error {
	if batch.TotalCount <= 0 {
		return domain.Errorf(domain.ErrInvalidInput, "batch %s has no animals to explode", batch.PenName)
	}
	if !opts.GenerateIDs && len(opts.Identifiers) > batch.TotalCount {
		return domain.Errorf(domain.ErrInvalidInput,
			"%d identifiers supplied for the %d animals of batch %s", len(opts.Identifiers), batch.TotalCount, batch.PenName)
	}
	return nil
}

// identifiersFor returns one code per new animal
func identifiersFor(batch *schema.Batch, opts ExplodeOptions, year, n int) []string {
	var codes []string
	if opts.GenerateIDs {
		codes = generator.Identifiers(opts.IDPattern, batch.PenName, year, n)
	} else {
		codes = make([]string, n)
		copy(codes, opts.Identifiers)
	}
	for i := range codes {
		if codes[i] == "" {
			codes[i] = generator.FallbackIdentifier(batch.PenName, i)
		}
	}
	return codes
}

// ExplodeBatch creates one individual animal per batch member. Identifiers, weights and sexes are
// synthesized from the options; batch health records and weighings are carried over. The source
// batch is left in place.
func (e *Engine) ExplodeBatch(ctx context.Context, req ExplodeRequest) (*ExplodeResult, error) {
	ctx = logger.WithOperation(ctx, logger.Operation{Name: "explode_batch", UserID: req.UserID, SubjectID: req.BatchID})

	batch, opts, err := e.prepareExplode(ctx, req)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "explode rejected"))
		return nil, err
	}
	if opts.SexRatio == nil {
		ratio := ratioFromBatch(batch)
		opts.SexRatio = &ratio
	}

	result := &ExplodeResult{}
	record, err := e.execute(ctx, attempt{
		direction: domain.MigrationBatchToIndividual,
		projectID: batch.ProjectID,
		userID:    req.UserID,
		sourceIDs: []string{batch.ID},
		options:   opts,
	}, func(tx store.Store) ([]string, map[string]any, error) {
		return e.explode(ctx, tx, batch.ID, opts, result)
	})
	if err != nil {
		return nil, err
	}

	result.MigrationID = record.ID
	return result, nil
}

// explode runs inside the migration transaction
func (e *Engine) explode(ctx context.Context, tx store.Store, batchID string, opts ExplodeOptions, result *ExplodeResult) ([]string, map[string]any, error) {
	batch, err := tx.LockBatch(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	if batch == nil {
		return nil, nil, domain.Errorf(domain.ErrNotFound, "batch %s not found", batchID)
	}
	if err := checkExplodable(batch, opts); err != nil {
		return nil, nil, err
	}

	members, err := tx.ListBatchAnimals(ctx, batch.ID)
	if err != nil {
		return nil, nil, err
	}

	now := e.clock.Now()
	n := batch.TotalCount
	codes := identifiersFor(batch, opts, now.Year(), n)
	weights := e.sampleWeights(opts, batch.AverageWeightKg, n)
	sexes := generator.AllocateSexes(e.random, n, *opts.SexRatio)

	ageMonths := math.Round(batch.AverageAgeMonths)
	birthDate := domain.AddMonths(now, -int(ageMonths))

	var originalBatchID *string
	if opts.PreserveBatchReference {
		originalBatchID = &batch.ID
	}

	animals := make([]*schema.Animal, 0, n)
	animalIDs := make([]string, 0, n)
	for i := range n {
		id := uuid.NewString()
		bd := birthDate
		animals = append(animals, &schema.Animal{
			ID:              id,
			ProjectID:       batch.ProjectID,
			Code:            codes[i],
			Name:            codes[i],
			Sex:             sexes[i],
			BirthDate:       &bd,
			InitialWeightKg: weights[i],
			CurrentWeightKg: weights[i],
			EntryDate:       batch.BatchCreationDate,
			Active:          true,
			Status:          domain.AnimalStatusActive,
			Category:        string(e.classifier.Classify(weights[i], ageMonths)),
			OriginalBatchID: originalBatchID,
			Notes:           "Migrated from batch " + batch.PenName,
		})
		animalIDs = append(animalIDs, id)
	}
	if err := tx.CreateAnimals(ctx, animals); err != nil {
		return nil, nil, err
	}

	// slot i stands for the i-th member row, so a disease recorded against a member follows it
	slotOf := make(map[string]int, len(members))
	for i, m := range members {
		if i < n {
			slotOf[m.ID] = i
		}
	}

	migrated := 0
	switch opts.HealthRecords {
	case domain.HealthRecordsDuplicate:
		c, err := e.duplicateHealthRecords(ctx, tx, batch, animalIDs, slotOf)
		if err != nil {
			return nil, nil, err
		}
		migrated += c
	case domain.HealthRecordsGeneric:
		c, err := e.genericHealthRecords(ctx, tx, batch)
		if err != nil {
			return nil, nil, err
		}
		migrated += c
	}

	if opts.CreateWeightRecords {
		c, err := e.weighingSnapshots(ctx, tx, batch, opts, animalIDs)
		if err != nil {
			return nil, nil, err
		}
		migrated += c
	}

	if err := tx.UpdateProjectManagementMethod(ctx, batch.ProjectID, domain.ManagementIndividual); err != nil {
		return nil, nil, err
	}

	logger.DebugCtx(ctx, "Batch exploded",
		zap.Int("pigs_created", n),
		zap.Int("records_migrated", migrated))

	result.PigsCreated = n
	result.RecordsMigrated = migrated
	result.AnimalIDs = animalIDs
	return animalIDs, map[string]any{
		"pigsCreated":     n,
		"recordsMigrated": migrated,
	}, nil
}

// sampleWeights draws n weights around mean, rounded to gram precision.
// The half-mean floor is rounded up to the gram so rounding never drops a weight below it.
func (e *Engine) sampleWeights(opts ExplodeOptions, mean float64, n int) []float64 {
	weights := generator.Weights(e.random, opts.DistributionMethod, mean, opts.WeightStdDevPercent, n)
	floor := decimal.NewFromFloat(mean * domain.MIN_WEIGHT_FRACTION).RoundCeil(3)
	for i, w := range weights {
		weights[i] = decimal.Max(decimal.NewFromFloat(w).Round(3), floor).InexactFloat64()
	}
	return weights
}

// duplicateHealthRecords copies every batch vaccination onto every new animal and attributes every
// batch disease to one animal
func (e *Engine) duplicateHealthRecords(ctx context.Context, tx store.Store, batch *schema.Batch, animalIDs []string, slotOf map[string]int) (int, error) {
	batchVaccinations, err := tx.ListBatchVaccinations(ctx, batch.ID)
	if err != nil {
		return 0, err
	}
	vaccinations := make([]*schema.Vaccination, 0, len(batchVaccinations)*len(animalIDs))
	for _, v := range batchVaccinations {
		for _, id := range animalIDs {
			vaccinations = append(vaccinations, individualVaccination(batch, v, &id))
		}
	}
	if err := tx.CreateVaccinations(ctx, vaccinations); err != nil {
		return 0, err
	}

	batchDiseases, err := tx.ListBatchDiseases(ctx, batch.ID)
	if err != nil {
		return 0, err
	}
	diseases := make([]*schema.Disease, 0, len(batchDiseases))
	reattributed := 0
	for _, d := range batchDiseases {
		target := animalIDs[0]
		precise := false
		if d.AnimalID != nil {
			if slot, ok := slotOf[*d.AnimalID]; ok {
				target = animalIDs[slot]
				precise = true
			}
		}
		disease := individualDisease(batch, d, &target)
		disease.Reattributed = !precise
		if !precise {
			reattributed++
		}
		diseases = append(diseases, disease)
	}
	if err := tx.CreateDiseases(ctx, diseases); err != nil {
		return 0, err
	}
	if reattributed > 0 {
		logger.WarnCtx(ctx, "Diseases reattributed to a stand-in animal",
			zap.Int("count", reattributed),
			zap.String("animal_id", animalIDs[0]))
	}

	return len(vaccinations) + len(diseases), nil
}

// genericHealthRecords carries every batch health record over once, unattributed
func (e *Engine) genericHealthRecords(ctx context.Context, tx store.Store, batch *schema.Batch) (int, error) {
	batchVaccinations, err := tx.ListBatchVaccinations(ctx, batch.ID)
	if err != nil {
		return 0, err
	}
	vaccinations := make([]*schema.Vaccination, 0, len(batchVaccinations))
	for _, v := range batchVaccinations {
		vaccinations = append(vaccinations, individualVaccination(batch, v, nil))
	}
	if err := tx.CreateVaccinations(ctx, vaccinations); err != nil {
		return 0, err
	}

	batchDiseases, err := tx.ListBatchDiseases(ctx, batch.ID)
	if err != nil {
		return 0, err
	}
	diseases := make([]*schema.Disease, 0, len(batchDiseases))
	for _, d := range batchDiseases {
		diseases = append(diseases, individualDisease(batch, d, nil))
	}
	if err := tx.CreateDiseases(ctx, diseases); err != nil {
		return 0, err
	}

	return len(vaccinations) + len(diseases), nil
}

// weighingSnapshots synthesizes one individual weighing per new animal for every batch weighing,
// sampled around that weighing's average
func (e *Engine) weighingSnapshots(ctx context.Context, tx store.Store, batch *schema.Batch, opts ExplodeOptions, animalIDs []string) (int, error) {
	batchWeighings, err := tx.ListBatchWeighings(ctx, batch.ID)
	if err != nil {
		return 0, err
	}

	snapshots := make([]*schema.AnimalWeighing, 0, len(batchWeighings)*len(animalIDs))
	for _, w := range batchWeighings {
		weights := e.sampleWeights(opts, w.AverageWeightKg, len(animalIDs))
		for i, id := range animalIDs {
			snapshots = append(snapshots, &schema.AnimalWeighing{
				ProjectID:     batch.ProjectID,
				AnimalID:      id,
				WeighedAt:     w.WeighingDate,
				WeightKg:      weights[i],
				SourceBatchID: &batch.ID,
				Comment:       w.Notes,
			})
		}
	}
	if err := tx.CreateAnimalWeighings(ctx, snapshots); err != nil {
		return 0, err
	}
	return len(snapshots), nil
}

func individualVaccination(batch *schema.Batch, v *schema.BatchVaccination, animalID *string) *schema.Vaccination {
	return &schema.Vaccination{
		ProjectID:       batch.ProjectID,
		AnimalID:        animalID,
		SourceBatchID:   &batch.ID,
		VaccineType:     v.VaccineType,
		ProductName:     v.ProductName,
		VaccinationDate: v.VaccinationDate,
		Dosage:          v.Dosage,
		Reason:          v.Reason,
		Notes:           v.Notes,
	}
}

func individualDisease(batch *schema.Batch, d *schema.BatchDisease, animalID *string) *schema.Disease {
	return &schema.Disease{
		ProjectID:     batch.ProjectID,
		AnimalID:      animalID,
		SourceBatchID: &batch.ID,
		DiseaseName:   d.DiseaseName,
		DiagnosisDate: d.DiagnosisDate,
		Symptoms:      d.Symptoms,
		Treatment:     d.Treatment,
		Status:        d.Status,
		Notes:         d.Notes,
	}
}

// estimatedSeconds is the coarse duration estimate of a migration over n animals
func estimatedSeconds(n, secondsPerHundred int) int {
	return int(math.Ceil(float64(n)/100)) * secondsPerHundred
}
