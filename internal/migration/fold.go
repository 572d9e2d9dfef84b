package migration

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/porcinet/herdbook/internal/access"
	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/store"
	"github.com/porcinet/herdbook/internal/store/schema"
)

// prepareFold runs the checks shared by PreviewFold and FoldIndividuals and returns the resolved
// animals in id order
func (e *Engine) prepareFold(ctx context.Context, req FoldRequest) ([]*schema.Animal, FoldOptions, error) {
	opts := req.Options.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, opts, err
	}

	ids := uniqueIDs(req.AnimalIDs)
	if len(ids) == 0 {
		return nil, opts, domain.Errorf(domain.ErrInvalidInput, "no animal selected")
	}

	animals, err := e.store.GetAnimalsByIDs(ctx, ids)
	if err != nil {
		return nil, opts, fmt.Errorf("failed to get animals: %w", err)
	}
	if missing := missingIDs(ids, animals); len(missing) > 0 {
		return nil, opts, domain.Errorf(domain.ErrNotFound,
			"%d of %d animals not found: %s", len(missing), len(ids), strings.Join(missing, ", "))
	}

	projects := make(map[string]struct{})
	for _, a := range animals {
		if _, ok := projects[a.ProjectID]; ok {
			continue
		}
		projects[a.ProjectID] = struct{}{}
		if err := access.Authorize(ctx, e.checker, a.ProjectID, req.UserID); err != nil {
			return nil, opts, err
		}
	}

	inactive := 0
	for _, a := range animals {
		if !a.Active || a.Status != domain.AnimalStatusActive {
			inactive++
		}
	}
	if inactive > 0 {
		return nil, opts, domain.Errorf(domain.ErrInvalidInput, "%d animals are not active and cannot be folded", inactive)
	}

	return animals, opts, nil
}

// FoldIndividuals groups individual animals into new batches by the enabled criteria.
// Groups below the minimum size are left untouched. Source animals are kept unless the options
// ask to deactivate them.
func (e *Engine) FoldIndividuals(ctx context.Context, req FoldRequest) (*FoldResult, error) {
	ctx = logger.WithOperation(ctx, logger.Operation{Name: "fold_individuals", UserID: req.UserID})

	animals, opts, err := e.prepareFold(ctx, req)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "fold rejected"))
		return nil, err
	}

	now := e.clock.Now()
	plan := planFold(e.classifier, animals, opts, now)
	if len(plan.accepted) == 0 {
		err := domain.Errorf(domain.ErrInvalidInput,
			"no group reaches the minimum batch size of %d", opts.MinimumBatchSize)
		logger.ErrorCtx(ctx, err, zap.String("message", "fold rejected"))
		return nil, err
	}

	projectIDs := plan.projectIDs()
	result := &FoldResult{}
	record, err := e.execute(ctx, attempt{
		direction: domain.MigrationIndividualToBatch,
		projectID: projectIDs[0],
		userID:    req.UserID,
		sourceIDs: uniqueIDs(req.AnimalIDs),
		options:   opts,
	}, func(tx store.Store) ([]string, map[string]any, error) {
		return e.fold(ctx, tx, plan, opts, now, result)
	})
	if err != nil {
		return nil, err
	}

	result.MigrationID = record.ID
	return result, nil
}

// fold runs inside the migration transaction
func (e *Engine) fold(ctx context.Context, tx store.Store, plan *foldPlan, opts FoldOptions, now time.Time, result *FoldResult) ([]string, map[string]any, error) {
	ids := make([]string, 0, plan.migratedCount())
	for _, g := range plan.accepted {
		ids = append(ids, g.animalIDs()...)
	}
	locked, err := tx.LockAnimals(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if missing := missingIDs(uniqueIDs(ids), locked); len(missing) > 0 {
		return nil, nil, domain.Errorf(domain.ErrNotFound, "animals removed during the migration: %s", strings.Join(missing, ", "))
	}
	for _, a := range locked {
		if !a.Active {
			return nil, nil, domain.Errorf(domain.ErrInvalidInput, "animal %s left tracking during the migration", a.ID)
		}
	}

	batchIDs := make([]string, 0, len(plan.accepted))
	aggregated := 0
	for _, g := range plan.accepted {
		batchID, n, err := e.foldGroup(ctx, tx, g, opts, now)
		if err != nil {
			return nil, nil, fmt.Errorf("group %s: %w", g.key, err)
		}
		batchIDs = append(batchIDs, batchID)
		aggregated += n
	}

	for _, projectID := range plan.projectIDs() {
		if err := tx.UpdateProjectManagementMethod(ctx, projectID, domain.ManagementBatch); err != nil {
			return nil, nil, err
		}
	}

	result.BatchesCreated = len(batchIDs)
	result.PigsMigrated = plan.migratedCount()
	result.SkippedGroups = len(plan.skipped)
	result.RecordsAggregated = aggregated
	result.BatchIDs = batchIDs
	return batchIDs, map[string]any{
		"batchesCreated": result.BatchesCreated,
		"pigsMigrated":   result.PigsMigrated,
		"skippedGroups":  result.SkippedGroups,
	}, nil
}

// foldGroup creates the batch of one accepted group and returns its id and the number of
// aggregated health records
func (e *Engine) foldGroup(ctx context.Context, tx store.Store, g *foldGroup, opts FoldOptions, now time.Time) (string, int, error) {
	stats := computeGroupStats(g, now)
	animalIDs := g.animalIDs()

	batch := &schema.Batch{
		ID:                     uuid.NewString(),
		ProjectID:              g.projectID,
		PenName:                g.batchNumber,
		Category:               string(g.dominantStage()),
		AverageAgeMonths:       stats.averageAgeMonths,
		AverageWeightKg:        stats.averageWeightKg,
		BatchCreationDate:      stats.earliestEntry,
		MigratedFromIndividual: true,
		OriginalAnimalIDs:      schema.IDList(animalIDs),
		Notes:                  fmt.Sprintf("Created from %d individual animals", len(g.animals)),
	}
	if err := tx.CreateBatch(ctx, batch); err != nil {
		return "", 0, err
	}

	// memberOf maps a source animal to the batch member created from it
	memberOf := make(map[string]string, len(g.animals))
	members := make([]*schema.BatchAnimal, 0, len(g.animals))
	for _, a := range g.animals {
		m := &schema.BatchAnimal{
			ID:              uuid.NewString(),
			BatchID:         batch.ID,
			Name:            a.Code,
			Sex:             batchSex(a.Sex),
			BirthDate:       a.BirthDate,
			AgeMonths:       ageMonths(a, now),
			CurrentWeightKg: a.KnownWeight(),
			EntryDate:       a.EntryDate,
			HealthStatus:    batchHealth(a.Status),
			Notes:           a.Notes,
		}
		memberOf[a.ID] = m.ID
		members = append(members, m)
	}
	if err := tx.CreateBatchAnimals(ctx, members); err != nil {
		return "", 0, err
	}
	if err := tx.RefreshBatchCounts(ctx, batch.ID); err != nil {
		return "", 0, err
	}

	aggregated := 0
	if opts.aggregateHealth() {
		n, err := e.aggregateHistory(ctx, tx, batch, animalIDs, memberOf)
		if err != nil {
			return "", 0, err
		}
		aggregated = n
	}

	if !opts.keepIndividuals() {
		if err := tx.DeactivateAnimals(ctx, animalIDs, domain.AnimalStatusMigrated); err != nil {
			return "", 0, err
		}
	}

	logger.DebugCtx(ctx, "Group folded",
		zap.String("group", g.key),
		zap.String("batch_id", batch.ID),
		zap.String("batch_number", batch.PenName),
		zap.Int("animals", len(g.animals)),
		zap.Int("aggregated_records", aggregated))

	return batch.ID, aggregated, nil
}

// aggregateHistory synthesizes batch-level summaries of the group's individual records.
// The individual records themselves are left as they are.
func (e *Engine) aggregateHistory(ctx context.Context, tx store.Store, batch *schema.Batch, animalIDs []string, memberOf map[string]string) (int, error) {
	groupSize := len(animalIDs)

	vaccinations, err := tx.ListVaccinations(ctx, animalIDs)
	if err != nil {
		return 0, err
	}
	batchVaccinations := aggregateVaccinations(batch.ID, vaccinations, groupSize, memberOf)
	if err := tx.CreateBatchVaccinations(ctx, batchVaccinations); err != nil {
		return 0, err
	}

	diseases, err := tx.ListDiseases(ctx, animalIDs)
	if err != nil {
		return 0, err
	}
	batchDiseases := aggregateDiseases(batch.ID, diseases, groupSize)
	if err := tx.CreateBatchDiseases(ctx, batchDiseases); err != nil {
		return 0, err
	}

	weighings, err := tx.ListAnimalWeighings(ctx, animalIDs)
	if err != nil {
		return 0, err
	}
	batchWeighings, err := e.aggregateWeighings(batch.ID, weighings, groupSize, memberOf)
	if err != nil {
		return 0, err
	}
	for _, w := range batchWeighings {
		if err := tx.CreateBatchWeighing(ctx, w); err != nil {
			return 0, err
		}
	}

	return len(batchVaccinations) + len(batchDiseases) + len(batchWeighings), nil
}

// dayOf truncates t to its UTC calendar day
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// aggregateVaccinations keeps the calendar days on which more than half the group was vaccinated.
// Each kept day becomes one batch vaccination carrying the product that reached the most animals
// that day, the earliest recorded product on a tie.
func aggregateVaccinations(batchID string, vaccinations []*schema.Vaccination, groupSize int, memberOf map[string]string) []*schema.BatchVaccination {
	type product struct {
		first   *schema.Vaccination
		animals map[string]struct{}
	}
	type bucket struct {
		day      time.Time
		animals  map[string]struct{}
		products map[string]*product
		order    []string
	}
	buckets := make(map[string]*bucket)
	var keys []string
	for _, v := range vaccinations {
		day := dayOf(v.VaccinationDate)
		key := day.Format(time.DateOnly)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: day, animals: make(map[string]struct{}), products: make(map[string]*product)}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.animals[*v.AnimalID] = struct{}{}

		name := strings.ToLower(strings.TrimSpace(v.ProductName))
		p, ok := b.products[name]
		if !ok {
			p = &product{first: v, animals: make(map[string]struct{})}
			b.products[name] = p
			b.order = append(b.order, name)
		}
		p.animals[*v.AnimalID] = struct{}{}
	}

	out := []*schema.BatchVaccination{}
	for _, key := range keys {
		b := buckets[key]
		if float64(len(b.animals)) <= float64(groupSize)*domain.FOLD_VACCINATION_MAJORITY {
			continue
		}
		var dominant *product
		names := make([]string, 0, len(b.order))
		for _, name := range b.order {
			p := b.products[name]
			names = append(names, p.first.ProductName)
			if dominant == nil || len(p.animals) > len(dominant.animals) {
				dominant = p
			}
		}
		out = append(out, &schema.BatchVaccination{
			BatchID:             batchID,
			VaccineType:         dominant.first.VaccineType,
			ProductName:         dominant.first.ProductName,
			VaccinationDate:     b.day,
			Reason:              dominant.first.Reason,
			Dosage:              dominant.first.Dosage,
			Count:               len(b.animals),
			VaccinatedAnimalIDs: schema.IDList(memberIDs(b.animals, memberOf)),
			Notes:               fmt.Sprintf("Aggregated from individual vaccinations of %d animals (%s)", len(b.animals), strings.Join(names, ", ")),
		})
	}
	return out
}

// aggregateDiseases keeps the diseases that affected at least the disease share of the group
func aggregateDiseases(batchID string, diseases []*schema.Disease, groupSize int) []*schema.BatchDisease {
	type bucket struct {
		first   *schema.Disease
		active  bool
		animals map[string]struct{}
	}
	buckets := make(map[string]*bucket)
	var keys []string
	for _, d := range diseases {
		key := strings.ToLower(strings.TrimSpace(d.DiseaseName))
		b, ok := buckets[key]
		if !ok {
			b = &bucket{first: d, animals: make(map[string]struct{})}
			buckets[key] = b
			keys = append(keys, key)
		}
		b.animals[*d.AnimalID] = struct{}{}
		b.active = b.active || d.Status == domain.DiseaseActive
	}

	out := []*schema.BatchDisease{}
	for _, key := range keys {
		b := buckets[key]
		if float64(len(b.animals)) < float64(groupSize)*domain.FOLD_DISEASE_SHARE {
			continue
		}
		status := b.first.Status
		if b.active {
			status = domain.DiseaseActive
		}
		out = append(out, &schema.BatchDisease{
			BatchID:       batchID,
			DiseaseName:   b.first.DiseaseName,
			DiagnosisDate: b.first.DiagnosisDate,
			Symptoms:      b.first.Symptoms,
			Treatment:     b.first.Treatment,
			Status:        status,
			Count:         len(b.animals),
			Notes:         fmt.Sprintf("Aggregated from %d individual cases", len(b.animals)),
		})
	}
	return out
}

// aggregateWeighings turns each day on which more than half the group was weighed into one batch
// weighing. An animal weighed twice that day counts with its latest weight.
func (e *Engine) aggregateWeighings(batchID string, weighings []*schema.AnimalWeighing, groupSize int, memberOf map[string]string) ([]*schema.BatchWeighing, error) {
	type bucket struct {
		day    time.Time
		latest map[string]*schema.AnimalWeighing
	}
	buckets := make(map[string]*bucket)
	var keys []string
	for _, w := range weighings {
		day := dayOf(w.WeighedAt)
		key := day.Format(time.DateOnly)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: day, latest: make(map[string]*schema.AnimalWeighing)}
			buckets[key] = b
			keys = append(keys, key)
		}
		if cur, ok := b.latest[w.AnimalID]; !ok || !w.WeighedAt.Before(cur.WeighedAt) {
			b.latest[w.AnimalID] = w
		}
	}
	sort.Strings(keys)

	out := []*schema.BatchWeighing{}
	for _, key := range keys {
		b := buckets[key]
		if float64(len(b.latest)) <= float64(groupSize)*domain.FOLD_WEIGHING_MAJORITY {
			continue
		}

		animalIDs := make([]string, 0, len(b.latest))
		for id := range b.latest {
			animalIDs = append(animalIDs, id)
		}
		sort.Strings(animalIDs)

		assignments := make([]schema.WeighingAssignment, 0, len(animalIDs))
		weights := make([]float64, 0, len(animalIDs))
		lo, hi := b.latest[animalIDs[0]].WeightKg, b.latest[animalIDs[0]].WeightKg
		for _, id := range animalIDs {
			w := b.latest[id].WeightKg
			assignments = append(assignments, schema.WeighingAssignment{AnimalID: memberOf[id], WeightKg: w})
			weights = append(weights, w)
			lo = min(lo, w)
			hi = max(hi, w)
		}
		assignmentsJSON, err := e.json.Marshal(assignments)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal assignments: %w", err)
		}

		out = append(out, &schema.BatchWeighing{
			BatchID:         batchID,
			WeighingDate:    b.day,
			AverageWeightKg: mean(weights, 3),
			MinWeightKg:     lo,
			MaxWeightKg:     hi,
			Count:           len(assignments),
			Assignments:     assignmentsJSON,
			Notes:           fmt.Sprintf("Aggregated from %d individual weighings", len(assignments)),
		})
	}
	return out, nil
}

// memberIDs maps source animal ids onto the new batch member ids, sorted
func memberIDs(animals map[string]struct{}, memberOf map[string]string) []string {
	out := make([]string, 0, len(animals))
	for id := range animals {
		out = append(out, memberOf[id])
	}
	sort.Strings(out)
	return out
}

// uniqueIDs drops empty and repeated ids, keeping the first occurrence order
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// missingIDs returns the ids with no matching animal
func missingIDs(ids []string, animals []*schema.Animal) []string {
	found := make(map[string]struct{}, len(animals))
	for _, a := range animals {
		found[a.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
