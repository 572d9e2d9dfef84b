package migration

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/generator"
	"github.com/porcinet/herdbook/internal/growth"
	"github.com/porcinet/herdbook/internal/store/schema"
)

// stageOrder breaks ties when picking a group's dominant stage
var stageOrder = map[domain.Stage]int{
	domain.StagePiglet:      0,
	domain.StageGrowing:     1,
	domain.StageFinishing:   2,
	domain.StageBreedingSow: 3,
}

// foldGroup is a set of animals that becomes one batch
type foldGroup struct {
	key       string
	projectID string
	animals   []*schema.Animal
	stages    []domain.Stage
	// batchNumber is set on accepted groups only
	batchNumber string
}

// dominantStage is the most frequent derived stage of the group
func (g *foldGroup) dominantStage() domain.Stage {
	counts := make(map[domain.Stage]int)
	for _, s := range g.stages {
		counts[s]++
	}
	var best domain.Stage
	for s, n := range counts {
		if best == "" || n > counts[best] || (n == counts[best] && stageOrder[s] < stageOrder[best]) {
			best = s
		}
	}
	return best
}

func (g *foldGroup) animalIDs() []string {
	ids := make([]string, 0, len(g.animals))
	for _, a := range g.animals {
		ids = append(ids, a.ID)
	}
	return ids
}

// foldPlan is the grouping shared by PreviewFold and FoldIndividuals
type foldPlan struct {
	accepted []*foldGroup
	skipped  []*foldGroup
}

func (p *foldPlan) migratedCount() int {
	n := 0
	for _, g := range p.accepted {
		n += len(g.animals)
	}
	return n
}

// projectIDs returns the distinct projects of the accepted groups, sorted
func (p *foldPlan) projectIDs() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, g := range p.accepted {
		if _, ok := seen[g.projectID]; !ok {
			seen[g.projectID] = struct{}{}
			out = append(out, g.projectID)
		}
	}
	sort.Strings(out)
	return out
}

// planFold partitions animals by the enabled criteria. The project id always leads the key so
// animals of different projects never share a batch. Groups are ordered by key and accepted
// groups are numbered in that order, so a preview and a run over the same input agree.
func planFold(classifier growth.StageClassifier, animals []*schema.Animal, opts FoldOptions, now time.Time) *foldPlan {
	groups := make(map[string]*foldGroup)
	for _, a := range animals {
		stage := classifier.Classify(a.KnownWeight(), ageMonths(a, now))

		parts := []string{a.ProjectID}
		if opts.GroupingCriteria.ByStage {
			parts = append(parts, "stage:"+string(stage))
		}
		if opts.GroupingCriteria.BySex {
			parts = append(parts, "sex:"+orUnknown(string(a.Sex)))
		}
		if opts.GroupingCriteria.ByBreed {
			parts = append(parts, "breed:"+orUnknown(strings.ToLower(strings.TrimSpace(a.Breed))))
		}
		key := strings.Join(parts, "|")

		g, ok := groups[key]
		if !ok {
			g = &foldGroup{key: key, projectID: a.ProjectID}
			groups[key] = g
		}
		g.animals = append(g.animals, a)
		g.stages = append(g.stages, stage)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	plan := &foldPlan{}
	for _, k := range keys {
		g := groups[k]
		if len(g.animals) < opts.MinimumBatchSize {
			plan.skipped = append(plan.skipped, g)
			continue
		}
		g.batchNumber = generator.BatchNumber(opts.BatchNumberPattern, now.Year(), len(plan.accepted)+1)
		plan.accepted = append(plan.accepted, g)
	}
	return plan
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// ageMonths returns the animal's age at now, or 0 when the birth date is unknown
func ageMonths(a *schema.Animal, now time.Time) float64 {
	if a.BirthDate == nil {
		return 0
	}
	return growth.AgeMonths(*a.BirthDate, now)
}

// groupStats are the aggregates a folded batch is created with
type groupStats struct {
	averageWeightKg  float64
	averageAgeMonths float64
	earliestEntry    time.Time
}

func computeGroupStats(g *foldGroup, now time.Time) groupStats {
	var weights, ages []float64
	stats := groupStats{}
	for _, a := range g.animals {
		if w := a.KnownWeight(); w > 0 {
			weights = append(weights, w)
		}
		if a.BirthDate != nil {
			ages = append(ages, growth.AgeMonths(*a.BirthDate, now))
		}
		if stats.earliestEntry.IsZero() || a.EntryDate.Before(stats.earliestEntry) {
			stats.earliestEntry = a.EntryDate
		}
	}
	stats.averageWeightKg = mean(weights, 3)
	stats.averageAgeMonths = mean(ages, 1)
	if stats.earliestEntry.IsZero() {
		stats.earliestEntry = now
	}
	return stats
}

// mean returns the average of values rounded to places, or 0 for no values
func mean(values []float64, places int32) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))).Round(places).InexactFloat64()
}

// batchSex maps an individual's sex onto the batch vocabulary
func batchSex(s domain.Sex) domain.Sex {
	switch s {
	case domain.SexMale, domain.SexFemale:
		return s
	default:
		return domain.SexCastrated
	}
}

// ratioFromBatch is the batch's own sex split. Castrated members count as males.
func ratioFromBatch(b *schema.Batch) generator.SexRatio {
	total := b.MaleCount + b.FemaleCount + b.CastratedCount
	if total == 0 {
		return generator.DefaultSexRatio
	}
	return generator.SexRatio{
		Male:   float64(b.MaleCount+b.CastratedCount) / float64(total),
		Female: float64(b.FemaleCount) / float64(total),
	}
}

// batchHealth maps an individual's lifecycle status onto a batch member health status
func batchHealth(status domain.AnimalStatus) domain.HealthStatus {
	if status == domain.AnimalStatusActive || status == "" {
		return domain.HealthStatusHealthy
	}
	return domain.HealthStatusSick
}
