package migration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/growth"
	"github.com/porcinet/herdbook/internal/store/schema"
)

var planNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func animal(id, project string, sex domain.Sex, breed string, weight float64) *schema.Animal {
	return &schema.Animal{
		ID:              id,
		ProjectID:       project,
		Sex:             sex,
		Breed:           breed,
		CurrentWeightKg: weight,
		EntryDate:       planNow.AddDate(0, -1, 0),
		Active:          true,
		Status:          domain.AnimalStatusActive,
	}
}

func TestPlanFold(t *testing.T) {
	classifier := growth.NewThresholdClassifier()
	animals := []*schema.Animal{
		animal("a1", "p1", domain.SexMale, "Duroc", 20),
		animal("a2", "p1", domain.SexMale, "duroc ", 21),
		animal("a3", "p1", domain.SexFemale, "", 22),
		animal("a4", "p2", domain.SexMale, "Duroc", 23),
		animal("a5", "p1", domain.SexUndetermined, "Pietrain", 3),
	}

	t.Run("project always leads the key", func(t *testing.T) {
		plan := planFold(classifier, animals, FoldOptions{}.withDefaults(), planNow)
		require.Len(t, plan.accepted, 2)
		assert.Equal(t, "p1", plan.accepted[0].key)
		assert.Equal(t, "p2", plan.accepted[1].key)
		assert.Equal(t, []string{"p1", "p2"}, plan.projectIDs())
		assert.Equal(t, 5, plan.migratedCount())
	})

	t.Run("criteria in fixed order", func(t *testing.T) {
		opts := FoldOptions{GroupingCriteria: GroupingCriteria{ByStage: true, BySex: true, ByBreed: true}}.withDefaults()
		plan := planFold(classifier, animals, opts, planNow)

		keys := []string{}
		for _, g := range plan.accepted {
			keys = append(keys, g.key)
		}
		assert.Equal(t, []string{
			"p1|stage:growing|sex:female|breed:unknown",
			"p1|stage:growing|sex:male|breed:duroc",
			"p1|stage:piglet|sex:undetermined|breed:pietrain",
			"p2|stage:growing|sex:male|breed:duroc",
		}, keys)
		assert.Len(t, plan.accepted[1].animals, 2, "breed is compared case and space insensitively")
	})

	t.Run("small groups are skipped and not numbered", func(t *testing.T) {
		opts := FoldOptions{GroupingCriteria: GroupingCriteria{BySex: true}, MinimumBatchSize: 2}.withDefaults()
		plan := planFold(classifier, animals, opts, planNow)

		require.Len(t, plan.accepted, 1)
		assert.Equal(t, "p1|sex:male", plan.accepted[0].key)
		assert.Equal(t, "B20251", plan.accepted[0].batchNumber)
		require.Len(t, plan.skipped, 3)
		for _, g := range plan.skipped {
			assert.Empty(t, g.batchNumber)
		}
		assert.Equal(t, 2, plan.migratedCount())
	})

	t.Run("numbering follows key order", func(t *testing.T) {
		opts := FoldOptions{GroupingCriteria: GroupingCriteria{BySex: true}, BatchNumberPattern: "{year}/{seq:3}"}.withDefaults()
		plan := planFold(classifier, animals, opts, planNow)

		numbers := []string{}
		for _, g := range plan.accepted {
			numbers = append(numbers, g.batchNumber)
		}
		assert.Equal(t, []string{"2025/001", "2025/002", "2025/003", "2025/004"}, numbers)
	})
}

func TestDominantStage(t *testing.T) {
	tests := []struct {
		name   string
		stages []domain.Stage
		want   domain.Stage
	}{
		{"most frequent", []domain.Stage{domain.StageFinishing, domain.StageGrowing, domain.StageFinishing}, domain.StageFinishing},
		{"tie goes to the earlier stage", []domain.Stage{domain.StageFinishing, domain.StageGrowing}, domain.StageGrowing},
		{"single", []domain.Stage{domain.StageBreedingSow}, domain.StageBreedingSow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &foldGroup{stages: tt.stages}
			assert.Equal(t, tt.want, g.dominantStage())
		})
	}
}

func TestComputeGroupStats(t *testing.T) {
	born := planNow.AddDate(0, 0, -90)
	g := &foldGroup{animals: []*schema.Animal{
		{CurrentWeightKg: 30, BirthDate: &born, EntryDate: planNow.AddDate(0, 0, -10)},
		{InitialWeightKg: 31, EntryDate: planNow.AddDate(0, 0, -20)},
		{EntryDate: planNow.AddDate(0, 0, -5)},
	}}

	stats := computeGroupStats(g, planNow)
	assert.Equal(t, 30.5, stats.averageWeightKg, "unknown weights are left out")
	assert.Equal(t, 3.0, stats.averageAgeMonths, "unknown ages are left out")
	assert.Equal(t, planNow.AddDate(0, 0, -20), stats.earliestEntry)

	empty := computeGroupStats(&foldGroup{}, planNow)
	assert.Zero(t, empty.averageWeightKg)
	assert.Equal(t, planNow, empty.earliestEntry)
}

func TestRatioFromBatch(t *testing.T) {
	ratio := ratioFromBatch(&schema.Batch{MaleCount: 1, CastratedCount: 2, FemaleCount: 1})
	assert.Equal(t, 0.75, ratio.Male)
	assert.Equal(t, 0.25, ratio.Female)

	empty := ratioFromBatch(&schema.Batch{})
	assert.Equal(t, 0.5, empty.Male)
	assert.Equal(t, 0.5, empty.Female)
}

func TestBatchVocabulary(t *testing.T) {
	assert.Equal(t, domain.SexMale, batchSex(domain.SexMale))
	assert.Equal(t, domain.SexFemale, batchSex(domain.SexFemale))
	assert.Equal(t, domain.SexCastrated, batchSex(domain.SexUndetermined))

	assert.Equal(t, domain.HealthStatusHealthy, batchHealth(domain.AnimalStatusActive))
	assert.Equal(t, domain.HealthStatusSick, batchHealth(domain.AnimalStatusDead))
}

func TestEstimatedSeconds(t *testing.T) {
	assert.Equal(t, 0, estimatedSeconds(0, 5))
	assert.Equal(t, 5, estimatedSeconds(1, 5))
	assert.Equal(t, 5, estimatedSeconds(100, 5))
	assert.Equal(t, 6, estimatedSeconds(101, 3))
}

func TestUniqueAndMissingIDs(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, uniqueIDs([]string{"b", " a ", "", "b", "a"}))

	found := []*schema.Animal{{ID: "a"}}
	assert.Equal(t, []string{"b"}, missingIDs([]string{"a", "b"}, found))
	assert.Empty(t, missingIDs([]string{"a"}, found))
}
