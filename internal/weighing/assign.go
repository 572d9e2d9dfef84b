package weighing

import (
	"sort"
	"time"

	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/store/schema"
)

// candidate is a batch member selected for a weighing, with its projected weight if it has one
type candidate struct {
	member   *schema.BatchAnimal
	expected *float64
}

// selectCandidates picks k members: never weighed first, then the longest since weighing,
// then the most recently entered. Ties break on id so the choice is deterministic.
func selectCandidates(members []*schema.BatchAnimal, k int) []*schema.BatchAnimal {
	ordered := make([]*schema.BatchAnimal, len(members))
	copy(ordered, members)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		switch {
		case a.LastWeighingDate == nil && b.LastWeighingDate != nil:
			return true
		case a.LastWeighingDate != nil && b.LastWeighingDate == nil:
			return false
		case a.LastWeighingDate != nil && !a.LastWeighingDate.Equal(*b.LastWeighingDate):
			return a.LastWeighingDate.Before(*b.LastWeighingDate)
		case !a.EntryDate.Equal(b.EntryDate):
			return a.EntryDate.After(b.EntryDate)
		default:
			return a.ID < b.ID
		}
	})

	return ordered[:k]
}

// hasHistory reports whether a member has a prior weight to project from
func hasHistory(m *schema.BatchAnimal) bool {
	return m.LastWeighingDate != nil && m.CurrentWeightKg > 0
}

// assign maps measurements onto candidates one to one.
// With a projection for every candidate, the heaviest measurement goes to the heaviest expectation.
// Otherwise there is nothing to rank on and the measurements are shuffled before pairing.
func assign(r adapter.Random, candidates []candidate, measurements []float64) []schema.WeighingAssignment {
	values := make([]float64, len(measurements))
	copy(values, measurements)
	sort.Sort(sort.Reverse(sort.Float64Slice(values)))

	ranked := make([]candidate, len(candidates))
	copy(ranked, candidates)

	allProjected := true
	for _, c := range ranked {
		if c.expected == nil {
			allProjected = false
			break
		}
	}

	if allProjected {
		sort.SliceStable(ranked, func(i, j int) bool {
			if *ranked[i].expected != *ranked[j].expected {
				return *ranked[i].expected > *ranked[j].expected
			}
			return ranked[i].member.ID < ranked[j].member.ID
		})
	} else {
		r.Shuffle(len(values), func(i, j int) {
			values[i], values[j] = values[j], values[i]
		})
	}

	out := make([]schema.WeighingAssignment, len(values))
	for i, v := range values {
		out[i] = schema.WeighingAssignment{AnimalID: ranked[i].member.ID, WeightKg: v}
	}
	return out
}

// movedSince reports whether a transfer happened after the given weighing date
func movedSince(transfer *schema.BatchAnimalMovement, weighedAt time.Time) bool {
	return transfer != nil && transfer.MovementDate.After(weighedAt)
}
