package weighing

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/store/schema"
)

func at(day int) *time.Time {
	t := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestSelectCandidates(t *testing.T) {
	members := []*schema.BatchAnimal{
		{ID: "weighed-recently", LastWeighingDate: at(20), EntryDate: *at(1), CurrentWeightKg: 30},
		{ID: "weighed-long-ago", LastWeighingDate: at(5), EntryDate: *at(1), CurrentWeightKg: 30},
		{ID: "never-old-entry", EntryDate: *at(1)},
		{ID: "never-new-entry", EntryDate: *at(3)},
		{ID: "never-new-entry-b", EntryDate: *at(3)},
	}

	got := selectCandidates(members, 4)
	ids := make([]string, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"never-new-entry", "never-new-entry-b", "never-old-entry", "weighed-long-ago"}, ids)

	// input order is untouched
	assert.Equal(t, "weighed-recently", members[0].ID)
}

func TestAssign_RankedWhenEveryCandidateIsProjected(t *testing.T) {
	e1, e2, e3 := 40.0, 60.0, 50.0
	candidates := []candidate{
		{member: &schema.BatchAnimal{ID: "a"}, expected: &e1},
		{member: &schema.BatchAnimal{ID: "b"}, expected: &e2},
		{member: &schema.BatchAnimal{ID: "c"}, expected: &e3},
	}

	got := assign(adapter.NewRandom(1), candidates, []float64{45, 62, 51})
	assert.Equal(t, []schema.WeighingAssignment{
		{AnimalID: "b", WeightKg: 62},
		{AnimalID: "c", WeightKg: 51},
		{AnimalID: "a", WeightKg: 45},
	}, got)
}

func TestAssign_ShuffledWithoutProjection(t *testing.T) {
	e := 40.0
	candidates := []candidate{
		{member: &schema.BatchAnimal{ID: "a"}, expected: &e},
		{member: &schema.BatchAnimal{ID: "b"}},
		{member: &schema.BatchAnimal{ID: "c"}},
	}
	measurements := []float64{45, 62, 51}

	first := assign(adapter.NewRandom(9), candidates, measurements)
	again := assign(adapter.NewRandom(9), candidates, measurements)
	assert.Equal(t, first, again, "same seed gives the same attribution")

	// the candidate order is kept and every measurement is used once
	weights := make([]float64, 0, 3)
	for i, a := range first {
		assert.Equal(t, candidates[i].member.ID, a.AnimalID)
		weights = append(weights, a.WeightKg)
	}
	assert.ElementsMatch(t, measurements, weights)
}

func TestAssign_Bijection(t *testing.T) {
	r := adapter.NewRandom(123)
	for round := range 50 {
		n := 1 + r.IntN(30)
		k := 1 + r.IntN(n)

		members := make([]*schema.BatchAnimal, 0, n)
		for i := range n {
			m := &schema.BatchAnimal{ID: fmt.Sprintf("m%02d", i), EntryDate: *at(1 + i%20)}
			if r.Float64() < 0.7 {
				m.LastWeighingDate = at(1 + r.IntN(25))
				m.CurrentWeightKg = 10 + 90*r.Float64()
			}
			members = append(members, m)
		}

		measurements := make([]float64, 0, k)
		for range k {
			measurements = append(measurements, 5+100*r.Float64())
		}

		selected := selectCandidates(members, k)
		candidates := make([]candidate, 0, k)
		for _, m := range selected {
			c := candidate{member: m}
			if hasHistory(m) {
				w := m.CurrentWeightKg
				c.expected = &w
			}
			candidates = append(candidates, c)
		}

		got := assign(r, candidates, measurements)
		require.Len(t, got, k, "round %d", round)

		seen := map[string]bool{}
		weights := make([]float64, 0, k)
		for _, a := range got {
			assert.False(t, seen[a.AnimalID], "round %d: %s assigned twice", round, a.AnimalID)
			seen[a.AnimalID] = true
			weights = append(weights, a.WeightKg)
		}
		sort.Float64s(weights)
		want := append([]float64(nil), measurements...)
		sort.Float64s(want)
		assert.Equal(t, want, weights, "round %d", round)
	}
}

func TestMovedSince(t *testing.T) {
	transfer := &schema.BatchAnimalMovement{MovementDate: *at(10)}
	assert.True(t, movedSince(transfer, *at(5)))
	assert.False(t, movedSince(transfer, *at(10)))
	assert.False(t, movedSince(transfer, *at(15)))
	assert.False(t, movedSince(nil, *at(5)))
}
