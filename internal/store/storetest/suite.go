// Package storetest holds the Store contract tests shared by every store.Store implementation
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/store"
	"github.com/porcinet/herdbook/internal/store/schema"
)

// Run runs all store tests. initDB must return a Store with an empty or isolated dataset.
func Run(t *testing.T, initDB func(t *testing.T) store.Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, store.Store)
	}{
		{"Projects", testProjects},
		{"Batches", testBatches},
		{"BatchAnimals", testBatchAnimals},
		{"LatestTransfers", testLatestTransfers},
		{"BatchRecords", testBatchRecords},
		{"Animals", testAnimals},
		{"AnimalRecords", testAnimalRecords},
		{"MigrationRecords", testMigrationRecords},
		{"StaleMigrationRecords", testStaleMigrationRecords},
		{"WithTxRollback", testWithTxRollback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}

// =============================================================================
// Test Data Builders
// =============================================================================

// day returns a fixed UTC date at microsecond precision, which postgres round-trips exactly
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 8, 0, 0, 0, time.UTC)
}

func createProject(t *testing.T, s store.Store, owner string) *schema.Project {
	t.Helper()
	p := &schema.Project{Name: "farm " + owner, OwnerID: owner}
	require.NoError(t, s.CreateProject(context.Background(), p))
	require.NotEmpty(t, p.ID)
	return p
}

func createBatch(t *testing.T, s store.Store, projectID, pen string) *schema.Batch {
	t.Helper()
	b := &schema.Batch{
		ProjectID:         projectID,
		PenName:           pen,
		Category:          "growing",
		AverageWeightKg:   30,
		AverageAgeMonths:  3,
		BatchCreationDate: day(2024, 1, 10),
	}
	require.NoError(t, s.CreateBatch(context.Background(), b))
	require.NotEmpty(t, b.ID)
	return b
}

func createMembers(t *testing.T, s store.Store, batchID string, sexes ...domain.Sex) []*schema.BatchAnimal {
	t.Helper()
	members := make([]*schema.BatchAnimal, 0, len(sexes))
	for i, sex := range sexes {
		members = append(members, &schema.BatchAnimal{
			BatchID:         batchID,
			Sex:             sex,
			CurrentWeightKg: 30,
			EntryDate:       day(2024, 1, 10+i),
		})
	}
	require.NoError(t, s.CreateBatchAnimals(context.Background(), members))
	return members
}

func createAnimal(t *testing.T, s store.Store, projectID, code string, weight float64) *schema.Animal {
	t.Helper()
	a := &schema.Animal{
		ProjectID:       projectID,
		Code:            code,
		Sex:             domain.SexFemale,
		InitialWeightKg: weight,
		CurrentWeightKg: weight,
		EntryDate:       day(2024, 2, 1),
		Active:          true,
	}
	require.NoError(t, s.CreateAnimals(context.Background(), []*schema.Animal{a}))
	require.NotEmpty(t, a.ID)
	return a
}

func createMigration(t *testing.T, s store.Store, projectID string, startedAt time.Time) *schema.MigrationRecord {
	t.Helper()
	r := &schema.MigrationRecord{
		ID:            ulid.Make().String(),
		MigrationType: domain.MigrationBatchToIndividual,
		ProjectID:     projectID,
		UserID:        "user-1",
		SourceIDs:     schema.IDList([]string{uuid.NewString()}),
		Options:       datatypes.JSON(`{}`),
		Status:        domain.MigrationStatusInProgress,
		StartedAt:     startedAt,
	}
	require.NoError(t, s.CreateMigrationRecord(context.Background(), r))
	return r
}

// =============================================================================
// Tests
// =============================================================================

func testProjects(t *testing.T, s store.Store) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		p := createProject(t, s, "owner-a")

		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "owner-a", got.OwnerID)
		assert.Equal(t, domain.ManagementIndividual, got.ManagementMethod)
	})

	t.Run("unknown project returns nil", func(t *testing.T) {
		got, err := s.GetProject(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("switch management method", func(t *testing.T) {
		p := createProject(t, s, "owner-b")
		require.NoError(t, s.UpdateProjectManagementMethod(ctx, p.ID, domain.ManagementBatch))

		got, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ManagementBatch, got.ManagementMethod)
	})
}

func testBatches(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := createProject(t, s, "owner-a")

	t.Run("create, get and lock", func(t *testing.T) {
		adg := 0.65
		b := &schema.Batch{
			ProjectID:         p.ID,
			PenName:           "B2-P04",
			Category:          "finishing",
			AvgDailyGain:      &adg,
			BatchCreationDate: day(2024, 3, 1),
		}
		require.NoError(t, s.CreateBatch(ctx, b))

		got, err := s.GetBatch(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "B2-P04", got.PenName)
		require.NotNil(t, got.AvgDailyGain)
		assert.InDelta(t, 0.65, *got.AvgDailyGain, 1e-9)
		assert.True(t, got.BatchCreationDate.Equal(day(2024, 3, 1)))

		err = s.WithTx(ctx, func(tx store.Store) error {
			locked, err := tx.LockBatch(ctx, b.ID)
			require.NoError(t, err)
			require.NotNil(t, locked)
			assert.Equal(t, b.ID, locked.ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("unknown batch returns nil", func(t *testing.T) {
		got, err := s.GetBatch(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, got)

		locked, err := s.LockBatch(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, locked)
	})

	t.Run("get by ids skips unknown ids", func(t *testing.T) {
		b1 := createBatch(t, s, p.ID, "P1")
		b2 := createBatch(t, s, p.ID, "P2")

		got, err := s.GetBatchesByIDs(ctx, []string{b1.ID, uuid.NewString(), b2.ID})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		empty, err := s.GetBatchesByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("refresh counts from members", func(t *testing.T) {
		b := createBatch(t, s, p.ID, "P3")
		createMembers(t, s, b.ID, domain.SexMale, domain.SexMale, domain.SexFemale, domain.SexCastrated)

		require.NoError(t, s.RefreshBatchCounts(ctx, b.ID))

		got, err := s.GetBatch(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.TotalCount)
		assert.Equal(t, 2, got.MaleCount)
		assert.Equal(t, 1, got.FemaleCount)
		assert.Equal(t, 1, got.CastratedCount)
	})

	t.Run("update average weight", func(t *testing.T) {
		b := createBatch(t, s, p.ID, "P4")
		require.NoError(t, s.UpdateBatchAverageWeight(ctx, b.ID, 42.125))

		got, err := s.GetBatch(ctx, b.ID)
		require.NoError(t, err)
		assert.InDelta(t, 42.125, got.AverageWeightKg, 1e-9)
	})
}

func testBatchAnimals(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := createProject(t, s, "owner-a")
	b := createBatch(t, s, p.ID, "P1")

	t.Run("list ordered by entry date", func(t *testing.T) {
		members := []*schema.BatchAnimal{
			{BatchID: b.ID, Sex: domain.SexMale, EntryDate: day(2024, 1, 12)},
			{BatchID: b.ID, Sex: domain.SexFemale, EntryDate: day(2024, 1, 10)},
			{BatchID: b.ID, Sex: domain.SexFemale, EntryDate: day(2024, 1, 11)},
		}
		require.NoError(t, s.CreateBatchAnimals(ctx, members))
		for _, m := range members {
			assert.NotEmpty(t, m.ID)
		}

		got, err := s.ListBatchAnimals(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, members[1].ID, got[0].ID)
		assert.Equal(t, members[2].ID, got[1].ID)
		assert.Equal(t, members[0].ID, got[2].ID)
		assert.Equal(t, domain.HealthStatusHealthy, got[0].HealthStatus)
		assert.Nil(t, got[0].LastWeighingDate)
	})

	t.Run("update weights", func(t *testing.T) {
		members, err := s.ListBatchAnimals(ctx, b.ID)
		require.NoError(t, err)
		weighedAt := day(2024, 4, 1)

		err = s.UpdateBatchAnimalWeights(ctx, []store.BatchAnimalWeightUpdate{
			{AnimalID: members[0].ID, WeightKg: 51.5, WeighedAt: weighedAt},
		})
		require.NoError(t, err)

		got, err := s.ListBatchAnimals(ctx, b.ID)
		require.NoError(t, err)
		assert.InDelta(t, 51.5, got[0].CurrentWeightKg, 1e-9)
		require.NotNil(t, got[0].LastWeighingDate)
		assert.True(t, got[0].LastWeighingDate.Equal(weighedAt))
		assert.Nil(t, got[1].LastWeighingDate)
	})

	t.Run("update unknown member fails", func(t *testing.T) {
		err := s.UpdateBatchAnimalWeights(ctx, []store.BatchAnimalWeightUpdate{
			{AnimalID: uuid.NewString(), WeightKg: 10, WeighedAt: day(2024, 4, 1)},
		})
		assert.Error(t, err)
	})
}

func testLatestTransfers(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := createProject(t, s, "owner-a")
	origin := createBatch(t, s, p.ID, "P1")
	target := createBatch(t, s, p.ID, "P2")
	members := createMembers(t, s, target.ID, domain.SexMale, domain.SexFemale)

	movements := []*schema.BatchAnimalMovement{
		{AnimalID: members[0].ID, MovementType: domain.MovementTransfer, FromBatchID: &origin.ID, ToBatchID: &target.ID, MovementDate: day(2024, 2, 1)},
		{AnimalID: members[0].ID, MovementType: domain.MovementTransfer, FromBatchID: &origin.ID, ToBatchID: &target.ID, MovementDate: day(2024, 3, 1)},
		{AnimalID: members[1].ID, MovementType: domain.MovementEntry, ToBatchID: &target.ID, MovementDate: day(2024, 3, 5)},
	}
	require.NoError(t, s.CreateBatchAnimalMovements(ctx, movements))

	got, err := s.GetLatestTransfersInto(ctx, target.ID, []string{members[0].ID, members[1].ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Contains(t, got, members[0].ID)
	assert.True(t, got[members[0].ID].MovementDate.Equal(day(2024, 3, 1)))
	require.NotNil(t, got[members[0].ID].FromBatchID)
	assert.Equal(t, origin.ID, *got[members[0].ID].FromBatchID)

	empty, err := s.GetLatestTransfersInto(ctx, target.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testBatchRecords(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := createProject(t, s, "owner-a")
	b := createBatch(t, s, p.ID, "P1")
	members := createMembers(t, s, b.ID, domain.SexMale)

	w := &schema.BatchWeighing{
		BatchID:         b.ID,
		WeighingDate:    day(2024, 5, 1),
		AverageWeightKg: 40,
		MinWeightKg:     40,
		MaxWeightKg:     40,
		Count:           1,
		Assignments:     datatypes.JSON(`[{"animal_id":"` + members[0].ID + `","weight_kg":40}]`),
	}
	require.NoError(t, s.CreateBatchWeighing(ctx, w))
	assert.NotEmpty(t, w.ID)

	require.NoError(t, s.CreateBatchVaccinations(ctx, []*schema.BatchVaccination{
		{BatchID: b.ID, VaccineType: "PCV2", ProductName: "Circovac", VaccinationDate: day(2024, 2, 1), Count: 10},
		{BatchID: b.ID, VaccineType: "Myco", ProductName: "Hyogen", VaccinationDate: day(2024, 1, 20), Count: 10},
	}))
	require.NoError(t, s.CreateBatchDiseases(ctx, []*schema.BatchDisease{
		{BatchID: b.ID, AnimalID: &members[0].ID, DiseaseName: "diarrhea", DiagnosisDate: day(2024, 3, 1)},
	}))

	weighings, err := s.ListBatchWeighings(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, weighings, 1)
	assignments, err := schema.ParseAssignments(weighings[0].Assignments)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, members[0].ID, assignments[0].AnimalID)

	vaccinations, err := s.ListBatchVaccinations(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, vaccinations, 2)
	assert.Equal(t, "Hyogen", vaccinations[0].ProductName)

	diseases, err := s.ListBatchDiseases(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, diseases, 1)
	assert.Equal(t, domain.DiseaseActive, diseases[0].Status)
	assert.Equal(t, 1, diseases[0].Count)
	require.NotNil(t, diseases[0].AnimalID)
	assert.Equal(t, members[0].ID, *diseases[0].AnimalID)

	counts, err := s.CountBatchRecords(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, store.BatchRecordCounts{Vaccinations: 2, Weighings: 1, Diseases: 1}, counts)
	assert.Equal(t, int64(4), counts.Total())
}

func testAnimals(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := createProject(t, s, "owner-a")

	t.Run("create, get and lock", func(t *testing.T) {
		a1 := createAnimal(t, s, p.ID, "PIG-001", 20)
		a2 := createAnimal(t, s, p.ID, "PIG-002", 25)

		got, err := s.GetAnimalsByIDs(ctx, []string{a1.ID, a2.ID, uuid.NewString()})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, a := range got {
			assert.True(t, a.Active)
			assert.Equal(t, domain.AnimalStatusActive, a.Status)
		}

		err = s.WithTx(ctx, func(tx store.Store) error {
			locked, err := tx.LockAnimals(ctx, []string{a2.ID, a1.ID})
			require.NoError(t, err)
			assert.Len(t, locked, 2)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("deactivate", func(t *testing.T) {
		a := createAnimal(t, s, p.ID, "PIG-003", 30)
		require.NoError(t, s.DeactivateAnimals(ctx, []string{a.ID}, domain.AnimalStatusMigrated))

		got, err := s.GetAnimalsByIDs(ctx, []string{a.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.False(t, got[0].Active)
		assert.Equal(t, domain.AnimalStatusMigrated, got[0].Status)
	})

	t.Run("empty id lists", func(t *testing.T) {
		got, err := s.GetAnimalsByIDs(ctx, []string{})
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, s.DeactivateAnimals(ctx, nil, domain.AnimalStatusMigrated))
	})
}

func testAnimalRecords(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := createProject(t, s, "owner-a")
	a := createAnimal(t, s, p.ID, "PIG-001", 20)
	sourceBatch := uuid.NewString()

	require.NoError(t, s.CreateAnimalWeighings(ctx, []*schema.AnimalWeighing{
		{ProjectID: p.ID, AnimalID: a.ID, WeighedAt: day(2024, 3, 1), WeightKg: 35},
		{ProjectID: p.ID, AnimalID: a.ID, WeighedAt: day(2024, 2, 1), WeightKg: 28, SourceBatchID: &sourceBatch},
	}))
	require.NoError(t, s.CreateVaccinations(ctx, []*schema.Vaccination{
		{ProjectID: p.ID, AnimalID: &a.ID, VaccineType: "PCV2", ProductName: "Circovac", VaccinationDate: day(2024, 2, 1)},
		{ProjectID: p.ID, SourceBatchID: &sourceBatch, VaccineType: "PCV2", ProductName: "Circovac", VaccinationDate: day(2024, 2, 1)},
	}))
	require.NoError(t, s.CreateDiseases(ctx, []*schema.Disease{
		{ProjectID: p.ID, AnimalID: &a.ID, DiseaseName: "cough", DiagnosisDate: day(2024, 2, 5), Reattributed: true},
	}))

	weighings, err := s.ListAnimalWeighings(ctx, []string{a.ID})
	require.NoError(t, err)
	require.Len(t, weighings, 2)
	assert.InDelta(t, 28, weighings[0].WeightKg, 1e-9)
	require.NotNil(t, weighings[0].SourceBatchID)

	vaccinations, err := s.ListVaccinations(ctx, []string{a.ID})
	require.NoError(t, err)
	assert.Len(t, vaccinations, 1, "unattributed records are not listed per animal")

	diseases, err := s.ListDiseases(ctx, []string{a.ID})
	require.NoError(t, err)
	require.Len(t, diseases, 1)
	assert.True(t, diseases[0].Reattributed)
	assert.Equal(t, domain.DiseaseActive, diseases[0].Status)
}

func testMigrationRecords(t *testing.T, s store.Store) {
	ctx := context.Background()
	projectID := uuid.NewString()

	t.Run("complete once", func(t *testing.T) {
		r := createMigration(t, s, projectID, day(2024, 6, 1))
		targets := []string{uuid.NewString(), uuid.NewString()}

		err := s.CompleteMigrationRecord(ctx, store.CompleteMigrationInput{
			ID:          r.ID,
			TargetIDs:   targets,
			Statistics:  datatypes.JSON(`{"pigsCreated":2,"recordsMigrated":0}`),
			CompletedAt: day(2024, 6, 2),
		})
		require.NoError(t, err)

		got, err := s.GetMigrationRecord(ctx, r.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.MigrationStatusCompleted, got.Status)
		ids, err := schema.ParseIDList(got.TargetIDs)
		require.NoError(t, err)
		assert.ElementsMatch(t, targets, ids)
		require.NotNil(t, got.CompletedAt)
		assert.True(t, got.CompletedAt.Equal(day(2024, 6, 2)))

		err = s.FailMigrationRecord(ctx, r.ID, "late failure", day(2024, 6, 3))
		assert.True(t, errors.Is(err, domain.ErrMigrationNotInProgress))

		got, err = s.GetMigrationRecord(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MigrationStatusCompleted, got.Status)
		assert.Empty(t, got.ErrorMessage)
	})

	t.Run("fail once", func(t *testing.T) {
		r := createMigration(t, s, projectID, day(2024, 6, 1))
		require.NoError(t, s.FailMigrationRecord(ctx, r.ID, "boom", day(2024, 6, 2)))

		got, err := s.GetMigrationRecord(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.MigrationStatusFailed, got.Status)
		assert.Equal(t, "boom", got.ErrorMessage)

		err = s.CompleteMigrationRecord(ctx, store.CompleteMigrationInput{ID: r.ID, CompletedAt: day(2024, 6, 3)})
		assert.True(t, errors.Is(err, domain.ErrMigrationNotInProgress))
	})

	t.Run("unknown record", func(t *testing.T) {
		got, err := s.GetMigrationRecord(ctx, ulid.Make().String())
		require.NoError(t, err)
		assert.Nil(t, got)

		err = s.FailMigrationRecord(ctx, ulid.Make().String(), "boom", day(2024, 6, 2))
		assert.True(t, errors.Is(err, domain.ErrMigrationNotInProgress))
	})

	t.Run("list newest first with limit", func(t *testing.T) {
		other := uuid.NewString()
		oldest := createMigration(t, s, other, day(2024, 7, 1))
		middle := createMigration(t, s, other, day(2024, 7, 2))
		newest := createMigration(t, s, other, day(2024, 7, 3))

		got, err := s.ListMigrationRecords(ctx, other, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newest.ID, got[0].ID)
		assert.Equal(t, middle.ID, got[1].ID)

		all, err := s.ListMigrationRecords(ctx, other, 50)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, oldest.ID, all[2].ID)
	})
}

func testStaleMigrationRecords(t *testing.T, s store.Store) {
	ctx := context.Background()
	projectID := uuid.NewString()

	stale := createMigration(t, s, projectID, day(2024, 8, 1))
	done := createMigration(t, s, projectID, day(2024, 8, 1))
	require.NoError(t, s.FailMigrationRecord(ctx, done.ID, "boom", day(2024, 8, 1)))
	fresh := createMigration(t, s, projectID, day(2024, 8, 10))

	got, err := s.ListStaleMigrationRecords(ctx, day(2024, 8, 5), 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, r := range got {
		if r.ProjectID == projectID {
			ids = append(ids, r.ID)
		}
	}
	assert.Contains(t, ids, stale.ID)
	assert.NotContains(t, ids, done.ID)
	assert.NotContains(t, ids, fresh.ID)
}

func testWithTxRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	p := createProject(t, s, "owner-a")
	errBoom := errors.New("boom")

	t.Run("error rolls back every write", func(t *testing.T) {
		var batchID, animalID string
		err := s.WithTx(ctx, func(tx store.Store) error {
			b := &schema.Batch{ProjectID: p.ID, PenName: "TX", Category: "growing", BatchCreationDate: day(2024, 1, 1)}
			if err := tx.CreateBatch(ctx, b); err != nil {
				return err
			}
			batchID = b.ID

			a := &schema.Animal{ProjectID: p.ID, Code: "TX-1", Sex: domain.SexMale, EntryDate: day(2024, 1, 1)}
			if err := tx.CreateAnimals(ctx, []*schema.Animal{a}); err != nil {
				return err
			}
			animalID = a.ID

			if err := tx.UpdateProjectManagementMethod(ctx, p.ID, domain.ManagementBatch); err != nil {
				return err
			}

			got, err := tx.GetBatch(ctx, b.ID)
			require.NoError(t, err)
			require.NotNil(t, got, "writes are visible inside the transaction")
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		b, err := s.GetBatch(ctx, batchID)
		require.NoError(t, err)
		assert.Nil(t, b)

		animals, err := s.GetAnimalsByIDs(ctx, []string{animalID})
		require.NoError(t, err)
		assert.Empty(t, animals)

		project, err := s.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.ManagementIndividual, project.ManagementMethod)
	})

	t.Run("success commits", func(t *testing.T) {
		var batchID string
		err := s.WithTx(ctx, func(tx store.Store) error {
			b := &schema.Batch{ProjectID: p.ID, PenName: "TX2", Category: "growing", BatchCreationDate: day(2024, 1, 1)}
			if err := tx.CreateBatch(ctx, b); err != nil {
				return err
			}
			batchID = b.ID
			return nil
		})
		require.NoError(t, err)

		b, err := s.GetBatch(ctx, batchID)
		require.NoError(t, err)
		assert.NotNil(t, b)
	})

	t.Run("nested failure only rolls back the inner scope", func(t *testing.T) {
		var outerID, innerID string
		err := s.WithTx(ctx, func(tx store.Store) error {
			outer := &schema.Batch{ProjectID: p.ID, PenName: "OUTER", Category: "growing", BatchCreationDate: day(2024, 1, 1)}
			if err := tx.CreateBatch(ctx, outer); err != nil {
				return err
			}
			outerID = outer.ID

			innerErr := tx.WithTx(ctx, func(inner store.Store) error {
				b := &schema.Batch{ProjectID: p.ID, PenName: "INNER", Category: "growing", BatchCreationDate: day(2024, 1, 1)}
				if err := inner.CreateBatch(ctx, b); err != nil {
					return err
				}
				innerID = b.ID
				return errBoom
			})
			require.ErrorIs(t, innerErr, errBoom)
			return nil
		})
		require.NoError(t, err)

		outer, err := s.GetBatch(ctx, outerID)
		require.NoError(t, err)
		assert.NotNil(t, outer)

		inner, err := s.GetBatch(ctx, innerID)
		require.NoError(t, err)
		assert.Nil(t, inner)
	})
}
