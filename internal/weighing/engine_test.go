package weighing_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/access"
	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/metrics"
	"github.com/porcinet/herdbook/internal/mocks"
	"github.com/porcinet/herdbook/internal/store/memory"
	"github.com/porcinet/herdbook/internal/store/schema"
	"github.com/porcinet/herdbook/internal/weighing"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const owner = "farmer-1"

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// testEngineMocks contains the engine under test and its collaborators
type testEngineMocks struct {
	ctrl     *gomock.Controller
	store    *memory.Store
	clock    *mocks.MockClock
	emitter  *mocks.MockEmitter
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	engine   *weighing.Engine
}

func setupTestEngine(t *testing.T) *testEngineMocks {
	ctrl := gomock.NewController(t)

	tm := &testEngineMocks{
		ctrl:     ctrl,
		store:    memory.New(),
		clock:    mocks.NewMockClock(ctrl),
		emitter:  mocks.NewMockEmitter(ctrl),
		registry: prometheus.NewRegistry(),
	}
	tm.metrics = metrics.New(tm.registry)
	tm.clock.EXPECT().Now().Return(now).AnyTimes()

	tm.engine = weighing.NewEngine(
		tm.store,
		access.NewStoreChecker(tm.store),
		tm.clock,
		adapter.NewRandom(42),
		adapter.NewJSON(),
		tm.emitter,
		tm.metrics,
		weighing.Config{DefaultADG: 0.4},
	)

	return tm
}

func tearDownTestEngine(tm *testEngineMocks) {
	tm.ctrl.Finish()
}

func ptr[T any](v T) *T {
	return &v
}

func date(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 9, 0, 0, 0, time.UTC)
}

// seedBatch creates a project owned by owner and a batch holding members
func (tm *testEngineMocks) seedBatch(t *testing.T, adg *float64, members ...*schema.BatchAnimal) (*schema.Project, *schema.Batch) {
	t.Helper()
	ctx := context.Background()

	project := &schema.Project{Name: "north farm", OwnerID: owner, ManagementMethod: domain.ManagementBatch}
	require.NoError(t, tm.store.CreateProject(ctx, project))

	batch := &schema.Batch{
		ProjectID:         project.ID,
		PenName:           "B1-P4",
		Category:          "growing",
		AvgDailyGain:      adg,
		BatchCreationDate: date(time.January, 1),
	}
	require.NoError(t, tm.store.CreateBatch(ctx, batch))

	for _, m := range members {
		m.BatchID = batch.ID
		if m.Sex == "" {
			m.Sex = domain.SexFemale
		}
		if m.EntryDate.IsZero() {
			m.EntryDate = date(time.January, 1)
		}
	}
	require.NoError(t, tm.store.CreateBatchAnimals(ctx, members))
	require.NoError(t, tm.store.RefreshBatchCounts(ctx, batch.ID))

	batch, err := tm.store.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	return project, batch
}

// assertOutcome checks that exactly one weighing was counted, with the given outcome
func (tm *testEngineMocks) assertOutcome(t *testing.T, outcome string) {
	t.Helper()
	expected := fmt.Sprintf(`
# HELP herdbook_weighings_total Weighing sessions recorded, by outcome.
# TYPE herdbook_weighings_total counter
herdbook_weighings_total{outcome=%q} 1
`, outcome)
	assert.NoError(t, testutil.GatherAndCompare(tm.registry, strings.NewReader(expected), "herdbook_weighings_total"))
}

func weighedMember(id string, weight float64, at time.Time) *schema.BatchAnimal {
	return &schema.BatchAnimal{ID: id, CurrentWeightKg: weight, LastWeighingDate: ptr(at)}
}

func assignedTo(assignments []schema.WeighingAssignment) map[string]float64 {
	out := make(map[string]float64, len(assignments))
	for _, a := range assignments {
		out[a.AnimalID] = a.WeightKg
	}
	return out
}

func TestRecordWeighing_AttributesEachMeasurementOnce(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	members := make([]*schema.BatchAnimal, 0, 10)
	for i := range 10 {
		members = append(members, &schema.BatchAnimal{
			ID:              "00000000-0000-0000-0000-00000000000" + string(rune('0'+i)),
			CurrentWeightKg: 50,
		})
	}
	project, batch := tm.seedBatch(t, nil, members...)
	ctx := context.Background()

	tm.emitter.EXPECT().
		Emit(gomock.Any(), domain.EventWeighingRecorded, project.ID, batch.ID, gomock.Any()).
		Times(1)

	result, err := tm.engine.RecordWeighing(ctx, weighing.Request{
		BatchID:      batch.ID,
		UserID:       owner,
		Measurements: []float64{48, 52, 55, 45},
	})
	require.NoError(t, err)

	require.Len(t, result.Assignments, 4)
	assigned := assignedTo(result.Assignments)
	assert.Len(t, assigned, 4, "each member receives at most one measurement")

	memberIDs := map[string]bool{}
	for _, m := range members {
		memberIDs[m.ID] = true
	}
	weights := make([]float64, 0, 4)
	total := 0.0
	for id, w := range assigned {
		assert.True(t, memberIDs[id], "%s is not a member of the batch", id)
		weights = append(weights, w)
		total += w
	}
	assert.ElementsMatch(t, []float64{48, 52, 55, 45}, weights)
	assert.Equal(t, 200.0, total)

	assert.Equal(t, project.ID, result.ProjectID)
	assert.Equal(t, 4, result.Weighing.Count)
	assert.Equal(t, 50.0, result.Weighing.AverageWeightKg)
	assert.Equal(t, 45.0, result.Weighing.MinWeightKg)
	assert.Equal(t, 55.0, result.Weighing.MaxWeightKg)
	assert.Equal(t, now, result.Weighing.WeighingDate)
	assert.Equal(t, 50.0, result.BatchAverageWeightKg)

	// persisted state
	stored, err := tm.store.ListBatchWeighings(ctx, batch.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	persisted, err := schema.ParseAssignments(stored[0].Assignments)
	require.NoError(t, err)
	assert.ElementsMatch(t, result.Assignments, persisted)

	rows, err := tm.store.ListBatchAnimals(ctx, batch.ID)
	require.NoError(t, err)
	for _, m := range rows {
		if w, ok := assigned[m.ID]; ok {
			assert.Equal(t, w, m.CurrentWeightKg)
			require.NotNil(t, m.LastWeighingDate)
			assert.Equal(t, now, *m.LastWeighingDate)
		} else {
			assert.Equal(t, 50.0, m.CurrentWeightKg)
			assert.Nil(t, m.LastWeighingDate)
		}
	}

	updated, err := tm.store.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, updated.AverageWeightKg)

	tm.assertOutcome(t, "success")
}

func TestRecordWeighing_PrefersMembersNeverWeighed(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	_, batch := tm.seedBatch(t, nil,
		weighedMember("a0000000-0000-0000-0000-000000000001", 30, date(time.February, 1)),
		weighedMember("a0000000-0000-0000-0000-000000000002", 30, date(time.January, 15)),
		&schema.BatchAnimal{ID: "a0000000-0000-0000-0000-000000000003", CurrentWeightKg: 25},
		&schema.BatchAnimal{ID: "a0000000-0000-0000-0000-000000000004", CurrentWeightKg: 25},
	)
	tm.emitter.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())

	result, err := tm.engine.RecordWeighing(context.Background(), weighing.Request{
		BatchID:      batch.ID,
		UserID:       owner,
		Measurements: []float64{31, 29, 33},
	})
	require.NoError(t, err)

	assigned := assignedTo(result.Assignments)
	assert.Contains(t, assigned, "a0000000-0000-0000-0000-000000000003")
	assert.Contains(t, assigned, "a0000000-0000-0000-0000-000000000004")
	assert.Contains(t, assigned, "a0000000-0000-0000-0000-000000000002", "the member weighed longest ago comes next")
	assert.NotContains(t, assigned, "a0000000-0000-0000-0000-000000000001")
}

func TestRecordWeighing_RanksByProjectedWeight(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)

	weighedAt := date(time.February, 20)
	_, batch := tm.seedBatch(t, nil,
		weighedMember("b0000000-0000-0000-0000-000000000001", 30, weighedAt),
		weighedMember("b0000000-0000-0000-0000-000000000002", 50, weighedAt),
		weighedMember("b0000000-0000-0000-0000-000000000003", 40, weighedAt),
	)
	tm.emitter.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())

	result, err := tm.engine.RecordWeighing(context.Background(), weighing.Request{
		BatchID:      batch.ID,
		UserID:       owner,
		Measurements: []float64{41, 52, 33},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"b0000000-0000-0000-0000-000000000001": 33,
		"b0000000-0000-0000-0000-000000000002": 52,
		"b0000000-0000-0000-0000-000000000003": 41,
	}, assignedTo(result.Assignments))
	assert.Equal(t, 42.0, result.BatchAverageWeightKg)
}

func TestRecordWeighing_UsesOriginBatchGainAfterTransfer(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)
	ctx := context.Background()

	lastWeighed := date(time.February, 1)
	stayed := "c0000000-0000-0000-0000-000000000001"
	moved := "c0000000-0000-0000-0000-000000000002"
	project, batch := tm.seedBatch(t, ptr(0.1),
		weighedMember(stayed, 50, lastWeighed),
		weighedMember(moved, 50, lastWeighed),
	)

	origin := &schema.Batch{
		ProjectID:         project.ID,
		PenName:           "B2-P1",
		Category:          "growing",
		AvgDailyGain:      ptr(1.0),
		BatchCreationDate: date(time.January, 1),
	}
	require.NoError(t, tm.store.CreateBatch(ctx, origin))
	require.NoError(t, tm.store.CreateBatchAnimalMovements(ctx, []*schema.BatchAnimalMovement{{
		AnimalID:     moved,
		MovementType: domain.MovementTransfer,
		FromBatchID:  ptr(origin.ID),
		ToBatchID:    ptr(batch.ID),
		MovementDate: date(time.February, 5),
	}}))

	tm.emitter.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())

	// 20 days later: stayed expects 52 kg on the batch gain, moved expects 70 kg on the origin gain
	result, err := tm.engine.RecordWeighing(ctx, weighing.Request{
		BatchID:      batch.ID,
		UserID:       owner,
		Measurements: []float64{53, 60},
		WeighingDate: ptr(date(time.February, 21)),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{stayed: 53, moved: 60}, assignedTo(result.Assignments))
	assert.Equal(t, date(time.February, 21), result.Weighing.WeighingDate)
}

func TestRecordWeighing_Errors(t *testing.T) {
	tests := []struct {
		name    string
		request func(batchID string) weighing.Request
		kind    error
		outcome string
	}{
		{
			name: "no valid measurement",
			request: func(batchID string) weighing.Request {
				return weighing.Request{BatchID: batchID, UserID: owner, Measurements: []float64{0, -4}}
			},
			kind:    domain.ErrInvalidInput,
			outcome: "invalid_input",
		},
		{
			name: "more measurements than animals",
			request: func(batchID string) weighing.Request {
				return weighing.Request{BatchID: batchID, UserID: owner, Measurements: []float64{40, 41, 42}}
			},
			kind:    domain.ErrInvalidInput,
			outcome: "invalid_input",
		},
		{
			name: "unknown batch",
			request: func(string) weighing.Request {
				return weighing.Request{BatchID: "ffffffff-0000-0000-0000-000000000000", UserID: owner, Measurements: []float64{40}}
			},
			kind:    domain.ErrNotFound,
			outcome: "not_found",
		},
		{
			name: "not the owner",
			request: func(batchID string) weighing.Request {
				return weighing.Request{BatchID: batchID, UserID: "neighbour", Measurements: []float64{40}}
			},
			kind:    domain.ErrForbidden,
			outcome: "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestEngine(t)
			defer tearDownTestEngine(tm)

			_, batch := tm.seedBatch(t, nil,
				&schema.BatchAnimal{CurrentWeightKg: 40},
				&schema.BatchAnimal{CurrentWeightKg: 40},
			)

			result, err := tm.engine.RecordWeighing(context.Background(), tt.request(batch.ID))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.kind)

			stored, err := tm.store.ListBatchWeighings(context.Background(), batch.ID)
			require.NoError(t, err)
			assert.Empty(t, stored)
			tm.assertOutcome(t, tt.outcome)
		})
	}
}

func TestRecordWeighing_RollsBackOnStoreFailure(t *testing.T) {
	tm := setupTestEngine(t)
	defer tearDownTestEngine(tm)
	ctx := context.Background()

	_, batch := tm.seedBatch(t, nil,
		&schema.BatchAnimal{CurrentWeightKg: 40},
		&schema.BatchAnimal{CurrentWeightKg: 40},
	)
	require.NoError(t, tm.store.UpdateBatchAverageWeight(ctx, batch.ID, 40))
	tm.store.FailOn("UpdateBatchAnimalWeights", errors.New("disk full"))

	_, err := tm.engine.RecordWeighing(ctx, weighing.Request{
		BatchID:      batch.ID,
		UserID:       owner,
		Measurements: []float64{44, 46},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransactionFailure)
	assert.ErrorContains(t, err, "disk full")

	stored, err := tm.store.ListBatchWeighings(ctx, batch.ID)
	require.NoError(t, err)
	assert.Empty(t, stored, "the weighing row is rolled back with the failed update")

	rows, err := tm.store.ListBatchAnimals(ctx, batch.ID)
	require.NoError(t, err)
	for _, m := range rows {
		assert.Equal(t, 40.0, m.CurrentWeightKg)
		assert.Nil(t, m.LastWeighingDate)
	}
	tm.assertOutcome(t, "transaction_failure")
}
