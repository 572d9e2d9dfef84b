package sweeper_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/metrics"
	"github.com/porcinet/herdbook/internal/mocks"
	"github.com/porcinet/herdbook/internal/store/memory"
	"github.com/porcinet/herdbook/internal/store/schema"
	"github.com/porcinet/herdbook/internal/sweeper"
)

const abandoned = "abandoned: no terminal status recorded within 1h0m0s"

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// testSweeperMocks contains all the mocks needed for testing the reconciler
type testSweeperMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	clock    *mocks.MockClock
	registry *prometheus.Registry
	sweeper  *sweeper.StaleMigrationReconciler
}

func testConfig() *sweeper.StaleMigrationReconcilerConfig {
	return &sweeper.StaleMigrationReconcilerConfig{
		Schedule:       "@every 1h",
		StaleAfter:     time.Hour,
		BatchSize:      10,
		WorkerPoolSize: 2,
	}
}

// setupTestSweeper creates all the mocks and the reconciler for testing
func setupTestSweeper(t *testing.T) *testSweeperMocks {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testSweeperMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		clock:    mocks.NewMockClock(ctrl),
		registry: prometheus.NewRegistry(),
	}
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()

	tm.sweeper = sweeper.NewStaleMigrationReconciler(testConfig(), tm.store, tm.clock, metrics.New(tm.registry))

	return tm
}

// tearDownTestSweeper cleans up the test mocks
func tearDownTestSweeper(mocks *testSweeperMocks) {
	mocks.ctrl.Finish()
}

func assertReconciled(t *testing.T, registry *prometheus.Registry, n int) {
	t.Helper()
	expected := fmt.Sprintf(`
# HELP herdbook_reconciled_migrations_total Stale in_progress migration records marked failed by the reconciler.
# TYPE herdbook_reconciled_migrations_total counter
herdbook_reconciled_migrations_total %d
`, n)
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "herdbook_reconciled_migrations_total"))
}

func TestStaleMigrationReconciler_Name(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	assert.Equal(t, "stale-migration-reconciler", mocks.sweeper.Name())
}

func TestStaleMigrationReconciler_RunCycle_MarksStaleRecordsFailed(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	ctx := context.Background()
	records := []*schema.MigrationRecord{
		{ID: "01HQ0000000000000000000001", MigrationType: domain.MigrationBatchToIndividual, StartedAt: now.Add(-3 * time.Hour)},
		{ID: "01HQ0000000000000000000002", MigrationType: domain.MigrationIndividualToBatch, StartedAt: now.Add(-2 * time.Hour)},
	}

	mocks.store.EXPECT().
		ListStaleMigrationRecords(gomock.Any(), now.Add(-time.Hour), 10).
		Return(records, nil)
	mocks.store.EXPECT().
		FailMigrationRecord(gomock.Any(), records[0].ID, abandoned, now).
		Return(nil)
	// the second one completed while the cycle was running
	mocks.store.EXPECT().
		FailMigrationRecord(gomock.Any(), records[1].ID, abandoned, now).
		Return(fmt.Errorf("migration record %s: %w", records[1].ID, domain.ErrMigrationNotInProgress))

	n, err := mocks.sweeper.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assertReconciled(t, mocks.registry, 1)
}

func TestStaleMigrationReconciler_RunCycle_NothingStale(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	mocks.store.EXPECT().
		ListStaleMigrationRecords(gomock.Any(), gomock.Any(), 10).
		Return([]*schema.MigrationRecord{}, nil)

	n, err := mocks.sweeper.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assertReconciled(t, mocks.registry, 0)
}

func TestStaleMigrationReconciler_RunCycle_Errors(t *testing.T) {
	t.Run("listing fails", func(t *testing.T) {
		mocks := setupTestSweeper(t)
		defer tearDownTestSweeper(mocks)

		mocks.store.EXPECT().
			ListStaleMigrationRecords(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection refused"))

		_, err := mocks.sweeper.RunCycle(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("a write fails", func(t *testing.T) {
		mocks := setupTestSweeper(t)
		defer tearDownTestSweeper(mocks)

		records := []*schema.MigrationRecord{
			{ID: "01HQ0000000000000000000001", StartedAt: now.Add(-3 * time.Hour)},
			{ID: "01HQ0000000000000000000002", StartedAt: now.Add(-2 * time.Hour)},
		}
		mocks.store.EXPECT().
			ListStaleMigrationRecords(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(records, nil)
		mocks.store.EXPECT().
			FailMigrationRecord(gomock.Any(), records[0].ID, abandoned, now).
			Return(errors.New("connection reset"))
		mocks.store.EXPECT().
			FailMigrationRecord(gomock.Any(), records[1].ID, abandoned, now).
			Return(nil)

		n, err := mocks.sweeper.RunCycle(context.Background())
		require.Error(t, err)
		assert.Equal(t, 1, n)
		assertReconciled(t, mocks.registry, 1)
	})
}

func TestStaleMigrationReconciler_RunCycle_MemoryStore(t *testing.T) {
	err := logger.Initialize(logger.Config{Debug: false})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(now).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()

	ctx := context.Background()
	st := memory.New()
	project := &schema.Project{Name: "north farm", OwnerID: "farmer-1", ManagementMethod: domain.ManagementBatch}
	require.NoError(t, st.CreateProject(ctx, project))

	record := func(id string, startedAt time.Time) *schema.MigrationRecord {
		r := &schema.MigrationRecord{
			ID:            id,
			MigrationType: domain.MigrationBatchToIndividual,
			ProjectID:     project.ID,
			UserID:        "farmer-1",
			SourceIDs:     schema.IDList([]string{"b1"}),
			Options:       []byte(`{}`),
			Status:        domain.MigrationStatusInProgress,
			StartedAt:     startedAt,
		}
		require.NoError(t, st.CreateMigrationRecord(ctx, r))
		return r
	}
	stale := record("01HQ0000000000000000000001", now.Add(-2*time.Hour))
	fresh := record("01HQ0000000000000000000002", now.Add(-10*time.Minute))
	done := record("01HQ0000000000000000000003", now.Add(-5*time.Hour))
	require.NoError(t, st.FailMigrationRecord(ctx, done.ID, "disk full", now.Add(-5*time.Hour)))

	reconciler := sweeper.NewStaleMigrationReconciler(testConfig(), st, clock, nil)
	n, err := reconciler.RunCycle(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := st.GetMigrationRecord(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationStatusFailed, got.Status)
	assert.Equal(t, abandoned, got.ErrorMessage)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, now, *got.CompletedAt)

	got, err = st.GetMigrationRecord(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MigrationStatusInProgress, got.Status)

	got, err = st.GetMigrationRecord(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, "disk full", got.ErrorMessage, "terminal records are never rewritten")

	// a second cycle has nothing left to do
	n, err = reconciler.RunCycle(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStaleMigrationReconciler_StartStop(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	ctx := context.Background()
	errCh := make(chan error, 1)
	go func() {
		errCh <- mocks.sweeper.Start(ctx)
	}()

	// Give the scheduler time to start
	time.Sleep(50 * time.Millisecond)
	assert.Error(t, mocks.sweeper.Start(ctx), "second Start must report the running reconciler")

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, mocks.sweeper.Stop(stopCtx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Stop")
	}

	// stopping twice is a no-op
	assert.NoError(t, mocks.sweeper.Stop(stopCtx))
}

func TestStaleMigrationReconciler_StartStopsOnContextCancel(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- mocks.sweeper.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancellation")
	}
}

func TestStaleMigrationReconciler_InvalidSchedule(t *testing.T) {
	mocks := setupTestSweeper(t)
	defer tearDownTestSweeper(mocks)

	cfg := testConfig()
	cfg.Schedule = "every tuesday"
	s := sweeper.NewStaleMigrationReconciler(cfg, mocks.store, mocks.clock, nil)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid reconcile schedule")
}
