package emitter_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/emitter"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/mocks"
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

// testEmitterMocks contains all the mocks needed for testing the emitter
type testEmitterMocks struct {
	ctrl      *gomock.Controller
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	emitter   emitter.Emitter
}

// setupTestEmitter creates all the mocks and emitter for testing
func setupTestEmitter(t *testing.T) *testEmitterMocks {
	ctrl := gomock.NewController(t)

	tm := &testEmitterMocks{
		ctrl:      ctrl,
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	tm.emitter = emitter.NewEmitter(tm.publisher, tm.clock, emitter.Config{PublishTimeout: time.Second})

	return tm
}

// tearDownTestEmitter cleans up the test mocks
func tearDownTestEmitter(mocks *testEmitterMocks) {
	mocks.ctrl.Finish()
}

func TestEmitter_Emit_PublishesEvent(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	mocks.clock.EXPECT().Now().Return(now)

	var published *domain.Event
	mocks.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.Event) error {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			published = event
			return nil
		})

	mocks.emitter.Emit(context.Background(), domain.EventWeighingRecorded, "project-1", "batch-1", map[string]any{"count": 4})

	require.NotNil(t, published)
	assert.Equal(t, domain.EventWeighingRecorded, published.Type)
	assert.Equal(t, "project-1", published.ProjectID)
	assert.Equal(t, "batch-1", published.SubjectID)
	assert.Equal(t, now, published.OccurredAt)
	assert.Equal(t, 4, published.Data["count"])

	id, err := ulid.Parse(published.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(now.UnixMilli()), id.Time())
}

func TestEmitter_Emit_PublishErrorIsSwallowed(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	mocks.clock.EXPECT().Now().Return(time.Now().UTC())
	mocks.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		Return(errors.New("nats unavailable"))

	assert.NotPanics(t, func() {
		mocks.emitter.Emit(context.Background(), domain.EventMigrationFailed, "project-1", "mig-1", nil)
	})
}

func TestEmitter_Emit_CanceledCallerContext(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mocks.clock.EXPECT().Now().Return(time.Now().UTC())
	mocks.publisher.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.Event) error {
			assert.NoError(t, ctx.Err())
			return nil
		})

	mocks.emitter.Emit(ctx, domain.EventMigrationCompleted, "project-1", "mig-1", nil)
}
