package emitter

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/logger"
	"github.com/porcinet/herdbook/internal/messaging"
)

// Config holds the configuration for the event emitter
type Config struct {
	// PublishTimeout bounds a single publish so a slow broker never delays the caller for long
	PublishTimeout time.Duration
}

// Emitter announces committed engine results to the message broker
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	// Emit publishes one event. It is called after commit and never fails the caller:
	// publish errors are logged.
	Emit(ctx context.Context, eventType domain.EventType, projectID, subjectID string, data map[string]any)
}

type emitter struct {
	publisher messaging.Publisher
	clock     adapter.Clock
	config    Config
}

// NewEmitter creates a new event emitter
func NewEmitter(pub messaging.Publisher, clock adapter.Clock, cfg Config) Emitter {
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}
	return &emitter{
		publisher: pub,
		clock:     clock,
		config:    cfg,
	}
}

func (e *emitter) Emit(ctx context.Context, eventType domain.EventType, projectID, subjectID string, data map[string]any) {
	now := e.clock.Now()
	event := &domain.Event{
		ID:         ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String(),
		Type:       eventType,
		OccurredAt: now,
		ProjectID:  projectID,
		SubjectID:  subjectID,
		Data:       data,
	}

	// the caller's request may already be finished; the event still goes out
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.config.PublishTimeout)
	defer cancel()

	if err := e.publisher.Publish(pubCtx, event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "failed to publish event"),
			zap.String("event_type", string(eventType)),
			zap.String("event_id", event.ID),
			zap.String("subject_id", subjectID))
		return
	}

	logger.DebugCtx(ctx, "Event published", zap.String("event_type", string(eventType)), zap.String("event_id", event.ID))
}
