package messaging

import (
	"context"

	"github.com/porcinet/herdbook/internal/domain"
)

// Publisher defines the interface for publishing domain events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish publishes a domain event
	Publish(ctx context.Context, event *domain.Event) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher creates a publisher that drops every event, for deployments without a broker
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, *domain.Event) error { return nil }

func (noopPublisher) Close() {}
