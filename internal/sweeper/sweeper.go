package sweeper

import (
	"context"
)

// Sweeper is a scheduled background job that repairs state the request path left behind
//
//go:generate mockgen -source=sweeper.go -destination=../mocks/sweeper.go -package=mocks -mock_names=Sweeper=MockSweeper
type Sweeper interface {
	// Start runs the schedule until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop ends the schedule and waits for a running cycle to finish
	Stop(ctx context.Context) error

	// RunCycle performs a single pass and returns the number of records it repaired
	RunCycle(ctx context.Context) (int, error)

	// Name identifies the sweeper in logs
	Name() string
}
