package adapter

import "time"

// Clock is the time source of the engines and the reconciler.
// Weighing dates, migration timestamps and stale cutoffs are all taken from it in UTC.
//
//go:generate mockgen -source=clock.go -destination=../mocks/clock.go -package=mocks -mock_names=Clock=MockClock
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type utcClock struct{}

// NewClock returns the wall clock
func NewClock() Clock {
	return utcClock{}
}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}

func (utcClock) Since(t time.Time) time.Duration {
	return time.Now().Sub(t)
}
