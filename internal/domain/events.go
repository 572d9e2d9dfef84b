package domain

import "time"

// EventType identifies a domain event published after a commit
type EventType string

const (
	EventWeighingRecorded   EventType = "weighing.recorded"
	EventMigrationCompleted EventType = "migration.completed"
	EventMigrationFailed    EventType = "migration.failed"
)

// Event is the payload published to the message broker
type Event struct {
	ID         string         `json:"id"`
	Type       EventType      `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	ProjectID  string         `json:"project_id"`
	SubjectID  string         `json:"subject_id"`
	Data       map[string]any `json:"data,omitempty"`
}
