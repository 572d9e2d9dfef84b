package dto

import (
	"encoding/json"
	"time"

	"github.com/porcinet/herdbook/internal/migration"
	"github.com/porcinet/herdbook/internal/store/schema"
	"github.com/porcinet/herdbook/internal/weighing"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// WeighingResponse represents a recorded weighing session
type WeighingResponse struct {
	ID                   string                      `json:"id"`
	BatchID              string                      `json:"batch_id"`
	WeighingDate         time.Time                   `json:"weighing_date"`
	Count                int                         `json:"count"`
	AverageWeightKg      float64                     `json:"average_weight_kg"`
	MinWeightKg          float64                     `json:"min_weight_kg"`
	MaxWeightKg          float64                     `json:"max_weight_kg"`
	Assignments          []schema.WeighingAssignment `json:"assignments"`
	BatchAverageWeightKg float64                     `json:"batch_average_weight_kg"`
	Notes                string                      `json:"notes,omitempty"`
}

// MapWeighingResultToDTO maps a weighing result to its response
func MapWeighingResultToDTO(r *weighing.Result) *WeighingResponse {
	return &WeighingResponse{
		ID:                   r.Weighing.ID,
		BatchID:              r.Weighing.BatchID,
		WeighingDate:         r.Weighing.WeighingDate,
		Count:                r.Weighing.Count,
		AverageWeightKg:      r.Weighing.AverageWeightKg,
		MinWeightKg:          r.Weighing.MinWeightKg,
		MaxWeightKg:          r.Weighing.MaxWeightKg,
		Assignments:          r.Assignments,
		BatchAverageWeightKg: r.BatchAverageWeightKg,
		Notes:                r.Weighing.Notes,
	}
}

// ExplodeResponse represents a completed batch to individual migration
type ExplodeResponse struct {
	MigrationID     string   `json:"migration_id"`
	PigsCreated     int      `json:"pigs_created"`
	RecordsMigrated int      `json:"records_migrated"`
	AnimalIDs       []string `json:"animal_ids"`
}

// MapExplodeResultToDTO maps an explode result to its response
func MapExplodeResultToDTO(r *migration.ExplodeResult) *ExplodeResponse {
	return &ExplodeResponse{
		MigrationID:     r.MigrationID,
		PigsCreated:     r.PigsCreated,
		RecordsMigrated: r.RecordsMigrated,
		AnimalIDs:       r.AnimalIDs,
	}
}

// FoldResponse represents a completed individual to batch migration
type FoldResponse struct {
	MigrationID       string   `json:"migration_id"`
	BatchesCreated    int      `json:"batches_created"`
	PigsMigrated      int      `json:"pigs_migrated"`
	SkippedGroups     int      `json:"skipped_groups"`
	RecordsAggregated int      `json:"records_aggregated"`
	BatchIDs          []string `json:"batch_ids"`
}

// MapFoldResultToDTO maps a fold result to its response
func MapFoldResultToDTO(r *migration.FoldResult) *FoldResponse {
	return &FoldResponse{
		MigrationID:       r.MigrationID,
		BatchesCreated:    r.BatchesCreated,
		PigsMigrated:      r.PigsMigrated,
		SkippedGroups:     r.SkippedGroups,
		RecordsAggregated: r.RecordsAggregated,
		BatchIDs:          r.BatchIDs,
	}
}

// MigrationRecordResponse represents one migration_history entry
type MigrationRecordResponse struct {
	ID            string          `json:"id"`
	MigrationType string          `json:"migration_type"`
	ProjectID     string          `json:"project_id"`
	UserID        string          `json:"user_id"`
	SourceIDs     json.RawMessage `json:"source_ids"`
	TargetIDs     json.RawMessage `json:"target_ids,omitempty"`
	Options       json.RawMessage `json:"options"`
	Statistics    json.RawMessage `json:"statistics,omitempty"`
	Status        string          `json:"status"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	StartedAt     time.Time       `json:"started_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// MigrationHistoryResponse represents a project's migration history
type MigrationHistoryResponse struct {
	Migrations []MigrationRecordResponse `json:"migrations"`
}

// MapMigrationRecordsToDTO maps migration records to the history response
func MapMigrationRecordsToDTO(records []*schema.MigrationRecord) *MigrationHistoryResponse {
	out := make([]MigrationRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, MigrationRecordResponse{
			ID:            r.ID,
			MigrationType: string(r.MigrationType),
			ProjectID:     r.ProjectID,
			UserID:        r.UserID,
			SourceIDs:     rawJSON(r.SourceIDs),
			TargetIDs:     rawJSON(r.TargetIDs),
			Options:       rawJSON(r.Options),
			Statistics:    rawJSON(r.Statistics),
			Status:        string(r.Status),
			ErrorMessage:  r.ErrorMessage,
			StartedAt:     r.StartedAt,
			CompletedAt:   r.CompletedAt,
		})
	}
	return &MigrationHistoryResponse{Migrations: out}
}

// rawJSON returns nil for empty columns so they are omitted
func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}
