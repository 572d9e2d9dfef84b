package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/porcinet/herdbook/internal/domain"
)

// MigrationRecord represents the migration_history table - the audit ledger of explode and fold runs.
// Rows reference their sources and targets by id only so they survive later deletions.
type MigrationRecord struct {
	// ID is a ULID, time sortable
	ID string `gorm:"column:id;primaryKey;type:varchar(26)"`
	// MigrationType is batch_to_individual or individual_to_batch
	MigrationType domain.MigrationDirection `gorm:"column:migration_type;not null"`
	// ProjectID is the project the migration ran in
	ProjectID string `gorm:"column:project_id;not null;type:uuid"`
	// UserID is the initiating user
	UserID string `gorm:"column:user_id;not null;type:varchar(64)"`
	// SourceIDs is the JSON list of source batch or animal ids
	SourceIDs datatypes.JSON `gorm:"column:source_ids;not null;type:jsonb"`
	// TargetIDs is the JSON list of created ids, filled on completion
	TargetIDs datatypes.JSON `gorm:"column:target_ids;type:jsonb"`
	// Options is the canonical JSON of the options the migration ran with
	Options datatypes.JSON `gorm:"column:options;not null;type:jsonb"`
	// Statistics is the JSON summary written on completion
	Statistics datatypes.JSON `gorm:"column:statistics;type:jsonb"`
	// Status moves from in_progress to exactly one terminal state
	Status domain.MigrationStatus `gorm:"column:status;not null;default:in_progress"`
	// ErrorMessage is set when the migration failed
	ErrorMessage string `gorm:"column:error_message;type:text"`
	// StartedAt is when the migration started
	StartedAt time.Time `gorm:"column:started_at;not null;type:timestamptz"`
	// CompletedAt is when the record reached its terminal state
	CompletedAt *time.Time `gorm:"column:completed_at;type:timestamptz"`
}

// TableName specifies the table name for the MigrationRecord model
func (MigrationRecord) TableName() string {
	return "migration_history"
}
