package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/porcinet/herdbook/internal/domain"
)

// Batch represents the batches table - an anonymous population sharing a pen
type Batch struct {
	// ID is the batch UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// ProjectID is the owning project
	ProjectID string `gorm:"column:project_id;not null;type:uuid"`
	// PenName is the pen label, also used as the batch number for folded batches
	PenName string `gorm:"column:pen_name;not null"`
	// Category is the production stage tag
	Category string `gorm:"column:category;not null"`
	// TotalCount is the number of member rows; recomputed from batch_animals, never edited directly
	TotalCount int `gorm:"column:total_count;not null;default:0"`
	// MaleCount is the number of male members
	MaleCount int `gorm:"column:male_count;not null;default:0"`
	// FemaleCount is the number of female members
	FemaleCount int `gorm:"column:female_count;not null;default:0"`
	// CastratedCount is the number of castrated members
	CastratedCount int `gorm:"column:castrated_count;not null;default:0"`
	// AverageAgeMonths is the mean age of the members in months
	AverageAgeMonths float64 `gorm:"column:average_age_months;not null;default:0"`
	// AverageWeightKg is the displayed average weight, rolled forward by weighings
	AverageWeightKg float64 `gorm:"column:average_weight_kg;not null;default:0"`
	// AvgDailyGain is the batch ADG in kg/day; nil means the default applies
	AvgDailyGain *float64 `gorm:"column:avg_daily_gain"`
	// BatchCreationDate is the date the batch was formed
	BatchCreationDate time.Time `gorm:"column:batch_creation_date;not null;type:timestamptz"`
	// MigratedFromIndividual marks batches created by a fold migration
	MigratedFromIndividual bool `gorm:"column:migrated_from_individual;not null;default:false"`
	// OriginalAnimalIDs is the JSON list of individual ids folded into this batch
	OriginalAnimalIDs datatypes.JSON `gorm:"column:original_animal_ids;type:jsonb"`
	// Notes is free text
	Notes string `gorm:"column:notes;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Batch model
func (Batch) TableName() string {
	return "batches"
}

// BatchAnimal represents the batch_animals table - an anonymous member of a batch
type BatchAnimal struct {
	// ID is the member UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// BatchID is the batch the member belongs to
	BatchID string `gorm:"column:batch_id;not null;type:uuid"`
	// Name is an optional pen-level label
	Name string `gorm:"column:name"`
	// Sex is male, female or castrated
	Sex domain.Sex `gorm:"column:sex;not null"`
	// BirthDate is the known or estimated birth date
	BirthDate *time.Time `gorm:"column:birth_date;type:timestamptz"`
	// AgeMonths is the age in months at entry
	AgeMonths float64 `gorm:"column:age_months;not null;default:0"`
	// CurrentWeightKg is the latest known weight
	CurrentWeightKg float64 `gorm:"column:current_weight_kg;not null;default:0"`
	// EntryDate is when the animal joined the batch
	EntryDate time.Time `gorm:"column:entry_date;not null;type:timestamptz"`
	// LastWeighingDate is when CurrentWeightKg was measured; nil if never weighed
	LastWeighingDate *time.Time `gorm:"column:last_weighing_date;type:timestamptz"`
	// HealthStatus is healthy, sick or dead
	HealthStatus domain.HealthStatus `gorm:"column:health_status;not null;default:healthy"`
	// Notes is free text
	Notes string `gorm:"column:notes;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BatchAnimal model
func (BatchAnimal) TableName() string {
	return "batch_animals"
}

// BatchAnimalMovement represents the batch_animal_movements table
type BatchAnimalMovement struct {
	// ID is the movement UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// AnimalID is the batch member that moved
	AnimalID string `gorm:"column:animal_id;not null;type:uuid"`
	// MovementType is entry, transfer or removal
	MovementType domain.MovementType `gorm:"column:movement_type;not null"`
	// FromBatchID is the origin batch for transfers and removals
	FromBatchID *string `gorm:"column:from_batch_id;type:uuid"`
	// ToBatchID is the destination batch for entries and transfers
	ToBatchID *string `gorm:"column:to_batch_id;type:uuid"`
	// MovementDate is when the movement happened
	MovementDate time.Time `gorm:"column:movement_date;not null;type:timestamptz"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BatchAnimalMovement model
func (BatchAnimalMovement) TableName() string {
	return "batch_animal_movements"
}
