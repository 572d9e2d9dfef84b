package schema

import (
	"time"

	"github.com/porcinet/herdbook/internal/domain"
)

// Animal represents the animals table - an individually tracked animal
type Animal struct {
	// ID is the animal UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// ProjectID is the owning project
	ProjectID string `gorm:"column:project_id;not null;type:uuid"`
	// Code is the human-meaningful identifier (ear tag), unique per project by convention
	Code string `gorm:"column:code;not null"`
	// Name is an optional display name
	Name string `gorm:"column:name"`
	// Sex is male, female or undetermined
	Sex domain.Sex `gorm:"column:sex;not null"`
	// Breed is the breed label
	Breed string `gorm:"column:breed"`
	// BirthDate is the known or estimated birth date
	BirthDate *time.Time `gorm:"column:birth_date;type:timestamptz"`
	// InitialWeightKg is the weight at entry
	InitialWeightKg float64 `gorm:"column:initial_weight_kg;not null;default:0"`
	// CurrentWeightKg is the latest known weight
	CurrentWeightKg float64 `gorm:"column:current_weight_kg;not null;default:0"`
	// EntryDate is when the animal entered the farm
	EntryDate time.Time `gorm:"column:entry_date;not null;type:timestamptz"`
	// Active is false once the animal left tracking
	Active bool `gorm:"column:active;not null;default:true"`
	// Status is the lifecycle status
	Status domain.AnimalStatus `gorm:"column:status;not null;default:active"`
	// Category is the production stage
	Category string `gorm:"column:category"`
	// OriginalBatchID is an audit-only back reference to the exploded batch
	OriginalBatchID *string `gorm:"column:original_batch_id;type:uuid"`
	// Notes is free text
	Notes string `gorm:"column:notes;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Animal model
func (Animal) TableName() string {
	return "animals"
}

// KnownWeight returns the current weight, falling back to the initial weight
func (a *Animal) KnownWeight() float64 {
	if a.CurrentWeightKg > 0 {
		return a.CurrentWeightKg
	}
	return a.InitialWeightKg
}

// AnimalWeighing represents the animal_weighings table
type AnimalWeighing struct {
	// ID is the weighing UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// ProjectID is the owning project
	ProjectID string `gorm:"column:project_id;not null;type:uuid"`
	// AnimalID is the weighed animal
	AnimalID string `gorm:"column:animal_id;not null;type:uuid"`
	// WeighedAt is when the weighing took place
	WeighedAt time.Time `gorm:"column:weighed_at;not null;type:timestamptz"`
	// WeightKg is the measured or synthesized weight
	WeightKg float64 `gorm:"column:weight_kg;not null"`
	// SourceBatchID is set when the record was synthesized from a batch weighing
	SourceBatchID *string `gorm:"column:source_batch_id;type:uuid"`
	// Comment is free text
	Comment string `gorm:"column:comment;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the AnimalWeighing model
func (AnimalWeighing) TableName() string {
	return "animal_weighings"
}

// Vaccination represents the vaccinations table (individual mode)
type Vaccination struct {
	// ID is the vaccination UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// ProjectID is the owning project
	ProjectID string `gorm:"column:project_id;not null;type:uuid"`
	// AnimalID is the vaccinated animal; nil for generic records
	AnimalID *string `gorm:"column:animal_id;type:uuid"`
	// SourceBatchID is set when the record was carried over from a batch
	SourceBatchID *string `gorm:"column:source_batch_id;type:uuid"`
	// VaccineType is the vaccine family
	VaccineType string `gorm:"column:vaccine_type;not null"`
	// ProductName is the commercial product
	ProductName string `gorm:"column:product_name;not null"`
	// VaccinationDate is when the vaccine was administered
	VaccinationDate time.Time `gorm:"column:vaccination_date;not null;type:timestamptz"`
	// Dosage is the administered dose as entered
	Dosage string `gorm:"column:dosage"`
	// Reason is the vaccination reason
	Reason string `gorm:"column:reason"`
	// Notes is free text
	Notes string `gorm:"column:notes;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Vaccination model
func (Vaccination) TableName() string {
	return "vaccinations"
}

// Disease represents the diseases table (individual mode)
type Disease struct {
	// ID is the disease UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// ProjectID is the owning project
	ProjectID string `gorm:"column:project_id;not null;type:uuid"`
	// AnimalID is the affected animal; nil for generic records
	AnimalID *string `gorm:"column:animal_id;type:uuid"`
	// SourceBatchID is set when the record was carried over from a batch
	SourceBatchID *string `gorm:"column:source_batch_id;type:uuid"`
	// DiseaseName is the diagnosis
	DiseaseName string `gorm:"column:disease_name;not null"`
	// DiagnosisDate is when the disease was diagnosed
	DiagnosisDate time.Time `gorm:"column:diagnosis_date;not null;type:timestamptz"`
	// Symptoms is free text
	Symptoms string `gorm:"column:symptoms;type:text"`
	// Treatment is free text
	Treatment string `gorm:"column:treatment;type:text"`
	// Status is active, recovered or dead
	Status domain.DiseaseStatus `gorm:"column:status;not null;default:active"`
	// Reattributed is true when the original subject could not be recovered and the record was attached to a stand-in animal
	Reattributed bool `gorm:"column:reattributed;not null;default:false"`
	// Notes is free text
	Notes string `gorm:"column:notes;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Disease model
func (Disease) TableName() string {
	return "diseases"
}
