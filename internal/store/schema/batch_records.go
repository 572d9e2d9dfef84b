package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/porcinet/herdbook/internal/domain"
)

// WeighingAssignment attributes one measurement to one batch member
type WeighingAssignment struct {
	AnimalID string  `json:"animal_id"`
	WeightKg float64 `json:"weight_kg"`
}

// BatchWeighing represents the batch_weighings table - one immutable weighing session
type BatchWeighing struct {
	// ID is the weighing UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// BatchID is the weighed batch
	BatchID string `gorm:"column:batch_id;not null;type:uuid"`
	// WeighingDate is when the session took place
	WeighingDate time.Time `gorm:"column:weighing_date;not null;type:timestamptz"`
	// AverageWeightKg is the mean of the supplied measurements
	AverageWeightKg float64 `gorm:"column:average_weight_kg;not null"`
	// MinWeightKg is the smallest supplied measurement
	MinWeightKg float64 `gorm:"column:min_weight_kg;not null"`
	// MaxWeightKg is the largest supplied measurement
	MaxWeightKg float64 `gorm:"column:max_weight_kg;not null"`
	// Count is the number of measurements
	Count int `gorm:"column:count;not null"`
	// Assignments is the JSON list of WeighingAssignment, one per measurement
	Assignments datatypes.JSON `gorm:"column:assignments;not null;type:jsonb"`
	// Notes is free text
	Notes string `gorm:"column:notes;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BatchWeighing model
func (BatchWeighing) TableName() string {
	return "batch_weighings"
}

// BatchVaccination represents the batch_vaccinations table
type BatchVaccination struct {
	// ID is the vaccination UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// BatchID is the vaccinated batch
	BatchID string `gorm:"column:batch_id;not null;type:uuid"`
	// VaccineType is the vaccine family
	VaccineType string `gorm:"column:vaccine_type;not null"`
	// ProductName is the commercial product
	ProductName string `gorm:"column:product_name;not null"`
	// VaccinationDate is when the batch was vaccinated
	VaccinationDate time.Time `gorm:"column:vaccination_date;not null;type:timestamptz"`
	// Reason is the vaccination reason
	Reason string `gorm:"column:reason"`
	// Dosage is the administered dose as entered
	Dosage string `gorm:"column:dosage"`
	// Count is the number of animals vaccinated
	Count int `gorm:"column:count;not null;default:0"`
	// VaccinatedAnimalIDs is the JSON list of vaccinated member ids, when known
	VaccinatedAnimalIDs datatypes.JSON `gorm:"column:vaccinated_animal_ids;type:jsonb"`
	// Notes is free text
	Notes string `gorm:"column:notes;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BatchVaccination model
func (BatchVaccination) TableName() string {
	return "batch_vaccinations"
}

// BatchDisease represents the batch_diseases table
type BatchDisease struct {
	// ID is the disease UUID
	ID string `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`
	// BatchID is the affected batch
	BatchID string `gorm:"column:batch_id;not null;type:uuid"`
	// AnimalID is the member the disease was recorded against, if any
	AnimalID *string `gorm:"column:animal_id;type:uuid"`
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
	// Count is the number of affected animals
	Count int `gorm:"column:count;not null;default:1"`
	// Notes is free text
	Notes string `gorm:"column:notes;type:text"`
	// CreatedAt is the timestamp when the row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BatchDisease model
func (BatchDisease) TableName() string {
	return "batch_diseases"
}
