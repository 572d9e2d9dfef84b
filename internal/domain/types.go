package domain

import "time"

// Sex of an animal. Batch members use male, female or castrated;
// individuals use male, female or undetermined.
type Sex string

const (
	SexMale         Sex = "male"
	SexFemale       Sex = "female"
	SexCastrated    Sex = "castrated"
	SexUndetermined Sex = "undetermined"
)

// Valid checks if the sex is a known value
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale || s == SexCastrated || s == SexUndetermined
}

// ManagementMethod is the bookkeeping mode of a project
type ManagementMethod string

const (
	ManagementIndividual ManagementMethod = "individual"
	ManagementBatch      ManagementMethod = "batch"
)

// MigrationDirection identifies which way a migration converts animals
type MigrationDirection string

const (
	MigrationBatchToIndividual MigrationDirection = "batch_to_individual"
	MigrationIndividualToBatch MigrationDirection = "individual_to_batch"
)

// MigrationStatus is the lifecycle state of a migration record
type MigrationStatus string

const (
	MigrationStatusInProgress MigrationStatus = "in_progress"
	MigrationStatusCompleted  MigrationStatus = "completed"
	MigrationStatusFailed     MigrationStatus = "failed"
)

// Terminal reports whether no further transition is allowed
func (s MigrationStatus) Terminal() bool {
	return s == MigrationStatusCompleted || s == MigrationStatusFailed
}

// DistributionMethod selects how explode assigns weights
type DistributionMethod string

const (
	DistributionUniform DistributionMethod = "uniform"
	DistributionNormal  DistributionMethod = "normal"
)

// HealthRecordsMode selects how batch-level health records are carried over on explode
type HealthRecordsMode string

const (
	HealthRecordsDuplicate HealthRecordsMode = "duplicate"
	HealthRecordsGeneric   HealthRecordsMode = "generic"
	HealthRecordsSkip      HealthRecordsMode = "skip"
)

// HealthStatus of a batch member
type HealthStatus string

const (
	HealthStatusHealthy HealthStatus = "healthy"
	HealthStatusSick    HealthStatus = "sick"
	HealthStatusDead    HealthStatus = "dead"
)

// AnimalStatus of an individual animal
type AnimalStatus string

const (
	AnimalStatusActive   AnimalStatus = "active"
	AnimalStatusSold     AnimalStatus = "sold"
	AnimalStatusDead     AnimalStatus = "dead"
	AnimalStatusMigrated AnimalStatus = "migrated"
)

// MovementType of a batch member movement
type MovementType string

const (
	MovementEntry    MovementType = "entry"
	MovementTransfer MovementType = "transfer"
	MovementRemoval  MovementType = "removal"
)

// DiseaseStatus of a disease record
type DiseaseStatus string

const (
	DiseaseActive    DiseaseStatus = "active"
	DiseaseRecovered DiseaseStatus = "recovered"
	DiseaseDead      DiseaseStatus = "dead"
)

// Stage is a production stage derived from weight and age
type Stage string

const (
	StagePiglet      Stage = "piglet"
	StageGrowing     Stage = "growing"
	StageFinishing   Stage = "finishing"
	StageBreedingSow Stage = "breeding_sow"
)

// GroupingCriterion is one component of the fold grouping key
type GroupingCriterion string

const (
	GroupByStage GroupingCriterion = "stage"
	GroupBySex   GroupingCriterion = "sex"
	GroupByBreed GroupingCriterion = "breed"
)

// DaysBetween returns the fractional number of days from a to b
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// AddMonths moves t by n calendar months
func AddMonths(t time.Time, n int) time.Time {
	return t.AddDate(0, n, 0)
}
