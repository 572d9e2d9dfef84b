package store

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/store/schema"
)

// BatchAnimalWeightUpdate sets a member's weight from a weighing session
type BatchAnimalWeightUpdate struct {
	AnimalID  string
	WeightKg  float64
	WeighedAt time.Time
}

// BatchRecordCounts holds the number of batch-level records of each kind
type BatchRecordCounts struct {
	Vaccinations int64
	Weighings    int64
	Diseases     int64
}

// Total returns the sum of all record counts
func (c BatchRecordCounts) Total() int64 {
	return c.Vaccinations + c.Weighings + c.Diseases
}

// CompleteMigrationInput is the terminal success write of a migration record
type CompleteMigrationInput struct {
	ID          string
	TargetIDs   []string
	Statistics  datatypes.JSON
	CompletedAt time.Time
}

// Store defines the interface for database operations.
// Getters for single rows return (nil, nil) when the row does not exist.
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// WithTx runs fn inside one transaction. fn must issue every read and write through the Store it
	// receives; a returned error rolls all of them back.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	// CreateProject inserts a project
	CreateProject(ctx context.Context, project *schema.Project) error
	// GetProject retrieves a project by id
	GetProject(ctx context.Context, id string) (*schema.Project, error)
	// UpdateProjectManagementMethod switches the project's bookkeeping mode
	UpdateProjectManagementMethod(ctx context.Context, id string, method domain.ManagementMethod) error

	// CreateBatch inserts a batch row
	CreateBatch(ctx context.Context, batch *schema.Batch) error
	// GetBatch retrieves a batch by id
	GetBatch(ctx context.Context, id string) (*schema.Batch, error)
	// LockBatch retrieves a batch by id and holds a row lock until the transaction ends
	LockBatch(ctx context.Context, id string) (*schema.Batch, error)
	// GetBatchesByIDs retrieves the batches that exist among ids
	GetBatchesByIDs(ctx context.Context, ids []string) ([]*schema.Batch, error)
	// UpdateBatchAverageWeight stores the batch's displayed average weight
	UpdateBatchAverageWeight(ctx context.Context, id string, averageWeightKg float64) error
	// RefreshBatchCounts recomputes total and per-sex counts from the member rows
	RefreshBatchCounts(ctx context.Context, id string) error

	// CreateBatchAnimals inserts member rows
	CreateBatchAnimals(ctx context.Context, animals []*schema.BatchAnimal) error
	// ListBatchAnimals lists a batch's members ordered by entry date then id
	ListBatchAnimals(ctx context.Context, batchID string) ([]*schema.BatchAnimal, error)
	// UpdateBatchAnimalWeights applies weighing results to members
	UpdateBatchAnimalWeights(ctx context.Context, updates []BatchAnimalWeightUpdate) error
	// CreateBatchAnimalMovements inserts movement rows
	CreateBatchAnimalMovements(ctx context.Context, movements []*schema.BatchAnimalMovement) error
	// GetLatestTransfersInto returns, per animal, the most recent transfer into batchID
	GetLatestTransfersInto(ctx context.Context, batchID string, animalIDs []string) (map[string]*schema.BatchAnimalMovement, error)

	// CreateBatchWeighing inserts a weighing session
	CreateBatchWeighing(ctx context.Context, weighing *schema.BatchWeighing) error
	// ListBatchWeighings lists a batch's weighings ordered by date
	ListBatchWeighings(ctx context.Context, batchID string) ([]*schema.BatchWeighing, error)
	// CreateBatchVaccinations inserts batch vaccination rows
	CreateBatchVaccinations(ctx context.Context, vaccinations []*schema.BatchVaccination) error
	// ListBatchVaccinations lists a batch's vaccinations ordered by date
	ListBatchVaccinations(ctx context.Context, batchID string) ([]*schema.BatchVaccination, error)
	// CreateBatchDiseases inserts batch disease rows
	CreateBatchDiseases(ctx context.Context, diseases []*schema.BatchDisease) error
	// ListBatchDiseases lists a batch's diseases ordered by diagnosis date
	ListBatchDiseases(ctx context.Context, batchID string) ([]*schema.BatchDisease, error)
	// CountBatchRecords counts a batch's vaccinations, weighings and diseases
	CountBatchRecords(ctx context.Context, batchID string) (BatchRecordCounts, error)

	// CreateAnimals inserts individual animals
	CreateAnimals(ctx context.Context, animals []*schema.Animal) error
	// GetAnimalsByIDs retrieves the animals that exist among ids
	GetAnimalsByIDs(ctx context.Context, ids []string) ([]*schema.Animal, error)
	// LockAnimals retrieves the animals that exist among ids and holds row locks until the transaction ends
	LockAnimals(ctx context.Context, ids []string) ([]*schema.Animal, error)
	// DeactivateAnimals marks animals inactive with the given status
	DeactivateAnimals(ctx context.Context, ids []string, status domain.AnimalStatus) error
	// CreateAnimalWeighings inserts individual weighing rows
	CreateAnimalWeighings(ctx context.Context, weighings []*schema.AnimalWeighing) error
	// ListAnimalWeighings lists weighings of the given animals
	ListAnimalWeighings(ctx context.Context, animalIDs []string) ([]*schema.AnimalWeighing, error)
	// CreateVaccinations inserts individual vaccination rows
	CreateVaccinations(ctx context.Context, vaccinations []*schema.Vaccination) error
	// ListVaccinations lists vaccinations of the given animals
	ListVaccinations(ctx context.Context, animalIDs []string) ([]*schema.Vaccination, error)
	// CreateDiseases inserts individual disease rows
	CreateDiseases(ctx context.Context, diseases []*schema.Disease) error
	// ListDiseases lists diseases of the given animals
	ListDiseases(ctx context.Context, animalIDs []string) ([]*schema.Disease, error)

	// CreateMigrationRecord inserts a migration record
	CreateMigrationRecord(ctx context.Context, record *schema.MigrationRecord) error
	// CompleteMigrationRecord moves an in_progress record to completed.
	// Returns domain.ErrMigrationNotInProgress if the record already reached a terminal state.
	CompleteMigrationRecord(ctx context.Context, input CompleteMigrationInput) error
	// FailMigrationRecord moves an in_progress record to failed.
	// Returns domain.ErrMigrationNotInProgress if the record already reached a terminal state.
	FailMigrationRecord(ctx context.Context, id string, message string, at time.Time) error
	// GetMigrationRecord retrieves a migration record by id
	GetMigrationRecord(ctx context.Context, id string) (*schema.MigrationRecord, error)
	// ListMigrationRecords lists a project's records, newest first
	ListMigrationRecords(ctx context.Context, projectID string, limit int) ([]*schema.MigrationRecord, error)
	// ListStaleMigrationRecords lists in_progress records started before the cutoff, oldest first
	ListStaleMigrationRecords(ctx context.Context, startedBefore time.Time, limit int) ([]*schema.MigrationRecord, error)
}
