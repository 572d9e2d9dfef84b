package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the bulk insert batch size that stays below PostgreSQL's
// limit of 65535 bind parameters per statement, keeping 1000 parameters of headroom for
// GORM-added columns and statement overhead.
//
// An explode of a 2000 animal batch inserts 2000 animals (17 columns each) and, with
// duplicated vaccinations, up to tens of thousands of health rows in one transaction.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// insertInBatches bulk inserts rows in parameter-safe chunks
func insertInBatches[T any](ctx context.Context, db *gorm.DB, rows []*T, fieldsPerRecord int, what string) error {
	if len(rows) == 0 {
		return nil
	}
	batchSize := calculateSafeBatchSize(len(rows), fieldsPerRecord)
	if err := db.WithContext(ctx).CreateInBatches(rows, batchSize).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", what, err)
	}
	return nil
}

// first loads a single row, mapping not found to (nil, nil)
func first[T any](query *gorm.DB, what string) (*T, error) {
	var row T
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return &row, nil
}

// WithTx runs fn inside a database transaction; nested calls use savepoints
func (s *pgStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// CreateProject inserts a project
func (s *pgStore) CreateProject(ctx context.Context, project *schema.Project) error {
	if err := s.db.WithContext(ctx).Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by id
func (s *pgStore) GetProject(ctx context.Context, id string) (*schema.Project, error) {
	return first[schema.Project](s.db.WithContext(ctx).Where("id = ?", id), "project")
}

// UpdateProjectManagementMethod switches the project's bookkeeping mode
func (s *pgStore) UpdateProjectManagementMethod(ctx context.Context, id string, method domain.ManagementMethod) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Project{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"management_method": method,
			"updated_at":        gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update project management method: %w", err)
	}
	return nil
}

// CreateBatch inserts a batch row
func (s *pgStore) CreateBatch(ctx context.Context, batch *schema.Batch) error {
	if err := s.db.WithContext(ctx).Create(batch).Error; err != nil {
		return fmt.Errorf("failed to create batch: %w", err)
	}
	return nil
}

// GetBatch retrieves a batch by id
func (s *pgStore) GetBatch(ctx context.Context, id string) (*schema.Batch, error) {
	return first[schema.Batch](s.db.WithContext(ctx).Where("id = ?", id), "batch")
}

// LockBatch retrieves a batch with SELECT ... FOR UPDATE
func (s *pgStore) LockBatch(ctx context.Context, id string) (*schema.Batch, error) {
	return first[schema.Batch](
		s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id),
		"batch for update",
	)
}

// GetBatchesByIDs retrieves the batches that exist among ids
func (s *pgStore) GetBatchesByIDs(ctx context.Context, ids []string) ([]*schema.Batch, error) {
	if len(ids) == 0 {
		return []*schema.Batch{}, nil
	}
	var batches []*schema.Batch
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to get batches: %w", err)
	}
	return batches, nil
}

// UpdateBatchAverageWeight stores the batch's displayed average weight
func (s *pgStore) UpdateBatchAverageWeight(ctx context.Context, id string, averageWeightKg float64) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"average_weight_kg": averageWeightKg,
			"updated_at":        gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update batch average weight: %w", err)
	}
	return nil
}

// RefreshBatchCounts recomputes total and per-sex counts from batch_animals
func (s *pgStore) RefreshBatchCounts(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Exec(`
		UPDATE batches SET
			total_count     = c.total,
			male_count      = c.male,
			female_count    = c.female,
			castrated_count = c.castrated,
			updated_at      = now()
		FROM (
			SELECT
				COUNT(*)                                   AS total,
				COUNT(*) FILTER (WHERE sex = 'male')       AS male,
				COUNT(*) FILTER (WHERE sex = 'female')     AS female,
				COUNT(*) FILTER (WHERE sex = 'castrated')  AS castrated
			FROM batch_animals WHERE batch_id = ?
		) AS c
		WHERE batches.id = ?`, id, id).Error
	if err != nil {
		return fmt.Errorf("failed to refresh batch counts: %w", err)
	}
	return nil
}

// CreateBatchAnimals inserts member rows
func (s *pgStore) CreateBatchAnimals(ctx context.Context, animals []*schema.BatchAnimal) error {
	return insertInBatches(ctx, s.db, animals, 13, "batch animals")
}

// ListBatchAnimals lists a batch's members ordered by entry date then id
func (s *pgStore) ListBatchAnimals(ctx context.Context, batchID string) ([]*schema.BatchAnimal, error) {
	var animals []*schema.BatchAnimal
	err := s.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("entry_date ASC, id ASC").
		Find(&animals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list batch animals: %w", err)
	}
	return animals, nil
}

// UpdateBatchAnimalWeights applies weighing results to members
func (s *pgStore) UpdateBatchAnimalWeights(ctx context.Context, updates []BatchAnimalWeightUpdate) error {
	for _, u := range updates {
		result := s.db.WithContext(ctx).
			Model(&schema.BatchAnimal{}).
			Where("id = ?", u.AnimalID).
			Updates(map[string]interface{}{
				"current_weight_kg":  u.WeightKg,
				"last_weighing_date": u.WeighedAt,
				"updated_at":         gorm.Expr("now()"),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update batch animal %s weight: %w", u.AnimalID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("failed to update batch animal %s weight: %w", u.AnimalID, gorm.ErrRecordNotFound)
		}
	}
	return nil
}

// CreateBatchAnimalMovements inserts movement rows
func (s *pgStore) CreateBatchAnimalMovements(ctx context.Context, movements []*schema.BatchAnimalMovement) error {
	return insertInBatches(ctx, s.db, movements, 7, "batch animal movements")
}

// GetLatestTransfersInto returns, per animal, the most recent transfer into batchID
func (s *pgStore) GetLatestTransfersInto(ctx context.Context, batchID string, animalIDs []string) (map[string]*schema.BatchAnimalMovement, error) {
	result := make(map[string]*schema.BatchAnimalMovement)
	if len(animalIDs) == 0 {
		return result, nil
	}

	var movements []*schema.BatchAnimalMovement
	err := s.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (animal_id) *
			FROM batch_animal_movements
			WHERE to_batch_id = ? AND movement_type = ? AND animal_id IN ?
			ORDER BY animal_id, movement_date DESC`,
			batchID, domain.MovementTransfer, animalIDs).
		Scan(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get latest transfers: %w", err)
	}

	for _, m := range movements {
		result[m.AnimalID] = m
	}
	return result, nil
}

// CreateBatchWeighing inserts a weighing session
func (s *pgStore) CreateBatchWeighing(ctx context.Context, weighing *schema.BatchWeighing) error {
	if err := s.db.WithContext(ctx).Create(weighing).Error; err != nil {
		return fmt.Errorf("failed to create batch weighing: %w", err)
	}
	return nil
}

// ListBatchWeighings lists a batch's weighings ordered by date
func (s *pgStore) ListBatchWeighings(ctx context.Context, batchID string) ([]*schema.BatchWeighing, error) {
	var weighings []*schema.BatchWeighing
	err := s.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("weighing_date ASC, id ASC").
		Find(&weighings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list batch weighings: %w", err)
	}
	return weighings, nil
}

// CreateBatchVaccinations inserts batch vaccination rows
func (s *pgStore) CreateBatchVaccinations(ctx context.Context, vaccinations []*schema.BatchVaccination) error {
	return insertInBatches(ctx, s.db, vaccinations, 11, "batch vaccinations")
}

// ListBatchVaccinations lists a batch's vaccinations ordered by date
func (s *pgStore) ListBatchVaccinations(ctx context.Context, batchID string) ([]*schema.BatchVaccination, error) {
	var vaccinations []*schema.BatchVaccination
	err := s.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("vaccination_date ASC, id ASC").
		Find(&vaccinations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list batch vaccinations: %w", err)
	}
	return vaccinations, nil
}

// CreateBatchDiseases inserts batch disease rows
func (s *pgStore) CreateBatchDiseases(ctx context.Context, diseases []*schema.BatchDisease) error {
	return insertInBatches(ctx, s.db, diseases, 11, "batch diseases")
}

// ListBatchDiseases lists a batch's diseases ordered by diagnosis date
func (s *pgStore) ListBatchDiseases(ctx context.Context, batchID string) ([]*schema.BatchDisease, error) {
	var diseases []*schema.BatchDisease
	err := s.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("diagnosis_date ASC, id ASC").
		Find(&diseases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list batch diseases: %w", err)
	}
	return diseases, nil
}

// CountBatchRecords counts a batch's vaccinations, weighings and diseases
func (s *pgStore) CountBatchRecords(ctx context.Context, batchID string) (BatchRecordCounts, error) {
	var counts BatchRecordCounts
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM batch_vaccinations WHERE batch_id = ?) AS vaccinations,
			(SELECT COUNT(*) FROM batch_weighings WHERE batch_id = ?)    AS weighings,
			(SELECT COUNT(*) FROM batch_diseases WHERE batch_id = ?)     AS diseases`,
		batchID, batchID, batchID).
		Scan(&counts).Error
	if err != nil {
		return BatchRecordCounts{}, fmt.Errorf("failed to count batch records: %w", err)
	}
	return counts, nil
}

// CreateAnimals inserts individual animals
func (s *pgStore) CreateAnimals(ctx context.Context, animals []*schema.Animal) error {
	return insertInBatches(ctx, s.db, animals, 17, "animals")
}

// GetAnimalsByIDs retrieves the animals that exist among ids
func (s *pgStore) GetAnimalsByIDs(ctx context.Context, ids []string) ([]*schema.Animal, error) {
	if len(ids) == 0 {
		return []*schema.Animal{}, nil
	}
	var animals []*schema.Animal
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&animals).Error; err != nil {
		return nil, fmt.Errorf("failed to get animals: %w", err)
	}
	return animals, nil
}

// LockAnimals retrieves animals with SELECT ... FOR UPDATE, in id order to avoid lock-order deadlocks
func (s *pgStore) LockAnimals(ctx context.Context, ids []string) ([]*schema.Animal, error) {
	if len(ids) == 0 {
		return []*schema.Animal{}, nil
	}
	var animals []*schema.Animal
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&animals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock animals: %w", err)
	}
	return animals, nil
}

// DeactivateAnimals marks animals inactive with the given status
func (s *pgStore) DeactivateAnimals(ctx context.Context, ids []string, status domain.AnimalStatus) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(&schema.Animal{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"active":     false,
			"status":     status,
			"updated_at": gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate animals: %w", err)
	}
	return nil
}

// CreateAnimalWeighings inserts individual weighing rows
func (s *pgStore) CreateAnimalWeighings(ctx context.Context, weighings []*schema.AnimalWeighing) error {
	return insertInBatches(ctx, s.db, weighings, 8, "animal weighings")
}

// ListAnimalWeighings lists weighings of the given animals
func (s *pgStore) ListAnimalWeighings(ctx context.Context, animalIDs []string) ([]*schema.AnimalWeighing, error) {
	if len(animalIDs) == 0 {
		return []*schema.AnimalWeighing{}, nil
	}
	var weighings []*schema.AnimalWeighing
	err := s.db.WithContext(ctx).
		Where("animal_id IN ?", animalIDs).
		Order("weighed_at ASC, id ASC").
		Find(&weighings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list animal weighings: %w", err)
	}
	return weighings, nil
}

// CreateVaccinations inserts individual vaccination rows
func (s *pgStore) CreateVaccinations(ctx context.Context, vaccinations []*schema.Vaccination) error {
	return insertInBatches(ctx, s.db, vaccinations, 11, "vaccinations")
}

// ListVaccinations lists vaccinations of the given animals
func (s *pgStore) ListVaccinations(ctx context.Context, animalIDs []string) ([]*schema.Vaccination, error) {
	if len(animalIDs) == 0 {
		return []*schema.Vaccination{}, nil
	}
	var vaccinations []*schema.Vaccination
	err := s.db.WithContext(ctx).
		Where("animal_id IN ?", animalIDs).
		Order("vaccination_date ASC, id ASC").
		Find(&vaccinations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vaccinations: %w", err)
	}
	return vaccinations, nil
}

// CreateDiseases inserts individual disease rows
func (s *pgStore) CreateDiseases(ctx context.Context, diseases []*schema.Disease) error {
	return insertInBatches(ctx, s.db, diseases, 13, "diseases")
}

// ListDiseases lists diseases of the given animals
func (s *pgStore) ListDiseases(ctx context.Context, animalIDs []string) ([]*schema.Disease, error) {
	if len(animalIDs) == 0 {
		return []*schema.Disease{}, nil
	}
	var diseases []*schema.Disease
	err := s.db.WithContext(ctx).
		Where("animal_id IN ?", animalIDs).
		Order("diagnosis_date ASC, id ASC").
		Find(&diseases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list diseases: %w", err)
	}
	return diseases, nil
}

// CreateMigrationRecord inserts a migration record
func (s *pgStore) CreateMigrationRecord(ctx context.Context, record *schema.MigrationRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create migration record: %w", err)
	}
	return nil
}

// CompleteMigrationRecord moves an in_progress record to completed
func (s *pgStore) CompleteMigrationRecord(ctx context.Context, input CompleteMigrationInput) error {
	return s.finishMigrationRecord(ctx, input.ID, map[string]interface{}{
		"status":       domain.MigrationStatusCompleted,
		"target_ids":   schema.IDList(input.TargetIDs),
		"statistics":   input.Statistics,
		"completed_at": input.CompletedAt,
	})
}

// FailMigrationRecord moves an in_progress record to failed
func (s *pgStore) FailMigrationRecord(ctx context.Context, id string, message string, at time.Time) error {
	return s.finishMigrationRecord(ctx, id, map[string]interface{}{
		"status":        domain.MigrationStatusFailed,
		"error_message": message,
		"completed_at":  at,
	})
}

// finishMigrationRecord applies a terminal update guarded by the in_progress status,
// which keeps the status transition monotonic under concurrent writers
func (s *pgStore) finishMigrationRecord(ctx context.Context, id string, updates map[string]interface{}) error {
	result := s.db.WithContext(ctx).
		Model(&schema.MigrationRecord{}).
		Where("id = ? AND status = ?", id, domain.MigrationStatusInProgress).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update migration record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("migration record %s: %w", id, domain.ErrMigrationNotInProgress)
	}
	return nil
}

// GetMigrationRecord retrieves a migration record by id
func (s *pgStore) GetMigrationRecord(ctx context.Context, id string) (*schema.MigrationRecord, error) {
	return first[schema.MigrationRecord](s.db.WithContext(ctx).Where("id = ?", id), "migration record")
}

// ListMigrationRecords lists a project's records, newest first
func (s *pgStore) ListMigrationRecords(ctx context.Context, projectID string, limit int) ([]*schema.MigrationRecord, error) {
	var records []*schema.MigrationRecord
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("started_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list migration records: %w", err)
	}
	return records, nil
}

// ListStaleMigrationRecords lists in_progress records started before the cutoff, oldest first
func (s *pgStore) ListStaleMigrationRecords(ctx context.Context, startedBefore time.Time, limit int) ([]*schema.MigrationRecord, error) {
	var records []*schema.MigrationRecord
	err := s.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", domain.MigrationStatusInProgress, startedBefore).
		Order("started_at ASC, id ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale migration records: %w", err)
	}
	return records, nil
}
