// Package memory provides an in-process Store with the same transactional semantics as the
// postgres store: writes inside WithTx operate on a private copy of the state that is swapped in
// only when the callback succeeds.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/store"
	"github.com/porcinet/herdbook/internal/store/schema"
)

type state struct {
	projects          map[string]schema.Project
	batches           map[string]schema.Batch
	batchAnimals      map[string]schema.BatchAnimal
	movements         []schema.BatchAnimalMovement
	batchWeighings    []schema.BatchWeighing
	batchVaccinations []schema.BatchVaccination
	batchDiseases     []schema.BatchDisease
	animals           map[string]schema.Animal
	animalWeighings   []schema.AnimalWeighing
	vaccinations      []schema.Vaccination
	diseases          []schema.Disease
	migrations        map[string]schema.MigrationRecord
}

func newState() *state {
	return &state{
		projects:     make(map[string]schema.Project),
		batches:      make(map[string]schema.Batch),
		batchAnimals: make(map[string]schema.BatchAnimal),
		animals:      make(map[string]schema.Animal),
		migrations:   make(map[string]schema.MigrationRecord),
	}
}

// clone copies every table. Rows are stored by value and their pointer and JSON fields are
// replaced on update, never mutated in place, so a shallow row copy is enough.
func (st *state) clone() *state {
	return &state{
		projects:          maps.Clone(st.projects),
		batches:           maps.Clone(st.batches),
		batchAnimals:      maps.Clone(st.batchAnimals),
		movements:         slices.Clone(st.movements),
		batchWeighings:    slices.Clone(st.batchWeighings),
		batchVaccinations: slices.Clone(st.batchVaccinations),
		batchDiseases:     slices.Clone(st.batchDiseases),
		animals:           maps.Clone(st.animals),
		animalWeighings:   slices.Clone(st.animalWeighings),
		vaccinations:      slices.Clone(st.vaccinations),
		diseases:          slices.Clone(st.diseases),
		migrations:        maps.Clone(st.migrations),
	}
}

type root struct {
	mu     sync.Mutex
	state  *state
	faults map[string]error
	fmu    sync.Mutex
}

// Store is an in-memory store.Store
type Store struct {
	root *root
	// tx is the transaction-private state; nil outside WithTx
	tx *state
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{root: &root{state: newState(), faults: make(map[string]error)}}
}

// FailOn makes every subsequent call of the named Store method return err, until ClearFaults.
// Used to exercise rollback paths.
func (s *Store) FailOn(method string, err error) {
	s.root.fmu.Lock()
	defer s.root.fmu.Unlock()
	s.root.faults[method] = err
}

// ClearFaults removes every injected failure
func (s *Store) ClearFaults() {
	s.root.fmu.Lock()
	defer s.root.fmu.Unlock()
	clear(s.root.faults)
}

// RowCounts is the number of committed rows a project owns
type RowCounts struct {
	Animals      int
	Batches      int
	BatchAnimals int
}

// CountRows counts the committed animals, batches and batch members of a project
func (s *Store) CountRows(projectID string) RowCounts {
	var counts RowCounts
	s.read(func(st *state) {
		inProject := make(map[string]struct{})
		for id, b := range st.batches {
			if b.ProjectID == projectID {
				inProject[id] = struct{}{}
				counts.Batches++
			}
		}
		for _, m := range st.batchAnimals {
			if _, ok := inProject[m.BatchID]; ok {
				counts.BatchAnimals++
			}
		}
		for _, a := range st.animals {
			if a.ProjectID == projectID {
				counts.Animals++
			}
		}
	})
	return counts
}

func (s *Store) fault(method string) error {
	s.root.fmu.Lock()
	defer s.root.fmu.Unlock()
	if err, ok := s.root.faults[method]; ok {
		return fmt.Errorf("failed to %s: %w", method, err)
	}
	return nil
}

// read runs fn against the visible state
func (s *Store) read(fn func(st *state)) {
	if s.tx != nil {
		fn(s.tx)
		return
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	fn(s.root.state)
}

// write runs fn against a copy of the visible state and keeps the copy only when fn succeeds,
// so a failing statement never leaves a partial write behind
func (s *Store) write(method string, fn func(st *state) error) error {
	if err := s.fault(method); err != nil {
		return err
	}
	if s.tx != nil {
		next := s.tx.clone()
		if err := fn(next); err != nil {
			return err
		}
		*s.tx = *next
		return nil
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	next := s.root.state.clone()
	if err := fn(next); err != nil {
		return err
	}
	s.root.state = next
	return nil
}

// WithTx runs fn on a private copy of the state. Nested calls behave like savepoints.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Store) error) error {
	if err := s.fault("WithTx"); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.tx != nil {
		child := &Store{root: s.root, tx: s.tx.clone()}
		if err := fn(child); err != nil {
			return err
		}
		*s.tx = *child.tx
		return nil
	}

	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	txStore := &Store{root: s.root, tx: s.root.state.clone()}
	if err := fn(txStore); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.root.state = txStore.tx
	return nil
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func notFound(what, id string) error {
	return fmt.Errorf("failed to update %s %s: record not found", what, id)
}

// CreateProject inserts a project
func (s *Store) CreateProject(_ context.Context, project *schema.Project) error {
	return s.write("CreateProject", func(st *state) error {
		project.ID = newID(project.ID)
		if _, ok := st.projects[project.ID]; ok {
			return fmt.Errorf("failed to create project: duplicate id %s", project.ID)
		}
		if project.ManagementMethod == "" {
			project.ManagementMethod = domain.ManagementIndividual
		}
		project.CreatedAt = stamp(project.CreatedAt)
		project.UpdatedAt = stamp(project.UpdatedAt)
		st.projects[project.ID] = *project
		return nil
	})
}

// GetProject retrieves a project by id
func (s *Store) GetProject(_ context.Context, id string) (*schema.Project, error) {
	if err := s.fault("GetProject"); err != nil {
		return nil, err
	}
	var out *schema.Project
	s.read(func(st *state) {
		if p, ok := st.projects[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// UpdateProjectManagementMethod switches the project's bookkeeping mode
func (s *Store) UpdateProjectManagementMethod(_ context.Context, id string, method domain.ManagementMethod) error {
	return s.write("UpdateProjectManagementMethod", func(st *state) error {
		p, ok := st.projects[id]
		if !ok {
			return nil
		}
		p.ManagementMethod = method
		p.UpdatedAt = time.Now().UTC()
		st.projects[id] = p
		return nil
	})
}

// CreateBatch inserts a batch row
func (s *Store) CreateBatch(_ context.Context, batch *schema.Batch) error {
	return s.write("CreateBatch", func(st *state) error {
		batch.ID = newID(batch.ID)
		if _, ok := st.batches[batch.ID]; ok {
			return fmt.Errorf("failed to create batch: duplicate id %s", batch.ID)
		}
		if _, ok := st.projects[batch.ProjectID]; !ok {
			return fmt.Errorf("failed to create batch: unknown project %s", batch.ProjectID)
		}
		batch.CreatedAt = stamp(batch.CreatedAt)
		batch.UpdatedAt = stamp(batch.UpdatedAt)
		st.batches[batch.ID] = *batch
		return nil
	})
}

// GetBatch retrieves a batch by id
func (s *Store) GetBatch(_ context.Context, id string) (*schema.Batch, error) {
	if err := s.fault("GetBatch"); err != nil {
		return nil, err
	}
	var out *schema.Batch
	s.read(func(st *state) {
		if b, ok := st.batches[id]; ok {
			out = &b
		}
	})
	return out, nil
}

// LockBatch retrieves a batch. Transactions are already serialized by the store mutex.
func (s *Store) LockBatch(ctx context.Context, id string) (*schema.Batch, error) {
	if err := s.fault("LockBatch"); err != nil {
		return nil, err
	}
	return s.GetBatch(ctx, id)
}

// GetBatchesByIDs retrieves the batches that exist among ids
func (s *Store) GetBatchesByIDs(_ context.Context, ids []string) ([]*schema.Batch, error) {
	if err := s.fault("GetBatchesByIDs"); err != nil {
		return nil, err
	}
	out := []*schema.Batch{}
	s.read(func(st *state) {
		for _, id := range uniqueSorted(ids) {
			if b, ok := st.batches[id]; ok {
				out = append(out, &b)
			}
		}
	})
	return out, nil
}

// UpdateBatchAverageWeight stores the batch's displayed average weight
func (s *Store) UpdateBatchAverageWeight(_ context.Context, id string, averageWeightKg float64) error {
	return s.write("UpdateBatchAverageWeight", func(st *state) error {
		b, ok := st.batches[id]
		if !ok {
			return nil
		}
		b.AverageWeightKg = averageWeightKg
		b.UpdatedAt = time.Now().UTC()
		st.batches[id] = b
		return nil
	})
}

// RefreshBatchCounts recomputes total and per-sex counts from batch members
func (s *Store) RefreshBatchCounts(_ context.Context, id string) error {
	return s.write("RefreshBatchCounts", func(st *state) error {
		b, ok := st.batches[id]
		if !ok {
			return nil
		}
		b.TotalCount, b.MaleCount, b.FemaleCount, b.CastratedCount = 0, 0, 0, 0
		for _, a := range st.batchAnimals {
			if a.BatchID != id {
				continue
			}
			b.TotalCount++
			switch a.Sex {
			case domain.SexMale:
				b.MaleCount++
			case domain.SexFemale:
				b.FemaleCount++
			case domain.SexCastrated:
				b.CastratedCount++
			}
		}
		b.UpdatedAt = time.Now().UTC()
		st.batches[id] = b
		return nil
	})
}

// CreateBatchAnimals inserts member rows
func (s *Store) CreateBatchAnimals(_ context.Context, animals []*schema.BatchAnimal) error {
	return s.write("CreateBatchAnimals", func(st *state) error {
		for _, a := range animals {
			if _, ok := st.batches[a.BatchID]; !ok {
				return fmt.Errorf("failed to create batch animals: unknown batch %s", a.BatchID)
			}
			a.ID = newID(a.ID)
			if _, ok := st.batchAnimals[a.ID]; ok {
				return fmt.Errorf("failed to create batch animals: duplicate id %s", a.ID)
			}
			if a.HealthStatus == "" {
				a.HealthStatus = domain.HealthStatusHealthy
			}
			a.CreatedAt = stamp(a.CreatedAt)
			a.UpdatedAt = stamp(a.UpdatedAt)
			st.batchAnimals[a.ID] = *a
		}
		return nil
	})
}

// ListBatchAnimals lists a batch's members ordered by entry date then id
func (s *Store) ListBatchAnimals(_ context.Context, batchID string) ([]*schema.BatchAnimal, error) {
	if err := s.fault("ListBatchAnimals"); err != nil {
		return nil, err
	}
	out := []*schema.BatchAnimal{}
	s.read(func(st *state) {
		for _, a := range st.batchAnimals {
			if a.BatchID == batchID {
				out = append(out, &a)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].EntryDate.Before(out[j].EntryDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateBatchAnimalWeights applies weighing results to members
func (s *Store) UpdateBatchAnimalWeights(_ context.Context, updates []store.BatchAnimalWeightUpdate) error {
	return s.write("UpdateBatchAnimalWeights", func(st *state) error {
		for _, u := range updates {
			a, ok := st.batchAnimals[u.AnimalID]
			if !ok {
				return notFound("batch animal", u.AnimalID)
			}
			weighedAt := u.WeighedAt
			a.CurrentWeightKg = u.WeightKg
			a.LastWeighingDate = &weighedAt
			a.UpdatedAt = time.Now().UTC()
			st.batchAnimals[u.AnimalID] = a
		}
		return nil
	})
}

// CreateBatchAnimalMovements inserts movement rows
func (s *Store) CreateBatchAnimalMovements(_ context.Context, movements []*schema.BatchAnimalMovement) error {
	return s.write("CreateBatchAnimalMovements", func(st *state) error {
		for _, m := range movements {
			m.ID = newID(m.ID)
			m.CreatedAt = stamp(m.CreatedAt)
			st.movements = append(st.movements, *m)
		}
		return nil
	})
}

// GetLatestTransfersInto returns, per animal, the most recent transfer into batchID
func (s *Store) GetLatestTransfersInto(_ context.Context, batchID string, animalIDs []string) (map[string]*schema.BatchAnimalMovement, error) {
	if err := s.fault("GetLatestTransfersInto"); err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(animalIDs))
	for _, id := range animalIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[string]*schema.BatchAnimalMovement)
	s.read(func(st *state) {
		for _, m := range st.movements {
			if m.MovementType != domain.MovementTransfer || m.ToBatchID == nil || *m.ToBatchID != batchID {
				continue
			}
			if _, ok := wanted[m.AnimalID]; !ok {
				continue
			}
			if cur, ok := out[m.AnimalID]; ok && !m.MovementDate.After(cur.MovementDate) {
				continue
			}
			out[m.AnimalID] = &m
		}
	})
	return out, nil
}

// CreateBatchWeighing inserts a weighing session
func (s *Store) CreateBatchWeighing(_ context.Context, weighing *schema.BatchWeighing) error {
	return s.write("CreateBatchWeighing", func(st *state) error {
		if _, ok := st.batches[weighing.BatchID]; !ok {
			return fmt.Errorf("failed to create batch weighing: unknown batch %s", weighing.BatchID)
		}
		weighing.ID = newID(weighing.ID)
		weighing.CreatedAt = stamp(weighing.CreatedAt)
		st.batchWeighings = append(st.batchWeighings, *weighing)
		return nil
	})
}

// ListBatchWeighings lists a batch's weighings ordered by date
func (s *Store) ListBatchWeighings(_ context.Context, batchID string) ([]*schema.BatchWeighing, error) {
	if err := s.fault("ListBatchWeighings"); err != nil {
		return nil, err
	}
	out := []*schema.BatchWeighing{}
	s.read(func(st *state) {
		for _, w := range st.batchWeighings {
			if w.BatchID == batchID {
				out = append(out, &w)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].WeighingDate.Equal(out[j].WeighingDate) {
			return out[i].WeighingDate.Before(out[j].WeighingDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateBatchVaccinations inserts batch vaccination rows
func (s *Store) CreateBatchVaccinations(_ context.Context, vaccinations []*schema.BatchVaccination) error {
	return s.write("CreateBatchVaccinations", func(st *state) error {
		for _, v := range vaccinations {
			if _, ok := st.batches[v.BatchID]; !ok {
				return fmt.Errorf("failed to create batch vaccinations: unknown batch %s", v.BatchID)
			}
			v.ID = newID(v.ID)
			v.CreatedAt = stamp(v.CreatedAt)
			st.batchVaccinations = append(st.batchVaccinations, *v)
		}
		return nil
	})
}

// ListBatchVaccinations lists a batch's vaccinations ordered by date
func (s *Store) ListBatchVaccinations(_ context.Context, batchID string) ([]*schema.BatchVaccination, error) {
	if err := s.fault("ListBatchVaccinations"); err != nil {
		return nil, err
	}
	out := []*schema.BatchVaccination{}
	s.read(func(st *state) {
		for _, v := range st.batchVaccinations {
			if v.BatchID == batchID {
				out = append(out, &v)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].VaccinationDate.Equal(out[j].VaccinationDate) {
			return out[i].VaccinationDate.Before(out[j].VaccinationDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateBatchDiseases inserts batch disease rows
func (s *Store) CreateBatchDiseases(_ context.Context, diseases []*schema.BatchDisease) error {
	return s.write("CreateBatchDiseases", func(st *state) error {
		for _, d := range diseases {
			if _, ok := st.batches[d.BatchID]; !ok {
				return fmt.Errorf("failed to create batch diseases: unknown batch %s", d.BatchID)
			}
			d.ID = newID(d.ID)
			if d.Status == "" {
				d.Status = domain.DiseaseActive
			}
			if d.Count == 0 {
				d.Count = 1
			}
			d.CreatedAt = stamp(d.CreatedAt)
			st.batchDiseases = append(st.batchDiseases, *d)
		}
		return nil
	})
}

// ListBatchDiseases lists a batch's diseases ordered by diagnosis date
func (s *Store) ListBatchDiseases(_ context.Context, batchID string) ([]*schema.BatchDisease, error) {
	if err := s.fault("ListBatchDiseases"); err != nil {
		return nil, err
	}
	out := []*schema.BatchDisease{}
	s.read(func(st *state) {
		for _, d := range st.batchDiseases {
			if d.BatchID == batchID {
				out = append(out, &d)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DiagnosisDate.Equal(out[j].DiagnosisDate) {
			return out[i].DiagnosisDate.Before(out[j].DiagnosisDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CountBatchRecords counts a batch's vaccinations, weighings and diseases
func (s *Store) CountBatchRecords(_ context.Context, batchID string) (store.BatchRecordCounts, error) {
	if err := s.fault("CountBatchRecords"); err != nil {
		return store.BatchRecordCounts{}, err
	}
	var counts store.BatchRecordCounts
	s.read(func(st *state) {
		for _, v := range st.batchVaccinations {
			if v.BatchID == batchID {
				counts.Vaccinations++
			}
		}
		for _, w := range st.batchWeighings {
			if w.BatchID == batchID {
				counts.Weighings++
			}
		}
		for _, d := range st.batchDiseases {
			if d.BatchID == batchID {
				counts.Diseases++
			}
		}
	})
	return counts, nil
}

// CreateAnimals inserts individual animals. Like the column default, inserted animals are active.
func (s *Store) CreateAnimals(_ context.Context, animals []*schema.Animal) error {
	return s.write("CreateAnimals", func(st *state) error {
		for _, a := range animals {
			if _, ok := st.projects[a.ProjectID]; !ok {
				return fmt.Errorf("failed to create animals: unknown project %s", a.ProjectID)
			}
			a.ID = newID(a.ID)
			if _, ok := st.animals[a.ID]; ok {
				return fmt.Errorf("failed to create animals: duplicate id %s", a.ID)
			}
			a.Active = true
			if a.Status == "" {
				a.Status = domain.AnimalStatusActive
			}
			a.CreatedAt = stamp(a.CreatedAt)
			a.UpdatedAt = stamp(a.UpdatedAt)
			st.animals[a.ID] = *a
		}
		return nil
	})
}

// GetAnimalsByIDs retrieves the animals that exist among ids, ordered by id
func (s *Store) GetAnimalsByIDs(_ context.Context, ids []string) ([]*schema.Animal, error) {
	if err := s.fault("GetAnimalsByIDs"); err != nil {
		return nil, err
	}
	return s.animalsByIDs(ids), nil
}

// LockAnimals retrieves animals. Transactions are already serialized by the store mutex.
func (s *Store) LockAnimals(_ context.Context, ids []string) ([]*schema.Animal, error) {
	if err := s.fault("LockAnimals"); err != nil {
		return nil, err
	}
	return s.animalsByIDs(ids), nil
}

func (s *Store) animalsByIDs(ids []string) []*schema.Animal {
	out := []*schema.Animal{}
	s.read(func(st *state) {
		for _, id := range uniqueSorted(ids) {
			if a, ok := st.animals[id]; ok {
				out = append(out, &a)
			}
		}
	})
	return out
}

// DeactivateAnimals marks animals inactive with the given status
func (s *Store) DeactivateAnimals(_ context.Context, ids []string, status domain.AnimalStatus) error {
	return s.write("DeactivateAnimals", func(st *state) error {
		for _, id := range ids {
			a, ok := st.animals[id]
			if !ok {
				continue
			}
			a.Active = false
			a.Status = status
			a.UpdatedAt = time.Now().UTC()
			st.animals[id] = a
		}
		return nil
	})
}

// CreateAnimalWeighings inserts individual weighing rows
func (s *Store) CreateAnimalWeighings(_ context.Context, weighings []*schema.AnimalWeighing) error {
	return s.write("CreateAnimalWeighings", func(st *state) error {
		for _, w := range weighings {
			if _, ok := st.animals[w.AnimalID]; !ok {
				return fmt.Errorf("failed to create animal weighings: unknown animal %s", w.AnimalID)
			}
			w.ID = newID(w.ID)
			w.CreatedAt = stamp(w.CreatedAt)
			st.animalWeighings = append(st.animalWeighings, *w)
		}
		return nil
	})
}

// ListAnimalWeighings lists weighings of the given animals
func (s *Store) ListAnimalWeighings(_ context.Context, animalIDs []string) ([]*schema.AnimalWeighing, error) {
	if err := s.fault("ListAnimalWeighings"); err != nil {
		return nil, err
	}
	wanted := idSet(animalIDs)
	out := []*schema.AnimalWeighing{}
	s.read(func(st *state) {
		for _, w := range st.animalWeighings {
			if _, ok := wanted[w.AnimalID]; ok {
				out = append(out, &w)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].WeighedAt.Equal(out[j].WeighedAt) {
			return out[i].WeighedAt.Before(out[j].WeighedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateVaccinations inserts individual vaccination rows
func (s *Store) CreateVaccinations(_ context.Context, vaccinations []*schema.Vaccination) error {
	return s.write("CreateVaccinations", func(st *state) error {
		for _, v := range vaccinations {
			if v.AnimalID != nil {
				if _, ok := st.animals[*v.AnimalID]; !ok {
					return fmt.Errorf("failed to create vaccinations: unknown animal %s", *v.AnimalID)
				}
			}
			v.ID = newID(v.ID)
			v.CreatedAt = stamp(v.CreatedAt)
			st.vaccinations = append(st.vaccinations, *v)
		}
		return nil
	})
}

// ListVaccinations lists vaccinations of the given animals
func (s *Store) ListVaccinations(_ context.Context, animalIDs []string) ([]*schema.Vaccination, error) {
	if err := s.fault("ListVaccinations"); err != nil {
		return nil, err
	}
	wanted := idSet(animalIDs)
	out := []*schema.Vaccination{}
	s.read(func(st *state) {
		for _, v := range st.vaccinations {
			if v.AnimalID == nil {
				continue
			}
			if _, ok := wanted[*v.AnimalID]; ok {
				out = append(out, &v)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].VaccinationDate.Equal(out[j].VaccinationDate) {
			return out[i].VaccinationDate.Before(out[j].VaccinationDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateDiseases inserts individual disease rows
func (s *Store) CreateDiseases(_ context.Context, diseases []*schema.Disease) error {
	return s.write("CreateDiseases", func(st *state) error {
		for _, d := range diseases {
			if d.AnimalID != nil {
				if _, ok := st.animals[*d.AnimalID]; !ok {
					return fmt.Errorf("failed to create diseases: unknown animal %s", *d.AnimalID)
				}
			}
			d.ID = newID(d.ID)
			if d.Status == "" {
				d.Status = domain.DiseaseActive
			}
			d.CreatedAt = stamp(d.CreatedAt)
			st.diseases = append(st.diseases, *d)
		}
		return nil
	})
}

// ListDiseases lists diseases of the given animals
func (s *Store) ListDiseases(_ context.Context, animalIDs []string) ([]*schema.Disease, error) {
	if err := s.fault("ListDiseases"); err != nil {
		return nil, err
	}
	wanted := idSet(animalIDs)
	out := []*schema.Disease{}
	s.read(func(st *state) {
		for _, d := range st.diseases {
			if d.AnimalID == nil {
				continue
			}
			if _, ok := wanted[*d.AnimalID]; ok {
				out = append(out, &d)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DiagnosisDate.Equal(out[j].DiagnosisDate) {
			return out[i].DiagnosisDate.Before(out[j].DiagnosisDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreateMigrationRecord inserts a migration record
func (s *Store) CreateMigrationRecord(_ context.Context, record *schema.MigrationRecord) error {
	return s.write("CreateMigrationRecord", func(st *state) error {
		if record.ID == "" {
			return fmt.Errorf("failed to create migration record: empty id")
		}
		if _, ok := st.migrations[record.ID]; ok {
			return fmt.Errorf("failed to create migration record: duplicate id %s", record.ID)
		}
		if record.Status == "" {
			record.Status = domain.MigrationStatusInProgress
		}
		st.migrations[record.ID] = *record
		return nil
	})
}

// CompleteMigrationRecord moves an in_progress record to completed
func (s *Store) CompleteMigrationRecord(_ context.Context, input store.CompleteMigrationInput) error {
	return s.write("CompleteMigrationRecord", func(st *state) error {
		r, ok := st.migrations[input.ID]
		if !ok || r.Status != domain.MigrationStatusInProgress {
			return fmt.Errorf("migration record %s: %w", input.ID, domain.ErrMigrationNotInProgress)
		}
		completedAt := input.CompletedAt
		r.Status = domain.MigrationStatusCompleted
		r.TargetIDs = schema.IDList(input.TargetIDs)
		r.Statistics = datatypes.JSON(slices.Clone(input.Statistics))
		r.CompletedAt = &completedAt
		st.migrations[input.ID] = r
		return nil
	})
}

// FailMigrationRecord moves an in_progress record to failed
func (s *Store) FailMigrationRecord(_ context.Context, id string, message string, at time.Time) error {
	return s.write("FailMigrationRecord", func(st *state) error {
		r, ok := st.migrations[id]
		if !ok || r.Status != domain.MigrationStatusInProgress {
			return fmt.Errorf("migration record %s: %w", id, domain.ErrMigrationNotInProgress)
		}
		r.Status = domain.MigrationStatusFailed
		r.ErrorMessage = message
		r.CompletedAt = &at
		st.migrations[id] = r
		return nil
	})
}

// GetMigrationRecord retrieves a migration record by id
func (s *Store) GetMigrationRecord(_ context.Context, id string) (*schema.MigrationRecord, error) {
	if err := s.fault("GetMigrationRecord"); err != nil {
		return nil, err
	}
	var out *schema.MigrationRecord
	s.read(func(st *state) {
		if r, ok := st.migrations[id]; ok {
			out = &r
		}
	})
	return out, nil
}

// ListMigrationRecords lists a project's records, newest first
func (s *Store) ListMigrationRecords(_ context.Context, projectID string, limit int) ([]*schema.MigrationRecord, error) {
	if err := s.fault("ListMigrationRecords"); err != nil {
		return nil, err
	}
	out := []*schema.MigrationRecord{}
	s.read(func(st *state) {
		for _, r := range st.migrations {
			if r.ProjectID == projectID {
				out = append(out, &r)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListStaleMigrationRecords lists in_progress records started before the cutoff, oldest first
func (s *Store) ListStaleMigrationRecords(_ context.Context, startedBefore time.Time, limit int) ([]*schema.MigrationRecord, error) {
	if err := s.fault("ListStaleMigrationRecords"); err != nil {
		return nil, err
	}
	out := []*schema.MigrationRecord{}
	s.read(func(st *state) {
		for _, r := range st.migrations {
			if r.Status == domain.MigrationStatusInProgress && r.StartedAt.Before(startedBefore) {
				out = append(out, &r)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.Before(out[j].StartedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func uniqueSorted(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

var _ store.Store = (*Store)(nil)
