package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/porcinet/herdbook/internal/api/shared/constants"
	apierrors "github.com/porcinet/herdbook/internal/api/shared/errors"
	"github.com/porcinet/herdbook/internal/migration"
	"github.com/porcinet/herdbook/internal/weighing"
)

// Measurement is one raw scale reading. Scales export either JSON numbers or strings
// with a decimal comma, both are accepted.
type Measurement string

// UnmarshalJSON accepts a number or a string
func (m *Measurement) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Measurement(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("measurement must be a number or a string: %w", err)
	}
	*m = Measurement(n.String())
	return nil
}

// RecordWeighingRequest represents the request body for recording a weighing session
type RecordWeighingRequest struct {
	Measurements []Measurement `json:"measurements"`
	WeighingDate *time.Time    `json:"weighing_date,omitempty"`
	Notes        string        `json:"notes,omitempty"`
}

// Validate validates the request body and returns the parsed measurements
func (r *RecordWeighingRequest) Validate() ([]float64, error) {
	if len(r.Measurements) == 0 {
		return nil, apierrors.NewValidationError("measurements is required")
	}
	if len(r.Measurements) > constants.MAX_MEASUREMENTS_PER_WEIGHING {
		return nil, apierrors.NewValidationError(fmt.Sprintf("maximum %d measurements allowed", constants.MAX_MEASUREMENTS_PER_WEIGHING))
	}

	raw := make([]string, len(r.Measurements))
	for i, m := range r.Measurements {
		raw[i] = string(m)
	}
	values := weighing.ParseMeasurements(raw)
	if len(values) == 0 {
		return nil, apierrors.NewValidationError("no valid measurement: readings must be positive numbers")
	}

	return values, nil
}

// ExplodeBatchRequest represents the request body for converting a batch into individual animals
type ExplodeBatchRequest struct {
	BatchID string                   `json:"batch_id"`
	Options migration.ExplodeOptions `json:"options"`
}

// Validate validates the request body
func (r *ExplodeBatchRequest) Validate() error {
	if r.BatchID == "" {
		return apierrors.NewValidationError("batch_id is required")
	}
	return nil
}

// FoldIndividualsRequest represents the request body for grouping individual animals into batches
type FoldIndividualsRequest struct {
	PigIDs  []string              `json:"pig_ids"`
	Options migration.FoldOptions `json:"options"`
}

// Validate validates the request body
func (r *FoldIndividualsRequest) Validate() error {
	if len(r.PigIDs) == 0 {
		return apierrors.NewValidationError("pig_ids is required")
	}
	if len(r.PigIDs) > constants.MAX_PIG_IDS_PER_FOLD {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d pig ids allowed", constants.MAX_PIG_IDS_PER_FOLD))
	}
	return nil
}
