package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/porcinet/herdbook/internal/api/shared/errors"
)

func TestMeasurement_UnmarshalJSON(t *testing.T) {
	var req RecordWeighingRequest
	require.NoError(t, json.Unmarshal([]byte(`{"measurements":[98.4," 101,25 ","abc",12]}`), &req))
	assert.Equal(t, []Measurement{"98.4", " 101,25 ", "abc", "12"}, req.Measurements)

	assert.Error(t, json.Unmarshal([]byte(`{"measurements":[{"kg":1}]}`), &req))
}

func TestRecordWeighingRequest_Validate(t *testing.T) {
	t.Run("drops unusable readings", func(t *testing.T) {
		req := RecordWeighingRequest{Measurements: []Measurement{"98.4", "101,25", "abc", "-2", "0"}}
		values, err := req.Validate()
		require.NoError(t, err)
		assert.Equal(t, []float64{98.4, 101.25}, values)
	})

	t.Run("empty", func(t *testing.T) {
		req := RecordWeighingRequest{}
		_, err := req.Validate()
		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apierrors.ErrCodeValidationFailed, apiErr.Code)
	})

	t.Run("too many", func(t *testing.T) {
		req := RecordWeighingRequest{Measurements: make([]Measurement, 2001)}
		_, err := req.Validate()
		assert.ErrorContains(t, err, "maximum 2000 measurements allowed")
	})
}

func TestFoldIndividualsRequest_Validate(t *testing.T) {
	assert.Error(t, (&FoldIndividualsRequest{}).Validate())
	assert.NoError(t, (&FoldIndividualsRequest{PigIDs: []string{"a-1"}}).Validate())

	tooMany := FoldIndividualsRequest{PigIDs: strings.Split(strings.Repeat("x,", 10000)+"x", ",")}
	assert.ErrorContains(t, tooMany.Validate(), "maximum 10000 pig ids allowed")
}

func TestExplodeBatchRequest_Validate(t *testing.T) {
	assert.ErrorContains(t, (&ExplodeBatchRequest{}).Validate(), "batch_id is required")
	assert.NoError(t, (&ExplodeBatchRequest{BatchID: "b-1"}).Validate())
}
