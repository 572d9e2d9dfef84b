package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/generator"
)

func TestExplodeOptionsDefaults(t *testing.T) {
	opts := ExplodeOptions{GenerateIDs: true}.withDefaults(12)
	assert.Equal(t, domain.DistributionUniform, opts.DistributionMethod)
	assert.Equal(t, domain.DEFAULT_IDENTIFIER_PATTERN, opts.IDPattern)
	assert.Equal(t, 12.0, opts.WeightStdDevPercent)
	assert.Equal(t, domain.HealthRecordsDuplicate, opts.HealthRecords)
	assert.Nil(t, opts.SexRatio, "the ratio is resolved from the batch")
	assert.NoError(t, opts.validate())

	caller := ExplodeOptions{Identifiers: []string{"A"}}.withDefaults(12)
	assert.Empty(t, caller.IDPattern)
}

func TestExplodeOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts ExplodeOptions
	}{
		{"unknown distribution", ExplodeOptions{DistributionMethod: "poisson"}},
		{"negative deviation", ExplodeOptions{WeightStdDevPercent: -1}},
		{"deviation above 100", ExplodeOptions{WeightStdDevPercent: 150}},
		{"ratio above one", ExplodeOptions{SexRatio: &generator.SexRatio{Male: 0.7, Female: 0.7}}},
		{"negative ratio", ExplodeOptions{SexRatio: &generator.SexRatio{Male: -0.1, Female: 0.5}}},
		{"unknown health mode", ExplodeOptions{HealthRecords: "merge"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.withDefaults(10).validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestFoldOptionsDefaults(t *testing.T) {
	opts := FoldOptions{}.withDefaults()
	assert.Equal(t, domain.DEFAULT_BATCH_NUMBER_PATTERN, opts.BatchNumberPattern)
	assert.True(t, opts.aggregateHealth())
	assert.True(t, opts.keepIndividuals())
	assert.NoError(t, opts.validate())

	off := false
	opts = FoldOptions{AggregateHealthRecords: &off, KeepIndividualRecords: &off}.withDefaults()
	assert.False(t, opts.aggregateHealth())
	assert.False(t, opts.keepIndividuals())

	err := FoldOptions{MinimumBatchSize: -2}.withDefaults().validate()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
