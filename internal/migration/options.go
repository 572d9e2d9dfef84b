package migration

import (
	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/generator"
)

// ExplodeOptions controls how a batch is converted into individual animals
type ExplodeOptions struct {
	// GenerateIDs expands IDPattern for every new animal; otherwise Identifiers are used in order
	GenerateIDs bool   `json:"generate_ids"`
	IDPattern   string `json:"id_pattern,omitempty"`
	// Identifiers are caller-supplied codes, used when GenerateIDs is false
	Identifiers []string `json:"identifiers,omitempty"`

	DistributionMethod  domain.DistributionMethod `json:"distribution_method"`
	WeightStdDevPercent float64                   `json:"weight_std_dev_percent,omitempty"`
	// SexRatio defaults to the batch's own male, female and castrated counts
	SexRatio *generator.SexRatio `json:"sex_ratio,omitempty"`

	// PreserveBatchReference sets original_batch_id on the new animals
	PreserveBatchReference bool                     `json:"preserve_batch_reference"`
	HealthRecords          domain.HealthRecordsMode `json:"health_records"`
	// CreateWeightRecords synthesizes individual weighings from the batch's weighing history
	CreateWeightRecords bool `json:"create_weight_records"`
}

// withDefaults fills the unset options
func (o ExplodeOptions) withDefaults(defaultStdDev float64) ExplodeOptions {
	if o.DistributionMethod == "" {
		o.DistributionMethod = domain.DistributionUniform
	}
	if o.GenerateIDs && o.IDPattern == "" {
		o.IDPattern = domain.DEFAULT_IDENTIFIER_PATTERN
	}
	if o.WeightStdDevPercent == 0 {
		o.WeightStdDevPercent = defaultStdDev
	}
	if o.HealthRecords == "" {
		o.HealthRecords = domain.HealthRecordsDuplicate
	}
	return o
}

// validate checks options that were filled by withDefaults
func (o ExplodeOptions) validate() error {
	switch o.DistributionMethod {
	case domain.DistributionUniform, domain.DistributionNormal:
	default:
		return domain.Errorf(domain.ErrInvalidInput, "unknown distribution method %q", o.DistributionMethod)
	}
	if o.WeightStdDevPercent <= 0 || o.WeightStdDevPercent > 100 {
		return domain.Errorf(domain.ErrInvalidInput, "weight standard deviation must be within (0, 100] percent, got %g", o.WeightStdDevPercent)
	}
	if o.SexRatio != nil && !o.SexRatio.Valid() {
		return domain.Errorf(domain.ErrInvalidInput, "invalid sex ratio: male %g, female %g", o.SexRatio.Male, o.SexRatio.Female)
	}
	switch o.HealthRecords {
	case domain.HealthRecordsDuplicate, domain.HealthRecordsGeneric, domain.HealthRecordsSkip:
	default:
		return domain.Errorf(domain.ErrInvalidInput, "unknown health records mode %q", o.HealthRecords)
	}
	return nil
}

// GroupingCriteria selects the components of the fold grouping key
type GroupingCriteria struct {
	ByStage bool `json:"by_stage"`
	BySex   bool `json:"by_sex"`
	ByBreed bool `json:"by_breed"`
}

// FoldOptions controls how individual animals are grouped into batches
type FoldOptions struct {
	GroupingCriteria GroupingCriteria `json:"grouping_criteria"`
	// MinimumBatchSize drops smaller groups; their animals stay individually tracked
	MinimumBatchSize   int    `json:"minimum_batch_size,omitempty"`
	BatchNumberPattern string `json:"batch_number_pattern,omitempty"`
	// AggregateHealthRecords defaults to true
	AggregateHealthRecords *bool `json:"aggregate_health_records,omitempty"`
	// KeepIndividualRecords defaults to true; when false the folded animals are deactivated
	KeepIndividualRecords *bool `json:"keep_individual_records,omitempty"`
}

func (o FoldOptions) withDefaults() FoldOptions {
	if o.BatchNumberPattern == "" {
		o.BatchNumberPattern = domain.DEFAULT_BATCH_NUMBER_PATTERN
	}
	if o.AggregateHealthRecords == nil {
		o.AggregateHealthRecords = new(bool)
		*o.AggregateHealthRecords = true
	}
	if o.KeepIndividualRecords == nil {
		o.KeepIndividualRecords = new(bool)
		*o.KeepIndividualRecords = true
	}
	return o
}

func (o FoldOptions) validate() error {
	if o.MinimumBatchSize < 0 {
		return domain.Errorf(domain.ErrInvalidInput, "minimum batch size must not be negative, got %d", o.MinimumBatchSize)
	}
	return nil
}

func (o FoldOptions) aggregateHealth() bool {
	return o.AggregateHealthRecords == nil || *o.AggregateHealthRecords
}

func (o FoldOptions) keepIndividuals() bool {
	return o.KeepIndividualRecords == nil || *o.KeepIndividualRecords
}
