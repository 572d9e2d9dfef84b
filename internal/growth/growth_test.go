package growth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/porcinet/herdbook/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func TestExpectedWeight(t *testing.T) {
	prior := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		weight float64
		adg    float64
		at     time.Time
		want   float64
	}{
		{"ten days at default gain", 50, 0.4, prior.AddDate(0, 0, 10), 54},
		{"same day", 50, 0.4, prior, 50},
		{"half day", 50, 0.8, prior.Add(12 * time.Hour), 50.4},
		{"date before prior clamps at zero", 2, 0.4, prior.AddDate(0, 0, -10), 0},
		{"negative gain", 30, -0.5, prior.AddDate(0, 0, 4), 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExpectedWeight(tt.weight, prior, tt.adg, tt.at), 1e-9)
		})
	}
}

func TestResolveADG(t *testing.T) {
	tests := []struct {
		name       string
		batch      *float64
		origin     *float64
		moved      bool
		want       float64
		wantSource ADGSource
	}{
		{"moved uses origin rate", ptr(0.7), ptr(0.55), true, 0.55, ADGSourceOrigin},
		{"not moved uses batch rate", ptr(0.7), ptr(0.55), false, 0.7, ADGSourceBatch},
		{"moved from batch without rate uses batch rate", ptr(0.7), nil, true, 0.7, ADGSourceBatch},
		{"no rates use default", nil, nil, true, 0.4, ADGSourceDefault},
		{"origin ignored when not moved", nil, ptr(0.9), false, 0.4, ADGSourceDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, source := ResolveADG(tt.batch, tt.origin, tt.moved, 0.4)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestAgeMonths(t *testing.T) {
	birth := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.InDelta(t, 3, AgeMonths(birth, birth.AddDate(0, 0, 90)), 1e-9)
	assert.Zero(t, AgeMonths(birth, birth.AddDate(0, 0, -5)))
}

func TestThresholdClassifier(t *testing.T) {
	c := NewThresholdClassifier()

	tests := []struct {
		weight float64
		age    float64
		want   domain.Stage
	}{
		{1.5, 0.1, domain.StagePiglet},
		{6.99, 0, domain.StagePiglet},
		{7, 0, domain.StageGrowing},
		{24.9, 2, domain.StageGrowing},
		{25, 2, domain.StageFinishing},
		{109.9, 12, domain.StageFinishing},
		{110, 6, domain.StageFinishing},
		{110, 0, domain.StageFinishing},
		{180, 8, domain.StageFinishing},
		{180, 8.5, domain.StageBreedingSow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.weight, tt.age), "weight=%v age=%v", tt.weight, tt.age)
	}
}

func TestThresholdClassifierCustomBands(t *testing.T) {
	c := &ThresholdClassifier{PigletMaxKg: 10, GrowingMaxKg: 30, FinishingMaxKg: 120, BreedingMinAgeMonths: 10}

	assert.Equal(t, domain.StagePiglet, c.Classify(9, 1))
	assert.Equal(t, domain.StageFinishing, c.Classify(115, 12))
	assert.Equal(t, domain.StageBreedingSow, c.Classify(125, 12))
}
