package growth

import "github.com/porcinet/herdbook/internal/domain"

// StageClassifier derives a production stage from weight and age.
// ageMonths <= 0 means the age is unknown.
//
//go:generate mockgen -source=stage.go -destination=../mocks/stage.go -package=mocks -mock_names=StageClassifier=MockStageClassifier
type StageClassifier interface {
	Classify(weightKg float64, ageMonths float64) domain.Stage
}

// ThresholdClassifier classifies by weight bands. Heavy animals past BreedingMinAgeMonths are
// assumed to be breeding sows, which is an approximation.
type ThresholdClassifier struct {
	PigletMaxKg          float64
	GrowingMaxKg         float64
	FinishingMaxKg       float64
	BreedingMinAgeMonths float64
}

// NewThresholdClassifier creates the default classifier:
// below 7 kg piglet, below 25 kg growing, below 110 kg finishing, then breeding sow past 8 months.
func NewThresholdClassifier() *ThresholdClassifier {
	return &ThresholdClassifier{
		PigletMaxKg:          7,
		GrowingMaxKg:         25,
		FinishingMaxKg:       110,
		BreedingMinAgeMonths: 8,
	}
}

func (c *ThresholdClassifier) Classify(weightKg float64, ageMonths float64) domain.Stage {
	switch {
	case weightKg < c.PigletMaxKg:
		return domain.StagePiglet
	case weightKg < c.GrowingMaxKg:
		return domain.StageGrowing
	case weightKg < c.FinishingMaxKg:
		return domain.StageFinishing
	case ageMonths > c.BreedingMinAgeMonths:
		return domain.StageBreedingSow
	default:
		return domain.StageFinishing
	}
}
