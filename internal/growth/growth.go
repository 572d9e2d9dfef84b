// Package growth projects animal weights forward in time and classifies production stages
package growth

import (
	"time"

	"github.com/porcinet/herdbook/internal/domain"
)

// ExpectedWeight projects a prior weight to the given date using a daily gain rate.
// The result is never negative.
func ExpectedWeight(priorWeightKg float64, priorDate time.Time, adg float64, at time.Time) float64 {
	expected := priorWeightKg + adg*domain.DaysBetween(priorDate, at)
	return max(expected, 0)
}

// ADGSource identifies which rate ResolveADG selected
type ADGSource string

const (
	ADGSourceOrigin  ADGSource = "origin_batch"
	ADGSourceBatch   ADGSource = "batch"
	ADGSourceDefault ADGSource = "default"
)

// ResolveADG picks the daily gain rate for one animal.
// An animal that moved into the batch after its last weighing grew under the origin batch's
// regime, so the origin rate wins when it is set. Otherwise the batch rate applies, then fallback.
func ResolveADG(batchADG, originADG *float64, movedSinceWeighing bool, fallback float64) (float64, ADGSource) {
	if movedSinceWeighing && originADG != nil {
		return *originADG, ADGSourceOrigin
	}
	if batchADG != nil {
		return *batchADG, ADGSourceBatch
	}
	return fallback, ADGSourceDefault
}

// AgeMonths returns the age in months at the given date, using 30-day months
func AgeMonths(birth, at time.Time) float64 {
	return max(domain.DaysBetween(birth, at)/domain.DAYS_PER_MONTH, 0)
}
