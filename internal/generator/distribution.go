package generator

import (
	"math"

	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/domain"
)

// UniformWeights gives every animal the mean weight
func UniformWeights(mean float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean
	}
	return out
}

// NormalWeights samples n weights around mean with a standard deviation of stdDevPercent of the
// mean, using the Box-Muller transform. Samples are floored at half the mean.
func NormalWeights(r adapter.Random, mean, stdDevPercent float64, n int) []float64 {
	if stdDevPercent <= 0 {
		stdDevPercent = domain.DEFAULT_STD_DEV_PERCENT
	}
	stdDev := mean * stdDevPercent / 100
	floor := mean * domain.MIN_WEIGHT_FRACTION

	out := make([]float64, n)
	for i := range out {
		// u1 in (0, 1] keeps the logarithm finite
		u1 := 1 - r.Float64()
		u2 := r.Float64()
		z0 := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
		out[i] = math.Max(mean+z0*stdDev, floor)
	}
	return out
}

// Weights dispatches on the distribution method
func Weights(r adapter.Random, method domain.DistributionMethod, mean, stdDevPercent float64, n int) []float64 {
	if method == domain.DistributionNormal {
		return NormalWeights(r, mean, stdDevPercent, n)
	}
	return UniformWeights(mean, n)
}
