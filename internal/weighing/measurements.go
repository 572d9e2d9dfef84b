package weighing

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMeasurements converts raw scale readings to kilograms. Both decimal comma and decimal point
// are accepted; unparseable, non-finite and non-positive readings are dropped.
func ParseMeasurements(raw []string) []float64 {
	out := make([]float64, 0, len(raw))
	for _, r := range raw {
		v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(r), ",", "."), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return FilterMeasurements(out)
}

// FilterMeasurements keeps the positive finite values
func FilterMeasurements(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// roundKg rounds a weight to gram precision
func roundKg(v float64) float64 {
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}

// summarize returns the rounded mean, min and max of non-empty values
func summarize(values []float64) (mean, lo, hi float64) {
	sum := decimal.Zero
	lo, hi = values[0], values[0]
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
		lo = min(lo, v)
		hi = max(hi, v)
	}
	mean = sum.Div(decimal.NewFromInt(int64(len(values)))).Round(3).InexactFloat64()
	return mean, roundKg(lo), roundKg(hi)
}
