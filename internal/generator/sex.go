package generator

import (
	"math"

	"github.com/porcinet/herdbook/internal/adapter"
	"github.com/porcinet/herdbook/internal/domain"
)

// SexRatio is the target share of males and females. Shares need not sum to one; the remainder
// is allocated to males.
type SexRatio struct {
	Male   float64 `json:"male"`
	Female float64 `json:"female"`
}

// DefaultSexRatio is an even split
var DefaultSexRatio = SexRatio{Male: 0.5, Female: 0.5}

// Valid reports whether both shares are within [0, 1] and their sum does not exceed one
func (r SexRatio) Valid() bool {
	return r.Male >= 0 && r.Female >= 0 && r.Male <= 1 && r.Female <= 1 && r.Male+r.Female <= 1+1e-9
}

// SexCounts returns how many males and females n animals split into.
// Each count is rounded independently and the female count is clamped so the sum never exceeds n;
// animals not covered by either count are males.
func SexCounts(n int, ratio SexRatio) (male, female int) {
	male = min(int(math.Round(float64(n)*ratio.Male)), n)
	female = min(int(math.Round(float64(n)*ratio.Female)), n-male)
	return n - female, female
}

// AllocateSexes builds n sexes matching ratio, uniformly shuffled so the order does not correlate
// with weights or identifiers
func AllocateSexes(r adapter.Random, n int, ratio SexRatio) []domain.Sex {
	_, female := SexCounts(n, ratio)
	out := make([]domain.Sex, n)
	for i := range out {
		if i < female {
			out[i] = domain.SexFemale
		} else {
			out[i] = domain.SexMale
		}
	}
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
