package generator_test

import (
	"math"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/generator"
	"github.com/porcinet/herdbook/internal/mocks"
)

func TestNormalWeights_ScriptedSource(t *testing.T) {
	tests := []struct {
		name   string
		draws  []float64
		mean   float64
		stdDev float64
		want   float64
	}{
		{
			// u1 = 1 gives z = 0
			name:   "zero deviate returns the mean",
			draws:  []float64{0, 0.3},
			mean:   40,
			stdDev: 10,
			want:   40,
		},
		{
			// u1 near 0 and cos(pi) = -1 give a deviate far below the mean
			name:   "deep negative deviate is clamped to half the mean",
			draws:  []float64{0.999999, 0.5},
			mean:   33.33299,
			stdDev: 100,
			want:   33.33299 * domain.MIN_WEIGHT_FRACTION,
		},
		{
			// z = sqrt(-2 ln 0.5) with cos(0) = 1
			name:   "positive deviate",
			draws:  []float64{0.5, 0},
			mean:   100,
			stdDev: 10,
			want:   100 + 10*math.Sqrt(-2*math.Log(0.5)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			r := mocks.NewMockRandom(ctrl)
			calls := make([]*gomock.Call, 0, len(tt.draws))
			for _, d := range tt.draws {
				calls = append(calls, r.EXPECT().Float64().Return(d))
			}
			gomock.InOrder(calls...)

			weights := generator.NormalWeights(r, tt.mean, tt.stdDev, 1)
			require.Len(t, weights, 1)
			assert.InDelta(t, tt.want, weights[0], 1e-9)
		})
	}
}

func TestWeights_UniformDoesNotDraw(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRandom(ctrl)

	weights := generator.Weights(r, domain.DistributionUniform, 25, 10, 3)
	assert.Equal(t, []float64{25, 25, 25}, weights)
}
