package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRandomIsDeterministicForSeed(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)

	for range 20 {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.Equal(t, a.IntN(1000), b.IntN(1000))

	xs := []int{1, 2, 3, 4, 5, 6, 7, 8}
	ys := []int{1, 2, 3, 4, 5, 6, 7, 8}
	a.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })
	b.Shuffle(len(ys), func(i, j int) { ys[i], ys[j] = ys[j], ys[i] })
	assert.Equal(t, xs, ys)
}

func TestRandomFloat64Range(t *testing.T) {
	r := NewRandom(7)
	for range 1000 {
		v := r.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestCanonicalizeSortsKeys(t *testing.T) {
	out, err := Canonicalize(NewJSON(), NewJCS(), map[string]any{"b": 1, "a": "x"})
	assert.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":1}`, string(out))
}
