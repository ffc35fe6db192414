package stats

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode_GaussianNearCenter(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	n := 2000
	sample := make([]float32, n)
	for i := range sample {
		sample[i] = float32(5 + r.NormFloat64())
	}
	sort.Slice(sample, func(a, b int) bool { return sample[a] < sample[b] })

	idx, sym, ok := Mode(sample, 1.0, 0.15)
	require.True(t, ok)
	assert.Greater(t, sym, 0.2)

	q := float64(idx) / float64(n)
	assert.InDelta(t, 0.5, q, 0.15)
}

func TestMode_TooFewSamples(t *testing.T) {
	_, _, ok := Mode(make([]float32, 5), 1.0, 0.15)
	assert.False(t, ok)
}

func TestMode_ConstantSampleUnusable(t *testing.T) {
	sample := make([]float32, 50)
	for i := range sample {
		sample[i] = 3.0
	}
	_, _, ok := Mode(sample, 1.0, 0.15)
	assert.False(t, ok)
}

func TestMode_SkewedSampleRejectsLowQuantile(t *testing.T) {
	// A strongly right-skewed sample (sky + sources) should not accept a
	// mode candidate below minModeQuantile even if some index scores well.
	n := 1000
	sample := make([]float32, n)
	for i := 0; i < n; i++ {
		if i < n*9/10 {
			sample[i] = float32(i) / float32(n)
		} else {
			sample[i] = float32(10 + i)
		}
	}
	sort.Slice(sample, func(a, b int) bool { return sample[a] < sample[b] })

	idx, _, ok := Mode(sample, 1.0, 0.5)
	if ok {
		assert.GreaterOrEqual(t, float64(idx)/float64(n), 0.5)
	}
}
