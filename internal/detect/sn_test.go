package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPSCorrection_CapsAtOne(t *testing.T) {
	assert.Equal(t, 1.0, CPSCorrection([]float64{2, 3, 5}))
	assert.Equal(t, 0.5, CPSCorrection([]float64{2, 0.5, 5}))
	assert.Equal(t, 1.0, CPSCorrection(nil))
}

func TestSN_MonotonicInArea(t *testing.T) {
	sn1 := SN(10, 5, 1, 1, true)
	sn2 := SN(100, 5, 1, 1, true)
	assert.Greater(t, sn2, sn1)
}

func TestSN_MonotonicInFlux(t *testing.T) {
	sn1 := SN(10, 2, 1, 1, true)
	sn2 := SN(10, 20, 1, 1, true)
	assert.Greater(t, sn2, sn1)
}

func TestSN_SkyNotSubtractedDoublesVariance(t *testing.T) {
	snSubtracted := SN(10, 5, 2, 1, true)
	snNotSubtracted := SN(10, 5, 2, 1, false)
	assert.Greater(t, snSubtracted, snNotSubtracted)
}

func TestClumpSN_ZeroWhenInteriorEqualsSurround(t *testing.T) {
	sn := ClumpSN(10, 5, 5, 1, 1, true)
	assert.Equal(t, 0.0, sn)
}

func TestClumpSN_PositiveWhenInteriorExceedsSurround(t *testing.T) {
	sn := ClumpSN(10, 8, 2, 1, 1, true)
	assert.Greater(t, sn, 0.0)
}
