package segment

import (
	"testing"

	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/label"
	"github.com/stretchr/testify/assert"
)

func TestMeasureClumps_SkipsBlankAndEmptyClumps(t *testing.T) {
	w, h := 3, 1
	r := flatRegion(w, h, make([]float32, w*h))
	clumpLabels := []int32{1, 1, 2}
	values := []float32{2, 4, image32.Blank}

	stats := MeasureClumps(r, clumpLabels, 2, values)
	if assert.Len(t, stats, 1) {
		assert.Equal(t, int32(1), stats[0].Label)
		assert.Equal(t, 2, stats[0].Area)
		assert.Equal(t, 3.0, stats[0].MeanFlux)
	}
}

func TestFilterClumps_DemotesBelowThresholdToRiver(t *testing.T) {
	clumpLabels := []int32{1, 1, 2, 2}
	stats := []ClumpStats{
		{Label: 1, Area: 100, MeanFlux: 50},
		{Label: 2, Area: 1, MeanFlux: 0.001},
	}

	out, numSurviving := FilterClumps(clumpLabels, stats, 1, 1, true, 5, 1)
	assert.Equal(t, 1, numSurviving)
	assert.Equal(t, int32(1), out[0])
	assert.Equal(t, int32(1), out[1])
	assert.Equal(t, label.River, out[2])
	assert.Equal(t, label.River, out[3])
}

func TestFilterClumps_DropsBelowAreaFloorEvenAtHighSN(t *testing.T) {
	clumpLabels := []int32{1, 2}
	stats := []ClumpStats{
		{Label: 1, Area: 3, MeanFlux: 1000},
		{Label: 2, Area: 30, MeanFlux: 1000},
	}

	out, numSurviving := FilterClumps(clumpLabels, stats, 1, 1, true, 0, 15)
	assert.Equal(t, 1, numSurviving)
	assert.Equal(t, label.River, out[0])
	assert.Equal(t, int32(1), out[1])
}
