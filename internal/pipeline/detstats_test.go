package pipeline

import (
	"testing"

	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureDetections_AreaFluxAndCentroid(t *testing.T) {
	w, h := 5, 1
	labels := []int32{0, 1, 1, 1, 0}
	orig := &image32.Image{W: w, H: h, Data: []float32{0, 10, 10, 10, 0}}
	sky := &image32.Image{W: w, H: h, Data: make([]float32, w)}
	std := &image32.Image{W: w, H: h, Data: []float32{1, 1, 1, 1, 1}}

	stats := measureDetections(labels, orig, sky, std, 1)
	require.Len(t, stats, 1)
	assert.Equal(t, int32(1), stats[0].Label)
	assert.Equal(t, 3, stats[0].Area)
	assert.Equal(t, 10.0, stats[0].MeanFlux)
	assert.Equal(t, 1.0, stats[0].CentroidStd)
}

func TestMeasureDetections_SkipsBlankPixelsAndEmptyLabels(t *testing.T) {
	w, h := 3, 1
	labels := []int32{1, 1, 2}
	orig := &image32.Image{W: w, H: h, Data: []float32{5, image32.Blank, 9}}
	sky := &image32.Image{W: w, H: h, Data: make([]float32, w)}
	std := &image32.Image{W: w, H: h, Data: []float32{1, 1, 1}}

	stats := measureDetections(labels, orig, sky, std, 2)
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[0].Area)
	assert.Equal(t, 5.0, stats[0].MeanFlux)
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 0, 10))
	assert.Equal(t, 10, clampInt(15, 0, 10))
	assert.Equal(t, 4, clampInt(4, 0, 10))
}
