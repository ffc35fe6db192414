package pipeline

import (
	"testing"

	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegion_PadsBoundingBoxByHaloAndClips(t *testing.T) {
	w, h := 10, 10
	labels := make([]int32, w*h)
	labels[5*w+5] = 1

	conv := image32.New(w, h)
	for i := range conv.Data {
		conv.Data[i] = float32(i)
	}

	region, row0, col0, rw, rh := buildRegion(labels, conv, 1)
	assert.Equal(t, 5-haloMargin, row0)
	assert.Equal(t, 5-haloMargin, col0)
	assert.Equal(t, 1+2*haloMargin, rw)
	assert.Equal(t, 1+2*haloMargin, rh)
	assert.True(t, region.InRegion[haloMargin*rw+haloMargin])
}

func TestBuildRegion_ClipsAtImageEdge(t *testing.T) {
	w, h := 10, 10
	labels := make([]int32, w*h)
	labels[0] = 1 // top-left corner pixel

	conv := image32.New(w, h)
	region, row0, col0, rw, rh := buildRegion(labels, conv, 1)
	require.Equal(t, 0, row0)
	require.Equal(t, 0, col0)
	assert.LessOrEqual(t, rw, 1+haloMargin)
	assert.LessOrEqual(t, rh, 1+haloMargin)
}

func TestBuildRegion_ExcludesOtherPositiveLabelsFromGrowth(t *testing.T) {
	w, h := 10, 10
	labels := make([]int32, w*h)
	labels[5*w+5] = 1
	labels[5*w+6] = 2 // a neighbouring, different detection

	conv := image32.New(w, h)
	for i := range conv.Data {
		conv.Data[i] = 1
	}

	region, row0, col0, rw, _ := buildRegion(labels, conv, 1)
	localIdx := (5-row0)*rw + (6 - col0)
	assert.True(t, image32.IsBlank(region.Conv[localIdx]), "pixels belonging to a different detection must be blanked out")
}
