package segment

import (
	"testing"

	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRegion(w, h int, conv []float32) *Region {
	in := make([]bool, w*h)
	for i := range in {
		in[i] = true
	}
	return &Region{W: w, H: h, InRegion: in, Conv: conv}
}

func TestOversegment_SinglePeakYieldsOneClump(t *testing.T) {
	w, h := 5, 5
	conv := make([]float32, w*h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			dr, dc := float32(r-2), float32(c-2)
			conv[r*w+c] = 10 - (dr*dr + dc*dc)
		}
	}
	r := flatRegion(w, h, conv)

	labels, numClumps := Oversegment(r)
	assert.Equal(t, 1, numClumps)
	assert.Equal(t, int32(1), labels[2*w+2])
}

func TestOversegment_TwoPeaksSplitByRiver(t *testing.T) {
	// Three rows so the two peaks, placed in the middle row, sit away
	// from the bounding box's forced-river edge.
	w, h := 9, 3
	row := []float32{1, 2, 3, 10, 2, 1, 3, 10, 1}
	conv := make([]float32, w*h)
	for c := 0; c < w; c++ {
		conv[0*w+c] = 0
		conv[1*w+c] = row[c]
		conv[2*w+c] = 0
	}
	r := flatRegion(w, h, conv)

	labels, numClumps := Oversegment(r)
	assert.Equal(t, 2, numClumps)
	peakA, peakB := labels[1*w+3], labels[1*w+7]
	assert.NotEqual(t, peakA, peakB)
	assert.True(t, peakA > 0)
	assert.True(t, peakB > 0)
}

func TestOversegment_EdgePixelsForcedToRiver(t *testing.T) {
	w, h := 3, 3
	conv := make([]float32, w*h)
	for i := range conv {
		conv[i] = 5
	}
	conv[1*w+1] = 10
	r := flatRegion(w, h, conv)

	labels, _ := Oversegment(r)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			if r.isEdge(row, col) {
				assert.Equal(t, label.River, labels[row*w+col], "edge pixel (%d,%d) must be forced to river", row, col)
			}
		}
	}
}

func TestOversegment_RepeatedRunGivesSameClumpMap(t *testing.T) {
	w, h := 7, 7
	conv := make([]float32, w*h)
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			dr, dc := float32(r-2), float32(c-4)
			conv[r*w+c] = 20 - (dr*dr + dc*dc)
		}
	}
	region := flatRegion(w, h, conv)

	labels1, n1 := Oversegment(region)
	labels2, n2 := Oversegment(region)
	require.Equal(t, n1, n2)
	assert.Equal(t, labels1, labels2)
}

func TestOversegment_MaskedPixelAbsorbedIntoNeighborClump(t *testing.T) {
	// A masked pixel between two separate equal-height peaks does not
	// itself form a clump or a river segment: it gets absorbed into
	// whichever neighbouring clump it touches first. Three rows keep the
	// peaks off the bounding box's forced-river edge.
	w, h := 5, 3
	row := []float32{1, 5, image32.Blank, 5, 1}
	conv := make([]float32, w*h)
	for c := 0; c < w; c++ {
		conv[0*w+c] = 0
		conv[1*w+c] = row[c]
		conv[2*w+c] = 0
	}
	r := flatRegion(w, h, conv)

	labels, numClumps := Oversegment(r)
	assert.Equal(t, 2, numClumps)
	mid := 1*w + 2
	left := 1*w + 1
	right := 1*w + 3
	assert.True(t, labels[mid] == labels[left] || labels[mid] == labels[right])
	assert.NotEqual(t, label.River, labels[mid])
}
