package segment

import (
	"testing"

	"github.com/astrodetect/astrodetect/internal/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_SingleClumpFastPath(t *testing.T) {
	w, h := 3, 1
	clumpLabels := []int32{1, 1, 1}
	r := flatRegion(w, h, []float32{5, 5, 5})
	counter := &GlobalCounter{}

	objOut, clumpOut, numObjects := Resolve(r, clumpLabels, 1, ResolveConfig{}, counter)
	require.Equal(t, 1, numObjects)
	for i := range objOut {
		assert.Equal(t, int32(1), objOut[i])
		assert.Equal(t, int32(1), clumpOut[i])
	}
}

func TestResolve_StrongRiverMergesClumpsIntoOneObject(t *testing.T) {
	// Two clumps separated by a high-flux river should merge into a
	// single object (a bright, wide connection between two peaks rather
	// than a genuine noise gap).
	w, h := 5, 1
	clumpLabels := []int32{1, 1, label.River, 2, 2}
	conv := []float32{10, 10, 9, 10, 10}
	r := flatRegion(w, h, conv)
	counter := &GlobalCounter{}

	cfg := ResolveConfig{
		GThresh:        0,
		MinRiverLength: 1,
		ObjBorderSN:    0,
		CPSCorrection:  1,
		SkySubtracted:  true,
	}
	objOut, _, numObjects := Resolve(r, clumpLabels, 2, cfg, counter)
	require.Equal(t, 1, numObjects)
	assert.Equal(t, objOut[0], objOut[3])
}

func TestResolve_WeakRiverKeepsClumpsAsSeparateObjects(t *testing.T) {
	w, h := 5, 1
	clumpLabels := []int32{1, 1, label.River, 2, 2}
	conv := []float32{10, 10, 0.001, 10, 10}
	r := flatRegion(w, h, conv)
	counter := &GlobalCounter{}

	cfg := ResolveConfig{
		GThresh:        0,
		MinRiverLength: 1,
		ObjBorderSN:    1e6,
		CPSCorrection:  1,
		SkySubtracted:  true,
	}
	objOut, _, numObjects := Resolve(r, clumpLabels, 2, cfg, counter)
	require.Equal(t, 2, numObjects)
	assert.NotEqual(t, objOut[0], objOut[3])
}

func TestResolve_DrawsFromGlobalCounterAcrossDetections(t *testing.T) {
	w, h := 3, 1
	counter := &GlobalCounter{}

	r1 := flatRegion(w, h, []float32{5, 5, 5})
	obj1, _, _ := Resolve(r1, []int32{1, 1, 1}, 1, ResolveConfig{}, counter)

	r2 := flatRegion(w, h, []float32{5, 5, 5})
	obj2, _, _ := Resolve(r2, []int32{1, 1, 1}, 1, ResolveConfig{}, counter)

	assert.NotEqual(t, obj1[0], obj2[0])
}
