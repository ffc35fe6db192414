// Package threshold implements the quantile thresholder (C4): selecting a
// per-tile quantile value from the convolved image's mesh and applying it
// to produce the binary foreground/background byte map C5 prunes.
package threshold

import (
	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/mesh"
	"github.com/astrodetect/astrodetect/internal/morph"
	"github.com/astrodetect/astrodetect/internal/stats"
)

// Quantile returns the value at quantile q of an ascending-sorted tile
// sample, using the same rounding rule (stats.QuantileIndex) as every other quantile
// pick in this pipeline.
func Quantile(sorted []float32, q float64) float32 {
	return stats.Quantile(sorted, q)
}

// Apply produces a byte map from the convolved image and its per-tile
// threshold table: a pixel is foreground if its convolved value is at
// least its tile's threshold, background otherwise, and Masked if blank.
func Apply(conv *image32.Image, perTile []float32, grid *mesh.Grid) []byte {
	out := make([]byte, conv.W*conv.H)
	for i := range grid.Tiles {
		t := &grid.Tiles[i]
		thr := perTile[t.Index]
		for r := t.Row0; r < t.Row1; r++ {
			base := r * conv.W
			for c := t.Col0; c < t.Col1; c++ {
				idx := base + c
				v := conv.Data[idx]
				switch {
				case image32.IsBlank(v):
					out[idx] = morph.Masked
				case v >= thr:
					out[idx] = morph.Foreground
				default:
					out[idx] = morph.Background
				}
			}
		}
	}
	return out
}
