package pipeline

import (
	"context"
	"math"
	"sort"

	"github.com/astrodetect/astrodetect/internal/config"
	"github.com/astrodetect/astrodetect/internal/errs"
	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/mesh"
	"github.com/astrodetect/astrodetect/internal/stats"
	"github.com/astrodetect/astrodetect/internal/threshold"
)

// computeQuantileThresholds runs C1+C3+C4's tile pass over the convolved
// image: each tile's sample is accepted only if the mode estimator finds
// a usable mode, and the tile's threshold is the sample's value at
// cfg.QThresh. Tiles that fail either check are marked blank and filled
// in by interpolation, exactly like the sky/std pass.
func computeQuantileThresholds(ctx context.Context, g *mesh.Grid, conv *image32.Image, cfg config.Config) ([]float32, int, error) {
	perTile := make([]float64, len(g.Tiles))

	runErr := g.Run(ctx, cfg.NumThreads, func(t *mesh.Tile) error {
		sample := make([]float32, 0, t.Width()*t.Height())
		for r := t.Row0; r < t.Row1; r++ {
			base := r * g.W
			for c := t.Col0; c < t.Col1; c++ {
				v := conv.Data[base+c]
				if !image32.IsBlank(v) {
					sample = append(sample, v)
				}
			}
		}

		if len(sample) < minTilePixels {
			t.Blank = true
			return nil
		}
		sort.Slice(sample, func(a, b int) bool { return sample[a] < sample[b] })

		_, _, ok := stats.Mode(sample, cfg.MirrorDist, cfg.MinModeQ)
		if !ok {
			t.Blank = true
			return nil
		}

		t.Blank = false
		t.G1 = float64(threshold.Quantile(sample, cfg.QThresh))
		perTile[t.Index] = t.G1
		return nil
	})
	if runErr != nil {
		return nil, 0, runErr
	}

	degenerate := 0
	for i := range g.Tiles {
		if g.Tiles[i].Blank {
			degenerate++
			perTile[i] = math.NaN()
		}
	}
	if degenerate == len(g.Tiles) {
		return nil, degenerate, &errs.InsufficientData{Component: "pipeline", Reason: "every tile failed mode estimation; cannot threshold"}
	}

	perTile = g.Interpolate(perTile, cfg.NumNearest, cfg.FullInterpolation)

	out := make([]float32, len(perTile))
	for i, v := range perTile {
		out[i] = float32(v)
	}
	return out, degenerate, nil
}
