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
)

// minTilePixels is the fewest usable samples a tile needs before its
// sigma-clip is even attempted; fewer than this and the tile is marked
// degenerate outright rather than feeding noise into SigmaClip.
const minTilePixels = 10

// computeSkyStd runs C1+C2+C3 over grid: each tile whose usable
// (non-blank, usable[i]==true) samples from values pass the mode
// estimator sigma-clips them into a robust median
// and std, then the sparse per-tile results are interpolated, smoothed and
// projected back to image-sized sky and std planes. Returns
// InsufficientData if every tile in the grid turns out degenerate.
func computeSkyStd(ctx context.Context, g *mesh.Grid, values []float32, usable []bool, cfg config.Config) (sky, std *image32.Image, degenerate int, err error) {
	g1 := make([]float64, len(g.Tiles))
	g2 := make([]float64, len(g.Tiles))

	runErr := g.Run(ctx, cfg.NumThreads, func(t *mesh.Tile) error {
		sample := make([]float32, 0, t.Width()*t.Height())
		for r := t.Row0; r < t.Row1; r++ {
			base := r * g.W
			for c := t.Col0; c < t.Col1; c++ {
				idx := base + c
				if usable[idx] && !image32.IsBlank(values[idx]) {
					sample = append(sample, values[idx])
				}
			}
		}

		if len(sample) < minTilePixels {
			t.Blank = true
			g1[t.Index] = 0
			g2[t.Index] = 0
			return nil
		}
		sort.Slice(sample, func(a, b int) bool { return sample[a] < sample[b] })

		if _, _, ok := stats.Mode(sample, cfg.MirrorDist, cfg.MinModeQ); !ok {
			t.Blank = true
			return nil
		}

		clip, ok := stats.SigmaClip(sample, cfg.SigClipMultip, cfg.SigClipTolerance)
		if !ok {
			t.Blank = true
			return nil
		}
		t.Blank = false
		t.G1, t.G2 = clip.Median, clip.Std
		g1[t.Index] = clip.Median
		g2[t.Index] = clip.Std
		return nil
	})
	if runErr != nil {
		return nil, nil, 0, runErr
	}

	for i := range g.Tiles {
		if g.Tiles[i].Blank {
			degenerate++
			g1[i] = math.NaN()
			g2[i] = math.NaN()
		}
	}
	if degenerate == len(g.Tiles) {
		return nil, nil, degenerate, &errs.InsufficientData{Component: "pipeline", Reason: "every tile is degenerate; cannot estimate sky/std"}
	}

	g1 = g.Interpolate(g1, cfg.NumNearest, cfg.FullInterpolation)
	g2 = g.Interpolate(g2, cfg.NumNearest, cfg.FullInterpolation)
	g1 = g.Smooth(g1, cfg.SmoothWidth, cfg.FullSmooth)
	g2 = g.Smooth(g2, cfg.SmoothWidth, cfg.FullSmooth)

	sky = &image32.Image{W: g.W, H: g.H, Data: g.Project(g1)}
	std = &image32.Image{W: g.W, H: g.H, Data: g.Project(g2)}
	return sky, std, degenerate, nil
}
