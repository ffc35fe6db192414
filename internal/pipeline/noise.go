package pipeline

import (
	"github.com/astrodetect/astrodetect/internal/config"
	"github.com/astrodetect/astrodetect/internal/detect"
	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/mesh"
	"github.com/astrodetect/astrodetect/internal/segment"
)

// sampleNoiseSN over-segments the undetected pixels of every usable tile
// in g and measures each resulting noise clump's S/N, pooling them into
// one histogram (§4.7's "run the same computation on noise"). Tiles with
// fewer than cfg.MinNumFalse clumps, or whose fraction of pixels blank in
// the input image exceeds 1-cfg.MinBFrac, are skipped — they contribute nothing to the
// histogram rather than being interpolated, since there is no per-tile
// scalar to interpolate here, only pooled samples.
func sampleNoiseSN(g *mesh.Grid, conv, orig, std *image32.Image, usable []bool, cfg config.Config, cpscorr float64) []float64 {
	var noiseSN []float64

	for i := range g.Tiles {
		t := &g.Tiles[i]
		total := t.Width() * t.Height()
		if total == 0 {
			continue
		}

		region := &segment.Region{
			W: t.Width(), H: t.Height(),
			Row0: t.Row0, Col0: t.Col0,
			InRegion: make([]bool, total),
			Conv:     make([]float32, total),
		}

		blankCount := 0
		for r := t.Row0; r < t.Row1; r++ {
			for c := t.Col0; c < t.Col1; c++ {
				idx := r*g.W + c
				localIdx := (r-t.Row0)*region.W + (c - t.Col0)
				v := conv.Data[idx]
				if usable[idx] && !image32.IsBlank(v) {
					region.InRegion[localIdx] = true
					region.Conv[localIdx] = v
				} else {
					region.Conv[localIdx] = image32.Blank
					if image32.IsBlank(orig.Data[idx]) {
						blankCount++
					}
				}
			}
		}

		if float64(blankCount)/float64(total) > 1-cfg.MinBFrac {
			continue
		}

		region.CentroidStd = float64(std.Data[t.Row0*g.W+t.Col0])
		if !t.Blank {
			region.CentroidStd = t.G2
		}

		clumpLabels, numClumps := segment.Oversegment(region)
		if numClumps < cfg.MinNumFalse {
			continue
		}

		origLocal := make([]float32, total)
		for r := t.Row0; r < t.Row1; r++ {
			for c := t.Col0; c < t.Col1; c++ {
				idx := r*g.W + c
				localIdx := (r-t.Row0)*region.W + (c - t.Col0)
				origLocal[localIdx] = orig.Data[idx]
			}
		}

		clumpStats := segment.MeasureClumps(region, clumpLabels, numClumps, origLocal)
		for _, cs := range clumpStats {
			sn := detect.SN(float64(cs.Area), cs.MeanFlux, region.CentroidStd, cpscorr, cfg.SkySubtracted)
			noiseSN = append(noiseSN, sn)
		}
	}

	return noiseSN
}
