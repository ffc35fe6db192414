package pipeline

import (
	"github.com/astrodetect/astrodetect/internal/detect"
	"github.com/astrodetect/astrodetect/internal/image32"
)

// measureDetections computes area, mean (sky-subtracted) flux and the std
// at the flux-weighted centroid for every positive label in labels, the
// per-label inputs detect.SN/detect.Filter need.
func measureDetections(labels []int32, orig, sky, std *image32.Image, numLabels int) []detect.DetectionStats {
	w := orig.W

	area := make([]int, numLabels+1)
	fluxSum := make([]float64, numLabels+1)
	weightedRow := make([]float64, numLabels+1)
	weightedCol := make([]float64, numLabels+1)
	weightSum := make([]float64, numLabels+1)

	for i, l := range labels {
		if l <= 0 || int(l) > numLabels {
			continue
		}
		v := orig.Data[i]
		if image32.IsBlank(v) {
			continue
		}
		flux := float64(v) - float64(sky.Data[i])
		area[l]++
		fluxSum[l] += flux

		row, col := i/w, i%w
		weight := flux
		if weight < 0 {
			weight = 0
		}
		weightedRow[l] += weight * float64(row)
		weightedCol[l] += weight * float64(col)
		weightSum[l] += weight
	}

	out := make([]detect.DetectionStats, 0, numLabels)
	for l := 1; l <= numLabels; l++ {
		if area[l] == 0 {
			continue
		}
		meanFlux := fluxSum[l] / float64(area[l])

		cr, cc := weightedRow[l], weightedCol[l]
		if weightSum[l] > 0 {
			cr /= weightSum[l]
			cc /= weightSum[l]
		}
		row := clampInt(int(cr+0.5), 0, orig.H-1)
		col := clampInt(int(cc+0.5), 0, orig.W-1)
		centroidStd := float64(std.At(row, col))

		out = append(out, detect.DetectionStats{
			Label:       int32(l),
			Area:        area[l],
			MeanFlux:    meanFlux,
			CentroidStd: centroidStd,
		})
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
