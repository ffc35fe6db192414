package detect

import (
	"sort"

	"github.com/astrodetect/astrodetect/internal/errs"
	"github.com/astrodetect/astrodetect/internal/stats"
)

// NoiseThreshold derives the detection S/N cutoff from a histogram of
// noise-clump S/N values: sort them, trim the outlier tail via a
// CDF-slope heuristic, then pick the value at quantile detQuant of what
// remains. Returns InsufficientData if too few noise values survive to
// form a histogram.
func NoiseThreshold(noiseSN []float64, detQuant float64) (float64, error) {
	if len(noiseSN) < 2 {
		return 0, &errs.InsufficientData{Component: "detect", Reason: "too few noise clumps to establish an S/N threshold"}
	}

	sorted := make([]float64, len(noiseSN))
	copy(sorted, noiseSN)
	sort.Float64s(sorted)

	trimmed := trimOutliersFlatCDF(sorted)
	if len(trimmed) == 0 {
		return 0, &errs.InsufficientData{Component: "detect", Reason: "noise S/N histogram collapsed after outlier trim"}
	}

	idx := stats.QuantileIndex(len(trimmed), detQuant)
	return trimmed[idx], nil
}

// RawThreshold marks every pixel of raw below sky+dthresh*std as background
// (0) and everything else, including blank/NaN pixels, as foreground (1) —
// NaN fails the `<` comparison so it falls through to foreground exactly
// like the original's single-comparison trick. This is a second,
// independent threshold on the unconvolved image (distinct from C4's
// per-tile quantile threshold on the convolved image); the original tool
// only ever used it to emit a standalone debug image, never to drive
// detection itself, so it is wired here purely as an additional
// diagnostic plane rather than feeding back into the pipeline.
func RawThreshold(raw, sky, std []float32, dthresh float64) []byte {
	out := make([]byte, len(raw))
	for i, v := range raw {
		if float64(v) < float64(sky[i])+dthresh*float64(std[i]) {
			out[i] = 0
		} else {
			out[i] = 1
		}
	}
	return out
}

// trimOutliersFlatCDF drops the sparse tail of an ascending-sorted sample
// past the point where its empirical CDF goes flat after its steepest
// rise (its mode). It approximates the original's removeoutliers_flatcdf:
// find the densest window (the mode), then walk forward from there and
// cut at the last point still reasonably dense, discarding everything
// past it as an outlier tail produced by false detections in pure noise.
func trimOutliersFlatCDF(sorted []float64) []float64 {
	n := len(sorted)
	if n < 5 {
		return sorted
	}

	window := n / 20
	if window < 2 {
		window = 2
	}
	if window >= n {
		return sorted
	}

	maxDensity := -1.0
	modeIdx := 0
	for i := 0; i+window < n; i++ {
		gap := sorted[i+window] - sorted[i]
		if gap <= 0 {
			continue
		}
		density := float64(window) / gap
		if density > maxDensity {
			maxDensity = density
			modeIdx = i
		}
	}
	if maxDensity <= 0 {
		return sorted
	}

	flatThreshold := maxDensity * 0.1
	lastDense := modeIdx
	for i := modeIdx; i+window < n; i++ {
		gap := sorted[i+window] - sorted[i]
		if gap <= 0 {
			continue
		}
		density := float64(window) / gap
		if density >= flatThreshold {
			lastDense = i + window
		}
	}

	if lastDense < modeIdx {
		lastDense = n - 1
	}
	return sorted[:lastDense+1]
}
