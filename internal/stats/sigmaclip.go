package stats

import (
	"math"
	"sort"
)

// Clip is the result of a converged sigma-clip: the pre-trim statistics of
// the iteration whose narrowing no longer moved the standard deviation by
// more than the convergence tolerance.
type Clip struct {
	Mean   float64
	Median float64
	Std    float64
	N      int
}

// SigmaClip iteratively narrows an ascending-sorted sample to
// [mean-k*std, mean+k*std], recomputing statistics each pass without
// re-sorting (the window edges are found by binary search into the same
// backing slice). It stops when the relative change in std falls below
// tol and returns the PREVIOUS iteration's statistics — the ones measured
// before that final, converged trim was applied — matching the original's
// convention of reporting the wider, pre-trim window.
//
// Returns ok=false if mean or std is ever non-finite, or if the sample is
// too small to compute a standard deviation.
func SigmaClip(sorted []float32, k, tol float64) (Clip, bool) {
	cur := sorted
	for {
		if len(cur) < 2 {
			return Clip{}, false
		}
		mean := Mean(cur)
		median := Median(cur)
		std := Std(cur)
		if !finite(mean) || !finite(std) {
			return Clip{}, false
		}
		prev := Clip{Mean: mean, Median: median, Std: std, N: len(cur)}

		lo := mean - k*std
		hi := mean + k*std
		loIdx := sort.Search(len(cur), func(i int) bool { return float64(cur[i]) >= lo })
		hiIdx := sort.Search(len(cur), func(i int) bool { return float64(cur[i]) > hi })
		next := cur[loIdx:hiIdx]

		if len(next) == len(cur) || len(next) < 2 {
			return prev, true
		}

		nextStd := Std(next)
		if !finite(nextStd) {
			return Clip{}, false
		}
		if nextStd == 0 || math.Abs(prev.Std-nextStd)/nextStd < tol {
			return prev, true
		}

		cur = next
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
