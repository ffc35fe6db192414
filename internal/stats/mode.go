package stats

import (
	"math"
	"sort"
)

// minModeSymmetry is the fixed lower bound a candidate's symmetry score
// must clear to be accepted as the mode, below which a tile is marked
// unusable rather than reporting a noisy estimate.
const minModeSymmetry = 0.2

// minSideCount is the fewest points required on each side of a candidate
// for its symmetry score to be considered at all.
const minSideCount = 2

// Mode scans an ascending-sorted sample for the index whose value best
// splits it into two symmetric halves, in the same sense as a Gaussian's
// mode: mirror the upper side of a candidate about the candidate itself
// and measure how closely the mirror matches the actual lower side.
//
// mirrorDist sets the search radius in units of the sample's own standard
// deviation; minModeQuantile is the smallest acceptable value of idx/N for
// a candidate to be trusted (very low quantiles tend to pick noise rather
// than a true mode). Returns ok=false if no candidate clears both the
// fixed symmetry bound and minModeQuantile — the tile should be marked
// unusable by the caller.
func Mode(sorted []float32, mirrorDist, minModeQuantile float64) (idx int, symmetry float64, ok bool) {
	n := len(sorted)
	if n < 10 {
		return 0, 0, false
	}

	std := Std(sorted)
	if !finite(std) || std <= 0 {
		return 0, 0, false
	}
	realDist := mirrorDist * std

	start := int(minModeQuantile * float64(n))
	if start < 1 {
		start = 1
	}

	bestIdx := -1
	bestSym := math.Inf(-1)

	for i := start; i < n-1; i++ {
		center := float64(sorted[i])
		lo := sort.Search(i, func(k int) bool { return float64(sorted[k]) >= center-realDist })
		hi := i + 1 + sort.Search(n-i-1, func(k int) bool { return float64(sorted[i+1+k]) > center+realDist })

		lower := sorted[lo:i]
		upper := sorted[i+1 : hi]
		if len(lower) < minSideCount || len(upper) < minSideCount {
			continue
		}

		sym := symmetryScore(lower, center, upper, realDist)
		if sym > bestSym {
			bestSym = sym
			bestIdx = i
		}
	}

	if bestIdx == -1 {
		return 0, 0, false
	}

	accepted := bestSym > minModeSymmetry && float64(bestIdx)/float64(n) >= minModeQuantile
	return bestIdx, bestSym, accepted
}

// symmetryScore mirrors upper (ascending, values > center) about center and
// compares it against lower (ascending, values < center) point-by-point
// after reversing the mirrored set back to ascending order, truncating to
// the shorter of the two sides. 1 is a perfect mirror; 0 means the average
// mismatch is as large as the search radius itself.
func symmetryScore(lower []float32, center float64, upper []float32, realDist float64) float64 {
	m := len(lower)
	if len(upper) < m {
		m = len(upper)
	}

	mirrored := make([]float64, m)
	for k := 0; k < m; k++ {
		// upper is ascending; take its first m (closest-to-center) points,
		// mirror them, then reverse so the result is ascending to align
		// with lower's closest-to-center-last ordering.
		mirrored[m-1-k] = 2*center - float64(upper[k])
	}

	var diffSum float64
	lowerClosest := lower[len(lower)-m:]
	for k := 0; k < m; k++ {
		diffSum += math.Abs(float64(lowerClosest[k]) - mirrored[k])
	}
	avgDiff := diffSum / float64(m)

	score := 1 - avgDiff/realDist
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
