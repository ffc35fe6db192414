package segment

import (
	"github.com/astrodetect/astrodetect/internal/detect"
	"github.com/astrodetect/astrodetect/internal/label"
)

// ResolveConfig carries the tunables Resolve needs beyond the region and
// clump labels themselves.
type ResolveConfig struct {
	GThresh        float64
	MinRiverLength int
	ObjBorderSN    float64
	CPSCorrection  float64
	SkySubtracted  bool
}

// Resolve joins a detection's over-segmented clumps into objects across
// low-S/N river boundaries (C9). Single-clump detections take the fast
// path: the whole footprint becomes one object with one clump. Otherwise
// it grows clumps into adjacent above-threshold pixels, measures every
// river segment's S/N, prunes weak connections, partitions clumps into
// objects via the adjacency labeler, and finally draws a contiguous label
// range from counter so this detection's labels never collide with any
// other detection's.
func Resolve(r *Region, clumpLabels []int32, numClumps int, cfg ResolveConfig, counter *GlobalCounter) (objectLabels, clumpLabelsOut []int32, numObjects int) {
	n := r.W * r.H
	labels := make([]int32, n)
	copy(labels, clumpLabels)

	if numClumps <= 1 {
		objBase, clumpBase := counter.Allocate(1, minInt(numClumps, 1))
		objOut := make([]int32, n)
		clumpOut := make([]int32, n)
		for i := 0; i < n; i++ {
			if labels[i] > 0 {
				objOut[i] = objBase
				clumpOut[i] = clumpBase
			} else {
				objOut[i] = labels[i]
				clumpOut[i] = labels[i]
			}
		}
		return objOut, clumpOut, 1
	}

	growThreshold := cfg.GThresh * r.CentroidStd
	growClumps(r, labels, growThreshold)

	sum := make([][]float64, numClumps+1)
	count := make([][]int, numClumps+1)
	for i := range sum {
		sum[i] = make([]float64, numClumps+1)
		count[i] = make([]int, numClumps+1)
	}

	for i := 0; i < n; i++ {
		if labels[i] != label.River {
			continue
		}
		neighborClumps := distinctLabeledNeighbors(r, []int{i}, labels)
		if len(neighborClumps) < 2 {
			continue
		}
		v := float64(r.Conv[i])
		for a := 0; a < len(neighborClumps); a++ {
			for b := a + 1; b < len(neighborClumps); b++ {
				ca, cb := neighborClumps[a], neighborClumps[b]
				sum[ca][cb] += v
				count[ca][cb]++
			}
		}
	}

	adj := make([][]bool, numClumps)
	for i := range adj {
		adj[i] = make([]bool, numClumps)
	}
	for i := 1; i <= numClumps; i++ {
		for j := i + 1; j <= numClumps; j++ {
			if count[i][j] == 0 {
				continue
			}
			meanRiver := sum[i][j] / float64(count[i][j])
			sn := detect.SN(float64(count[i][j]), meanRiver, r.CentroidStd, cfg.CPSCorrection, cfg.SkySubtracted)
			if count[i][j] >= cfg.MinRiverLength && sn >= cfg.ObjBorderSN {
				adj[i-1][j-1] = true
				adj[j-1][i-1] = true
			}
		}
	}

	clumpToObject, numObjectsLocal := label.LabelAdjacency(adj)

	localClumpNumber := make([]int32, numClumps+1)
	clumpCountInObject := make([]int32, numObjectsLocal+1)
	for clumpIdx := 0; clumpIdx < numClumps; clumpIdx++ {
		obj := clumpToObject[clumpIdx]
		clumpCountInObject[obj]++
		localClumpNumber[clumpIdx+1] = clumpCountInObject[obj]
	}

	totalClumps := numClumps
	objBase, clumpBase := counter.Allocate(numObjectsLocal, totalClumps)

	objOut := make([]int32, n)
	clumpOut := make([]int32, n)
	for i := 0; i < n; i++ {
		l := labels[i]
		if l <= 0 {
			objOut[i] = l
			clumpOut[i] = l
			continue
		}
		obj := clumpToObject[l-1]
		objOut[i] = objBase + obj - 1
		clumpOut[i] = clumpBase + localClumpNumber[l] - 1
	}

	return objOut, clumpOut, numObjectsLocal
}

// growClumps floods unlabeled, non-river, above-threshold pixels outside
// the detection's core footprint into whichever clump they border,
// expanding the region in place. Pixels already InRegion are untouched;
// pixels in the bounding-box halo adopt a neighbouring clump label once
// their convolved value clears growThreshold.
func growClumps(r *Region, labels []int32, growThreshold float64) {
	n := r.W * r.H
	changed := true
	for changed {
		changed = false
		for i := 0; i < n; i++ {
			if r.InRegion[i] || isMaskedConv(r.Conv[i]) {
				continue
			}
			if labels[i] != label.NoObj {
				continue
			}
			if float64(r.Conv[i]) <= growThreshold {
				continue
			}
			for _, nb := range r.neighbors(i) {
				if labels[nb] > 0 {
					labels[i] = labels[nb]
					r.InRegion[i] = true
					changed = true
					break
				}
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
