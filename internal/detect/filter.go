package detect

// DetectionStats carries the per-label measurements needed to compute a
// detection's S/N: its label in the current label map, its pixel area,
// its mean flux, and the std of the mesh tile under its flux-weighted
// centroid.
type DetectionStats struct {
	Label       int32
	Area        int
	MeanFlux    float64
	CentroidStd float64
}

// Filter computes each detection's S/N and drops those below threshold or
// below the area floor minArea (spec §4.7's "area A >= Amin") from the
// label map, renumbering survivors contiguously from 1. Pixels belonging
// to a dropped label become background (0); pixels at or below 0
// (background, river, masked) pass through unchanged.
func Filter(labels []int32, stats []DetectionStats, cpscorr float64, skySubtracted bool, threshold, minArea float64) ([]int32, []DetectionStats) {
	remap := make(map[int32]int32, len(stats))
	survivors := make([]DetectionStats, 0, len(stats))
	next := int32(1)

	for _, d := range stats {
		if float64(d.Area) < minArea {
			continue
		}
		sn := SN(float64(d.Area), d.MeanFlux, d.CentroidStd, cpscorr, skySubtracted)
		if sn >= threshold {
			remap[d.Label] = next
			d.Label = next
			survivors = append(survivors, d)
			next++
		}
	}

	out := make([]int32, len(labels))
	for i, l := range labels {
		if l <= 0 {
			out[i] = l
			continue
		}
		if nl, ok := remap[l]; ok {
			out[i] = nl
		} else {
			out[i] = 0
		}
	}
	return out, survivors
}
