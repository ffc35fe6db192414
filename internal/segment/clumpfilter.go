package segment

import (
	"github.com/astrodetect/astrodetect/internal/detect"
	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/label"
)

// ClumpStats carries the per-clump measurements FilterClumps needs.
type ClumpStats struct {
	Label    int32
	Area     int
	MeanFlux float64
}

// MeasureClumps scans a region's clump label map and its companion pixel
// values (the original, not the convolved, image — S/N is measured on
// real flux) to produce one ClumpStats per surviving clump.
func MeasureClumps(r *Region, clumpLabels []int32, numClumps int, values []float32) []ClumpStats {
	sum := make([]float64, numClumps+1)
	count := make([]int, numClumps+1)
	for i, l := range clumpLabels {
		if l <= 0 || image32.IsBlank(values[i]) {
			continue
		}
		sum[l] += float64(values[i])
		count[l]++
	}
	out := make([]ClumpStats, 0, numClumps)
	for l := 1; l <= numClumps; l++ {
		if count[l] == 0 {
			continue
		}
		out = append(out, ClumpStats{Label: int32(l), Area: count[l], MeanFlux: sum[l] / float64(count[l])})
	}
	return out
}

// FilterClumps drops clumps whose S/N falls below threshold or whose area
// falls below the area floor minArea (spec §4.8/§4.9's "area A >= Amin"
// applied to clumps), demoting their pixels to river (so a subsequent
// Resolve treats them as non-contributing boundary rather than as a clump
// of their own) and renumbering the survivors contiguously from 1.
func FilterClumps(clumpLabels []int32, stats []ClumpStats, std, cpscorr float64, skySubtracted bool, threshold, minArea float64) ([]int32, int) {
	remap := make(map[int32]int32, len(stats))
	next := int32(1)
	for _, s := range stats {
		if float64(s.Area) < minArea {
			continue
		}
		sn := detect.SN(float64(s.Area), s.MeanFlux, std, cpscorr, skySubtracted)
		if sn >= threshold {
			remap[s.Label] = next
			next++
		}
	}

	out := make([]int32, len(clumpLabels))
	for i, l := range clumpLabels {
		if l <= 0 {
			out[i] = l
			continue
		}
		if nl, ok := remap[l]; ok {
			out[i] = nl
		} else {
			out[i] = label.River
		}
	}
	return out, int(next - 1)
}
