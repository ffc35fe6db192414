package pipeline

import (
	"github.com/astrodetect/astrodetect/internal/image32"
	"github.com/astrodetect/astrodetect/internal/segment"
)

// haloMargin is how many extra pixels of border the region bounding box
// carries beyond the detection's own footprint, giving segment.Resolve's
// clump-growth step real neighbouring pixels to flood into.
const haloMargin = 3

// buildRegion extracts one detection's working set: a bounding box around
// every pixel carrying targetLabel, padded by haloMargin and clipped to
// the image, with InRegion/Conv populated from the global label and
// convolved-image arrays. Pixels belonging to a different positive label
// are excluded (Conv set blank) so growth never bleeds from one
// detection's halo into its neighbour's.
func buildRegion(labels []int32, conv *image32.Image, targetLabel int32) (*segment.Region, int, int, int, int) {
	minRow, minCol := conv.H, conv.W
	maxRow, maxCol := -1, -1
	for i, l := range labels {
		if l != targetLabel {
			continue
		}
		row, col := i/conv.W, i%conv.W
		if row < minRow {
			minRow = row
		}
		if row > maxRow {
			maxRow = row
		}
		if col < minCol {
			minCol = col
		}
		if col > maxCol {
			maxCol = col
		}
	}

	row0 := clampInt(minRow-haloMargin, 0, conv.H-1)
	row1 := clampInt(maxRow+haloMargin+1, 0, conv.H)
	col0 := clampInt(minCol-haloMargin, 0, conv.W-1)
	col1 := clampInt(maxCol+haloMargin+1, 0, conv.W)

	w, h := col1-col0, row1-row0
	region := &segment.Region{
		W: w, H: h, Row0: row0, Col0: col0,
		InRegion: make([]bool, w*h),
		Conv:     make([]float32, w*h),
	}

	for r := row0; r < row1; r++ {
		base := r * conv.W
		localBase := (r - row0) * w
		for c := col0; c < col1; c++ {
			idx := base + c
			localIdx := localBase + (c - col0)
			l := labels[idx]
			switch {
			case l == targetLabel:
				region.InRegion[localIdx] = true
				region.Conv[localIdx] = conv.Data[idx]
			case l > 0:
				region.Conv[localIdx] = image32.Blank
			default:
				region.Conv[localIdx] = conv.Data[idx]
			}
		}
	}

	return region, row0, col0, w, h
}
