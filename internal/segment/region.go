// Package segment implements the over-segmentation watershed (C8) and the
// clump/object resolver (C9): turning one detection's footprint into
// local-maximum-seeded clumps, then joining clumps into objects across
// low-S/N river boundaries.
package segment

import "github.com/astrodetect/astrodetect/internal/image32"

// Region is one detection's working set: its bounding box, which pixels
// within that box belong to the detection, and the convolved values the
// watershed floods over. It is allocated per detection, processed
// (possibly on a worker goroutine) and discarded.
type Region struct {
	W, H       int // bounding box pixel dimensions
	Row0, Col0 int // bounding box offset within the full image

	InRegion []bool    // len W*H; true where the pixel belongs to this detection
	Conv     []float32 // len W*H; convolved image values, image32.Blank at masked pixels; pixels outside InRegion hold either image32.Blank or their real value (a halo clump growth can flood into)

	// CentroidStd is the std of the mesh tile under this region's
	// flux-weighted centroid, threaded in by the caller for S/N math.
	CentroidStd float64
}

func (r *Region) at(row, col int) int { return row*r.W + col }

func (r *Region) inBounds(row, col int) bool {
	return row >= 0 && row < r.H && col >= 0 && col < r.W
}

// isEdge reports whether (row,col) sits on the boundary of the region's
// bounding box, so an 8-neighbour could fall outside the array.
func (r *Region) isEdge(row, col int) bool {
	return row == 0 || row == r.H-1 || col == 0 || col == r.W-1
}

var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (r *Region) neighbors(idx int) []int {
	row, col := idx/r.W, idx%r.W
	out := make([]int, 0, 8)
	for _, o := range neighborOffsets {
		nr, nc := row+o[0], col+o[1]
		if r.inBounds(nr, nc) {
			out = append(out, r.at(nr, nc))
		}
	}
	return out
}

func isMaskedConv(v float32) bool {
	return image32.IsBlank(v)
}
