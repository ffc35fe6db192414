// Package label implements the breadth-first connected-component labeler
// (C6), in both its image variant (over a byte map) and its adjacency
// matrix variant (used to partition clumps into objects in C9).
package label

import "github.com/astrodetect/astrodetect/internal/morph"

// Reserved label sentinels, shared with the segmentation stage's label
// maps (see internal/segment).
const (
	NoObj  int32 = 0
	River  int32 = -1
	Init   int32 = -2
	Masked int32 = -4
)

var offsets4 = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var offsets8 = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

func offsets(connectivity int) [][2]int {
	if connectivity == 4 {
		return offsets4
	}
	return offsets8
}

// Label runs a breadth-first scan over a byte map, assigning a fresh label
// (starting at 1) to every unvisited foreground pixel and to every pixel
// reachable from it under the given connectivity. Background pixels keep
// label NoObj; Masked pixels get label Masked without entering the BFS.
// Returns the label map and the number of labels assigned (not counting
// background or masked).
func Label(bytes []byte, w, h, connectivity int) ([]int32, int) {
	labels := make([]int32, w*h)
	for i, b := range bytes {
		if b == morph.Masked {
			labels[i] = Masked
		}
	}

	offs := offsets(connectivity)
	next := int32(1)
	queue := make([]int, 0, 64)

	for start := 0; start < len(bytes); start++ {
		if bytes[start] != morph.Foreground || labels[start] != NoObj {
			continue
		}
		labels[start] = next
		queue = queue[:0]
		queue = append(queue, start)

		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			r, c := i/w, i%w
			for _, o := range offs {
				nr, nc := r+o[0], c+o[1]
				if nr < 0 || nr >= h || nc < 0 || nc >= w {
					continue
				}
				ni := nr*w + nc
				if bytes[ni] == morph.Foreground && labels[ni] == NoObj {
					labels[ni] = next
					queue = append(queue, ni)
				}
			}
		}
		next++
	}

	return labels, int(next - 1)
}

// LabelAdjacency partitions the nodes of a square, symmetric zero/non-zero
// adjacency matrix into connected components via the same BFS as Label,
// walking graph edges instead of pixel neighbours. Node labels start at 1;
// a node with no edges gets its own label. Returns the per-node label
// array and the number of labels assigned.
func LabelAdjacency(adj [][]bool) ([]int32, int) {
	n := len(adj)
	labels := make([]int32, n)
	next := int32(1)
	queue := make([]int, 0, 64)

	for start := 0; start < n; start++ {
		if labels[start] != 0 {
			continue
		}
		labels[start] = next
		queue = queue[:0]
		queue = append(queue, start)

		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			for j := 0; j < n; j++ {
				if adj[i][j] && labels[j] == 0 {
					labels[j] = next
					queue = append(queue, j)
				}
			}
		}
		next++
	}

	return labels, int(next - 1)
}
