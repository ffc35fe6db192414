package segment

import (
	"sort"

	"github.com/astrodetect/astrodetect/internal/label"
)

// Oversegment runs the flood-from-peaks watershed over one detection's
// footprint, visiting pixels in descending convolved-value order. Each
// pixel adopts the single clump label touching it, starts a fresh clump
// if it touches none, or becomes a river pixel if it touches two or
// more. Pixels sharing an exact value with their neighbours are resolved
// together as one equal-flux group so the decision is made once for the
// whole plateau rather than pixel-by-pixel. Masked (blank convolved)
// pixels are absorbed into an adjacent clump rather than being allowed to
// cut one. Pixels on the edge of the region's bounding box are always
// forced to river, overriding whatever label the group decision gave
// them — this can split a single equal-flux group so that only its
// edge-touching members become river while its interior members keep the
// group's label, the same asymmetry the original implementation shows.
func Oversegment(r *Region) (clumpLabels []int32, numClumps int) {
	n := r.W * r.H
	labels := make([]int32, n)
	for i := 0; i < n; i++ {
		if !r.InRegion[i] {
			labels[i] = label.NoObj
		} else {
			labels[i] = label.Init
		}
	}

	order := sortedDescending(r)
	visited := make([]bool, n)
	next := int32(1)

	for _, idx := range order {
		if visited[idx] || isMaskedConv(r.Conv[idx]) {
			continue
		}
		if labels[idx] != label.Init {
			visited[idx] = true
			continue
		}

		group := equalValueGroup(r, idx, labels, visited)
		neighborLabels := distinctLabeledNeighbors(r, group, labels)

		var assign int32
		switch len(neighborLabels) {
		case 0:
			assign = next
			next++
		case 1:
			assign = neighborLabels[0]
		default:
			assign = label.River
		}

		for _, gi := range group {
			labels[gi] = assign
			visited[gi] = true
		}
		for _, gi := range group {
			row, col := gi/r.W, gi%r.W
			if r.isEdge(row, col) {
				labels[gi] = label.River
			}
		}
	}

	absorbMaskedPixels(r, labels)
	for i := 0; i < n; i++ {
		if r.InRegion[i] && labels[i] == label.Init {
			labels[i] = label.River
		}
	}

	return labels, int(next - 1)
}

// sortedDescending returns the in-region, non-masked pixel indices of r
// sorted by convolved value, brightest first.
func sortedDescending(r *Region) []int {
	order := make([]int, 0, r.W*r.H)
	for i, in := range r.InRegion {
		if in && !isMaskedConv(r.Conv[i]) {
			order = append(order, i)
		}
	}
	sort.Slice(order, func(a, b int) bool { return r.Conv[order[a]] > r.Conv[order[b]] })
	return order
}

// equalValueGroup gathers idx and every in-region, unlabeled, unvisited
// pixel reachable from it through neighbours sharing the exact same
// convolved value.
func equalValueGroup(r *Region, idx int, labels []int32, visited []bool) []int {
	v := r.Conv[idx]
	group := []int{idx}
	seen := map[int]bool{idx: true}
	queue := []int{idx}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range r.neighbors(cur) {
			if seen[nb] || !r.InRegion[nb] || visited[nb] || labels[nb] != label.Init {
				continue
			}
			if r.Conv[nb] != v {
				continue
			}
			seen[nb] = true
			group = append(group, nb)
			queue = append(queue, nb)
		}
	}
	return group
}

// distinctLabeledNeighbors returns the sorted, de-duplicated set of
// positive clump labels touching any pixel in group.
func distinctLabeledNeighbors(r *Region, group []int, labels []int32) []int32 {
	seen := map[int32]bool{}
	var out []int32
	for _, idx := range group {
		for _, nb := range r.neighbors(idx) {
			l := labels[nb]
			if l > 0 && !seen[l] {
				seen[l] = true
				out = append(out, l)
			}
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// absorbMaskedPixels assigns masked (blank-convolved) in-region pixels to
// an adjacent clump so a run of bad pixels never cuts a clump in two. A
// masked pixel with no labeled clump neighbour is left for the fallback
// River pass below.
func absorbMaskedPixels(r *Region, labels []int32) {
	for i, in := range r.InRegion {
		if !in || !isMaskedConv(r.Conv[i]) {
			continue
		}
		for _, nb := range r.neighbors(i) {
			if labels[nb] > 0 {
				labels[i] = labels[nb]
				break
			}
		}
	}
}
