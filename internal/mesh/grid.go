// Package mesh implements the tiled-grid background/noise estimator (C1):
// partitioning an image into rectangular tiles that respect readout-channel
// boundaries, running a per-tile operation across a worker pool, and
// interpolating/smoothing/projecting the resulting per-tile scalars back
// onto the full image.
package mesh

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/astrodetect/astrodetect/internal/errs"
)

// Tile describes one rectangular mesh cell: its pixel footprint, its
// position in the channel and in the overall tile grid, and (once
// processed) its two scalar outputs.
type Tile struct {
	Row0, Col0 int // inclusive pixel bounds
	Row1, Col1 int // exclusive pixel bounds

	Channel        int // channel index, row-major over NCh2 x NCh1
	TileRow, TileCol int // position within the global tile grid
	Index          int // position within Grid.Tiles

	SizeClass int // 0 = full meshsize, 1 = row-remainder, 2 = col-remainder, 3 = corner

	G1, G2 float64
	Blank  bool
}

// Width and Height return the tile's pixel dimensions.
func (t *Tile) Width() int  { return t.Col1 - t.Col0 }
func (t *Tile) Height() int { return t.Row1 - t.Row0 }

// Grid is the full tile table for one image.
type Grid struct {
	W, H       int
	NCh1, NCh2 int
	MeshSize   int // the (possibly reduced) effective mesh size actually used

	Tiles []Tile

	tileRows, tileCols int // per-channel tile grid dimensions
	globalRows, globalCols int // image-wide tile grid dimensions
}

// NewGrid builds the tile table for a W x H image split into NCh1 x NCh2
// equal-sized channels, each tiled at up to meshSize x meshSize, with
// lastMeshFrac governing whether a per-axis remainder becomes its own
// smaller tile or is merged into the previous one.
func NewGrid(w, h, nch1, nch2, meshSize int, lastMeshFrac float64) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, errs.NewConfigError("W/H", "must be positive")
	}
	if nch1 <= 0 || nch2 <= 0 {
		return nil, errs.NewConfigError("NCh1/NCh2", "must be positive")
	}
	if w%nch1 != 0 || h%nch2 != 0 {
		return nil, errs.NewConfigError("W/H", "must be exact multiples of the channel grid dimensions")
	}
	if lastMeshFrac <= 0 || lastMeshFrac >= 1 {
		return nil, errs.NewConfigError("LastMeshFrac", "must be in (0,1)")
	}
	if meshSize <= 0 {
		return nil, errs.NewConfigError("MeshSize", "must be positive")
	}

	chW := w / nch1
	chH := h / nch2

	eff := meshSize
	smaller := chW
	if chH < smaller {
		smaller = chH
	}
	if eff > smaller {
		eff = smaller
		if eff%2 != 0 {
			eff--
		}
		if eff <= 0 {
			return nil, errs.NewConfigError("MeshSize", "too large for the channel dimensions")
		}
	}

	colStarts, colSizes := axisTiling(chW, eff, lastMeshFrac)
	rowStarts, rowSizes := axisTiling(chH, eff, lastMeshFrac)

	tileCols := len(colSizes)
	tileRows := len(rowSizes)

	g := &Grid{
		W: w, H: h,
		NCh1: nch1, NCh2: nch2,
		MeshSize:    eff,
		tileRows:    tileRows,
		tileCols:    tileCols,
		globalRows:  tileRows * nch2,
		globalCols:  tileCols * nch1,
	}

	idx := 0
	for chRow := 0; chRow < nch2; chRow++ {
		for chCol := 0; chCol < nch1; chCol++ {
			channel := chRow*nch1 + chCol
			for lr := 0; lr < tileRows; lr++ {
				for lc := 0; lc < tileCols; lc++ {
					row0 := chRow*chH + rowStarts[lr]
					row1 := row0 + rowSizes[lr]
					col0 := chCol*chW + colStarts[lc]
					col1 := col0 + colSizes[lc]

					lastRow := lr == tileRows-1 && rowSizes[lr] != eff
					lastCol := lc == tileCols-1 && colSizes[lc] != eff
					class := 0
					switch {
					case lastRow && lastCol:
						class = 3
					case lastCol:
						class = 2
					case lastRow:
						class = 1
					}

					g.Tiles = append(g.Tiles, Tile{
						Row0: row0, Col0: col0, Row1: row1, Col1: col1,
						Channel:   channel,
						TileRow:   chRow*tileRows + lr,
						TileCol:   chCol*tileCols + lc,
						Index:     idx,
						SizeClass: class,
					})
					idx++
				}
			}
		}
	}

	return g, nil
}

// axisTiling computes the per-axis tile boundaries for one channel side of
// length side, given an (already size-capped) mesh size and the
// merge-vs-extra-tile remainder fraction. Returns parallel slices of tile
// start offsets and sizes, covering [0, side) with no gaps or overlaps.
func axisTiling(side, mesh int, lastFrac float64) (starts, sizes []int) {
	n := side / mesh
	rem := side % mesh

	switch {
	case rem == 0:
		sizes = make([]int, n)
		for i := range sizes {
			sizes[i] = mesh
		}
	case float64(rem) > lastFrac*float64(mesh):
		sizes = make([]int, n+1)
		for i := 0; i < n; i++ {
			sizes[i] = mesh
		}
		sizes[n] = rem
	default:
		sizes = make([]int, n)
		for i := 0; i < n; i++ {
			sizes[i] = mesh
		}
		sizes[n-1] += rem
	}

	starts = make([]int, len(sizes))
	pos := 0
	for i, s := range sizes {
		starts[i] = pos
		pos += s
	}
	return starts, sizes
}

// TileFunc processes one tile in place, reading whatever image data the
// closure captures and writing its G1/G2 outputs (or setting Blank).
type TileFunc func(t *Tile) error

// Run distributes the grid's tiles across a worker pool of the given size
// (0 means unbounded/GOMAXPROCS-driven via errgroup's default). Each
// worker calls fn on a disjoint subset of tiles; tiles may be processed in
// any order, and the caller must not rely on completion order — only on
// Tiles[i] being fully populated once Run returns nil. The first non-nil
// error returned by fn cancels the remaining work and is returned from
// Run, mirroring the teacher's single-error-wins worker pool but built on
// errgroup instead of a raw channel.
func (g *Grid) Run(ctx context.Context, workers int, fn TileFunc) error {
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for i := range g.Tiles {
		i := i
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return fn(&g.Tiles[i])
		})
	}

	return eg.Wait()
}

// Interpolate fills blank entries of a sparse per-tile scalar output
// (values[i] is math.NaN() where Tiles[i].Blank is true) with the median
// of the numNearest nearest non-blank tiles, searched outward in tile
// space. Ties in manhattan distance are broken by smaller tile index.
// fullInterpolation allows the search to cross channel boundaries;
// otherwise it is confined to the tile's own channel.
func (g *Grid) Interpolate(values []float64, numNearest int, fullInterpolation bool) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	for i := range g.Tiles {
		if !g.Tiles[i].Blank {
			continue
		}
		out[i] = g.nearestMedian(values, i, numNearest, fullInterpolation)
	}
	return out
}

type candidate struct {
	dist int
	idx  int
	val  float64
}

func (g *Grid) nearestMedian(values []float64, tileIdx, numNearest int, fullInterpolation bool) float64 {
	t := &g.Tiles[tileIdx]
	var cands []candidate
	for j := range g.Tiles {
		if j == tileIdx || g.Tiles[j].Blank {
			continue
		}
		if !fullInterpolation && g.Tiles[j].Channel != t.Channel {
			continue
		}
		d := abs(g.Tiles[j].TileRow-t.TileRow) + abs(g.Tiles[j].TileCol-t.TileCol)
		cands = append(cands, candidate{dist: d, idx: j, val: values[j]})
	}

	if len(cands) == 0 {
		return math.NaN()
	}

	sort.Slice(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		return cands[a].idx < cands[b].idx
	})

	n := numNearest
	if n > len(cands) {
		n = len(cands)
	}
	picked := make([]float64, n)
	for i := 0; i < n; i++ {
		picked[i] = cands[i].val
	}
	sort.Float64s(picked)
	if n%2 == 1 {
		return picked[n/2]
	}
	return (picked[n/2-1] + picked[n/2]) / 2
}

// Smooth applies a separable boxcar of odd width `width` over tile space,
// respecting channel boundaries unless fullSmooth is set.
func (g *Grid) Smooth(values []float64, width int, fullSmooth bool) []float64 {
	if width <= 1 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	radius := width / 2

	tmp := g.smoothAxis(values, radius, fullSmooth, true)
	return g.smoothAxis(tmp, radius, fullSmooth, false)
}

func (g *Grid) smoothAxis(values []float64, radius int, fullSmooth, horizontal bool) []float64 {
	out := make([]float64, len(values))
	byPos := make(map[[2]int]int, len(g.Tiles))
	for i := range g.Tiles {
		byPos[[2]int{g.Tiles[i].TileRow, g.Tiles[i].TileCol}] = i
	}

	for i := range g.Tiles {
		t := &g.Tiles[i]
		var sum float64
		var n int
		for d := -radius; d <= radius; d++ {
			row, col := t.TileRow, t.TileCol
			if horizontal {
				col += d
			} else {
				row += d
			}
			if !fullSmooth {
				if row/g.tileRows != t.TileRow/g.tileRows || col/g.tileCols != t.TileCol/g.tileCols {
					continue
				}
			}
			if j, ok := byPos[[2]int{row, col}]; ok {
				sum += values[j]
				n++
			}
		}
		if n == 0 {
			out[i] = values[i]
		} else {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// Project expands a per-tile scalar array into a full W x H image-sized
// array where every pixel takes its tile's value.
func (g *Grid) Project(values []float64) []float32 {
	out := make([]float32, g.W*g.H)
	for i := range g.Tiles {
		t := &g.Tiles[i]
		v := float32(values[i])
		for r := t.Row0; r < t.Row1; r++ {
			base := r * g.W
			for c := t.Col0; c < t.Col1; c++ {
				out[base+c] = v
			}
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
