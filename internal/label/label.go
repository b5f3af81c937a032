// Package label partitions a raster into connected regions of equal
// pixel value.
//
// Regions implements the classic two-pass algorithm: a row-major scan
// assigns provisional labels while recording equivalences between
// labels that turn out to touch, then the equivalence forest is
// resolved to fixed points and every pixel is rewritten to a dense
// canonical label. Canonical labels are contiguous from 0 and appear in
// first-appearance (row-major) order.
//
// Components is an alternate provider built on lvlath/gridgraph BFS for
// binary images; it yields the same partition of foreground pixels as
// Regions even though the numbering may differ.
package label

import (
	"github.com/katalvlaran/lvlath/gridgraph"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// equivalence is a union-find over provisional labels, using path
// compression and union by smaller label so that canonical roots stay
// monotonically increasing in first-appearance order. It exists only
// for the duration of one Regions call.
type equivalence struct {
	parent []int
}

func newEquivalence() *equivalence {
	return &equivalence{}
}

// add allocates the next provisional label as its own root.
func (e *equivalence) add() int {
	lab := len(e.parent)
	e.parent = append(e.parent, lab)
	return lab
}

// find returns the canonical root of lab, compressing the path so every
// chain terminates at a root whose entry equals itself.
func (e *equivalence) find(lab int) int {
	root := lab
	for e.parent[root] != root {
		root = e.parent[root]
	}
	for e.parent[lab] != root {
		e.parent[lab], lab = root, e.parent[lab]
	}
	return root
}

// union merges the classes of a and b; the smaller root always wins.
func (e *equivalence) union(a, b int) {
	ra, rb := e.find(a), e.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		e.parent[rb] = ra
	} else {
		e.parent[ra] = rb
	}
}

// resolve flattens the forest into a dense remap: roots are numbered
// 0..K-1 in ascending (first-appearance) order and every other label
// maps to its root's dense id. Returns the remap and K.
func (e *equivalence) resolve() ([]int, int) {
	remap := make([]int, len(e.parent))
	next := 0
	for i := range e.parent {
		if root := e.find(i); root == i {
			remap[i] = next
			next++
		} else {
			remap[i] = remap[root]
		}
	}
	return remap, next
}

// Regions labels the connected equal-valued regions of a single-channel
// raster and returns the label map together with the number of regions.
// With conn8 set, diagonal neighbours join regions as well. The input is
// not modified; the label map is a new single-channel raster whose
// pixels hold canonical labels 0..K-1.
//
// The scan only ever compares a pixel against neighbours that have
// already been visited; in particular the upper-right diagonal is
// skipped for the last column, where it does not exist.
func Regions(im *raster.Raster, conn8 bool) (*raster.Raster, int) {
	ny, nx := im.Height, im.Width
	lab := raster.New(ny, nx, 1)
	eq := newEquivalence()

	// The upper-left pixel seeds the first region.
	last := eq.add()
	lab.Set(0, 0, 0, float64(last))

	// First row: simple run comparison against the left neighbour.
	for x := 1; x < nx; x++ {
		if im.At(0, x, 0) != im.At(0, x-1, 0) {
			last = eq.add()
		}
		lab.Set(0, x, 0, float64(last))
	}

	// First column: run comparison against the pixel above.
	for y := 1; y < ny; y++ {
		var lv int
		if im.At(y, 0, 0) == im.At(y-1, 0, 0) {
			lv = int(lab.At(y-1, 0, 0))
		} else {
			lv = eq.add()
		}
		lab.Set(y, 0, 0, float64(lv))
	}

	// Interior scan. Each pixel sees its left and upper neighbours,
	// plus the two upper diagonals under 8-connectivity.
	var nbrY, nbrX [4]int
	for y := 1; y < ny; y++ {
		for x := 1; x < nx; x++ {
			nbrY[0], nbrX[0] = y, x-1
			nbrY[1], nbrX[1] = y-1, x
			n := 2
			if conn8 {
				nbrY[2], nbrX[2] = y-1, x-1
				n = 3
				if x+1 < nx {
					nbrY[3], nbrX[3] = y-1, x+1
					n = 4
				}
			}

			val := im.At(y, x, 0)
			matched := false
			smallest := 0
			for i := 0; i < n; i++ {
				if im.At(nbrY[i], nbrX[i], 0) != val {
					continue
				}
				l := int(lab.At(nbrY[i], nbrX[i], 0))
				if !matched || l < smallest {
					smallest = l
				}
				matched = true
			}

			var lv int
			if !matched {
				lv = eq.add()
			} else {
				lv = smallest
				for i := 0; i < n; i++ {
					if im.At(nbrY[i], nbrX[i], 0) == val {
						eq.union(lv, int(lab.At(nbrY[i], nbrX[i], 0)))
					}
				}
			}
			lab.Set(y, x, 0, float64(lv))
		}
	}

	// Resolve equivalences and rewrite every pixel to its canonical
	// label in a second pass.
	remap, count := eq.resolve()
	for i, v := range lab.Data {
		lab.Data[i] = float64(remap[int(v)])
	}
	return lab, count
}

// Mask extracts region lab from a label map as a new raster, with
// member pixels set to fg and everything else to bg.
func Mask(labim *raster.Raster, lab int, bg, fg float64) *raster.Raster {
	out := raster.NewLike(labim)
	if bg != 0 {
		out.Fill(bg)
	}
	for i, v := range labim.Data {
		if int(v) == lab {
			out.Data[i] = fg
		}
	}
	return out
}

// Components labels the foreground (non-zero) regions of a binary
// raster using lvlath's BFS grid components, an alternate provider to
// Regions. Background pixels keep label 0 and foreground regions get
// labels 1..K; the returned count is K. The partition of foreground
// pixels matches Regions on binarized input even though the numbering
// scheme differs.
func Components(im *raster.Raster, conn8 bool) (*raster.Raster, int, error) {
	grid := make([][]int, im.Height)
	for y := 0; y < im.Height; y++ {
		row := make([]int, im.Width)
		for x := 0; x < im.Width; x++ {
			if im.At(y, x, 0) != 0 {
				row[x] = 1
			}
		}
		grid[y] = row
	}

	opts := gridgraph.DefaultGridOptions()
	if conn8 {
		opts.Conn = gridgraph.Conn8
	}
	gg, err := gridgraph.NewGridGraph(grid, opts)
	if err != nil {
		return nil, 0, err
	}

	out := raster.New(im.Height, im.Width, 1)
	comps := gg.ConnectedComponents()
	for i, comp := range comps {
		for _, idx := range comp {
			x, y := gg.Coordinate(idx)
			out.Set(y, x, 0, float64(i+1))
		}
	}
	return out, len(comps), nil
}
