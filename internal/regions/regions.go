// Package regions computes shape descriptors (area, perimeter, and
// axis-aligned and oriented bounding boxes) for the labelled regions
// produced by the label package.
//
// Degenerate regions of one pixel or fewer have no meaningful bounding
// box; the descriptors report nil for them rather than failing, and
// callers must treat that as a normal outcome for tiny regions.
package regions

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/raster-tools/internal/draw"
	"github.com/ironsheep/raster-tools/internal/label"
	"github.com/ironsheep/raster-tools/internal/morph"
	"github.com/ironsheep/raster-tools/internal/raster"
)

// BBox is an axis-aligned bounding box; the Lo bounds are inclusive and
// the Hi bounds exclusive.
type BBox struct {
	YLo, XLo int
	YHi, XHi int
}

// Descriptor summarizes one labelled region. BBox and Oriented are nil
// for regions of one pixel or fewer.
type Descriptor struct {
	Label     int
	Area      int
	Perimeter int
	BBox      *BBox
	Oriented  []draw.Vertex
}

// Describe computes a descriptor for every canonical label 0..count-1
// of a label map. The label map is not modified.
func Describe(labim *raster.Raster, count int) []Descriptor {
	descs := make([]Descriptor, count)

	// Single histogram pass for the areas.
	for _, v := range labim.Data {
		if lab := int(v); lab >= 0 && lab < count {
			descs[lab].Area++
		}
	}

	for lab := 0; lab < count; lab++ {
		mask := label.Mask(labim, lab, 0, 255)
		descs[lab].Label = lab
		descs[lab].Perimeter = perimeterCount(mask)
		descs[lab].BBox = BoundingBox(mask)
		descs[lab].Oriented = OrientedBoundingBox(mask)
	}
	return descs
}

// perimeterCount counts the foreground pixels left after subtracting the
// eroded mask from the mask, i.e. the region's boundary pixels.
func perimeterCount(mask *raster.Raster) int {
	per := mask.Clone()
	// Subtract of a same-sized shrink cannot fail.
	_ = per.Subtract(morph.Shrink(mask, morph.SquareMask(3)))
	n := 0
	for _, v := range per.Data {
		if v > 0 {
			n++
		}
	}
	return n
}

// BoundingBox returns the axis-aligned bounding box of the non-zero
// pixels of a mask, or nil when the mask has one foreground pixel or
// fewer.
func BoundingBox(mask *raster.Raster) *BBox {
	b := BBox{YLo: mask.Height, XLo: mask.Width, YHi: -1, XHi: -1}
	n := 0
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.At(y, x, 0) == 0 {
				continue
			}
			n++
			if y < b.YLo {
				b.YLo = y
			}
			if x < b.XLo {
				b.XLo = x
			}
			if y >= b.YHi {
				b.YHi = y + 1
			}
			if x >= b.XHi {
				b.XHi = x + 1
			}
		}
	}
	if n <= 1 {
		return nil
	}
	return &b
}

// OrientedBoundingBox returns the four corners, in (row, col) order, of
// a PCA-aligned bounding box around the non-zero pixels of a mask, or
// nil when the mask has one foreground pixel or fewer.
//
// The corners come from the covariance matrix of the foreground
// coordinates: the points are projected into its eigenbasis, the
// axis-aligned extent is taken there, and the four extent corners are
// rotated back through the eigenvector matrix. The box is therefore an
// approximation, minimal only when the true minimal box happens to be
// PCA-aligned, not a rotating-calipers minimum-area rectangle.
func OrientedBoundingBox(mask *raster.Raster) []draw.Vertex {
	var pts [][2]float64
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.At(y, x, 0) != 0 {
				pts = append(pts, [2]float64{float64(y), float64(x)})
			}
		}
	}
	if len(pts) <= 1 {
		return nil
	}

	// Biased covariance of the (y, x) coordinates.
	n := float64(len(pts))
	var my, mx float64
	for _, p := range pts {
		my += p[0]
		mx += p[1]
	}
	my /= n
	mx /= n
	var syy, sxy, sxx float64
	for _, p := range pts {
		dy, dx := p[0]-my, p[1]-mx
		syy += dy * dy
		sxy += dy * dx
		sxx += dx * dx
	}
	cov := mat.NewSymDense(2, []float64{syy / n, sxy / n, sxy / n, sxx / n})

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return nil
	}
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Project the points into the eigenbasis and take the extent there.
	lo := [2]float64{1e99, 1e99}
	hi := [2]float64{-1e99, -1e99}
	for _, p := range pts {
		for a := 0; a < 2; a++ {
			proj := p[0]*vecs.At(0, a) + p[1]*vecs.At(1, a)
			if proj < lo[a] {
				lo[a] = proj
			}
			if proj > hi[a] {
				hi[a] = proj
			}
		}
	}
	c0 := (lo[0] + hi[0]) / 2
	c1 := (lo[1] + hi[1]) / 2
	d0 := (hi[0] - lo[0]) / 2
	d1 := (hi[1] - lo[1]) / 2
	projected := [4][2]float64{
		{c0 - d0, c1 - d1},
		{c0 + d0, c1 - d1},
		{c0 + d0, c1 + d1},
		{c0 - d0, c1 + d1},
	}

	// Rotate the corners back out of the eigenbasis.
	corners := make([]draw.Vertex, 4)
	for i, p := range projected {
		corners[i] = draw.Vertex{
			Y: p[0]*vecs.At(0, 0) + p[1]*vecs.At(0, 1),
			X: p[0]*vecs.At(1, 0) + p[1]*vecs.At(1, 1),
		}
	}
	return corners
}
