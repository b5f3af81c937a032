package draw

import (
	"math"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// Vertex is a polygon or star vertex in (row, col) order. Vertices are
// kept as floats; the line primitives truncate when rendering.
type Vertex struct {
	Y float64
	X float64
}

// Polygon draws a regular nsides-sided polygon of radius r centred at
// (yc, xc), rotated clockwise by rotate radians, and returns its vertex
// list. Consecutive vertices are connected with the exact line
// primitive, or the anti-aliased one when aa is set. Mutates im.
func Polygon(im *raster.Raster, yc, xc, r float64, nsides int, v float64, rotate float64, aa bool) []Vertex {
	step := 2.0 * math.Pi / float64(nsides)
	y0 := yc + r*math.Sin(rotate)
	x0 := xc + r*math.Cos(rotate)
	vertices := make([]Vertex, 0, nsides)
	for i := 1; i <= nsides; i++ {
		vertices = append(vertices, Vertex{Y: y0, X: x0})
		y1 := yc + r*math.Sin(float64(i)*step+rotate)
		x1 := xc + r*math.Cos(float64(i)*step+rotate)
		connect(im, y0, x0, y1, x1, v, aa)
		y0, x0 = y1, x1
	}
	return vertices
}

// Star draws an npoints-pointed star centred at (yc, xc), alternating
// between radius and innerRadius at equal angular spacing, and returns
// its 2*npoints vertices. An innerRadius of 0 defaults to radius/2.
// Mutates im.
func Star(im *raster.Raster, yc, xc, radius float64, npoints int, innerRadius, v float64, rotate float64, aa bool) []Vertex {
	step := math.Pi / float64(npoints)
	if innerRadius == 0 {
		innerRadius = radius / 2
	}
	y0 := yc + radius*math.Sin(rotate)
	x0 := xc + radius*math.Cos(rotate)
	vertices := make([]Vertex, 0, 2*npoints)
	for i := 1; i <= 2*npoints; i++ {
		vertices = append(vertices, Vertex{Y: y0, X: x0})
		r := innerRadius
		if i%2 == 0 {
			r = radius
		}
		y1 := yc + r*math.Sin(float64(i)*step+rotate)
		x1 := xc + r*math.Cos(float64(i)*step+rotate)
		connect(im, y0, x0, y1, x1, v, aa)
		y0, x0 = y1, x1
	}
	return vertices
}

func connect(im *raster.Raster, y0, x0, y1, x1, v float64, aa bool) {
	if aa {
		LineAA(im, y0, x0, y1, x1, v)
	} else {
		Line(im, int(y0), int(x0), int(y1), int(x1), v)
	}
}

// Box draws an axis-aligned rectangle with corners (ylo, xlo) and
// (yhi, xhi), setting the border pixels to border and, when fill is
// non-nil, the interior to *fill. Mutates im.
func Box(im *raster.Raster, ylo, xlo, yhi, xhi int, border float64, fill *float64) {
	Line(im, ylo, xlo, ylo, xhi, border)
	Line(im, yhi, xlo, yhi, xhi, border)
	Line(im, ylo, xlo, yhi, xlo, border)
	Line(im, ylo, xhi, yhi, xhi, border)
	if fill == nil {
		return
	}
	for y := ylo + 1; y < yhi; y++ {
		for x := xlo + 1; x < xhi; x++ {
			if im.In(y, x) {
				im.SetPixel(y, x, *fill)
			}
		}
	}
}

// Border sets a frame of the given width around the edge of the raster
// to v. Mutates im.
func Border(im *raster.Raster, v float64, width int) {
	for y := 0; y < im.Height; y++ {
		for x := 0; x < im.Width; x++ {
			if y < width || y >= im.Height-width || x < width || x >= im.Width-width {
				im.SetPixel(y, x, v)
			}
		}
	}
}

// OrientedBox connects the given corners in order, closing the loop from
// the last corner back to the first, using exact lines. Used to render
// the oriented bounding boxes produced by the regions package. Mutates im.
func OrientedBox(im *raster.Raster, corners []Vertex, v float64) {
	if len(corners) < 2 {
		return
	}
	for i := 1; i < len(corners); i++ {
		Line(im, int(corners[i-1].Y), int(corners[i-1].X), int(corners[i].Y), int(corners[i].X), v)
	}
	last := len(corners) - 1
	Line(im, int(corners[last].Y), int(corners[last].X), int(corners[0].Y), int(corners[0].X), v)
}
