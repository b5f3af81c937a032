package draw

import (
	"math"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// blendPixel mixes value v into pixel (y, x) of im with the given
// opacity: pixel = v*opacity + pixel*(1-opacity) on every channel.
// Out-of-bounds coordinates are skipped.
func blendPixel(im *raster.Raster, y, x int, v, opacity float64) {
	if !im.In(y, x) {
		return
	}
	for c := 0; c < im.Channels; c++ {
		old := im.At(y, x, c)
		im.Set(y, x, c, v*opacity+old*(1.0-opacity))
	}
}

// Line draws an exact (midpoint/Bresenham) line from (y0, x0) to
// (y1, x1), setting every channel of each line pixel to v. Mutates im.
//
// The axis with the larger absolute delta is the major axis ("steep"
// when that is y); endpoints are swapped so x increases monotonically,
// which makes the pixel set independent of endpoint order. The error
// accumulator starts at 0, is incremented by |dy|/dx each step, and y
// steps by sign(dy) with 1.0 subtracted when the accumulator reaches
// 0.5. Out-of-bounds pixels are silently skipped.
func Line(im *raster.Raster, y0, x0, y1, x1 int, v float64) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		y0, x0 = x0, y0
		y1, x1 = x1, y1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	dx := float64(x1 - x0)
	dy := float64(abs(y1 - y0))
	de := 1.0e30
	if dx != 0 {
		de = dy / dx
	}
	ystep := 1
	if y0 >= y1 {
		ystep = -1
	}

	e := 0.0
	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			if im.In(x, y) {
				im.SetPixel(x, y, v)
			}
		} else {
			if im.In(y, x) {
				im.SetPixel(y, x, v)
			}
		}
		e += de
		if e >= 0.5 {
			y += ystep
			e -= 1.0
		}
	}
}

// LineAA draws an anti-aliased line from (y0, x0) to (y1, x1) using
// Xiaolin Wu's algorithm. Mutates im.
//
// Each step blends the two pixels straddling the ideal line; the
// endpoints receive special half-pixel treatment before the interior
// loop, and interior opacities are derived from the fractional part of
// the running y-intercept.
func LineAA(im *raster.Raster, y0, x0, y1, x1, v float64) {
	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		y0, x0 = x0, y0
		y1, x1 = x1, y1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	dx := x1 - x0
	dy := y1 - y0
	de := 1.0e30
	if dx != 0 {
		de = dy / dx
	}

	// First endpoint.
	xend := math.Trunc(x0 + 0.5)
	yend := y0 + de*(xend-x0)
	xpxl1 := int(xend)
	ypxl1 := int(yend)
	frac := yend - math.Trunc(yend)
	if steep {
		blendPixel(im, xpxl1, ypxl1, v, 1.0-frac)
		blendPixel(im, xpxl1, ypxl1+1, v, frac)
	} else {
		blendPixel(im, ypxl1, xpxl1, v, 1.0-frac)
		blendPixel(im, ypxl1+1, xpxl1, v, frac)
	}
	intery := yend + de

	// Second endpoint.
	xend = math.Trunc(x1 + 0.5)
	yend = y1 + de*(xend-x1)
	xpxl2 := int(xend)
	ypxl2 := int(yend)
	frac = yend - math.Trunc(yend)
	if steep {
		blendPixel(im, xpxl2, ypxl2, v, 1.0-frac)
		blendPixel(im, xpxl2, ypxl2+1, v, frac)
	} else {
		blendPixel(im, ypxl2, xpxl2, v, 1.0-frac)
		blendPixel(im, ypxl2+1, xpxl2, v, frac)
	}

	// Interior.
	for x := xpxl1 + 1; x < xpxl2; x++ {
		frac = intery - math.Trunc(intery)
		iy := int(math.Trunc(intery))
		if steep {
			blendPixel(im, x, iy, v, math.Sqrt(1.0-frac))
			blendPixel(im, x, iy+1, v, math.Sqrt(frac))
		} else {
			blendPixel(im, iy, x, v, math.Sqrt(1.0-frac))
			blendPixel(im, iy+1, x, v, math.Sqrt(frac))
		}
		intery += de
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
