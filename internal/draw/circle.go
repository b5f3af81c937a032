package draw

import (
	"math"

	"github.com/ironsheep/raster-tools/internal/raster"
)

func setPixel(im *raster.Raster, y, x int, v float64) {
	if im.In(y, x) {
		im.SetPixel(y, x, v)
	}
}

// Circle draws an exact circle of radius r centred on (yc, xc) using the
// integer midpoint algorithm with 8-way symmetric writes. Mutates im.
//
// The decision variable starts at 3 - 2r and is updated by p += 4x+6
// when inside the ideal circle or p += 4(x-y)+6 when outside (stepping y
// inward). Out-of-bounds pixels are silently skipped.
func Circle(im *raster.Raster, yc, xc, r int, v float64) {
	x := 0
	y := r
	p := 3 - 2*r
	write8 := func() {
		setPixel(im, yc+y, xc+x, v)
		setPixel(im, yc+y, xc-x, v)
		setPixel(im, yc-y, xc+x, v)
		setPixel(im, yc-y, xc-x, v)
		setPixel(im, yc+x, xc+y, v)
		setPixel(im, yc+x, xc-y, v)
		setPixel(im, yc-x, xc+y, v)
		setPixel(im, yc-x, xc-y, v)
	}
	for x < y {
		write8()
		if p < 0 {
			p += 4*x + 6
		} else {
			p += 4*(x-y) + 6
			y--
		}
		x++
	}
	if x == y {
		write8()
	}
}

// CircleAA draws an anti-aliased circle of radius r centred on (yc, xc)
// in the style of Wu, carrying a trailing opacity term across the
// symmetric octants. Mutates im.
//
// For each scan step the ideal circle crossing d = sqrt(r^2 - y^2) is
// split into an opacity opac = round(d) - d; the on-circle pixel is set
// to v outright and its two radial neighbours are blended with opac and
// its complement. When opac drops below the previous step's value the
// major coordinate steps inward.
func CircleAA(im *raster.Raster, yc, xc, r int, v float64) {
	x := r
	y := -1
	t := 0.0
	for x > y {
		y++
		d := math.Sqrt(float64(r*r - y*y))
		opac := math.Trunc(d+0.5) - d
		if opac < t {
			x--
		}
		trans := 1.0 - opac

		setPixel(im, yc+y, xc+x, v)
		blendPixel(im, yc+y, xc+x-1, v, trans)
		blendPixel(im, yc+y, xc+x+1, v, opac)

		setPixel(im, yc+x, xc+y, v)
		blendPixel(im, yc+x-1, xc+y, v, trans)
		blendPixel(im, yc+x+1, xc+y, v, opac)

		setPixel(im, yc+y, xc-x, v)
		blendPixel(im, yc+y, xc-x+1, v, trans)
		blendPixel(im, yc+y, xc-x-1, v, opac)

		setPixel(im, yc+x, xc-y, v)
		blendPixel(im, yc+x-1, xc-y, v, trans)
		blendPixel(im, yc+x+1, xc-y, v, opac)

		setPixel(im, yc-y, xc+x, v)
		blendPixel(im, yc-y, xc+x-1, v, trans)
		blendPixel(im, yc-y, xc+x+1, v, opac)

		setPixel(im, yc-x, xc+y, v)
		blendPixel(im, yc-x-1, xc+y, v, opac)
		blendPixel(im, yc-x+1, xc+y, v, trans)

		setPixel(im, yc-x, xc-y, v)
		blendPixel(im, yc-x-1, xc-y, v, opac)
		blendPixel(im, yc-x+1, xc-y, v, trans)

		setPixel(im, yc-y, xc-x, v)
		blendPixel(im, yc-y, xc-x-1, v, opac)
		blendPixel(im, yc-y, xc-x+1, v, trans)

		t = opac
	}
}
