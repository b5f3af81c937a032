package draw

import (
	"math"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// FillOutline flood-fills the region around seed pixel (y, x) with v,
// using frontier (breadth-first) expansion. Mutates im.
//
// This is a similarity-bounded fill, not a same-colour fill: a
// 4-connected neighbour is absorbed when the absolute difference between
// its channel sum and the seed pixel's channel sum is at most threshold.
// Absorbed pixels are coloured immediately, which both marks them
// visited and stops the frontier re-queueing them. A threshold of 0
// therefore fills exactly the pixels whose channel sum equals the
// seed's, and a threshold larger than the image's dynamic range fills
// everything reachable.
//
// If the seed pixel is already within threshold of the fill value the
// call returns without touching the raster; filling a region with its
// own value would otherwise never terminate, since coloured pixels
// would stay eligible.
func FillOutline(im *raster.Raster, y, x int, v, threshold float64) {
	if !im.In(y, x) {
		return
	}
	seedSum := im.PixelSum(y, x)
	fillSum := v * float64(im.Channels)
	if math.Abs(seedSum-fillSum) <= threshold {
		return
	}
	im.SetPixel(y, x, v)

	type pt struct{ y, x int }
	frontier := []pt{{y, x}}
	for len(frontier) > 0 {
		var next []pt
		for _, p := range frontier {
			for _, q := range [4]pt{{p.y, p.x + 1}, {p.y, p.x - 1}, {p.y + 1, p.x}, {p.y - 1, p.x}} {
				if !im.In(q.y, q.x) {
					continue
				}
				if math.Abs(im.PixelSum(q.y, q.x)-seedSum) <= threshold {
					im.SetPixel(q.y, q.x, v)
					next = append(next, q)
				}
			}
		}
		frontier = next
	}
}
