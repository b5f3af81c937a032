package detect

import (
	"math"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// Moravec finds corners with Moravec's operator: each interior pixel's
// cornerness is the minimum of its four directional squared differences
// to the 1-pixel-shifted neighbours (right, down-right, down, up-right).
// The square roots of the scores are handed to the shared peak finder
// with the given magnitude floor. The input is not modified.
func Moravec(im *raster.Raster, threshold float64) []Peak {
	shifts := [4][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}} // (dx, dy)

	scores := raster.New(im.Height, im.Width, 1)
	for y := 1; y < im.Height-1; y++ {
		for x := 1; x < im.Width-1; x++ {
			lo := math.Inf(1)
			v := im.At(y, x, 0)
			for _, s := range shifts {
				d := im.At(y+s[1], x+s[0], 0) - v
				if d*d < lo {
					lo = d * d
				}
			}
			scores.Set(y, x, 0, lo)
		}
	}
	for i, v := range scores.Data {
		scores.Data[i] = math.Sqrt(v)
	}
	return FindPeaks(scores, threshold)
}
