package detect

import (
	"sort"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// Peak is a local maximum in a score raster: its value and the (row,
// col) position at which it was found.
type Peak struct {
	Value float64
	Y     int
	X     int
}

// FindPeaks returns the peaks of a single-channel raster in descending
// order of value, ties broken by row-major encounter order. A cell is a
// peak only when it is strictly greater than all 8 of its neighbours and
// greater than threshold; border cells have no full neighbourhood and
// are never peaks.
func FindPeaks(im *raster.Raster, threshold float64) []Peak {
	var peaks []Peak
	for y := 1; y < im.Height-1; y++ {
		for x := 1; x < im.Width-1; x++ {
			v := im.At(y, x, 0)
			if v <= threshold {
				continue
			}
			if v > im.At(y-1, x-1, 0) && v > im.At(y-1, x, 0) && v > im.At(y-1, x+1, 0) &&
				v > im.At(y, x-1, 0) && v > im.At(y, x+1, 0) &&
				v > im.At(y+1, x-1, 0) && v > im.At(y+1, x, 0) && v > im.At(y+1, x+1, 0) {
				peaks = append(peaks, Peak{Value: v, Y: y, X: x})
			}
		}
	}
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].Value > peaks[j].Value
	})
	return peaks
}

// HighPeaks filters a descending-sorted peak list down to those whose
// value is within factor of the highest.
func HighPeaks(peaks []Peak, factor float64) []Peak {
	if len(peaks) == 0 {
		return peaks
	}
	floor := peaks[0].Value * factor
	n := 0
	for _, p := range peaks {
		if p.Value < floor {
			break
		}
		n++
	}
	return peaks[:n]
}
