// Package morph implements a generic morphological convolution engine
// over single-channel rasters, plus the erosion/dilation family derived
// from it.
//
// One operator does all the work: for each output pixel, the
// neighbourhood under the mask, wrapped toroidally (modulo the image
// dimensions), is weighted pointwise by the mask and reduced with
// a statistic (sum, mean, median, min, max). Erosion and dilation are
// the min and max statistics; opening, closing and perimeter extraction
// are compositions of those.
package morph

import (
	"sort"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// Statistic selects the reduction applied to each masked neighbourhood.
type Statistic int

const (
	Sum Statistic = iota
	Mean
	Median
	Min
	Max
)

// Convolve reduces the toroidally-wrapped neighbourhood of every pixel,
// weighted pointwise by mask, with the given statistic, and returns the
// result as a new raster. The input is not modified. Only channel 0 of
// the image and mask are used.
//
// The Min statistic excludes zero-weighted mask entries from the
// candidate set before taking the minimum: a masked erosion, where a
// zero in the mask means "skip this position" rather than contributing
// a zero product that would dominate the minimum.
func Convolve(im, mask *raster.Raster, stat Statistic) *raster.Raster {
	ny, nx := im.Height, im.Width
	my, mx := mask.Height, mask.Width
	yo, xo := my/2, mx/2

	// Count of zero mask entries, used by Min to trim the sorted
	// candidate list.
	nzeros := 0
	for y := 0; y < my; y++ {
		for x := 0; x < mx; x++ {
			if mask.At(y, x, 0) == 0 {
				nzeros++
			}
		}
	}

	out := raster.New(ny, nx, 1)
	v := make([]float64, my*mx)
	for yi := 0; yi < ny; yi++ {
		for xi := 0; xi < nx; xi++ {
			vi := 0
			for ym := 0; ym < my; ym++ {
				yy := ((ym+yi-yo)%ny + ny) % ny
				for xm := 0; xm < mx; xm++ {
					xx := ((xm+xi-xo)%nx + nx) % nx
					v[vi] = im.At(yy, xx, 0) * mask.At(ym, xm, 0)
					vi++
				}
			}
			out.Set(yi, xi, 0, reduce(v, stat, nzeros))
		}
	}
	return out
}

func reduce(v []float64, stat Statistic, nzeros int) float64 {
	switch stat {
	case Sum:
		sum := 0.0
		for _, x := range v {
			sum += x
		}
		return sum
	case Mean:
		sum := 0.0
		for _, x := range v {
			sum += x
		}
		return sum / float64(len(v))
	case Max:
		max := v[0]
		for _, x := range v[1:] {
			if x > max {
				max = x
			}
		}
		return max
	case Min:
		sorted := append([]float64(nil), v...)
		sort.Float64s(sorted)
		candidates := sorted[nzeros:]
		if len(candidates) == 0 {
			return 0
		}
		return candidates[0]
	case Median:
		sorted := append([]float64(nil), v...)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 1 {
			return sorted[n/2]
		}
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return 0
}

// Shrink is a grayscale erosion: Convolve with the Min statistic.
// Returns a new raster.
func Shrink(im, mask *raster.Raster) *raster.Raster {
	return Convolve(im, mask, Min)
}

// Expand is a grayscale dilation: Convolve with the Max statistic.
// Returns a new raster.
func Expand(im, mask *raster.Raster) *raster.Raster {
	return Convolve(im, mask, Max)
}

// Opening erodes then dilates, removing features smaller than the mask.
// Returns a new raster.
func Opening(im, mask *raster.Raster) *raster.Raster {
	return Expand(Shrink(im, mask), mask)
}

// Closing dilates then erodes, filling gaps smaller than the mask.
// Returns a new raster.
func Closing(im, mask *raster.Raster) *raster.Raster {
	return Shrink(Expand(im, mask), mask)
}

// Perimeter subtracts the eroded image from the original, leaving the
// boundary pixels of each region. The structuring element is size x size,
// either solid or plus-shaped. Mutates im.
func Perimeter(im *raster.Raster, size int, plus bool) error {
	mask := raster.New(size, size, 1)
	if plus {
		mid := size / 2
		for i := 0; i < size; i++ {
			mask.Set(mid, i, 0, 1)
			mask.Set(i, mid, 0, 1)
		}
	} else {
		mask.Fill(1)
	}
	return im.Subtract(Shrink(im, mask))
}

// SquareMask returns a size x size all-ones structuring element.
func SquareMask(size int) *raster.Raster {
	mask := raster.New(size, size, 1)
	mask.Fill(1)
	return mask
}
