package detect

import (
	"math"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// HoughOptions tunes the straight-line Hough transform.
type HoughOptions struct {
	// NR is the number of radial bins (rows of the accumulator).
	NR int

	// NA is the number of angle bins (columns of the accumulator),
	// discretizing [0, pi).
	NA int

	// Threshold is the minimum accumulator value for a significant peak.
	Threshold float64

	// MaxPeaks caps the number of returned peaks; 0 means no cap.
	MaxPeaks int
}

// DefaultHoughOptions returns the conventional parameter set.
func DefaultHoughOptions() HoughOptions {
	return HoughOptions{NR: 300, NA: 200, Threshold: 10}
}

// HoughResult holds the detected line peaks together with the
// accumulator and its bin values, so callers can reconstruct lines or
// display the vote space.
type HoughResult struct {
	// Peaks are the accumulator maxima, descending by vote count. A
	// peak's Y indexes RVals and its X indexes AVals.
	Peaks []Peak

	// Accumulator is the (NR x NA) vote raster.
	Accumulator *raster.Raster

	// RVals and AVals give the perpendicular distance and angle
	// represented by each accumulator row and column.
	RVals []float64
	AVals []float64
}

// HoughLines performs a straight-line Hough transform of a
// single-channel raster, normally edge-detector output: every pixel with
// a value above zero votes, at each of NA discretized angles, for the
// quantized perpendicular distance r = x*cos(a) + y*sin(a). Votes whose
// distance falls outside the accumulator are dropped. Line peaks are
// recovered with the shared peak finder, sorted descending by vote
// count and capped at MaxPeaks. The input is not modified.
func HoughLines(im *raster.Raster, opts HoughOptions) *HoughResult {
	ny, nx := im.Height, im.Width
	acc := raster.New(opts.NR, opts.NA, 1)
	ainc := math.Pi / float64(opts.NA)
	rinc := math.Sqrt(float64(ny*ny+nx*nx)) / float64(opts.NR)

	rvals := make([]float64, opts.NR)
	for i := range rvals {
		rvals[i] = float64(i) * rinc
	}
	avals := make([]float64, opts.NA)
	for i := range avals {
		avals[i] = float64(i) * ainc
	}

	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			if im.At(y, x, 0) <= 0 {
				continue
			}
			for ia := 0; ia < opts.NA; ia++ {
				ang := float64(ia) * ainc
				r := float64(x)*math.Cos(ang) + float64(y)*math.Sin(ang)
				ir := int(r / rinc)
				if ir < 0 || ir >= opts.NR {
					continue
				}
				acc.Set(ir, ia, 0, acc.At(ir, ia, 0)+1)
			}
		}
	}

	peaks := FindPeaks(acc, opts.Threshold)
	if opts.MaxPeaks > 0 && len(peaks) > opts.MaxPeaks {
		peaks = peaks[:opts.MaxPeaks]
	}
	return &HoughResult{
		Peaks:       peaks,
		Accumulator: acc,
		RVals:       rvals,
		AVals:       avals,
	}
}
