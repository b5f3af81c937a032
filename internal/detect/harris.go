package detect

import (
	"sort"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// HarrisOptions tunes the Harris and Stephens corner detector.
type HarrisOptions struct {
	// WindowSize is the side of the window slid over the image; the
	// structure tensor is summed over a (WindowSize|1)-sized window
	// centred on each pixel (2*(WindowSize/2)+1, always odd).
	WindowSize int

	// K is the trace weight in the corner response det - K*trace^2.
	K float64

	// Threshold is the minimum response for a candidate corner.
	Threshold float64

	// MinSeparation, when positive, is the minimum Euclidean distance
	// between reported corners.
	MinSeparation float64
}

// DefaultHarrisOptions returns the conventional parameter set.
func DefaultHarrisOptions() HarrisOptions {
	return HarrisOptions{
		WindowSize:    10,
		K:             0.04,
		Threshold:     10000,
		MinSeparation: 20,
	}
}

// Harris finds corners in a single-channel raster with the Harris and
// Stephens detector. The input is not modified.
//
// Horizontal and vertical gradients are taken with central differences
// (one-sided at the borders); at each pixel the structure tensor
// (Sxx, Sxy, Syy) is summed over the window and the response is
// det - K*trace^2. Responses above Threshold are candidate corners.
//
// With MinSeparation > 0 the candidates are sorted descending by
// response and accepted greedily: a candidate is kept only when it lies
// farther than MinSeparation from every corner already accepted. The
// windowed sums drag the strongest response into the gradient-rich side
// of a corner by about half the window size; the accepted corners are
// shifted back by that offset. The returned peaks carry the response as
// their value and are sorted descending.
func Harris(im *raster.Raster, opts HarrisOptions) []Peak {
	ny, nx := im.Height, im.Width
	dy, dx := gradients(im)

	ixx := make([]float64, ny*nx)
	ixy := make([]float64, ny*nx)
	iyy := make([]float64, ny*nx)
	for i := range ixx {
		ixx[i] = dx[i] * dx[i]
		ixy[i] = dy[i] * dx[i]
		iyy[i] = dy[i] * dy[i]
	}

	offset := opts.WindowSize / 2
	var candidates []Peak
	for y := offset; y < ny-offset; y++ {
		for x := offset; x < nx-offset; x++ {
			var sxx, sxy, syy float64
			for wy := y - offset; wy <= y+offset; wy++ {
				row := wy * nx
				for wx := x - offset; wx <= x+offset; wx++ {
					sxx += ixx[row+wx]
					sxy += ixy[row+wx]
					syy += iyy[row+wx]
				}
			}
			det := sxx*syy - sxy*sxy
			trace := sxx + syy
			r := det - opts.K*trace*trace
			if r > opts.Threshold {
				candidates = append(candidates, Peak{Value: r, Y: y, X: x})
			}
		}
	}

	if opts.MinSeparation <= 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Value > candidates[j].Value
		})
		return candidates
	}

	// Greedy first-come suppression over the descending-sorted
	// candidates, then shift back by the window offset to undo the
	// systematic bias.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Value > candidates[j].Value
	})
	d2 := opts.MinSeparation * opts.MinSeparation
	var corners []Peak
	for _, cand := range candidates {
		far := true
		for _, c := range corners {
			sy := float64(cand.Y - c.Y)
			sx := float64(cand.X - c.X)
			if sy*sy+sx*sx < d2 {
				far = false
				break
			}
		}
		if far {
			corners = append(corners, cand)
		}
	}
	for i := range corners {
		corners[i].Y -= offset
		corners[i].X -= offset
	}
	return corners
}

// gradients returns the vertical and horizontal derivatives of channel 0
// as flat row-major slices, using central differences in the interior
// and one-sided differences at the borders.
func gradients(im *raster.Raster) (dy, dx []float64) {
	ny, nx := im.Height, im.Width
	dy = make([]float64, ny*nx)
	dx = make([]float64, ny*nx)
	at := func(y, x int) float64 { return im.At(y, x, 0) }

	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			i := y*nx + x
			switch {
			case ny == 1:
				dy[i] = 0
			case y == 0:
				dy[i] = at(1, x) - at(0, x)
			case y == ny-1:
				dy[i] = at(ny-1, x) - at(ny-2, x)
			default:
				dy[i] = (at(y+1, x) - at(y-1, x)) / 2
			}
			switch {
			case nx == 1:
				dx[i] = 0
			case x == 0:
				dx[i] = at(y, 1) - at(y, 0)
			case x == nx-1:
				dx[i] = at(y, nx-1) - at(y, nx-2)
			default:
				dx[i] = (at(y, x+1) - at(y, x-1)) / 2
			}
		}
	}
	return dy, dx
}
