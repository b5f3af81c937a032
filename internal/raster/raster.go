package raster

import "math"

// Raster is a dense height x width x channels grid of float64 samples,
// stored row-major with the channel index innermost.
type Raster struct {
	Height   int
	Width    int
	Channels int

	// Data holds Height*Width*Channels samples; sample (y, x, c) lives at
	// index (y*Width+x)*Channels + c.
	Data []float64
}

// New allocates a zero-filled raster of the given dimensions. The channel
// count must be at least 1; single-channel images still carry an explicit
// channel dimension.
func New(height, width, channels int) *Raster {
	return &Raster{
		Height:   height,
		Width:    width,
		Channels: channels,
		Data:     make([]float64, height*width*channels),
	}
}

// NewLike allocates a zero-filled raster with the same dimensions as r.
func NewLike(r *Raster) *Raster {
	return New(r.Height, r.Width, r.Channels)
}

// FromValues builds a raster from a flat row-major, channel-innermost
// sample slice. It fails with ErrFormat if the value count does not match
// the dimensions.
func FromValues(height, width, channels int, vals []float64) (*Raster, error) {
	if len(vals) != height*width*channels {
		return nil, FormatErrorf("have %d values, need %d", len(vals), height*width*channels)
	}
	r := New(height, width, channels)
	copy(r.Data, vals)
	return r, nil
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	out := NewLike(r)
	copy(out.Data, r.Data)
	return out
}

func (r *Raster) index(y, x, c int) int {
	return (y*r.Width+x)*r.Channels + c
}

// At returns sample (y, x, c). The coordinates must be in bounds.
func (r *Raster) At(y, x, c int) float64 {
	return r.Data[r.index(y, x, c)]
}

// Set assigns sample (y, x, c). The coordinates must be in bounds.
func (r *Raster) Set(y, x, c int, v float64) {
	r.Data[r.index(y, x, c)] = v
}

// SetPixel assigns every channel of pixel (y, x) to v.
func (r *Raster) SetPixel(y, x int, v float64) {
	base := r.index(y, x, 0)
	for c := 0; c < r.Channels; c++ {
		r.Data[base+c] = v
	}
}

// In reports whether pixel (y, x) lies inside the raster.
func (r *Raster) In(y, x int) bool {
	return y >= 0 && y < r.Height && x >= 0 && x < r.Width
}

// PixelSum returns the sum of all channels of pixel (y, x); this is the
// similarity measure used by the flood fill.
func (r *Raster) PixelSum(y, x int) float64 {
	base := r.index(y, x, 0)
	sum := 0.0
	for c := 0; c < r.Channels; c++ {
		sum += r.Data[base+c]
	}
	return sum
}

// Fill sets every sample to v. Mutates r.
func (r *Raster) Fill(v float64) {
	for i := range r.Data {
		r.Data[i] = v
	}
}

// Extrema returns the smallest and largest sample values.
func (r *Raster) Extrema() (lo, hi float64) {
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for _, v := range r.Data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Mean returns the mean of all samples.
func (r *Raster) Mean() float64 {
	sum := 0.0
	for _, v := range r.Data {
		sum += v
	}
	return sum / float64(len(r.Data))
}

// MaxVal returns the largest sample value.
func (r *Raster) MaxVal() float64 {
	_, hi := r.Extrema()
	return hi
}

// ContrastStretch linearly rescales all samples so the smallest becomes
// low and the largest becomes high. A flat image is set to low. Mutates r.
func (r *Raster) ContrastStretch(low, high float64) {
	lo, hi := r.Extrema()
	if hi == lo {
		r.Fill(low)
		return
	}
	fac := (high - low) / (hi - lo)
	for i, v := range r.Data {
		r.Data[i] = (v-lo)*fac + low
	}
}

// Binarize thresholds every sample: samples >= threshold become fg and
// the rest bg, or the reverse when below is set. Mutates r.
func (r *Raster) Binarize(threshold float64, below bool, bg, fg float64) {
	for i, v := range r.Data {
		above := v >= threshold
		if below {
			above = !above
		}
		if above {
			r.Data[i] = fg
		} else {
			r.Data[i] = bg
		}
	}
}

// ReverseContrast flips the image contrast about the midpoint of its
// current extrema. Mutates r.
func (r *Raster) ReverseContrast() {
	lo, hi := r.Extrema()
	for i, v := range r.Data {
		r.Data[i] = hi - (v - lo)
	}
}

// Channel returns a new single-channel raster holding channel c of r.
// It fails with ErrDimension if c is out of range.
func (r *Raster) Channel(c int) (*Raster, error) {
	if c < 0 || c >= r.Channels {
		return nil, DimensionErrorf("channel %d of %d", c, r.Channels)
	}
	out := New(r.Height, r.Width, 1)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			out.Set(y, x, 0, r.At(y, x, c))
		}
	}
	return out, nil
}

// Region returns a new raster holding rows [ylo, yhi) and columns
// [xlo, xhi) of r, clipped to the raster bounds.
func (r *Raster) Region(ylo, yhi, xlo, xhi int) *Raster {
	ylo = clampInt(ylo, 0, r.Height)
	yhi = clampInt(yhi, 0, r.Height)
	xlo = clampInt(xlo, 0, r.Width)
	xhi = clampInt(xhi, 0, r.Width)
	out := New(yhi-ylo, xhi-xlo, r.Channels)
	for y := ylo; y < yhi; y++ {
		for x := xlo; x < xhi; x++ {
			for c := 0; c < r.Channels; c++ {
				out.Set(y-ylo, x-xlo, c, r.At(y, x, c))
			}
		}
	}
	return out
}

// Insert pastes reg into r centred at (yc, xc), clipping any part that
// falls outside r. It fails with ErrDimension if the channel counts
// differ. Mutates r.
func (r *Raster) Insert(reg *Raster, yc, xc int) error {
	if reg.Channels != r.Channels {
		return DimensionErrorf("inserting %d-channel region into %d-channel raster",
			reg.Channels, r.Channels)
	}
	y0 := yc - reg.Height/2
	x0 := xc - reg.Width/2
	for y := 0; y < reg.Height; y++ {
		for x := 0; x < reg.Width; x++ {
			if !r.In(y0+y, x0+x) {
				continue
			}
			for c := 0; c < r.Channels; c++ {
				r.Set(y0+y, x0+x, c, reg.At(y, x, c))
			}
		}
	}
	return nil
}

// Subtract subtracts other from r sample-wise. It fails with ErrDimension
// if the dimensions differ. Mutates r.
func (r *Raster) Subtract(other *Raster) error {
	if other.Height != r.Height || other.Width != r.Width || other.Channels != r.Channels {
		return DimensionErrorf("subtracting %dx%dx%d from %dx%dx%d",
			other.Height, other.Width, other.Channels, r.Height, r.Width, r.Channels)
	}
	for i := range r.Data {
		r.Data[i] -= other.Data[i]
	}
	return nil
}

// Equal reports whether o has the same dimensions as r and every sample
// differs by at most tol.
func (r *Raster) Equal(o *Raster, tol float64) bool {
	if o.Height != r.Height || o.Width != r.Width || o.Channels != r.Channels {
		return false
	}
	for i, v := range r.Data {
		if math.Abs(v-o.Data[i]) > tol {
			return false
		}
	}
	return true
}

// Ramp overwrites r with a horizontal ramp running from 0 at the left
// edge to 255 at the right edge, replicated across rows and channels.
// Useful as a deterministic test pattern. Mutates r.
func (r *Raster) Ramp() {
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := 255.0 * float64(x) / float64(r.Width-1)
			r.SetPixel(y, x, v)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
