package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// impulse returns a size x size raster that is zero except for a single
// value at its centre.
func impulse(size int, v float64) *raster.Raster {
	im := raster.New(size, size, 1)
	im.SetPixel(size/2, size/2, v)
	return im
}

func TestConvolveSumWraps(t *testing.T) {
	// A 3x3 mask over a 3x3 image covers the whole image toroidally, so
	// a single impulse contributes to every output pixel.
	out := Convolve(impulse(3, 1), SquareMask(3), Sum)
	for _, v := range out.Data {
		assert.Equal(t, 1.0, v)
	}
}

func TestConvolveMean(t *testing.T) {
	out := Convolve(impulse(3, 9), SquareMask(3), Mean)
	for _, v := range out.Data {
		assert.Equal(t, 1.0, v)
	}
}

func TestConvolveMedian(t *testing.T) {
	im, err := raster.FromValues(3, 3, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(t, err)
	out := Convolve(im, SquareMask(3), Median)
	for _, v := range out.Data {
		assert.Equal(t, 5.0, v)
	}
}

func TestConvolveDoesNotModifyInput(t *testing.T) {
	im := impulse(5, 7)
	want := im.Clone()
	Convolve(im, SquareMask(3), Max)
	assert.True(t, im.Equal(want, 0))
}

func TestExpandPlusMask(t *testing.T) {
	plus := raster.New(3, 3, 1)
	plus.Set(0, 1, 0, 1)
	plus.Set(1, 0, 0, 1)
	plus.Set(1, 1, 0, 1)
	plus.Set(1, 2, 0, 1)
	plus.Set(2, 1, 0, 1)

	out := Expand(impulse(5, 1), plus)
	want := raster.New(5, 5, 1)
	want.SetPixel(2, 2, 1)
	want.SetPixel(1, 2, 1)
	want.SetPixel(3, 2, 1)
	want.SetPixel(2, 1, 1)
	want.SetPixel(2, 3, 1)
	assert.True(t, out.Equal(want, 0), "dilation by a plus grows the impulse into a plus")
}

func TestShrinkIgnoresMaskedPositions(t *testing.T) {
	// Zero mask entries mean "skip", not "contribute zero": eroding a
	// flat image with a plus mask must leave it flat.
	plus := raster.New(3, 3, 1)
	plus.Set(0, 1, 0, 1)
	plus.Set(1, 0, 0, 1)
	plus.Set(1, 1, 0, 1)
	plus.Set(1, 2, 0, 1)
	plus.Set(2, 1, 0, 1)

	flat := raster.New(4, 4, 1)
	flat.Fill(5)
	out := Shrink(flat, plus)
	for _, v := range out.Data {
		assert.Equal(t, 5.0, v)
	}
}

func TestOpeningRecoversBlock(t *testing.T) {
	// A 3x3 block survives opening by a 3x3 element exactly: erosion
	// leaves its centre, dilation grows the centre back to the block.
	im := raster.New(7, 7, 1)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			im.SetPixel(y, x, 255)
		}
	}

	eroded := Shrink(im, SquareMask(3))
	n := 0
	for _, v := range eroded.Data {
		if v != 0 {
			n++
		}
	}
	require.Equal(t, 1, n)
	assert.Equal(t, 255.0, eroded.At(3, 3, 0))

	opened := Opening(im, SquareMask(3))
	assert.True(t, opened.Equal(im, 0))
}

func TestClosingFillsGap(t *testing.T) {
	// A one-pixel hole in a block disappears under closing.
	im := raster.New(9, 9, 1)
	for y := 2; y <= 6; y++ {
		for x := 2; x <= 6; x++ {
			im.SetPixel(y, x, 255)
		}
	}
	im.SetPixel(4, 4, 0)

	closed := Closing(im, SquareMask(3))
	assert.Equal(t, 255.0, closed.At(4, 4, 0))
}

func TestErodedDilationBound(t *testing.T) {
	// For a flat all-ones mask, eroding a dilation can never exceed the
	// dilation pointwise.
	im := raster.New(6, 7, 1)
	for i := range im.Data {
		im.Data[i] = float64((i*31 + 7) % 256)
	}
	mask := SquareMask(3)

	expanded := Expand(im, mask)
	bounded := Shrink(expanded, mask)
	for i := range bounded.Data {
		assert.LessOrEqual(t, bounded.Data[i], expanded.Data[i], "sample %d", i)
	}
}

func TestPerimeterSolid(t *testing.T) {
	im := raster.New(7, 7, 1)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			im.SetPixel(y, x, 255)
		}
	}
	require.NoError(t, Perimeter(im, 3, false))

	// The centre is interior; the remaining 8 block pixels survive.
	assert.Equal(t, 0.0, im.At(3, 3, 0))
	n := 0
	for _, v := range im.Data {
		if v != 0 {
			n++
		}
	}
	assert.Equal(t, 8, n)
}

func TestSquareMask(t *testing.T) {
	m := SquareMask(3)
	assert.Equal(t, 3, m.Height)
	assert.Equal(t, 3, m.Width)
	for _, v := range m.Data {
		assert.Equal(t, 1.0, v)
	}
}
