package raster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndIndexing(t *testing.T) {
	im := New(3, 4, 2)
	require.Len(t, im.Data, 3*4*2)

	im.Set(1, 2, 0, 7)
	im.Set(1, 2, 1, 9)
	assert.Equal(t, 7.0, im.At(1, 2, 0))
	assert.Equal(t, 9.0, im.At(1, 2, 1))
	assert.Equal(t, 16.0, im.PixelSum(1, 2))

	im.SetPixel(0, 0, 3)
	assert.Equal(t, 3.0, im.At(0, 0, 0))
	assert.Equal(t, 3.0, im.At(0, 0, 1))
}

func TestFromValues(t *testing.T) {
	im, err := FromValues(2, 2, 1, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4.0, im.At(1, 1, 0))

	_, err = FromValues(2, 2, 1, []float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestCloneIsDeep(t *testing.T) {
	im := New(2, 2, 1)
	im.Set(0, 0, 0, 5)
	cp := im.Clone()
	cp.Set(0, 0, 0, 9)
	assert.Equal(t, 5.0, im.At(0, 0, 0))
	assert.Equal(t, 9.0, cp.At(0, 0, 0))
}

func TestIn(t *testing.T) {
	im := New(2, 3, 1)
	assert.True(t, im.In(0, 0))
	assert.True(t, im.In(1, 2))
	assert.False(t, im.In(-1, 0))
	assert.False(t, im.In(0, 3))
	assert.False(t, im.In(2, 0))
}

func TestExtremaAndMean(t *testing.T) {
	im, err := FromValues(2, 2, 1, []float64{1, 2, 3, 10})
	require.NoError(t, err)
	lo, hi := im.Extrema()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 10.0, hi)
	assert.Equal(t, 4.0, im.Mean())
	assert.Equal(t, 10.0, im.MaxVal())
}

func TestContrastStretch(t *testing.T) {
	im, err := FromValues(1, 3, 1, []float64{10, 20, 30})
	require.NoError(t, err)
	im.ContrastStretch(0, 255)
	assert.Equal(t, 0.0, im.At(0, 0, 0))
	assert.InDelta(t, 127.5, im.At(0, 1, 0), 1e-9)
	assert.Equal(t, 255.0, im.At(0, 2, 0))

	flat := New(2, 2, 1)
	flat.Fill(42)
	flat.ContrastStretch(0, 255)
	assert.Equal(t, 0.0, flat.At(1, 1, 0))
}

func TestBinarize(t *testing.T) {
	im, err := FromValues(1, 4, 1, []float64{10, 100, 150, 200})
	require.NoError(t, err)
	im.Binarize(128, false, 0, 255)
	assert.Equal(t, []float64{0, 0, 255, 255}, im.Data)

	im2, err := FromValues(1, 4, 1, []float64{10, 100, 150, 200})
	require.NoError(t, err)
	im2.Binarize(128, true, 0, 255)
	assert.Equal(t, []float64{255, 255, 0, 0}, im2.Data)
}

func TestReverseContrast(t *testing.T) {
	im, err := FromValues(1, 3, 1, []float64{0, 100, 250})
	require.NoError(t, err)
	im.ReverseContrast()
	assert.Equal(t, []float64{250, 150, 0}, im.Data)
}

func TestChannel(t *testing.T) {
	im := New(1, 2, 3)
	im.Set(0, 1, 2, 99)
	ch, err := im.Channel(2)
	require.NoError(t, err)
	assert.Equal(t, 1, ch.Channels)
	assert.Equal(t, 99.0, ch.At(0, 1, 0))

	_, err = im.Channel(3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimension))
}

func TestRegionClips(t *testing.T) {
	im := New(4, 4, 1)
	im.Set(2, 3, 0, 8)
	sub := im.Region(2, 10, 3, 10)
	assert.Equal(t, 2, sub.Height)
	assert.Equal(t, 1, sub.Width)
	assert.Equal(t, 8.0, sub.At(0, 0, 0))
}

func TestInsert(t *testing.T) {
	im := New(5, 5, 1)
	reg := New(3, 3, 1)
	reg.Fill(7)
	require.NoError(t, im.Insert(reg, 2, 2))
	assert.Equal(t, 7.0, im.At(1, 1, 0))
	assert.Equal(t, 7.0, im.At(3, 3, 0))
	assert.Equal(t, 0.0, im.At(0, 4, 0))

	// Straddling the edge clips silently.
	require.NoError(t, im.Insert(reg, 0, 0))

	bad := New(2, 2, 3)
	err := im.Insert(bad, 2, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimension))
}

func TestSubtract(t *testing.T) {
	a, err := FromValues(1, 2, 1, []float64{5, 9})
	require.NoError(t, err)
	b, err := FromValues(1, 2, 1, []float64{1, 4})
	require.NoError(t, err)
	require.NoError(t, a.Subtract(b))
	assert.Equal(t, []float64{4, 5}, a.Data)

	c := New(2, 2, 1)
	err = a.Subtract(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimension))
}

func TestEqual(t *testing.T) {
	a := New(2, 2, 1)
	b := New(2, 2, 1)
	assert.True(t, a.Equal(b, 0))
	b.Set(0, 0, 0, 0.5)
	assert.False(t, a.Equal(b, 0.1))
	assert.True(t, a.Equal(b, 0.6))
	assert.False(t, a.Equal(New(2, 3, 1), 1))
}

func TestRamp(t *testing.T) {
	im := New(2, 3, 1)
	im.Ramp()
	assert.Equal(t, 0.0, im.At(0, 0, 0))
	assert.Equal(t, 255.0, im.At(1, 2, 0))
	assert.InDelta(t, 127.5, im.At(0, 1, 0), 1e-9)
}
