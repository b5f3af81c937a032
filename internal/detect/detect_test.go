package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/raster-tools/internal/draw"
	"github.com/ironsheep/raster-tools/internal/raster"
)

func TestFindPeaks(t *testing.T) {
	im := raster.New(5, 5, 1)
	im.SetPixel(1, 1, 5)
	im.SetPixel(3, 3, 7)

	peaks := FindPeaks(im, 0)
	require.Len(t, peaks, 2)
	assert.Equal(t, Peak{Value: 7, Y: 3, X: 3}, peaks[0], "descending by value")
	assert.Equal(t, Peak{Value: 5, Y: 1, X: 1}, peaks[1])

	peaks = FindPeaks(im, 6)
	require.Len(t, peaks, 1)
	assert.Equal(t, 7.0, peaks[0].Value)
}

func TestFindPeaksIgnoresBorder(t *testing.T) {
	im := raster.New(5, 5, 1)
	im.SetPixel(0, 0, 100)
	im.SetPixel(4, 2, 100)
	assert.Empty(t, FindPeaks(im, 0))
}

func TestFindPeaksStrict(t *testing.T) {
	// A plateau of equal values has no strict local maximum.
	im := raster.New(5, 5, 1)
	im.SetPixel(2, 2, 5)
	im.SetPixel(2, 3, 5)
	assert.Empty(t, FindPeaks(im, 0))
}

func TestHighPeaks(t *testing.T) {
	peaks := []Peak{{Value: 10}, {Value: 9}, {Value: 4}}
	kept := HighPeaks(peaks, 0.5)
	require.Len(t, kept, 2)
	assert.Equal(t, 10.0, kept[0].Value)
	assert.Equal(t, 9.0, kept[1].Value)

	assert.Empty(t, HighPeaks(nil, 0.5))
}

func TestMoravecIsolatedPoint(t *testing.T) {
	im := raster.New(9, 9, 1)
	im.SetPixel(4, 4, 255)

	peaks := Moravec(im, 1)
	require.Len(t, peaks, 1)
	assert.Equal(t, 4, peaks[0].Y)
	assert.Equal(t, 4, peaks[0].X)
	assert.InDelta(t, 255, peaks[0].Value, 1e-9)
}

func TestMoravecFlatImage(t *testing.T) {
	im := raster.New(9, 9, 1)
	im.Fill(128)
	assert.Empty(t, Moravec(im, 0))
}

func TestHarrisBlockCorner(t *testing.T) {
	// A bright quadrant with its corner at (20,20). The windowed sums
	// drag the response maximum diagonally into the block; the offset
	// correction shifts it back, so with the default options the single
	// reported corner lands at (19,19).
	im := raster.New(40, 40, 1)
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			im.SetPixel(y, x, 255)
		}
	}

	corners := Harris(im, DefaultHarrisOptions())
	require.Len(t, corners, 1)
	assert.Equal(t, 19, corners[0].Y)
	assert.Equal(t, 19, corners[0].X)
	assert.Greater(t, corners[0].Value, 10000.0)
}

func TestHarrisNoCornersOnEdge(t *testing.T) {
	// A single straight edge has gradient energy in only one direction,
	// so the response never clears the threshold.
	im := raster.New(40, 40, 1)
	for y := 20; y < 40; y++ {
		for x := 0; x < 40; x++ {
			im.SetPixel(y, x, 255)
		}
	}
	assert.Empty(t, Harris(im, DefaultHarrisOptions()))
}

func TestHarrisMinSeparationZero(t *testing.T) {
	im := raster.New(40, 40, 1)
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			im.SetPixel(y, x, 255)
		}
	}
	opts := DefaultHarrisOptions()
	opts.MinSeparation = 0

	candidates := Harris(im, opts)
	require.NotEmpty(t, candidates)
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].Value, candidates[i].Value, "sorted descending")
	}
}

func TestHoughSingleLine(t *testing.T) {
	im := raster.New(30, 30, 1)
	draw.Line(im, 10, 0, 10, 29, 255)

	res := HoughLines(im, DefaultHoughOptions())
	require.NotEmpty(t, res.Peaks)

	top := res.Peaks[0]
	assert.Equal(t, 30.0, top.Value, "all 30 pixels vote in one bin")

	rinc := res.RVals[1] - res.RVals[0]
	ainc := res.AVals[1] - res.AVals[0]
	assert.InDelta(t, 10.0, res.RVals[top.Y], rinc, "perpendicular distance of the row")
	assert.InDelta(t, math.Pi/2, res.AVals[top.X], ainc, "a horizontal row is normal to the y axis")
}

func TestHoughAccumulatorShape(t *testing.T) {
	im := raster.New(10, 10, 1)
	im.SetPixel(5, 5, 255)

	opts := HoughOptions{NR: 50, NA: 40, Threshold: 0}
	res := HoughLines(im, opts)
	assert.Equal(t, 50, res.Accumulator.Height)
	assert.Equal(t, 40, res.Accumulator.Width)
	assert.Len(t, res.RVals, 50)
	assert.Len(t, res.AVals, 40)

	// A single pixel votes once per angle, minus any votes whose radius
	// falls outside the accumulator.
	total := 0.0
	for _, v := range res.Accumulator.Data {
		total += v
	}
	assert.LessOrEqual(t, total, float64(opts.NA))
	assert.Greater(t, total, 0.0)
}

func TestHoughMaxPeaks(t *testing.T) {
	im := raster.New(30, 30, 1)
	draw.Line(im, 5, 0, 5, 29, 255)
	draw.Line(im, 20, 0, 20, 29, 255)

	opts := DefaultHoughOptions()
	opts.MaxPeaks = 1
	res := HoughLines(im, opts)
	assert.Len(t, res.Peaks, 1)
}

func TestGradients(t *testing.T) {
	// A horizontal ramp: dx is constant, dy is zero.
	im := raster.New(3, 4, 1)
	im.Ramp()
	dy, dx := gradients(im)
	for i := range dy {
		assert.InDelta(t, 0.0, dy[i], 1e-9)
		assert.InDelta(t, 85.0, dx[i], 1e-9, "ramp spans 255 over 3 steps")
	}
}
