package keypoints

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// row builds one keypoint row: the four header values followed by a
// descriptor filled with fill.
func row(x, y, scale, orientation float64, fill int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%g %g %g %g", x, y, scale, orientation)
	for i := 0; i < DescriptorLen; i++ {
		fmt.Fprintf(&sb, " %d", fill)
	}
	return sb.String()
}

func TestParse(t *testing.T) {
	data := row(10.5, 20.25, 2, 1.5, 7) + "\n" + row(1, 2, 3, 4, 9) + "\n"
	kps, err := Parse([]byte(data))
	require.NoError(t, err)
	require.Len(t, kps, 2)

	assert.Equal(t, 10.5, kps[0].X)
	assert.Equal(t, 20.25, kps[0].Y)
	assert.Equal(t, 2.0, kps[0].Scale)
	assert.Equal(t, 1.5, kps[0].Orientation)
	assert.Equal(t, 7.0, kps[0].Descriptor[0])
	assert.Equal(t, 7.0, kps[0].Descriptor[DescriptorLen-1])
	assert.Equal(t, 9.0, kps[1].Descriptor[50])
}

func TestParseFreeFormLayout(t *testing.T) {
	// Only the count and order of values matter, not the line structure.
	fields := strings.Fields(row(1, 2, 3, 4, 5))
	data := strings.Join(fields[:10], " ") + "\n  " + strings.Join(fields[10:], "\n")
	kps, err := Parse([]byte(data))
	require.NoError(t, err)
	assert.Len(t, kps, 1)
}

func TestParseEmpty(t *testing.T) {
	kps, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, kps)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("1 2 3"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrFormat), "wrong value count")

	bad := strings.Replace(row(1, 2, 3, 4, 5), " 5", " x", 1)
	_, err = Parse([]byte(bad))
	require.Error(t, err)
	assert.True(t, errors.Is(err, raster.ErrFormat), "non-numeric value")
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.sift")
	require.NoError(t, os.WriteFile(path, []byte(row(5, 6, 1, 0, 3)+"\n"), 0o644))

	kps, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, kps, 1)
	assert.Equal(t, 5.0, kps[0].X)

	_, err = ParseFile(filepath.Join(dir, "missing.sift"))
	assert.Error(t, err)
}

func TestExtractReusesExistingFile(t *testing.T) {
	// With a pre-existing .sift next to the image, the tool is never
	// invoked; a deliberately bogus tool name proves it.
	dir := t.TempDir()
	img := filepath.Join(dir, "scene.png")
	require.NoError(t, os.WriteFile(img, []byte("not really a png"), 0o644))
	sift := filepath.Join(dir, "scene.sift")
	require.NoError(t, os.WriteFile(sift, []byte(row(1, 2, 3, 4, 5)+"\n"), 0o644))

	ex := Extractor{Tool: "definitely-not-a-real-binary"}
	kps, err := ex.Extract(context.Background(), img)
	require.NoError(t, err)
	assert.Len(t, kps, 1)
}

func TestExtractMissingTool(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "scene.png")
	require.NoError(t, os.WriteFile(img, []byte("x"), 0o644))

	ex := Extractor{Tool: "definitely-not-a-real-binary"}
	_, err := ex.Extract(context.Background(), img)
	assert.Error(t, err)
}

func TestMatchEuclidean(t *testing.T) {
	mk := func(fill float64) Keypoint {
		var kp Keypoint
		for i := range kp.Descriptor {
			kp.Descriptor[i] = fill
		}
		return kp
	}
	a := []Keypoint{mk(0), mk(10)}
	b := []Keypoint{mk(10), mk(2)}

	matches := MatchEuclidean(a, b)
	require.Len(t, matches, 4)

	// Best pairing is the identical descriptors a[1] and b[0].
	assert.Equal(t, 0.0, matches[0].Score)
	assert.Equal(t, 1, matches[0].I)
	assert.Equal(t, 0, matches[0].J)

	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].Score, matches[i-1].Score, "ascending by score")
	}

	// Squared distance between flat descriptors of 0 and 2.
	assert.Equal(t, float64(DescriptorLen*4), matches[1].Score)
}

func TestMatchEuclideanEmpty(t *testing.T) {
	assert.Empty(t, MatchEuclidean(nil, []Keypoint{{}}))
}
