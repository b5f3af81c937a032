// Package keypoints consumes the output of an external keypoint
// extraction program (VLFeat-style SIFT) without reimplementing it.
//
// The extraction binary is invoked through a narrow "run external tool,
// parse structured output" interface: the tool is handed an input image
// path and an output path, and its output file is a plain text table of
// whitespace-separated numeric rows, one keypoint per line, holding 4
// header values (col, row, scale, orientation) followed by 128
// descriptor values. Nothing else about the tool is assumed, which
// keeps the numeric core isolated from platform and environment
// variance.
package keypoints

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// DescriptorLen is the number of descriptor values per keypoint row.
const DescriptorLen = 128

// valuesPerRow is the full row width: 4 header values plus the descriptor.
const valuesPerRow = 4 + DescriptorLen

// Keypoint is one parsed keypoint row.
type Keypoint struct {
	X           float64 // column of the keypoint
	Y           float64 // row of the keypoint
	Scale       float64
	Orientation float64 // radians
	Descriptor  [DescriptorLen]float64
}

// Extractor runs a configured external keypoint tool. The tool is
// expected to accept "<image> -o <output>" and write the keypoint table
// to the output path.
type Extractor struct {
	// Tool is the executable to run, resolved against PATH.
	Tool string
}

// Extract returns the keypoints for the image at path. An existing
// "<path minus extension>.sift" file is reused; otherwise the tool is
// run (honouring ctx cancellation) to produce it.
func (e *Extractor) Extract(ctx context.Context, path string) ([]Keypoint, error) {
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".sift"
	if _, err := os.Stat(out); err == nil {
		return ParseFile(out)
	}

	cmd := exec.CommandContext(ctx, e.Tool, path, "-o", out)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", e.Tool, err)
	}
	return ParseFile(out)
}

// ParseFile reads a keypoint table from a file.
func ParseFile(path string) ([]Keypoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypoint file: %w", err)
	}
	kps, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return kps, nil
}

// Parse decodes a keypoint table: whitespace-separated numbers, 132 per
// keypoint (4 header values then 128 descriptor values). Layout within
// the text is free-form; only the value count and order matter. A total
// that is not a multiple of 132, or a malformed number, fails with
// raster.ErrFormat.
func Parse(data []byte) ([]Keypoint, error) {
	fields := strings.Fields(string(data))
	if len(fields)%valuesPerRow != 0 {
		return nil, raster.FormatErrorf("keypoint file has %d values, not a multiple of %d",
			len(fields), valuesPerRow)
	}

	kps := make([]Keypoint, 0, len(fields)/valuesPerRow)
	for i := 0; i < len(fields); i += valuesPerRow {
		vals := make([]float64, valuesPerRow)
		for j, f := range fields[i : i+valuesPerRow] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, raster.FormatErrorf("keypoint value %q is not a number", f)
			}
			vals[j] = v
		}
		kp := Keypoint{X: vals[0], Y: vals[1], Scale: vals[2], Orientation: vals[3]}
		copy(kp.Descriptor[:], vals[4:])
		kps = append(kps, kp)
	}
	return kps, nil
}

// Match pairs a keypoint index from one set with an index from another,
// scored by squared Euclidean descriptor distance.
type Match struct {
	Score float64
	I     int
	J     int
}

// MatchEuclidean scores every descriptor pairing between two keypoint
// sets by squared Euclidean distance and returns the pairings sorted
// ascending by score.
func MatchEuclidean(a, b []Keypoint) []Match {
	matches := make([]Match, 0, len(a)*len(b))
	for i := range a {
		for j := range b {
			s := 0.0
			for k := 0; k < DescriptorLen; k++ {
				d := a[i].Descriptor[k] - b[j].Descriptor[k]
				s += d * d
			}
			matches = append(matches, Match{Score: s, I: i, J: j})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Score < matches[j].Score })
	return matches
}
