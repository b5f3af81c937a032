package pnm

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/ironsheep/raster-tools/internal/raster"
)

// Variant identifies one of the six PBMPLUS format flavours.
type Variant int

const (
	P1 Variant = iota + 1 // ASCII bitmap
	P2                    // ASCII grayscale
	P3                    // ASCII RGB
	P4                    // binary bitmap
	P5                    // binary grayscale
	P6                    // binary RGB
)

// String returns the 2-byte magic for the variant.
func (v Variant) String() string {
	if v < P1 || v > P6 {
		return fmt.Sprintf("P?(%d)", int(v))
	}
	return fmt.Sprintf("P%d", int(v))
}

func (v Variant) channels() int {
	if v == P3 || v == P6 {
		return 3
	}
	return 1
}

func (v Variant) hasMaxVal() bool {
	return v != P1 && v != P4
}

// Options controls encoding behaviour.
type Options struct {
	// Stretch contrast-stretches the samples to the full output range
	// before truncation. The input raster is not modified.
	Stretch bool

	// BigGreys writes 16-bit big-endian samples with a maxval of 65535
	// instead of 8-bit samples. Only meaningful for P5.
	BigGreys bool
}

// Decode parses PBMPLUS-encoded bytes into a raster. The sample values
// stored in the file are returned unscaled: an 8-bit grayscale file
// decodes to values in [0, 255] and a bitmap to values in {0, 1}.
//
// Any malformed input (unknown magic, truncated header or pixel data,
// a token count that disagrees with the stated dimensions, or trailing
// bytes after the final sample) fails with raster.ErrFormat and no
// partial raster is returned.
func Decode(data []byte) (*raster.Raster, error) {
	if len(data) < 2 {
		return nil, raster.FormatErrorf("%d bytes is too short for a PNM header", len(data))
	}
	magic := string(data[:2])

	switch magic {
	case "P1":
		return decodeASCIIBitmap(data)
	case "P2", "P3":
		return decodeASCII(data, magic)
	case "P4":
		return decodeBinaryBitmap(data)
	case "P5", "P6":
		return decodeBinary(data, magic)
	}
	return nil, raster.FormatErrorf("unrecognized magic %q", magic)
}

// decodeASCIIBitmap handles P1. Pixel digits need not be separated by
// whitespace, so the pixel tokens are consumed character by character.
func decodeASCIIBitmap(data []byte) (*raster.Raster, error) {
	tokens := tokenize(data)
	if len(tokens) < 3 {
		return nil, raster.FormatErrorf("P1 header has %d tokens, need 3", len(tokens))
	}
	w, h, err := parseDims(tokens[1], tokens[2])
	if err != nil {
		return nil, err
	}

	im := raster.New(h, w, 1)
	n := 0
	for _, t := range tokens[3:] {
		for _, ch := range t {
			if ch != '0' && ch != '1' {
				return nil, raster.FormatErrorf("P1 pixel character %q", string(ch))
			}
			if n >= w*h {
				return nil, raster.FormatErrorf("P1 has more than %d pixels", w*h)
			}
			if ch == '1' {
				im.Data[n] = 1
			}
			n++
		}
	}
	if n != w*h {
		return nil, raster.FormatErrorf("P1 has %d pixels, need %d", n, w*h)
	}
	return im, nil
}

// decodeASCII handles P2 and P3: every remaining token is one sample in
// row-major, channel-innermost order.
func decodeASCII(data []byte, magic string) (*raster.Raster, error) {
	nc := 1
	if magic == "P3" {
		nc = 3
	}
	tokens := tokenize(data)
	if len(tokens) < 4 {
		return nil, raster.FormatErrorf("%s header has %d tokens, need 4", magic, len(tokens))
	}
	w, h, err := parseDims(tokens[1], tokens[2])
	if err != nil {
		return nil, err
	}
	if _, err := parseMaxVal(tokens[3]); err != nil {
		return nil, err
	}

	want := w * h * nc
	if len(tokens)-4 != want {
		return nil, raster.FormatErrorf("%s has %d samples, need %d", magic, len(tokens)-4, want)
	}
	im := raster.New(h, w, nc)
	for i, t := range tokens[4:] {
		v, err := strconv.Atoi(t)
		if err != nil {
			return nil, raster.FormatErrorf("%s sample %q is not a number", magic, t)
		}
		im.Data[i] = float64(v)
	}
	return im, nil
}

// decodeBinaryBitmap handles P4: each row occupies ceil(width/8) bytes
// with bit 7 (the MSB) as the leftmost pixel and 1 meaning foreground.
func decodeBinaryBitmap(data []byte) (*raster.Raster, error) {
	header, pos, err := binaryHeader(data, 3)
	if err != nil {
		return nil, err
	}
	w, h, err := parseDims(header[1], header[2])
	if err != nil {
		return nil, err
	}

	rowBytes := (w + 7) / 8
	if len(data)-pos != h*rowBytes {
		return nil, raster.FormatErrorf("P4 has %d data bytes, need %d", len(data)-pos, h*rowBytes)
	}
	im := raster.New(h, w, 1)
	for y := 0; y < h; y++ {
		row := data[pos+y*rowBytes:]
		for x := 0; x < w; x++ {
			if row[x/8]&(1<<(7-uint(x%8))) != 0 {
				im.Set(y, x, 0, 1)
			}
		}
	}
	return im, nil
}

// decodeBinary handles P5 and P6. A maxval above 255 switches to 16-bit
// big-endian samples.
func decodeBinary(data []byte, magic string) (*raster.Raster, error) {
	nc := 1
	if magic == "P6" {
		nc = 3
	}
	header, pos, err := binaryHeader(data, 4)
	if err != nil {
		return nil, err
	}
	w, h, err := parseDims(header[1], header[2])
	if err != nil {
		return nil, err
	}
	maxVal, err := parseMaxVal(header[3])
	if err != nil {
		return nil, err
	}

	want := w * h * nc
	im := raster.New(h, w, nc)
	if maxVal > 255 {
		if len(data)-pos != 2*want {
			return nil, raster.FormatErrorf("%s has %d data bytes, need %d", magic, len(data)-pos, 2*want)
		}
		for i := 0; i < want; i++ {
			im.Data[i] = float64(uint16(data[pos+2*i])<<8 | uint16(data[pos+2*i+1]))
		}
	} else {
		if len(data)-pos != want {
			return nil, raster.FormatErrorf("%s has %d data bytes, need %d", magic, len(data)-pos, want)
		}
		for i := 0; i < want; i++ {
			im.Data[i] = float64(data[pos+i])
		}
	}
	return im, nil
}

// Encode serializes a raster as the requested PBMPLUS variant. Bitmap and
// grayscale variants require a single-channel raster and RGB variants a
// three-channel one; anything else fails with raster.ErrDimension.
//
// Samples are clamped to [0, maxval] and truncated to integers on the
// way out. With Options.Stretch the samples are first contrast-stretched
// to the full output range (on a copy; the input raster is untouched).
func Encode(im *raster.Raster, v Variant, opts Options) ([]byte, error) {
	if im.Channels != v.channels() {
		return nil, raster.DimensionErrorf("%s needs %d channels, raster has %d",
			v, v.channels(), im.Channels)
	}

	maxVal := 255
	if opts.BigGreys && v == P5 {
		maxVal = 65535
	}
	if v == P1 || v == P4 {
		maxVal = 1
	}
	src := im
	if opts.Stretch {
		src = im.Clone()
		src.ContrastStretch(0, float64(maxVal))
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n%d %d\n", v, src.Width, src.Height)
	if v.hasMaxVal() {
		fmt.Fprintf(&buf, "%d\n", maxVal)
	}

	switch v {
	case P1:
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				if src.At(y, x, 0) != 0 {
					buf.WriteByte('1')
				} else {
					buf.WriteByte('0')
				}
			}
			buf.WriteByte('\n')
		}
	case P2, P3:
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				for c := 0; c < src.Channels; c++ {
					if x > 0 || c > 0 {
						buf.WriteByte(' ')
					}
					fmt.Fprintf(&buf, "%d", quantize(src.At(y, x, c), maxVal))
				}
			}
			buf.WriteByte('\n')
		}
	case P4:
		rowBytes := (src.Width + 7) / 8
		row := make([]byte, rowBytes)
		for y := 0; y < src.Height; y++ {
			for i := range row {
				row[i] = 0
			}
			for x := 0; x < src.Width; x++ {
				if src.At(y, x, 0) != 0 {
					row[x/8] |= 1 << (7 - uint(x%8))
				}
			}
			buf.Write(row)
		}
	case P5, P6:
		for i := 0; i < len(src.Data); i++ {
			q := quantize(src.Data[i], maxVal)
			if maxVal > 255 {
				buf.WriteByte(byte(q >> 8))
				buf.WriteByte(byte(q))
			} else {
				buf.WriteByte(byte(q))
			}
		}
	default:
		return nil, raster.FormatErrorf("cannot encode variant %s", v)
	}
	return buf.Bytes(), nil
}

func quantize(v float64, maxVal int) int {
	q := int(v)
	if q < 0 {
		q = 0
	}
	if q > maxVal {
		q = maxVal
	}
	return q
}

func parseDims(ws, hs string) (w, h int, err error) {
	w, err = strconv.Atoi(ws)
	if err != nil || w <= 0 {
		return 0, 0, raster.FormatErrorf("bad width token %q", ws)
	}
	h, err = strconv.Atoi(hs)
	if err != nil || h <= 0 {
		return 0, 0, raster.FormatErrorf("bad height token %q", hs)
	}
	return w, h, nil
}

func parseMaxVal(s string) (int, error) {
	mv, err := strconv.Atoi(s)
	if err != nil || mv <= 0 {
		return 0, raster.FormatErrorf("bad maxval token %q", s)
	}
	return mv, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// tokenize splits the whole stream into whitespace-delimited tokens,
// dropping '#' comments that run to the end of the physical line. Used
// by the ASCII variants, whose pixel data is also textual.
func tokenize(data []byte) []string {
	var tokens []string
	i := 0
	for i < len(data) {
		switch {
		case isSpace(data[i]):
			i++
		case data[i] == '#':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		default:
			start := i
			for i < len(data) && !isSpace(data[i]) && data[i] != '#' {
				i++
			}
			tokens = append(tokens, string(data[start:i]))
		}
	}
	return tokens
}

// binaryHeader collects n whitespace-delimited header tokens (with the
// same comment rule as tokenize) and returns the offset of the first
// pixel byte, which follows the single whitespace byte terminating the
// header.
func binaryHeader(data []byte, n int) ([]string, int, error) {
	var tokens []string
	i := 0
	for len(tokens) < n {
		if i >= len(data) {
			return nil, 0, raster.FormatErrorf("truncated header: %d of %d tokens", len(tokens), n)
		}
		switch {
		case isSpace(data[i]):
			i++
		case data[i] == '#':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		default:
			start := i
			for i < len(data) && !isSpace(data[i]) && data[i] != '#' {
				i++
			}
			tokens = append(tokens, string(data[start:i]))
		}
	}
	if i >= len(data) || !isSpace(data[i]) {
		return nil, 0, raster.FormatErrorf("missing whitespace after header")
	}
	return tokens, i + 1, nil
}
