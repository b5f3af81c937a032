package draw

import "github.com/ironsheep/raster-tools/internal/raster"

// Align selects the horizontal alignment of rendered text. Alignment
// only shifts the starting column; glyph rendering is otherwise
// identical.
type Align int

const (
	AlignCenter Align = iota
	AlignLeft
	AlignRight
)

// Text renders a string onto the raster with its baseline at row y,
// growing upward, using the fixed 13-row glyph table. Each glyph bit is
// replicated size times along both axes. Pixels in a glyph are set to v;
// when bg is non-nil, the unset bits of each glyph cell are painted with
// *bg. Characters without a glyph render as blank cells. Out-of-bounds
// pixels are silently skipped. Mutates im.
func Text(im *raster.Raster, text string, y, x int, v float64, size int, bg *float64, align Align) {
	if size < 1 {
		size = 1
	}

	offset := 0
	switch align {
	case AlignRight:
		offset = -glyphWidth * len(text) * size
	case AlignCenter:
		offset = -glyphWidth * len(text) * size / 2
	}

	for _, ch := range text {
		bitmap, ok := glyphs[ch]
		if !ok {
			bitmap = glyphs[' ']
		}
		yy := y
		for row := 0; row < glyphHeight; row++ {
			b := bitmap[row]
			for ys := 0; ys < size; ys++ {
				if yy >= 0 && yy < im.Height {
					xx := x + offset
					for col := 0; col < glyphWidth; col++ {
						bit := uint(glyphWidth - col)
						for xs := 0; xs < size; xs++ {
							if xx >= 0 && xx < im.Width {
								if b&(1<<bit) != 0 {
									im.SetPixel(yy, xx, v)
								} else if bg != nil {
									im.SetPixel(yy, xx, *bg)
								}
							}
							xx++
						}
					}
				}
				yy--
			}
		}
		offset += glyphWidth * size
	}
}
