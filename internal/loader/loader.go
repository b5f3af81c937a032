// Package loader is the I/O boundary between common image file formats
// and the raster engine. It decodes PNG, JPEG, GIF, BMP and TIFF files
// into rasters and writes rasters back out as PNG; the bit-exact PNM
// codec lives in the pnm package and is not routed through here.
//
// All format decoding, resampling and colour-space work is delegated to
// the imaging ecosystem; none of it leaks into the algorithmic core.
package loader

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	"image/png"
	"os"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder

	"github.com/ironsheep/raster-tools/internal/raster"
)

// Options controls how a decoded image is prepared before conversion to
// a raster.
type Options struct {
	// Grayscale converts to a single-channel raster; otherwise the
	// raster has three channels.
	Grayscale bool

	// BlurRadius, when positive, applies a Gaussian pre-blur of that
	// radius to the decoded image.
	BlurRadius float64

	// Width and Height, when both positive, resize the decoded image
	// with Lanczos resampling before conversion.
	Width  int
	Height int
}

// Load decodes the image file at path and converts it to a raster with
// samples in [0, 255].
func Load(path string, opts Options) (*raster.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img, opts), nil
}

// FromImage converts an already-decoded image to a raster, applying the
// options' resize, blur and grayscale steps first.
func FromImage(img image.Image, opts Options) *raster.Raster {
	if opts.Width > 0 && opts.Height > 0 {
		img = imaging.Resize(img, opts.Width, opts.Height, imaging.Lanczos)
	}
	if opts.BlurRadius > 0 {
		img = blur.Gaussian(img, opts.BlurRadius)
	}
	if opts.Grayscale {
		img = imaging.Grayscale(img)
	}

	nrgba := imaging.Clone(img)
	w := nrgba.Bounds().Dx()
	h := nrgba.Bounds().Dy()

	if opts.Grayscale {
		out := raster.New(h, w, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := nrgba.PixOffset(x, y)
				out.Set(y, x, 0, float64(nrgba.Pix[i]))
			}
		}
		return out
	}

	out := raster.New(h, w, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := nrgba.PixOffset(x, y)
			out.Set(y, x, 0, float64(nrgba.Pix[i]))
			out.Set(y, x, 1, float64(nrgba.Pix[i+1]))
			out.Set(y, x, 2, float64(nrgba.Pix[i+2]))
		}
	}
	return out
}

// ToImage converts a raster to an 8-bit image, clamping samples to
// [0, 255]. Single-channel rasters become grayscale images and
// three-channel rasters become NRGBA; anything else fails with
// raster.ErrDimension.
func ToImage(im *raster.Raster) (image.Image, error) {
	switch im.Channels {
	case 1:
		out := image.NewGray(image.Rect(0, 0, im.Width, im.Height))
		for y := 0; y < im.Height; y++ {
			for x := 0; x < im.Width; x++ {
				out.SetGray(x, y, color.Gray{Y: clamp8(im.At(y, x, 0))})
			}
		}
		return out, nil
	case 3:
		out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
		for y := 0; y < im.Height; y++ {
			for x := 0; x < im.Width; x++ {
				out.SetNRGBA(x, y, color.NRGBA{
					R: clamp8(im.At(y, x, 0)),
					G: clamp8(im.At(y, x, 1)),
					B: clamp8(im.At(y, x, 2)),
					A: 255,
				})
			}
		}
		return out, nil
	}
	return nil, raster.DimensionErrorf("cannot render %d-channel raster", im.Channels)
}

// SavePNG writes a raster to a PNG file.
func SavePNG(im *raster.Raster, path string) error {
	img, err := ToImage(im)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// ColorSample reports the colour of one raster pixel in several
// renderings.
type ColorSample struct {
	Hex string  `json:"hex"`
	R   uint8   `json:"r"`
	G   uint8   `json:"g"`
	B   uint8   `json:"b"`
	H   float64 `json:"h"`
	S   float64 `json:"s"`
	V   float64 `json:"v"`
}

// SampleColor returns the colour of pixel (y, x). Single-channel
// rasters report their value replicated across R, G and B. Coordinates
// outside the raster are an error.
func SampleColor(im *raster.Raster, y, x int) (*ColorSample, error) {
	if !im.In(y, x) {
		return nil, fmt.Errorf("pixel (%d,%d) outside %dx%d raster", y, x, im.Height, im.Width)
	}
	var r, g, b uint8
	if im.Channels >= 3 {
		r = clamp8(im.At(y, x, 0))
		g = clamp8(im.At(y, x, 1))
		b = clamp8(im.At(y, x, 2))
	} else {
		v := clamp8(im.At(y, x, 0))
		r, g, b = v, v, v
	}

	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, v := c.Hsv()
	return &ColorSample{Hex: c.Hex(), R: r, G: g, B: b, H: h, S: s, V: v}, nil
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
