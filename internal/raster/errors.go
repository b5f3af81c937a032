package raster

import (
	"errors"
	"fmt"
)

// ErrFormat reports malformed encoded image data: an unrecognized magic
// number, a truncated header, or a token/pixel-count mismatch. A decode
// that fails with ErrFormat returns no partial raster.
var ErrFormat = errors.New("invalid image format")

// ErrDimension reports a channel-count mismatch between rasters that are
// being compared, inserted or otherwise combined.
var ErrDimension = errors.New("channel count mismatch")

// FormatErrorf wraps ErrFormat with detail text so callers can both test
// with errors.Is(err, ErrFormat) and read what went wrong.
func FormatErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

// DimensionErrorf wraps ErrDimension with detail text.
func DimensionErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDimension, fmt.Sprintf(format, args...))
}
