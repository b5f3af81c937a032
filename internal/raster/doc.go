// Package raster provides the shared image buffer used by every other
// package in this module.
//
// A Raster is a dense height x width x channels grid of float64 samples
// stored row-major with the channel index innermost, mirroring the
// image[row, col, channel] convention of scientific image processing.
// The channel dimension is always explicit, even for single-channel
// images, so grayscale and colour data flow through the same code paths.
//
// # Coordinate System
//
// All pixel coordinates are 0-based:
//   - Y (row): vertical position, 0 = topmost row
//   - X (col): horizontal position, 0 = leftmost column
//   - C: channel index, 0-based
//
// # Value Range
//
// Samples are float64 and carry no implied range. The PNM codec and the
// loader produce values in [0, 255] (or [0, 65535] for 16-bit input) but
// nothing in this package enforces a range; this permits images captured
// from sensors with more than 8 bits of dynamic range to be processed
// without premature rounding.
//
// # Mutate vs Return Semantics
//
// Each operation documents whether it mutates its receiver in place or
// returns a new Raster. The choice is fixed per operation, never
// caller-selectable: drawing and in-place filters require exclusive
// write access to the buffer for the duration of the call, while
// "returns new" operations allocate a fresh output buffer and leave
// their input untouched.
//
// # Error Handling
//
// Two sentinel errors classify the fatal conditions:
//   - ErrFormat: malformed encoded data (bad magic, token/pixel mismatch)
//   - ErrDimension: channel-count mismatch between combined rasters
//
// Out-of-bounds coordinates are never an error; callers of the drawing
// primitives get silent clipping instead.
package raster
