// Package draw provides scan-conversion primitives that render onto a
// raster.Raster: lines, circles, regular polygons and stars, a
// similarity-bounded flood fill, and fixed-font text.
//
// Every primitive mutates its target raster in place and requires
// exclusive write access for the duration of the call. Coordinates that
// fall outside the raster are silently skipped, never an error, so
// callers may draw shapes that straddle the image edge.
//
// # Exact vs Anti-Aliased
//
// Lines and circles come in two mutually exclusive flavours:
//
//   - Line and Circle use integer midpoint algorithms whose pixel sets
//     are deterministic and endpoint-order independent. Every written
//     pixel receives exactly the requested value.
//   - LineAA and CircleAA use Wu-style anti-aliasing, blending a pair of
//     straddling pixels per step with opacity derived from the running
//     intercept. They paint a range of values; use the exact variants
//     when downstream code compares pixel values.
//
// The exact line's tie-break rule (error accumulator starts at 0, steps
// by |dy|/dx, and y advances when the accumulator reaches 0.5) is part
// of the package contract and must not be altered: downstream code
// depends on the precise pixel sets it produces.
package draw
