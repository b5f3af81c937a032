// Package detect implements peak-based feature detectors over
// single-channel rasters: the Harris and Moravec corner detectors and a
// straight-line Hough transform. All three report their findings through
// the shared peak primitive.
//
// A Peak is a (value, row, col) triple. The shared finder accepts a cell
// as a peak only when it is strictly greater than all 8 of its
// neighbours and exceeds a magnitude floor; results are sorted
// descending by value with ties broken by row-major encounter order.
//
// Every detector reads its input raster without modifying it and runs
// synchronously to completion; there are no internal yield points, so a
// caller that needs to abort a long pass must chunk the work externally.
package detect
