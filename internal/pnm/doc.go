// Package pnm implements a bit-exact codec for the PBMPLUS (NETPBM)
// family of image formats.
//
// Six variants are supported, identified by the 2-byte magic at the
// start of the stream:
//
//	ASCII  binary  content
//	P1     P4      bitmap
//	P2     P5      grayscale
//	P3     P6      RGB colour
//
// The header is a run of whitespace-delimited tokens (width, height, and
// for grayscale/colour variants a maxval); a '#' starts a comment that
// runs to the end of the physical line and may appear between any two
// tokens. Exactly one whitespace byte separates the final header token
// from binary pixel data.
//
// Decoded sample values are stored as-is: the maxval is validated but
// not used to rescale pixels, so an 8-bit file decodes to values in
// [0, 255]. Encoding a raster that was decoded from a canonical file
// (and not modified) reproduces the original bytes exactly for all six
// variants; this round-trip property is what the rest of the module
// relies on for lossless storage.
package pnm
