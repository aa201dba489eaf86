// Package pngenc converts decoded page image data into PNG data URLs for
// use as SVG image hrefs.
//
// Three pixel layouts are supported: 1-bit grayscale (bit-packed rows),
// 24-bit RGB, and 32-bit RGBA. When encoding for an SVG mask the 1-bit
// samples are inverted first, because a PDF image mask paints where the
// sample is zero while an SVG mask shows content where the luminance is
// white.
package pngenc
