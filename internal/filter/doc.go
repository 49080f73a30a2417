// Package filter provides the raster filters used by the effect pipeline:
//   - Gaussian blur (separable, premultiplied RGBA, region-limited)
//   - Morphological dilation of alpha masks (stroke rings)
//
// Filters operate on standard library image types so they can be chained
// with image/draw and golang.org/x/image/draw without conversion.
package filter
