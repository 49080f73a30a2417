package textfx

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Fixed alphas and colors of the effect stack.
const (
	// ShadowAlpha is the alpha of every drop shadow, regardless of opacity.
	ShadowAlpha = 160
)

// DefaultBackground is the canvas color when no base image is given.
var DefaultBackground = color.NRGBA{R: 20, G: 20, B: 30, A: 255}

// ParseHex parses "#rrggbb" into a color with the given alpha. Any number
// of leading '#' is stripped, including none. Anything else that is not
// exactly six hex digits yields white.
// ParseHex never fails.
func ParseHex(s string, alpha uint8) color.NRGBA {
	s = strings.TrimLeft(s, "#")
	white := color.NRGBA{R: 255, G: 255, B: 255, A: alpha}
	if len(s) != 6 {
		return white
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return white
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: alpha,
	}
}

// OpacityAlpha converts an opacity in [0, 1] to an 8-bit alpha.
// Out-of-range values are clamped; NaN counts as fully transparent.
func OpacityAlpha(p float64) uint8 {
	if math.IsNaN(p) || p <= 0 {
		return 0
	}
	if p >= 1 {
		return 255
	}
	return uint8(math.Round(p * 255))
}

// Average is the flat stand-in for a two-color gradient: the per-channel
// floor average of a and b, alpha included.
func Average(a, b color.NRGBA) color.NRGBA {
	avg := func(x, y uint8) uint8 { return uint8((uint16(x) + uint16(y)) / 2) }
	return color.NRGBA{
		R: avg(a.R, b.R),
		G: avg(a.G, b.G),
		B: avg(a.B, b.B),
		A: avg(a.A, b.A),
	}
}
