package textfx

import (
	"image/color"

	"github.com/gogpu/textfx/internal/filter"
)

// Stroke widths added on top of StrokeWidth by the double stroke, and the
// minimum width of an outline-only stroke.
const (
	doubleStrokeOuter = 5
	doubleStrokeInner = 2
	outlineMinWidth   = 3
)

// strokePass paints the ring of the given width around the glyphs.
// The glyph interior is left untouched.
func (b *objectBuild) strokePass(stack *Layer, width int, c color.NRGBA) {
	if width <= 0 || b.mask.Bounds().Empty() {
		return
	}
	stack.fill(filter.Ring(b.mask, width), b.at, c)
}

// doubleStrokeWidths returns the outer and inner widths of the double
// stroke, or ok false when the object has none.
func doubleStrokeWidths(o *TextObject) (outer, inner int, ok bool) {
	if !o.DoubleStroke || o.StrokeWidth <= 0 {
		return 0, 0, false
	}
	return o.StrokeWidth + doubleStrokeOuter, o.StrokeWidth + doubleStrokeInner, true
}

// doubleStrokeLayers paints the white outer ring then the inner ring in
// the stroke color.
func (b *objectBuild) doubleStrokeLayers(stack *Layer) {
	outer, inner, ok := doubleStrokeWidths(b.obj)
	if !ok {
		return
	}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: b.alpha}
	b.strokePass(stack, outer, white)
	b.strokePass(stack, inner, b.stroke)
}

// fillColor is the text color, or its average with GradientColor2 when
// the object asks for a gradient.
func (b *objectBuild) fillColor() color.NRGBA {
	if !b.obj.Gradient {
		return b.text
	}
	return Average(b.text, ParseHex(b.obj.GradientColor2, b.alpha))
}

// fillLayer draws the final fill in the object's draw mode.
func (b *objectBuild) fillLayer(stack *Layer) {
	c := b.fillColor()
	switch b.obj.mode() {
	case modeOutline:
		b.strokePass(stack, max(b.obj.StrokeWidth, outlineMinWidth), c)
	case modeStrokeFill:
		b.strokePass(stack, b.obj.StrokeWidth, b.stroke)
		stack.fill(b.mask, b.at, c)
	default:
		stack.fill(b.mask, b.at, c)
	}
}
