package textfx

import (
	"image"
	"image/color"

	"github.com/gogpu/textfx/internal/filter"
	"github.com/gogpu/textfx/text"
)

// Halo blur radii, bottom layer first.
var (
	neonRadii = []float64{12, 8, 4, 2}
	glowRadii = []float64{7}
)

// shadowPasses is how many times the glyphs are stamped into the shadow,
// each one pixel further down and right, to thicken it before the blur.
const shadowPasses = 3

// objectBuild carries the resolved inputs of one object through the
// stages of its pipeline.
type objectBuild struct {
	r     *Renderer
	obj   *TextObject
	face  *text.Face
	mask  *image.Alpha
	at    image.Point
	size  image.Point
	alpha uint8

	text   color.NRGBA
	stroke color.NRGBA
}

func (b *objectBuild) newLayer() *Layer {
	return newLayer(b.r.pool, b.size.X, b.size.Y)
}

// shadowLayer draws the blurred drop shadow. Its alpha is ShadowAlpha
// whatever the object's opacity. The stamps overwrite each other, so
// overlapping stamps stay at ShadowAlpha.
func (b *objectBuild) shadowLayer() *Layer {
	o := b.obj
	offsets := make([]image.Point, shadowPasses)
	for i := range offsets {
		offsets[i] = image.Pt(i, i)
	}
	l := b.newLayer()
	at := b.at.Add(image.Pt(o.ShadowX, o.ShadowY))
	l.fill(filter.Spread(b.mask, offsets...), at, ParseHex(o.ShadowColor, ShadowAlpha))
	l.blur(float64(o.ShadowBlur))
	return l
}

// haloLayer draws the glyphs in the text color blurred by radius.
func (b *objectBuild) haloLayer(radius float64) *Layer {
	l := b.newLayer()
	l.fill(b.mask, b.at, b.text)
	l.blur(radius)
	return l
}

// haloLayers composites the neon or glow halo onto stack.
func (b *objectBuild) haloLayers(stack *Layer) {
	for _, radius := range b.obj.haloRadii() {
		l := b.haloLayer(radius)
		stack.Composite(l)
		l.release()
	}
}
