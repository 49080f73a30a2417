package textfx

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	intImage "github.com/gogpu/textfx/internal/image"
	"github.com/gogpu/textfx/text"
)

// rotationCenter returns the point the object turns about: the anchor
// plus half the ink box, in whole pixels. Without ink it is the layer
// center.
func (b *objectBuild) rotationCenter() (float64, float64) {
	ink := text.InkBounds(b.mask)
	if ink.Empty() {
		return float64(b.size.X) / 2, float64(b.size.Y) / 2
	}
	return float64(b.at.X + ink.Dx()/2), float64(b.at.Y + ink.Dy()/2)
}

// rotateLayer returns l turned clockwise on screen by degrees about
// (cx, cy), sampled bilinearly. The layer keeps its bounds; pixels
// turned outside are clipped. l is released.
func rotateLayer(l *Layer, degrees, cx, cy float64) *Layer {
	if degrees == 0 || l.dirty.Empty() {
		return l
	}

	m := intImage.RotateAt(degrees*math.Pi/180, cx, cy)
	out := newLayer(l.pool, l.img.Rect.Dx(), l.img.Rect.Dy())
	xdraw.BiLinear.Transform(out.img, m.Aff3(), l.img, l.dirty, xdraw.Src, nil)
	out.dirty = transformedBounds(m, l.dirty).Intersect(out.img.Rect)

	l.release()
	return out
}

// transformedBounds returns the pixel box holding r after m, with one
// pixel of margin for the filter footprint.
func transformedBounds(m intImage.Affine, r image.Rectangle) image.Rectangle {
	corners := [4][2]float64{
		{float64(r.Min.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Min.Y)},
		{float64(r.Min.X), float64(r.Max.Y)},
		{float64(r.Max.X), float64(r.Max.Y)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := m.TransformPoint(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return image.Rect(
		int(math.Floor(minX))-1,
		int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1,
		int(math.Ceil(maxY))+1,
	)
}
