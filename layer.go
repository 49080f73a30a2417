package textfx

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/textfx/internal/blend"
	"github.com/gogpu/textfx/internal/filter"
	intImage "github.com/gogpu/textfx/internal/image"
)

// Layer is a canvas-sized premultiplied RGBA buffer.
//
// A Layer tracks the rectangle that may hold non-transparent pixels, so
// blur and composition only touch that area. The canvas itself is a
// Layer whose content covers its whole bounds.
type Layer struct {
	img   *image.RGBA
	dirty image.Rectangle
	pool  *intImage.Pool
}

// NewCanvas returns a w×h canvas filled with the opaque color bg.
func NewCanvas(w, h int, bg color.NRGBA) (*Layer, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
	return &Layer{img: img, dirty: img.Bounds()}, nil
}

// CanvasFromImage returns a canvas holding src resampled to exactly w×h.
func CanvasFromImage(src image.Image, w, h int) (*Layer, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	img := intImage.Resample(src, w, h)
	return &Layer{img: img, dirty: img.Bounds()}, nil
}

// newLayer returns a transparent w×h layer, from pool when it is set.
func newLayer(pool *intImage.Pool, w, h int) *Layer {
	var img *image.RGBA
	if pool != nil {
		img = pool.Get(w, h)
	} else {
		img = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return &Layer{img: img, pool: pool}
}

// Bounds returns the layer rectangle, always anchored at the origin.
func (l *Layer) Bounds() image.Rectangle {
	return l.img.Rect
}

// Image returns the premultiplied pixels of the layer.
func (l *Layer) Image() *image.RGBA {
	return l.img
}

// Content returns the rectangle that may hold non-transparent pixels.
func (l *Layer) Content() image.Rectangle {
	return l.dirty
}

// Composite draws src over l with premultiplied source-over.
// The two layers must have the same size.
func (l *Layer) Composite(src *Layer) {
	r := src.dirty.Intersect(l.img.Rect)
	if r.Empty() {
		return
	}
	n := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		d := l.img.Pix[l.img.PixOffset(r.Min.X, y):]
		s := src.img.Pix[src.img.PixOffset(r.Min.X, y):]
		blend.SourceOverSpan(d, s, n)
	}
	l.dirty = l.dirty.Union(r)
}

// Flatten returns an opaque copy of the layer: color is un-premultiplied
// and alpha is dropped.
func (l *Layer) Flatten() *image.RGBA {
	b := l.img.Rect
	out := image.NewRGBA(b)
	src, dst := l.img.Pix, out.Pix
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0], dst[i+1], dst[i+2] = blend.Unpremultiply(src[i+0], src[i+1], src[i+2], src[i+3])
		dst[i+3] = 0xff
	}
	return out
}

// fill paints c through mask placed at offset at, with source-over.
func (l *Layer) fill(mask *image.Alpha, at image.Point, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	r := mask.Bounds().Add(at).Intersect(l.img.Rect)
	if r.Empty() {
		return
	}
	mp := r.Min.Sub(at)
	xdraw.DrawMask(l.img, r, image.NewUniform(c), image.Point{}, mask, mp, xdraw.Over)
	l.dirty = l.dirty.Union(r)
}

// blur applies a Gaussian blur with standard deviation sigma to the
// content of l.
func (l *Layer) blur(sigma float64) {
	if l.dirty.Empty() || sigma <= 0 {
		return
	}
	f := filter.NewBlurFilter(sigma)
	region := f.ExpandBounds(l.dirty).Intersect(l.img.Rect)
	f.Apply(l.img, region)
	l.dirty = region
}

// release returns the pixel buffer to the pool. The layer must not be
// used afterwards.
func (l *Layer) release() {
	if l == nil || l.pool == nil {
		return
	}
	l.pool.Put(l.img)
	l.img = nil
}
