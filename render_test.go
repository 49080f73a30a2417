package textfx

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/gogpu/textfx/internal/filter"
	intImage "github.com/gogpu/textfx/internal/image"
	"github.com/gogpu/textfx/text"
)

// testRender draws objs on a w×h default canvas with the built-in font.
func testRender(t *testing.T, w, h int, objs []TextObject, opts ...RendererOption) *image.RGBA {
	t.Helper()
	canvas, err := NewCanvas(w, h, DefaultBackground)
	if err != nil {
		t.Fatal(err)
	}
	out, err := NewRenderer(opts...).Render(context.Background(), canvas, objs)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out.Flatten()
}

// glyphMask returns the coverage mask of o placed at its anchor.
func glyphMask(o TextObject) *image.Alpha {
	o.Normalize()
	face := NewRenderer().Fonts().Resolve(o.Font, float64(o.FontSize))
	mask := text.Rasterize(face, text.Shape(o.Text, face))
	mask.Rect = mask.Rect.Add(o.Anchor())
	return mask
}

// solidPixel returns a point where mask is fully covered.
func solidPixel(t *testing.T, mask *image.Alpha) image.Point {
	t.Helper()
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x, y).A == 255 {
				return image.Pt(x, y)
			}
		}
	}
	t.Fatal("mask has no solid pixel")
	return image.Point{}
}

// findPixel returns the first point of r, in row order, matching want.
func findPixel(t *testing.T, r image.Rectangle, want func(image.Point) bool) image.Point {
	t.Helper()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if p := image.Pt(x, y); want(p) {
				return p
			}
		}
	}
	t.Fatal("no pixel matches")
	return image.Point{}
}

// deepPixel returns a point whose whole (2r+1)² neighbourhood is fully
// covered by mask.
func deepPixel(t *testing.T, mask *image.Alpha, r int) image.Point {
	t.Helper()
	return findPixel(t, mask.Bounds(), func(p image.Point) bool {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if mask.AlphaAt(p.X+dx, p.Y+dy).A != 255 {
					return false
				}
			}
		}
		return true
	})
}

func coverage(m *image.Alpha, p image.Point) uint8 {
	return m.AlphaAt(p.X, p.Y).A
}

var background = color.RGBA{20, 20, 30, 255}

func TestRenderEmptyTextSkipped(t *testing.T) {
	img := testRender(t, 20, 20, []TextObject{NewTextObject("")})
	for y := range 20 {
		for x := range 20 {
			if got := img.RGBAAt(x, y); got != background {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
}

func TestRenderPlainFill(t *testing.T) {
	o := NewTextObject("H")
	o.X, o.Y, o.FontSize = 10, 10, 40
	o.Color = "#ff0000"

	img := testRender(t, 120, 80, []TextObject{o})
	p := solidPixel(t, glyphMask(o))
	if got := img.RGBAAt(p.X, p.Y); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("glyph pixel = %v, want opaque red", got)
	}
	if got := img.RGBAAt(115, 75); got != background {
		t.Errorf("far pixel = %v, want background", got)
	}
}

func TestRenderLaterObjectWins(t *testing.T) {
	first := NewTextObject("H")
	first.X, first.Y, first.FontSize = 10, 10, 40
	first.Color = "#ff0000"
	second := first
	second.Color = "#0000ff"

	img := testRender(t, 120, 80, []TextObject{first, second})
	p := solidPixel(t, glyphMask(first))
	if got := img.RGBAAt(p.X, p.Y); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("overlap pixel = %v, want blue", got)
	}
}

func TestRenderOutlineOnlyHollow(t *testing.T) {
	o := NewTextObject("H")
	o.X, o.Y, o.FontSize = 20, 10, 48
	o.Color = "#ffff00"
	o.OutlineOnly = true

	img := testRender(t, 140, 100, []TextObject{o})
	mask := glyphMask(o)

	p := solidPixel(t, mask)
	if got := img.RGBAAt(p.X, p.Y); got != background {
		t.Errorf("interior pixel = %v, want background", got)
	}

	ring := filter.Ring(mask, outlineMinWidth)
	var painted bool
	b := ring.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !painted; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if ring.AlphaAt(x, y).A == 255 {
				painted = img.RGBAAt(x, y) == color.RGBA{255, 255, 0, 255}
				break
			}
		}
	}
	if !painted {
		t.Error("no opaque yellow pixel on the outline ring")
	}
}

func TestRenderOpacity(t *testing.T) {
	o := NewTextObject("H")
	o.X, o.Y, o.FontSize = 10, 10, 40
	o.Opacity = 0

	img := testRender(t, 100, 70, []TextObject{o})
	p := solidPixel(t, glyphMask(o))
	if got := img.RGBAAt(p.X, p.Y); got != background {
		t.Errorf("transparent object changed pixel to %v", got)
	}

	o.Opacity = 0.5
	o.Color = "#ffffff"
	img = testRender(t, 100, 70, []TextObject{o})
	got := img.RGBAAt(p.X, p.Y)
	// 128/255 of white over the background.
	want := uint8((255*128 + 20*127 + 127) / 255)
	if absDiff(got.R, want) > 1 {
		t.Errorf("half-opaque pixel = %v, want R about %d", got, want)
	}
}

func TestRenderShadowIgnoresOpacity(t *testing.T) {
	o := NewTextObject("H")
	o.X, o.Y, o.FontSize = 10, 10, 40
	o.Opacity = 0
	o.Shadow = true
	o.ShadowColor = "#ffffff"
	o.ShadowBlur = 1

	img := testRender(t, 100, 70, []TextObject{o})
	p := solidPixel(t, glyphMask(o)).Add(image.Pt(o.ShadowX+1, o.ShadowY+1))
	got := img.RGBAAt(p.X, p.Y)
	if got.R <= background.R+40 {
		t.Errorf("shadow pixel = %v, want a visible light shadow", got)
	}
}

func TestShadowLayerFixedAlpha(t *testing.T) {
	o := NewTextObject("H")
	o.X, o.Y, o.FontSize = 10, 10, 200
	o.Shadow, o.ShadowBlur = true, 1
	o.ShadowColor = "#ff0000"
	o.Opacity = 0.3

	b := NewRenderer(WithLayerPool(0)).prepare(o, image.Pt(260, 260))
	img := b.shadowLayer().Image()

	var peak uint8
	for i := 3; i < len(img.Pix); i += 4 {
		peak = max(peak, img.Pix[i])
	}
	if peak != ShadowAlpha {
		t.Errorf("peak shadow alpha = %d, want %d", peak, ShadowAlpha)
	}

	// The middle stamp, well inside a stem, is untouched by the blur.
	p := deepPixel(t, glyphMask(o), 4).Add(image.Pt(o.ShadowX+1, o.ShadowY+1))
	if got := img.RGBAAt(p.X, p.Y); got != (color.RGBA{ShadowAlpha, 0, 0, ShadowAlpha}) {
		t.Errorf("shadow interior = %v, want red at alpha %d", got, ShadowAlpha)
	}
}

func TestRenderGlowSpreadsOutside(t *testing.T) {
	o := NewTextObject("I")
	o.X, o.Y, o.FontSize = 40, 10, 40
	o.Color = "#00ff00"

	plain := testRender(t, 120, 70, []TextObject{o})
	o.Glow = true
	glow := testRender(t, 120, 70, []TextObject{o})

	ink := text.InkBounds(glyphMask(o))
	spot := image.Pt(ink.Min.X-4, (ink.Min.Y+ink.Max.Y)/2)
	if got := plain.RGBAAt(spot.X, spot.Y); got != background {
		t.Fatalf("plain pixel = %v, want background", got)
	}
	if got := glow.RGBAAt(spot.X, spot.Y); got.G <= background.G {
		t.Errorf("glow pixel = %v, want green light", got)
	}
}

func TestRenderConcurrencyDeterministic(t *testing.T) {
	var objs []TextObject
	for i := range 5 {
		o := NewTextObject("Ab")
		o.X, o.Y, o.FontSize = 5+i*15, 5+i*10, 30
		o.Color = []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#00ffff"}[i]
		o.Shadow = i%2 == 0
		o.Neon = i == 1
		o.StrokeWidth = i
		o.DoubleStroke = i == 3
		o.Rotation = float64(i * 7)
		objs = append(objs, o)
	}

	serial := testRender(t, 160, 110, objs, WithConcurrency(1), WithLayerPool(0))
	parallel := testRender(t, 160, 110, objs, WithConcurrency(4))
	if !bytes.Equal(serial.Pix, parallel.Pix) {
		t.Error("parallel render differs from serial render")
	}
}

func TestRenderZeroRotationIsIdentity(t *testing.T) {
	l := newLayer(nil, 10, 10)
	mask := image.NewAlpha(image.Rect(0, 0, 3, 3))
	mask.Pix[4] = 255
	l.fill(mask, image.Pt(2, 2), color.NRGBA{255, 0, 0, 255})

	if got := rotateLayer(l, 0, 5, 5); got != l {
		t.Error("zero rotation replaced the layer")
	}
}

func TestRotateLayerClockwise(t *testing.T) {
	l := newLayer(nil, 40, 40)
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}
	l.fill(mask, image.Pt(8, 8), color.NRGBA{255, 255, 255, 255})

	out := rotateLayer(l, 90, 20, 20)

	if a := out.Image().RGBAAt(30, 10).A; a < 250 {
		t.Errorf("top-right alpha = %d, want the block turned clockwise", a)
	}
	if a := out.Image().RGBAAt(10, 10).A; a != 0 {
		t.Errorf("unrotated spot alpha = %d, want 0", a)
	}
	if a := out.Image().RGBAAt(10, 30).A; a != 0 {
		t.Errorf("bottom-left alpha = %d, want 0 (counterclockwise)", a)
	}
	if !out.Content().Intersect(image.Rect(28, 8, 32, 12)).Eq(image.Rect(28, 8, 32, 12)) {
		t.Errorf("content %v does not cover the rotated block", out.Content())
	}
}

func TestRotationCenter(t *testing.T) {
	mask := image.NewAlpha(image.Rect(0, 0, 20, 20))
	for y := 5; y < 15; y++ {
		for x := 2; x < 9; x++ {
			mask.Pix[mask.PixOffset(x, y)] = 255
		}
	}
	b := &objectBuild{mask: mask, at: image.Pt(100, 50), size: image.Pt(300, 200)}
	if cx, cy := b.rotationCenter(); cx != 103 || cy != 55 {
		t.Errorf("center = (%v,%v), want (103,55)", cx, cy)
	}

	b.mask = image.NewAlpha(image.Rectangle{})
	if cx, cy := b.rotationCenter(); cx != 150 || cy != 100 {
		t.Errorf("empty-ink center = (%v,%v), want layer center", cx, cy)
	}
}

func TestDoubleStrokeWidths(t *testing.T) {
	tests := []struct {
		stroke       int
		double       bool
		outer, inner int
		ok           bool
	}{
		{2, true, 7, 4, true},
		{0, true, 0, 0, false},
		{2, false, 0, 0, false},
	}
	for _, tt := range tests {
		o := NewTextObject("x")
		o.StrokeWidth, o.DoubleStroke = tt.stroke, tt.double
		outer, inner, ok := doubleStrokeWidths(&o)
		if outer != tt.outer || inner != tt.inner || ok != tt.ok {
			t.Errorf("stroke %d double %v: got (%d,%d,%v), want (%d,%d,%v)",
				tt.stroke, tt.double, outer, inner, ok, tt.outer, tt.inner, tt.ok)
		}
	}
}

func TestRenderDoubleStrokeBands(t *testing.T) {
	o := NewTextObject("H")
	o.X, o.Y, o.FontSize = 20, 10, 60
	o.Color, o.StrokeColor = "#00ff00", "#0000ff"
	o.StrokeWidth, o.DoubleStroke = 2, true

	mask := glyphMask(o)
	outer := filter.Dilate(mask, o.StrokeWidth+doubleStrokeOuter)
	inner := filter.Dilate(mask, o.StrokeWidth+doubleStrokeInner)

	whiteBand := findPixel(t, outer.Bounds(), func(p image.Point) bool {
		return coverage(outer, p) == 255 && coverage(inner, p) == 0
	})
	strokeBand := findPixel(t, inner.Bounds(), func(p image.Point) bool {
		return coverage(inner, p) == 255 && coverage(mask, p) == 0
	})
	interior := solidPixel(t, mask)

	img := testRender(t, 160, 120, []TextObject{o})
	tests := []struct {
		name string
		at   image.Point
		want color.RGBA
	}{
		{"outer band", whiteBand, color.RGBA{255, 255, 255, 255}},
		{"inner band", strokeBand, color.RGBA{0, 0, 255, 255}},
		{"interior", interior, color.RGBA{0, 255, 0, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.at.X, tt.at.Y); got != tt.want {
			t.Errorf("%s pixel %v = %v, want %v", tt.name, tt.at, got, tt.want)
		}
	}

	o.Opacity = 0.5
	img = testRender(t, 160, 120, []TextObject{o})
	got := img.RGBAAt(whiteBand.X, whiteBand.Y)
	want := uint8((255*128 + 20*127 + 127) / 255)
	if absDiff(got.R, want) > 1 || absDiff(got.G, want) > 1 {
		t.Errorf("half-opaque outer band = %v, want white at alpha 128 (R about %d)", got, want)
	}
}

func TestRenderStrokeUnderFill(t *testing.T) {
	o := NewTextObject("H")
	o.X, o.Y, o.FontSize = 20, 10, 60
	o.Color, o.StrokeColor = "#00ff00", "#ff00ff"
	o.StrokeWidth = 3

	mask := glyphMask(o)
	ring := filter.Dilate(mask, 3)
	near, nearer := filter.Dilate(mask, 5), filter.Dilate(mask, 4)

	band := findPixel(t, ring.Bounds(), func(p image.Point) bool {
		return coverage(ring, p) == 255 && coverage(mask, p) == 0
	})
	outside := findPixel(t, near.Bounds(), func(p image.Point) bool {
		return coverage(near, p) > 0 && coverage(nearer, p) == 0
	})

	img := testRender(t, 160, 120, []TextObject{o})
	if got := img.RGBAAt(band.X, band.Y); got != (color.RGBA{255, 0, 255, 255}) {
		t.Errorf("stroke band = %v, want magenta", got)
	}
	if p := solidPixel(t, mask); img.RGBAAt(p.X, p.Y) != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("interior = %v, want green fill over the stroke", img.RGBAAt(p.X, p.Y))
	}
	if got := img.RGBAAt(outside.X, outside.Y); got != background {
		t.Errorf("pixel past the stroke = %v, want background", got)
	}
}

func TestBuildReleasesStackOnFailure(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name  string
		ctx   context.Context
		panic bool
	}{
		// A nil mask makes the shadow stage panic after the stack is taken.
		{"panic", context.Background(), true},
		{"canceled", canceled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := intImage.NewPool(1)
			seed := pool.Get(8, 8)
			pool.Put(seed)

			o := NewTextObject("x")
			o.Shadow = tt.panic
			b := &objectBuild{r: &Renderer{pool: pool}, obj: &o, size: image.Pt(8, 8)}
			if !tt.panic {
				b.mask = image.NewAlpha(image.Rectangle{})
			}

			func() {
				defer func() {
					if p := recover(); (p != nil) != tt.panic {
						t.Errorf("recovered %v, want panic %v", p, tt.panic)
					}
				}()
				if l, err := b.build(tt.ctx); l != nil || err == nil {
					t.Errorf("build = %v, %v; want failure", l, err)
				}
			}()

			if got := pool.Get(8, 8); got != seed {
				t.Error("stack buffer was not returned to the pool")
			}
		})
	}
}

func TestDrawModeAndHalo(t *testing.T) {
	o := NewTextObject("x")
	if o.mode() != modeFill || o.haloRadii() != nil {
		t.Errorf("plain object: mode %v halo %v", o.mode(), o.haloRadii())
	}
	o.StrokeWidth = 2
	if o.mode() != modeStrokeFill {
		t.Errorf("stroked object mode = %v", o.mode())
	}
	o.OutlineOnly = true
	if o.mode() != modeOutline {
		t.Errorf("outline object mode = %v", o.mode())
	}
	o.Glow = true
	if len(o.haloRadii()) != 1 || o.haloRadii()[0] != 7 {
		t.Errorf("glow radii = %v", o.haloRadii())
	}
	o.Neon = true
	if len(o.haloRadii()) != 4 {
		t.Errorf("neon should win over glow, radii = %v", o.haloRadii())
	}
}

func TestFillColorGradient(t *testing.T) {
	o := NewTextObject("x")
	o.Color = "#ff0000"
	o.Gradient = true
	o.GradientColor2 = "#0000ff"
	b := &objectBuild{obj: &o, alpha: 200, text: ParseHex(o.Color, 200)}

	want := color.NRGBA{127, 0, 127, 200}
	if got := b.fillColor(); got != want {
		t.Errorf("fillColor = %v, want %v", got, want)
	}
	o.Gradient = false
	if got := b.fillColor(); got != b.text {
		t.Errorf("fillColor without gradient = %v", got)
	}
}

func TestRenderPanicBecomesRenderError(t *testing.T) {
	canvas, err := NewCanvas(10, 10, DefaultBackground)
	if err != nil {
		t.Fatal(err)
	}
	// A renderer without a font set panics on resolve.
	r := &Renderer{shaper: text.NewShaper(), concurrency: 1}

	_, err = r.Render(context.Background(), canvas, []TextObject{NewTextObject(""), NewTextObject("boom")})
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *RenderError", err)
	}
	if re.Index != 1 {
		t.Errorf("Index = %d, want 1", re.Index)
	}
	if !strings.Contains(re.Trace, "goroutine") {
		t.Errorf("Trace does not look like a stack: %q", re.Trace)
	}
}

func TestRenderCanceled(t *testing.T) {
	canvas, err := NewCanvas(10, 10, DefaultBackground)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewRenderer().Render(ctx, canvas, []TextObject{NewTextObject("x")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if _, err := NewRenderer().Render(ctx, nil, nil); !errors.Is(err, ErrNilCanvas) {
		t.Errorf("nil canvas err = %v", err)
	}
}

func TestRenderRequestEmpty(t *testing.T) {
	data, err := NewRenderer().RenderRequest(context.Background(), Request{Width: 10, Height: 10})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	for y := range 10 {
		for x := range 10 {
			if got := color.RGBAModel.Convert(img.At(x, y)); got != background {
				t.Fatalf("pixel (%d,%d) = %v, want background", x, y, got)
			}
		}
	}
}
