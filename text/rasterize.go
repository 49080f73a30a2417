package text

import (
	"image"
	"math"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/vector"
)

// Rasterize fills the outlines of run into an 8-bit coverage mask.
//
// The layout anchor is the top-left of the first line, so the first
// baseline sits Ascent pixels below it. The mask bounds are relative to
// that anchor and are tight around the outline control points, which
// may be negative for glyphs that overhang the anchor. A run with no
// outlines yields a mask with empty bounds.
func Rasterize(face *Face, run Run) *image.Alpha {
	if face == nil || face.source == nil || run.Empty() {
		return image.NewAlpha(image.Rectangle{})
	}

	gtFace := font.NewFace(face.source.font)
	scale := float32(face.size / float64(face.source.font.Upem()))
	ascent := face.metrics.Ascent

	var p path
	for _, g := range run.Glyphs {
		data, ok := gtFace.GlyphData(font.GID(g.ID)).(font.GlyphOutline)
		if !ok || len(data.Segments) == 0 {
			continue
		}
		p.appendGlyph(data.Segments, float32(g.X), float32(ascent+g.Y), scale)
	}
	if p.empty() {
		return image.NewAlpha(image.Rectangle{})
	}

	bounds := p.bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))

	z := vector.NewRasterizer(w, h)
	p.replay(z, float32(-bounds.Min.X), float32(-bounds.Min.Y))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	mask.Rect = mask.Rect.Add(bounds.Min)
	return mask
}

// InkBounds returns the smallest rectangle holding every non-zero
// pixel of mask, or an empty rectangle when there is none.
func InkBounds(mask *image.Alpha) image.Rectangle {
	b := mask.Bounds()
	ink := image.Rectangle{}
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := mask.Pix[mask.PixOffset(b.Min.X, y):][:b.Dx()]
		for i, a := range row {
			if a == 0 {
				continue
			}
			x := b.Min.X + i
			if !found {
				ink = image.Rect(x, y, x+1, y+1)
				found = true
				continue
			}
			ink.Min.X = min(ink.Min.X, x)
			ink.Max.X = max(ink.Max.X, x+1)
			ink.Max.Y = y + 1
		}
	}
	return ink
}

// path collects glyph outlines in pixel space with Y down.
type path struct {
	ops  []ot.SegmentOp
	pts  [][2]float32
	minX float32
	minY float32
	maxX float32
	maxY float32
}

func (p *path) empty() bool {
	return len(p.ops) == 0
}

func (p *path) appendGlyph(segs []font.Segment, ox, oy, scale float32) {
	for i := range segs {
		seg := &segs[i]
		p.ops = append(p.ops, seg.Op)
		for _, a := range seg.ArgsSlice() {
			x := ox + a.X*scale
			y := oy - a.Y*scale
			p.add(x, y)
		}
	}
	// Contours are closed at the next MoveTo; mark the glyph end too.
	p.ops = append(p.ops, opClose)
}

func (p *path) add(x, y float32) {
	if len(p.pts) == 0 {
		p.minX, p.maxX, p.minY, p.maxY = x, x, y, y
	} else {
		p.minX = min(p.minX, x)
		p.maxX = max(p.maxX, x)
		p.minY = min(p.minY, y)
		p.maxY = max(p.maxY, y)
	}
	p.pts = append(p.pts, [2]float32{x, y})
}

// bounds returns the integer pixel rectangle covering every point with a
// one pixel margin for antialiasing.
func (p *path) bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(p.minX)))-1,
		int(math.Floor(float64(p.minY)))-1,
		int(math.Ceil(float64(p.maxX)))+1,
		int(math.Ceil(float64(p.maxY)))+1,
	)
}

func (p *path) replay(z *vector.Rasterizer, dx, dy float32) {
	pt := func(i int) (float32, float32) {
		return p.pts[i][0] + dx, p.pts[i][1] + dy
	}
	open := false
	i := 0
	for _, op := range p.ops {
		switch op {
		case ot.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			x, y := pt(i)
			z.MoveTo(x, y)
			open = true
			i++
		case ot.SegmentOpLineTo:
			x, y := pt(i)
			z.LineTo(x, y)
			i++
		case ot.SegmentOpQuadTo:
			bx, by := pt(i)
			cx, cy := pt(i + 1)
			z.QuadTo(bx, by, cx, cy)
			i += 2
		case ot.SegmentOpCubeTo:
			bx, by := pt(i)
			cx, cy := pt(i + 1)
			dx2, dy2 := pt(i + 2)
			z.CubeTo(bx, by, cx, cy, dx2, dy2)
			i += 3
		case opClose:
			if open {
				z.ClosePath()
				open = false
			}
		}
	}
}

// opClose ends a glyph. It is outside the range of ot.SegmentOp values.
const opClose ot.SegmentOp = 0xff
