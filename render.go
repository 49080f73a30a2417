package textfx

import (
	"context"
	"fmt"
	"image"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/textfx/fonts"
	intImage "github.com/gogpu/textfx/internal/image"
	"github.com/gogpu/textfx/text"
)

// Renderer draws TextObjects onto canvases.
//
// Renderer is safe for concurrent use; each Render call owns its canvas.
type Renderer struct {
	fonts       *fonts.Set
	shaper      *text.Shaper
	pool        *intImage.Pool
	concurrency int
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.fonts == nil {
		o.fonts = fonts.Builtin()
	}

	r := &Renderer{
		fonts:       o.fonts,
		shaper:      text.NewShaper(),
		concurrency: max(o.concurrency, 1),
	}
	if o.poolSize > 0 {
		r.pool = intImage.NewPool(o.poolSize)
	}
	return r
}

// Fonts returns the font set the renderer draws with.
func (r *Renderer) Fonts() *fonts.Set {
	return r.fonts
}

// Render draws objects onto canvas in list order and returns it. Objects
// with empty text are skipped.
//
// Up to the configured concurrency, object layers are built in parallel;
// they are always composited in list order, so a later object covers an
// earlier one where they overlap.
//
// Any failure aborts the whole call with a *RenderError, or the context
// error when ctx is done. The canvas content is then unspecified.
func (r *Renderer) Render(ctx context.Context, canvas *Layer, objects []TextObject) (out *Layer, err error) {
	if canvas == nil {
		return nil, ErrNilCanvas
	}
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, panicError(-1, p)
		}
	}()

	todo := make([]int, 0, len(objects))
	for i := range objects {
		if objects[i].Text != "" {
			todo = append(todo, i)
		}
	}

	size := canvas.Bounds().Size()
	for start := 0; start < len(todo); start += r.concurrency {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch := todo[start:min(start+r.concurrency, len(todo))]
		layers := make([]*Layer, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		for j, idx := range batch {
			g.Go(func() error {
				l, err := r.buildObject(gctx, idx, objects[idx], size)
				layers[j] = l
				return err
			})
		}
		if err := g.Wait(); err != nil {
			for _, l := range layers {
				l.release()
			}
			return nil, err
		}

		for _, l := range layers {
			canvas.Composite(l)
			l.release()
		}
	}

	return canvas, nil
}

// buildObject runs the pipeline of one object and returns its finished
// layer. Panics are turned into a *RenderError.
func (r *Renderer) buildObject(ctx context.Context, index int, o TextObject, size image.Point) (l *Layer, err error) {
	defer func() {
		if p := recover(); p != nil {
			l, err = nil, panicError(index, p)
		}
	}()

	b := r.prepare(o, size)
	Logger().Debug("textfx: building object",
		"index", index,
		"font", b.face.Source().Name(),
		"size", b.obj.FontSize,
		"mode", b.obj.mode(),
		"ink", text.InkBounds(b.mask))
	return b.build(ctx)
}

// prepare normalizes o and resolves its colors, face and glyph mask.
func (r *Renderer) prepare(o TextObject, size image.Point) *objectBuild {
	o.Normalize()
	face := r.fonts.Resolve(o.Font, float64(o.FontSize))
	alpha := OpacityAlpha(o.Opacity)
	return &objectBuild{
		r:      r,
		obj:    &o,
		face:   face,
		mask:   text.Rasterize(face, r.shaper.Shape(o.Text, face)),
		at:     o.Anchor(),
		size:   size,
		alpha:  alpha,
		text:   ParseHex(o.Color, alpha),
		stroke: ParseHex(o.StrokeColor, alpha),
	}
}

// build stacks the effect layers of the object. The stack goes back to
// the pool unless it is returned, including when a stage panics.
func (b *objectBuild) build(ctx context.Context) (l *Layer, err error) {
	stack := b.newLayer()
	defer func() {
		if l == nil {
			stack.release()
		}
	}()

	if b.obj.Shadow {
		sl := b.shadowLayer()
		stack.Composite(sl)
		sl.release()
	}
	b.haloLayers(stack)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.doubleStrokeLayers(stack)
	b.fillLayer(stack)

	if b.obj.Rotation != 0 {
		cx, cy := b.rotationCenter()
		stack = rotateLayer(stack, b.obj.Rotation, cx, cy)
	}
	return stack, nil
}

func panicError(index int, p any) *RenderError {
	e := &RenderError{
		Index: index,
		Msg:   fmt.Sprint(p),
		Trace: string(debug.Stack()),
	}
	if err, ok := p.(error); ok {
		e.Err = err
	}
	Logger().Error("textfx: render panic", "index", index, "err", e.Msg)
	return e
}
