// Package textfx renders styled text overlays onto a base image.
//
// # Overview
//
// Each TextObject carries its own effect stack: drop shadow, neon or soft
// glow halo, double stroke, outline-only mode, a flat two-color gradient
// fill and rotation. Objects are drawn onto their own transparent,
// canvas-sized layer, then composited onto the running canvas in list
// order, so later objects sit on top.
//
// # Quick Start
//
//	set, err := fonts.Open("fonts")
//	if err != nil {
//		return err
//	}
//	r := textfx.NewRenderer(textfx.WithFontSet(set))
//
//	canvas, err := textfx.NewCanvas(800, 600, textfx.DefaultBackground)
//	if err != nil {
//		return err
//	}
//	obj := textfx.NewTextObject("বাংলা টাইপোগ্রাফি")
//	obj.Shadow = true
//	obj.Rotation = 15
//
//	out, err := r.Render(ctx, canvas, []textfx.TextObject{obj})
//	if err != nil {
//		return err
//	}
//	img := out.Flatten()
//
// # Pipeline
//
// For one object the stages run in a fixed order: shadow, halo, double
// stroke, final fill (outline-only, stroke plus fill, or plain fill), then
// rotation of the finished layer. Strokes paint the ring between the
// dilated glyph and the glyph itself, so the glyph interior of a
// stroke-only pass stays transparent.
//
// # Logging
//
// textfx is silent by default. See SetLogger.
package textfx
