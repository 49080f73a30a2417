// Package text loads fonts, shapes strings into positioned glyphs and
// rasterizes them into coverage masks.
//
// Shaping goes through go-text/typesetting's HarfBuzz port so complex
// scripts such as Bengali get their conjuncts and vowel signs reordered.
// Line metrics come from golang.org/x/image/font/sfnt and outlines are
// filled with golang.org/x/image/vector.
//
// Basic usage:
//
//	src, err := text.NewFontSourceFromFile("NotoSansBengali-Regular.ttf")
//	if err != nil {
//		return err
//	}
//	face := src.Face(60)
//	run := text.Shape("বাংলা", face)
//	mask := text.Rasterize(face, run)
//
// The mask's bounds are relative to the top-left layout anchor, so
// drawing it at mask.Bounds().Add(anchor) places the ink where the text
// belongs.
package text
