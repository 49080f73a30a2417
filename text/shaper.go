package text

import (
	"strings"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/norm"
)

// LineSpacing is the extra gap in pixels between consecutive lines of a
// multi-line run.
const LineSpacing = 4

// Shaper converts strings into positioned glyphs using HarfBuzz shaping
// from go-text/typesetting.
//
// Shaper is safe for concurrent use. The HarfBuzz shaper and segmenter
// are pooled since they are not, and a font.Face is created per call
// because it caches mutable lookup state.
type Shaper struct {
	pool sync.Pool
}

type shaperState struct {
	hb  shaping.HarfbuzzShaper
	seg shaping.Segmenter
}

// NewShaper creates a new Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaperState{}
			},
		},
	}
}

// singleFace resolves every rune to the same face.
type singleFace struct{ face *font.Face }

func (f singleFace) ResolveFace(rune) *font.Face { return f.face }

var defaultShaper = NewShaper()

// Shape shapes s with the package-level Shaper.
func Shape(s string, face *Face) Run {
	return defaultShaper.Shape(s, face)
}

// Shape converts s into glyphs laid out left to right. Text is NFC
// normalized first. Each '\n' starts a new line one LineHeight plus
// LineSpacing below the previous one.
func (sh *Shaper) Shape(s string, face *Face) Run {
	if s == "" || face == nil || face.source == nil {
		return Run{}
	}

	s = norm.NFC.String(s)
	gtFace := font.NewFace(face.source.font)
	step := face.metrics.LineHeight() + LineSpacing

	var run Run
	cluster := 0
	for i, line := range strings.Split(s, "\n") {
		runes := []rune(strings.TrimSuffix(line, "\r"))
		run.Lines++
		if len(runes) > 0 {
			glyphs := sh.shapeLine(runes, gtFace, face.size)
			width := appendGlyphs(&run, glyphs, cluster, float64(i)*step)
			run.Width = max(run.Width, width)
		}
		cluster += len([]rune(line)) + 1
	}
	return run
}

// shapeLine splits runes into script runs and shapes them in logical
// order, so a line mixing Bengali and Latin gets the shaping rules of
// each script.
func (sh *Shaper) shapeLine(runes []rune, face *font.Face, size float64) []shaping.Glyph {
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  languageFor(runes),
	}

	st := sh.pool.Get().(*shaperState)
	defer sh.pool.Put(st)

	var glyphs []shaping.Glyph
	for _, in := range st.seg.Split(input, singleFace{face}) {
		out := st.hb.Shape(in)
		glyphs = append(glyphs, out.Glyphs...)
	}
	return glyphs
}

// appendGlyphs converts shaped glyphs to pen positions on the line at
// baseline offset y and returns the line advance.
func appendGlyphs(run *Run, glyphs []shaping.Glyph, cluster int, y float64) float64 {
	var x float64
	for _, g := range glyphs {
		adv := fixedToFloat(g.Advance)
		run.Glyphs = append(run.Glyphs, Glyph{
			ID:      uint16(g.GlyphID), //nolint:gosec // glyph indices fit in uint16
			Cluster: cluster + g.TextIndex(),
			X:       x + fixedToFloat(g.XOffset),
			Y:       y - fixedToFloat(g.YOffset),
			Advance: adv,
		})
		x += adv
	}
	return x
}

// detectScript returns the script of the first rune that has one.
// Common characters like spaces and digits are skipped. It only seeds
// the segmenter; each run gets its own script.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		s := language.LookupScript(r)
		if s != language.Common && s != language.Inherited && s != language.Unknown {
			return s
		}
	}
	return language.Latin
}

// languageFor picks a language tag matching the detected script so
// locale-specific OpenType features apply.
func languageFor(runes []rune) language.Language {
	switch detectScript(runes) {
	case language.Bengali:
		return language.NewLanguage("bn")
	case language.Devanagari:
		return language.NewLanguage("hi")
	default:
		return language.NewLanguage("en")
	}
}
