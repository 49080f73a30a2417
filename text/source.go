package text

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontSource represents a loaded font file.
// One FontSource can create multiple Face instances at different sizes.
// FontSource is heavyweight and should be shared across the application.
//
// FontSource is safe for concurrent use.
// FontSource must not be copied after creation (enforced by copyCheck).
type FontSource struct {
	// addr is used for copy protection.
	// It must point to the FontSource itself.
	addr *FontSource

	data []byte

	// sfnt serves names and pixel metrics, font serves shaping and outlines.
	// Both are read-only after parsing.
	sfnt *opentype.Font
	font *font.Font

	name string
}

// NewFontSource creates a FontSource from font data (TTF or OTF).
// The data slice is copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	otf, err := opentype.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, fmt.Errorf("text: parse font outlines: %w", err)
	}

	s := &FontSource{
		data: dataCopy,
		sfnt: otf,
		font: face.Font,
	}
	s.addr = s
	s.name = extractFontName(otf)

	return s, nil
}

// NewFontSourceFromFile loads a FontSource from a font file path.
func NewFontSourceFromFile(path string) (*FontSource, error) {
	// #nosec G304 -- Font file path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}

	return NewFontSource(data)
}

// Face creates a Face at the specified pixel size.
// Multiple faces can be created from the same FontSource.
// Panics if s is nil (e.g. when NewFontSourceFromFile error was ignored).
func (s *FontSource) Face(size float64) *Face {
	if s == nil {
		panic("text: FontSource is nil, check the error from NewFontSource")
	}
	s.copyCheck()

	return &Face{
		source:  s,
		size:    size,
		metrics: s.metrics(size),
	}
}

// Name returns the font family name.
func (s *FontSource) Name() string {
	s.copyCheck()
	return s.name
}

// NumGlyphs returns the number of glyphs in the font.
func (s *FontSource) NumGlyphs() int {
	s.copyCheck()
	return s.sfnt.NumGlyphs()
}

// copyCheck panics if FontSource was copied by value.
func (s *FontSource) copyCheck() {
	if s.addr != s {
		panic("text: FontSource must not be copied by value")
	}
}

func (s *FontSource) metrics(size float64) Metrics {
	var buf sfnt.Buffer
	m, err := s.sfnt.Metrics(&buf, floatToFixed(size), xfontHinting)
	if err != nil {
		return Metrics{}
	}
	return Metrics{
		Ascent:    fixedToFloat(m.Ascent),
		Descent:   fixedToFloat(m.Descent),
		LineGap:   fixedToFloat(m.Height - m.Ascent - m.Descent),
		XHeight:   fixedToFloat(m.XHeight),
		CapHeight: fixedToFloat(m.CapHeight),
	}
}

// extractFontName extracts the font family name from the name table.
func extractFontName(f *opentype.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
