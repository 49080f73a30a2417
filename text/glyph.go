package text

// Glyph is one shaped glyph positioned relative to the layout anchor.
// X grows right and Y grows down from the first line's baseline.
type Glyph struct {
	// ID is the glyph index in the font.
	ID uint16

	// Cluster is the rune index in the shaped text this glyph came from.
	Cluster int

	// X, Y is the glyph origin on the baseline.
	X, Y float64

	// Advance is the horizontal pen advance after this glyph.
	Advance float64
}

// Run is a shaped block of text ready for rasterization.
type Run struct {
	Glyphs []Glyph

	// Width is the widest line advance.
	Width float64

	// Lines is the number of lines in the run.
	Lines int
}

// Empty reports whether the run has no glyphs.
func (r Run) Empty() bool {
	return len(r.Glyphs) == 0
}
