package textfx

import (
	"image"
	"math"
)

// Defaults applied to every field a TextObject leaves out.
const (
	DefaultX              = 100
	DefaultY              = 100
	DefaultFontSize       = 60
	DefaultColor          = "#ffffff"
	DefaultFont           = "NotoSansBengali-Regular.ttf"
	DefaultStrokeColor    = "#000000"
	DefaultShadowBlur     = 8
	DefaultShadowColor    = "#000000"
	DefaultShadowOffset   = 4
	DefaultOpacity        = 1.0
	DefaultGradientColor2 = "#ff6600"

	// MinFontSize is the smallest font size drawn.
	MinFontSize = 10

	// MinShadowBlur is the smallest shadow blur radius.
	MinShadowBlur = 1
)

// TextObject is one styled text overlay. Every field has a default (see
// NewTextObject) and Normalize clamps out-of-range values.
type TextObject struct {
	Text string `json:"text"`

	// X, Y is the top-left layout anchor in canvas pixels.
	X int `json:"x"`
	Y int `json:"y"`

	FontSize int    `json:"fontSize"`
	Color    string `json:"color"`
	Font     string `json:"font"`

	StrokeWidth int    `json:"strokeWidth"`
	StrokeColor string `json:"strokeColor"`

	Shadow      bool   `json:"shadow"`
	ShadowBlur  int    `json:"shadowBlur"`
	ShadowColor string `json:"shadowColor"`
	ShadowX     int    `json:"shadowX"`
	ShadowY     int    `json:"shadowY"`

	// Opacity scales the alpha of every color except the shadow's.
	Opacity float64 `json:"opacity"`

	// Rotation in degrees, clockwise on screen.
	Rotation float64 `json:"rotation"`

	Glow         bool `json:"glow"`
	Neon         bool `json:"neon"`
	OutlineOnly  bool `json:"outlineOnly"`
	DoubleStroke bool `json:"doubleStroke"`

	Gradient       bool   `json:"gradient"`
	GradientColor2 string `json:"gradientColor2"`
}

// NewTextObject returns an object drawing s with every default applied.
func NewTextObject(s string) TextObject {
	return TextObject{
		Text:           s,
		X:              DefaultX,
		Y:              DefaultY,
		FontSize:       DefaultFontSize,
		Color:          DefaultColor,
		Font:           DefaultFont,
		StrokeColor:    DefaultStrokeColor,
		ShadowBlur:     DefaultShadowBlur,
		ShadowColor:    DefaultShadowColor,
		ShadowX:        DefaultShadowOffset,
		ShadowY:        DefaultShadowOffset,
		Opacity:        DefaultOpacity,
		GradientColor2: DefaultGradientColor2,
	}
}

// Normalize clamps the numeric fields into range: font size at least
// MinFontSize, stroke width at least 0, shadow blur at least MinShadowBlur
// and opacity within [0, 1].
func (o *TextObject) Normalize() {
	o.FontSize = max(o.FontSize, MinFontSize)
	o.StrokeWidth = max(o.StrokeWidth, 0)
	o.ShadowBlur = max(o.ShadowBlur, MinShadowBlur)
	switch {
	case math.IsNaN(o.Opacity) || o.Opacity < 0:
		o.Opacity = 0
	case o.Opacity > 1:
		o.Opacity = 1
	}
	if math.IsNaN(o.Rotation) || math.IsInf(o.Rotation, 0) {
		o.Rotation = 0
	}
}

// Anchor returns the layout anchor as a point.
func (o *TextObject) Anchor() image.Point {
	return image.Pt(o.X, o.Y)
}

// haloRadii returns the blur radii of the halo layers, bottom first.
// Neon wins over glow.
func (o *TextObject) haloRadii() []float64 {
	switch {
	case o.Neon:
		return neonRadii
	case o.Glow:
		return glowRadii
	default:
		return nil
	}
}

// drawMode is the final draw mode of an object. Exactly one applies.
type drawMode int

const (
	modeFill drawMode = iota
	modeStrokeFill
	modeOutline
)

func (o *TextObject) mode() drawMode {
	switch {
	case o.OutlineOnly:
		return modeOutline
	case o.StrokeWidth > 0:
		return modeStrokeFill
	default:
		return modeFill
	}
}

func (m drawMode) String() string {
	switch m {
	case modeStrokeFill:
		return "stroke+fill"
	case modeOutline:
		return "outline"
	default:
		return "fill"
	}
}
