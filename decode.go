package textfx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Default canvas size of a Request.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

var (
	errNotNumber = errors.New("not a number")
	errNotString = errors.New("not a string")
)

// Request is a render request: an optional base image as a data URL, the
// canvas size and the objects to draw.
type Request struct {
	// Image is a "data:<mime>;base64,<payload>" URL. It is only decoded
	// when it contains a comma; otherwise the canvas is DefaultBackground.
	Image  string       `json:"image,omitempty"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Texts  []TextObject `json:"texts"`
}

// DecodeRequest reads a JSON request from r.
func DecodeRequest(r io.Reader) (Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return Request{}, de
		}
		return Request{}, &DecodeError{Err: err}
	}
	return req, nil
}

// UnmarshalJSON decodes a request, applying defaults and loose typing.
func (r *Request) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}

	*r = Request{Width: DefaultWidth, Height: DefaultHeight}
	if err := f.str("image", &r.Image); err != nil {
		return err
	}
	if err := f.int("width", &r.Width); err != nil {
		return err
	}
	if err := f.int("height", &r.Height); err != nil {
		return err
	}
	if raw, ok := f["texts"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &r.Texts); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				return de
			}
			return &DecodeError{Field: "texts", Err: err}
		}
	}
	return nil
}

// DecodeObject decodes one JSON object into a normalized TextObject.
func DecodeObject(data []byte) (TextObject, error) {
	var o TextObject
	if err := json.Unmarshal(data, &o); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return TextObject{}, de
		}
		return TextObject{}, &DecodeError{Err: err}
	}
	return o, nil
}

// UnmarshalJSON decodes an object starting from NewTextObject defaults.
// Integers accept numbers (truncated) and numeric strings, booleans accept
// numbers and strings as well. The result is normalized.
func (o *TextObject) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}

	*o = NewTextObject("")
	steps := []error{
		f.str("text", &o.Text),
		f.int("x", &o.X),
		f.int("y", &o.Y),
		f.int("fontSize", &o.FontSize),
		f.str("color", &o.Color),
		f.str("font", &o.Font),
		f.int("strokeWidth", &o.StrokeWidth),
		f.str("strokeColor", &o.StrokeColor),
		f.bool("shadow", &o.Shadow),
		f.int("shadowBlur", &o.ShadowBlur),
		f.str("shadowColor", &o.ShadowColor),
		f.int("shadowX", &o.ShadowX),
		f.int("shadowY", &o.ShadowY),
		f.float("opacity", &o.Opacity),
		f.float("rotation", &o.Rotation),
		f.bool("glow", &o.Glow),
		f.bool("neon", &o.Neon),
		f.bool("outlineOnly", &o.OutlineOnly),
		f.bool("doubleStroke", &o.DoubleStroke),
		f.bool("gradient", &o.Gradient),
		f.str("gradientColor2", &o.GradientColor2),
	}
	for _, err := range steps {
		if err != nil {
			return err
		}
	}
	o.Normalize()
	return nil
}

// fields holds the raw members of one JSON object. Absent and null
// members leave the destination untouched.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return f, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// scalar decodes raw into a bool, json.Number or string.
func scalar(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (f fields) lookup(key string) (any, bool, error) {
	raw, ok := f[key]
	if !ok || isNull(raw) {
		return nil, false, nil
	}
	v, err := scalar(raw)
	if err != nil {
		return nil, false, &DecodeError{Field: key, Err: err}
	}
	return v, true, nil
}

func (f fields) str(key string, dst *string) error {
	v, ok, err := f.lookup(key)
	if !ok || err != nil {
		return err
	}
	switch v := v.(type) {
	case string:
		*dst = v
	case json.Number:
		*dst = v.String()
	default:
		return &DecodeError{Field: key, Err: errNotString}
	}
	return nil
}

func (f fields) float(key string, dst *float64) error {
	v, ok, err := f.lookup(key)
	if !ok || err != nil {
		return err
	}
	x, err := toFloat(v)
	if err != nil {
		return &DecodeError{Field: key, Err: err}
	}
	*dst = x
	return nil
}

func (f fields) int(key string, dst *int) error {
	var x float64
	v, ok, err := f.lookup(key)
	if !ok || err != nil {
		return err
	}
	if x, err = toFloat(v); err != nil {
		return &DecodeError{Field: key, Err: err}
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) > math.MaxInt32 {
		return &DecodeError{Field: key, Err: fmt.Errorf("%w: %v out of range", errNotNumber, x)}
	}
	*dst = int(x)
	return nil
}

func (f fields) bool(key string, dst *bool) error {
	v, ok, err := f.lookup(key)
	if !ok || err != nil {
		return err
	}
	switch v := v.(type) {
	case bool:
		*dst = v
	case json.Number:
		x, err := v.Float64()
		if err != nil {
			return &DecodeError{Field: key, Err: err}
		}
		*dst = x != 0
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*dst = b
		} else {
			*dst = v != ""
		}
	default:
		*dst = true
	}
	return nil
}

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case json.Number:
		return v.Float64()
	case string:
		x, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotNumber, v)
		}
		return x, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errNotNumber
	}
}
