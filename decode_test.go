package textfx

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeObjectDefaults(t *testing.T) {
	got, err := DecodeObject([]byte(`{"text":"hello"}`))
	if err != nil {
		t.Fatal(err)
	}
	want := NewTextObject("hello")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeObjectClamps(t *testing.T) {
	got, err := DecodeObject([]byte(`{
		"text": "x",
		"fontSize": 3,
		"strokeWidth": -4,
		"shadowBlur": 0,
		"opacity": 1.7
	}`))
	if err != nil {
		t.Fatal(err)
	}
	if got.FontSize != MinFontSize {
		t.Errorf("FontSize = %d, want %d", got.FontSize, MinFontSize)
	}
	if got.StrokeWidth != 0 {
		t.Errorf("StrokeWidth = %d, want 0", got.StrokeWidth)
	}
	if got.ShadowBlur != MinShadowBlur {
		t.Errorf("ShadowBlur = %d, want %d", got.ShadowBlur, MinShadowBlur)
	}
	if got.Opacity != 1 {
		t.Errorf("Opacity = %v, want 1", got.Opacity)
	}

	neg, err := DecodeObject([]byte(`{"opacity": -0.5}`))
	if err != nil {
		t.Fatal(err)
	}
	if neg.Opacity != 0 {
		t.Errorf("Opacity = %v, want 0", neg.Opacity)
	}
}

func TestDecodeObjectLooseTypes(t *testing.T) {
	got, err := DecodeObject([]byte(`{
		"text": "loose",
		"x": "42",
		"y": 17.9,
		"fontSize": " 30 ",
		"shadow": "true",
		"glow": 1,
		"neon": 0,
		"outlineOnly": "yes",
		"doubleStroke": "",
		"gradient": "0",
		"opacity": "0.25",
		"rotation": "-12.5",
		"color": null
	}`))
	if err != nil {
		t.Fatal(err)
	}

	want := NewTextObject("loose")
	want.X, want.Y = 42, 17
	want.FontSize = 30
	want.Shadow = true
	want.Glow = true
	want.OutlineOnly = true
	want.Opacity = 0.25
	want.Rotation = -12.5
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeObjectErrors(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		field string
	}{
		{"bad int", `{"x":"left"}`, "x"},
		{"bad float", `{"opacity":"half"}`, "opacity"},
		{"object for int", `{"fontSize":{}}`, "fontSize"},
		{"array for string", `{"color":[1]}`, "color"},
		{"not an object", `[1,2]`, ""},
		{"broken json", `{"text":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeObject([]byte(tt.in))
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("err = %v, want *DecodeError", err)
			}
			if de.Field != tt.field {
				t.Errorf("Field = %q, want %q", de.Field, tt.field)
			}
		})
	}
}

func TestDecodeRequest(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{"texts":[{"text":"a"},{"text":"b","x":5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if req.Width != DefaultWidth || req.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want defaults", req.Width, req.Height)
	}
	if len(req.Texts) != 2 {
		t.Fatalf("len(Texts) = %d", len(req.Texts))
	}
	if req.Texts[1].X != 5 || req.Texts[1].Y != DefaultY {
		t.Errorf("second object anchor = (%d,%d)", req.Texts[1].X, req.Texts[1].Y)
	}

	req, err = DecodeRequest(strings.NewReader(`{"width":"10","height":12.0,"image":"","texts":null}`))
	if err != nil {
		t.Fatal(err)
	}
	if req.Width != 10 || req.Height != 12 || len(req.Texts) != 0 {
		t.Errorf("got %+v", req)
	}
}

func TestDecodeRequestErrors(t *testing.T) {
	for _, in := range []string{
		`{"width":"wide"}`,
		`{"texts":[{"x":"nope"}]}`,
		`{"texts":"abc"}`,
		`not json`,
	} {
		_, err := DecodeRequest(strings.NewReader(in))
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("DecodeRequest(%s) err = %v, want *DecodeError", in, err)
		}
	}
}
