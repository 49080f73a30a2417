package textfx

import (
	"errors"
	"fmt"

	intImage "github.com/gogpu/textfx/internal/image"
)

// Sentinel errors for textfx.
var (
	// ErrInvalidDimensions is returned for a canvas with a non-positive side.
	ErrInvalidDimensions = errors.New("textfx: invalid canvas dimensions")

	// ErrNilCanvas is returned when Render is given no canvas.
	ErrNilCanvas = errors.New("textfx: nil canvas")

	// ErrEmptyDataURL is returned when a data URL carries no bytes.
	ErrEmptyDataURL = intImage.ErrEmptyData

	// ErrMalformedDataURL is returned when a data URL has no payload part.
	ErrMalformedDataURL = intImage.ErrMalformedDataURL
)

// DecodeError reports a request that could not be decoded: bad JSON, an
// unparseable numeric field, a broken data URL or an unknown image format.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("textfx: decode request: %v", e.Err)
	}
	return fmt.Sprintf("textfx: decode request: field %q: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RenderError is returned when a render stage fails unexpectedly.
// It carries the stack trace of the failure; no partial image is produced.
type RenderError struct {
	// Index is the position of the failing object, or -1 when the failure
	// is not tied to one object.
	Index int

	Msg   string
	Trace string
	Err   error
}

func (e *RenderError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("textfx: render object %d: %s", e.Index, e.Msg)
	}
	return "textfx: render: " + e.Msg
}

func (e *RenderError) Unwrap() error { return e.Err }
