package textfx

import (
	"context"

	intImage "github.com/gogpu/textfx/internal/image"
)

// Canvas builds the request's base canvas: the decoded image resampled
// to Width×Height, or a DefaultBackground fill when Image carries no
// payload.
func (req *Request) Canvas() (*Layer, error) {
	if req.Width <= 0 || req.Height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !intImage.HasPayload(req.Image) {
		return NewCanvas(req.Width, req.Height, DefaultBackground)
	}

	data, err := intImage.DecodeDataURL(req.Image)
	if err != nil {
		return nil, &DecodeError{Field: "image", Err: err}
	}
	img, format, err := intImage.Decode(data)
	if err != nil {
		return nil, &DecodeError{Field: "image", Err: err}
	}
	Logger().Debug("textfx: base image", "format", format, "size", img.Bounds().Size())
	return CanvasFromImage(img, req.Width, req.Height)
}

// RenderRequest renders req and returns the flattened result as PNG.
func (r *Renderer) RenderRequest(ctx context.Context, req Request) ([]byte, error) {
	canvas, err := req.Canvas()
	if err != nil {
		return nil, err
	}
	out, err := r.Render(ctx, canvas, req.Texts)
	if err != nil {
		return nil, err
	}
	return intImage.EncodePNG(out.Flatten())
}

// RenderDataURL renders req and returns the PNG as a data URL.
func (r *Renderer) RenderDataURL(ctx context.Context, req Request) (string, error) {
	png, err := r.RenderRequest(ctx, req)
	if err != nil {
		return "", err
	}
	return intImage.EncodeDataURL(png), nil
}
