package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	// Input formats accepted for the base canvas.
	_ "image/gif"
	_ "image/jpeg"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")

	// ErrMalformedDataURL is returned when a data URL has no payload part.
	ErrMalformedDataURL = errors.New("image: malformed data URL")
)

// PNGDataURLPrefix is the header of the data URLs produced by EncodeDataURL.
const PNGDataURLPrefix = "data:image/png;base64,"

// HasPayload reports whether s looks like a data URL carrying a payload,
// that is, whether it contains a comma.
func HasPayload(s string) bool {
	return strings.Contains(s, ",")
}

// DecodeDataURL returns the bytes carried by a "data:<mime>;base64,<payload>"
// URL. Only the text between the first and the second comma is decoded.
// Missing base64 padding is tolerated.
func DecodeDataURL(s string) ([]byte, error) {
	_, payload, ok := strings.Cut(s, ",")
	if !ok {
		return nil, ErrMalformedDataURL
	}
	payload, _, _ = strings.Cut(payload, ",")
	payload = strings.TrimSpace(payload)

	enc := base64.StdEncoding
	if !strings.HasSuffix(payload, "=") && len(payload)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	data, err := enc.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("image: decode base64: %w", err)
	}
	return data, nil
}

// Decode decodes an image in any registered format (PNG, JPEG, GIF, WebP,
// BMP, TIFF) and returns it together with the format name.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("image: decode: %w", err)
	}
	return img, format, nil
}

// Resample scales src to exactly w×h into a new premultiplied RGBA image
// using the Catmull-Rom cubic filter.
func Resample(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// EncodePNG encodes img losslessly as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("image: encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDataURL wraps PNG bytes in a data URL.
func EncodeDataURL(pngData []byte) string {
	return PNGDataURLPrefix + base64.StdEncoding.EncodeToString(pngData)
}
