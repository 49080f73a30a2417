package filter

import (
	"image"
	"math"
	"sync"
)

// BlurFilter applies separable Gaussian blur to a premultiplied image.
// The separable algorithm processes horizontal and vertical passes
// independently, achieving O(w*h*(rx+ry)) complexity instead of O(w*h*rx*ry).
//
// Radius is the standard deviation of the Gaussian, in pixels.
type BlurFilter struct {
	// RadiusX is the horizontal blur radius in pixels.
	RadiusX float64

	// RadiusY is the vertical blur radius in pixels.
	RadiusY float64
}

// NewBlurFilter creates a new blur filter with equal radius in both directions.
func NewBlurFilter(radius float64) *BlurFilter {
	return &BlurFilter{
		RadiusX: radius,
		RadiusY: radius,
	}
}

// Apply blurs img in place within bounds.
//
// Pixels outside bounds are neither read nor written, so callers pass the
// content rectangle grown by ExpandBounds. Reads past the edge of bounds
// repeat the edge pixel.
func (f *BlurFilter) Apply(img *image.RGBA, bounds image.Rectangle) {
	if img == nil {
		return
	}
	if f.RadiusX <= 0 && f.RadiusY <= 0 {
		return
	}

	bounds = bounds.Intersect(img.Bounds())
	if bounds.Empty() {
		return
	}

	width := bounds.Dx()
	height := bounds.Dy()

	temp := getTempBuffer(width, height)
	defer putTempBuffer(temp)

	kernelX := CachedGaussianKernel(f.RadiusX)
	kernelY := CachedGaussianKernel(f.RadiusY)

	// Pass 1: horizontal (img -> temp)
	blurHorizontal(img, temp, bounds, kernelX)

	// Pass 2: vertical (temp -> img)
	blurVertical(temp, img, bounds, kernelY)
}

// ExpandBounds returns input grown by the reach of the kernel (3 sigma).
func (f *BlurFilter) ExpandBounds(input image.Rectangle) image.Rectangle {
	expandX := int(math.Ceil(f.RadiusX * 3))
	expandY := int(math.Ceil(f.RadiusY * 3))

	return image.Rect(
		input.Min.X-expandX,
		input.Min.Y-expandY,
		input.Max.X+expandX,
		input.Max.Y+expandY,
	)
}

// blurHorizontal applies 1D horizontal convolution.
// Reads from img, writes to temp.
func blurHorizontal(img *image.RGBA, temp []float32, bounds image.Rectangle, kernel []float32) {
	halfKernel := len(kernel) / 2
	width := bounds.Dx()

	for y := 0; y < bounds.Dy(); y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]

		for x := 0; x < width; x++ {
			var r, g, b, a float32

			for k, weight := range kernel {
				kx := x + k - halfKernel

				// Clamp to region (edge extension)
				if kx < 0 {
					kx = 0
				} else if kx >= width {
					kx = width - 1
				}

				i := kx * 4
				r += float32(row[i+0]) * weight
				g += float32(row[i+1]) * weight
				b += float32(row[i+2]) * weight
				a += float32(row[i+3]) * weight
			}

			ti := (y*width + x) * 4
			temp[ti+0] = r
			temp[ti+1] = g
			temp[ti+2] = b
			temp[ti+3] = a
		}
	}
}

// blurVertical applies 1D vertical convolution.
// Reads from temp, writes to img.
func blurVertical(temp []float32, img *image.RGBA, bounds image.Rectangle, kernel []float32) {
	halfKernel := len(kernel) / 2
	width := bounds.Dx()
	height := bounds.Dy()

	for y := 0; y < height; y++ {
		row := img.Pix[img.PixOffset(bounds.Min.X, bounds.Min.Y+y):]

		for x := 0; x < width; x++ {
			var r, g, b, a float32

			for k, weight := range kernel {
				ky := y + k - halfKernel

				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}

				ti := (ky*width + x) * 4
				r += temp[ti+0] * weight
				g += temp[ti+1] * weight
				b += temp[ti+2] * weight
				a += temp[ti+3] * weight
			}

			// Premultiplied channels never exceed alpha.
			ca := clampUint8(a)
			i := x * 4
			row[i+0] = min(clampUint8(r), ca)
			row[i+1] = min(clampUint8(g), ca)
			row[i+2] = min(clampUint8(b), ca)
			row[i+3] = ca
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Temporary buffer pool for blur operations.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 512*512*4)}
	},
}

// getTempBuffer retrieves a temporary buffer from the pool.
// The buffer is guaranteed to have at least width*height*4 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}

	clear(wrapper.data[:size])
	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 16*1024*1024 { // 64MB max
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
