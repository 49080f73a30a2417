package textfx

import (
	"runtime"

	"github.com/gogpu/textfx/fonts"
)

// RendererOption configures a Renderer during creation.
//
// Example:
//
//	set, _ := fonts.Open("fonts")
//	r := textfx.NewRenderer(textfx.WithFontSet(set), textfx.WithConcurrency(2))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	fonts       *fonts.Set
	concurrency int
	poolSize    int
}

// defaultPoolSize is the number of spare buffers kept per layer size.
const defaultPoolSize = 8

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		fonts:       nil, // fonts.Builtin() if nil
		concurrency: runtime.GOMAXPROCS(0),
		poolSize:    defaultPoolSize,
	}
}

// WithFontSet sets the fonts objects are drawn with.
// Without it every object uses the built-in Go Regular font.
func WithFontSet(s *fonts.Set) RendererOption {
	return func(o *rendererOptions) {
		o.fonts = s
	}
}

// WithConcurrency sets how many object layers are built at once.
// Composition onto the canvas stays in list order. Values below 1 mean 1.
func WithConcurrency(n int) RendererOption {
	return func(o *rendererOptions) {
		o.concurrency = max(n, 1)
	}
}

// WithLayerPool sets how many spare layer buffers of each size are kept
// for reuse. Zero or less disables pooling.
func WithLayerPool(n int) RendererOption {
	return func(o *rendererOptions) {
		o.poolSize = n
	}
}
