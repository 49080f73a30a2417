package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a normalized 1D Gaussian kernel with standard
// deviation sigma.
//
// The kernel size is 2*ceil(3*sigma) + 1, which covers 99.7% of the
// distribution. For sigma <= 0 it returns the identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1.0}
	}

	halfSize := int(math.Ceil(sigma * 3))
	kernel := make([]float32, halfSize*2+1)

	// exp(-x²/2σ²); the 1/(σ√2π) factor cancels in normalization.
	twoSigmaSq := 2 * sigma * sigma
	weights := make([]float64, len(kernel))
	sum := 0.0
	for i := range weights {
		x := float64(i - halfSize)
		weights[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += weights[i]
	}

	for i, w := range weights {
		kernel[i] = float32(w / sum)
	}
	return kernel
}

// kernels memoizes kernels by radius in hundredths of a pixel. The effect
// pipeline only ever asks for a handful of radii, so the map stays small.
var kernels sync.Map // map[int][]float32

// CachedGaussianKernel returns a shared, read-only kernel for sigma.
func CachedGaussianKernel(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))
	if k, ok := kernels.Load(key); ok {
		return k.([]float32)
	}
	k, _ := kernels.LoadOrStore(key, GaussianKernel(sigma))
	return k.([]float32)
}
