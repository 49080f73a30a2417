package image

import (
	"image"
	"sync"
)

// Pool is a thread-safe pool for reusing RGBA pixel buffers.
//
// Pool groups buffers by their dimensions, so every layer of one render
// (which all share the canvas size) is served from a single bucket.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[image.Point][]*image.RGBA
	maxSize int // max buffers per bucket
}

// NewPool creates a buffer pool retaining at most maxPerBucket buffers of
// each size. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[image.Point][]*image.RGBA),
		maxSize: maxPerBucket,
	}
}

// Get returns a fully transparent w×h buffer, reused when one is available.
func (p *Pool) Get(w, h int) *image.RGBA {
	key := image.Pt(w, h)

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		return buf
	}
	p.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, w, h))
}

// Put clears buf and returns it to the pool.
// Buffers with a non-zero origin, and buffers beyond the bucket limit, are
// dropped for the GC.
func (p *Pool) Put(buf *image.RGBA) {
	if buf == nil || buf.Rect.Min != (image.Point{}) {
		return
	}
	clear(buf.Pix)

	key := buf.Rect.Size()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}
