package text

// Face is a FontSource at one pixel size.
// Faces are cheap and safe for concurrent use.
type Face struct {
	source  *FontSource
	size    float64
	metrics Metrics
}

// Source returns the FontSource this face was created from.
func (f *Face) Source() *FontSource {
	return f.source
}

// Size returns the face size in pixels.
func (f *Face) Size() float64 {
	return f.size
}

// Metrics returns line metrics at the face size.
func (f *Face) Metrics() Metrics {
	return f.metrics
}
