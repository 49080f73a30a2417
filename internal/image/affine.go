// Package image provides the raster plumbing behind textfx: affine
// transforms for rotation, a size-keyed buffer pool for layers, and the
// data-URL image codec used at the transport boundary.
package image

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Affine represents a 2D affine transformation matrix.
//
// The transformation is represented as a 3x3 matrix:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
type Affine struct {
	a, b, c float64 // First row: x' = ax + by + c
	d, e, f float64 // Second row: y' = dx + ey + f
}

// Translate returns a translation transformation that shifts points by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{a: 1, c: tx, e: 1, f: ty}
}

// Rotate returns a rotation by angle radians around the origin.
// In image coordinates (y grows down) a positive angle turns clockwise on
// screen.
func Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{
		a: cos, b: -sin,
		d: sin, e: cos,
	}
}

// Multiply returns a*other, the transform that applies other first.
func (a Affine) Multiply(other Affine) Affine {
	return Affine{
		a: a.a*other.a + a.b*other.d,
		b: a.a*other.b + a.b*other.e,
		c: a.a*other.c + a.b*other.f + a.c,
		d: a.d*other.a + a.e*other.d,
		e: a.d*other.b + a.e*other.e,
		f: a.d*other.c + a.e*other.f + a.f,
	}
}

// TransformPoint applies the affine transformation to point (x, y).
func (a Affine) TransformPoint(x, y float64) (float64, float64) {
	return a.a*x + a.b*y + a.c, a.d*x + a.e*y + a.f
}

// RotateAt returns a rotation by angle radians around (cx, cy).
func RotateAt(angle, cx, cy float64) Affine {
	return Translate(cx, cy).Multiply(Rotate(angle)).Multiply(Translate(-cx, -cy))
}

// Aff3 converts a to the row-major form used by golang.org/x/image/draw.
func (a Affine) Aff3() f64.Aff3 {
	return f64.Aff3{a.a, a.b, a.c, a.d, a.e, a.f}
}
