package svgpath

import "math"

// Matrix2D is an affine transform (a, b, c, d, e, f), mapping
// (x, y) to (a*x + c*y + e, b*x + d*y + f).
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the transform which does nothing.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns the product m * b: the transform applying
// `b` first, then `m`.
func (m Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*b.A + m.C*b.B,
		B: m.B*b.A + m.D*b.B,
		C: m.A*b.C + m.C*b.D,
		D: m.B*b.C + m.D*b.D,
		E: m.A*b.E + m.C*b.F + m.E,
		F: m.B*b.E + m.D*b.F + m.F,
	}
}

// Translate returns m * translate(x, y).
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale returns m * scale(x, y).
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate returns m * rotate(theta), with theta in radians.
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return m.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX returns m * skewX(theta), with theta in radians.
func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY returns m * skewY(theta), with theta in radians.
func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Apply transforms the point `p`.
func (m Matrix2D) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Det returns the determinant of the linear part of `m`.
func (m Matrix2D) Det() float64 { return m.A*m.D - m.B*m.C }

// ScaleFactor returns the factor by which `m` scales lengths
// on average, that is the square root of its area factor.
// Radii and stroke widths are scaled with it.
func (m Matrix2D) ScaleFactor() float64 { return math.Sqrt(math.Abs(m.Det())) }
