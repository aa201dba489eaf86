package model

import "math"

// Matrix represents a 2D affine transformation matrix in the PDF convention
// [a b c d e f]. It maps (x, y) to (a·x + c·y + e, b·x + d·y + f).
type Matrix [6]float64

// FontIdentity is the default font unit-to-text-space scale, one glyph-space
// unit being 1/1000 of a text-space unit.
var FontIdentity = Matrix{0.001, 0, 0, 0.001, 0, 0}

// Identity returns an identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Translate creates a translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// Scale creates a scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Transform applies the matrix transformation to a point.
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Multiply composes two matrices: the result applies m first, then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inverse returns the inverse transform. A singular matrix inverts to the
// identity so that degenerate content degrades instead of dividing by zero.
func (m Matrix) Inverse() Matrix {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	return Matrix{
		m[3] / det,
		-m[1] / det,
		-m[2] / det,
		m[0] / det,
		(m[2]*m[5] - m[3]*m[4]) / det,
		(m[1]*m[4] - m[0]*m[5]) / det,
	}
}

// IsIdentity returns true if the matrix is an identity matrix.
func (m Matrix) IsIdentity() bool {
	return m[0] == 1 && m[1] == 0 && m[2] == 0 && m[3] == 1 && m[4] == 0 && m[5] == 0
}

// TransformBBox maps a box through the transform and returns the axis-aligned
// bounds of the four transformed corners.
func (m Matrix) TransformBBox(b BBox) BBox {
	corners := []Point{
		{b.X, b.Y},
		{b.X + b.Width, b.Y},
		{b.X + b.Width, b.Y + b.Height},
		{b.X, b.Y + b.Height},
	}
	for i, c := range corners {
		corners[i] = m.Transform(c)
	}
	return BBoxFromPoints(corners)
}

// Decompose returns the singular values of the linear part, i.e. the scale
// factors the transform applies along its principal axes. The eigenvalues of
// MᵀM are the roots of λ² − tr·λ + det² = 0; an eigenvalue that rounds to
// zero falls back to 1 so that tiling steps derived from a degenerate matrix
// stay usable.
func (m Matrix) Decompose() (sx, sy float64) {
	tr := m[0]*m[0] + m[1]*m[1] + m[2]*m[2] + m[3]*m[3]
	det := m[0]*m[3] - m[1]*m[2]

	half := tr / 2
	shift := math.Sqrt(math.Max(0, half*half-det*det))

	first := half + shift
	second := half - shift

	sx = math.Sqrt(first)
	if sx == 0 {
		sx = 1
	}
	sy = math.Sqrt(second)
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}
