package spritebatch

import (
	"image"
	"math"
)

// Matrix is a 2D affine transform laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// IdentityMatrix is the identity affine matrix.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// TranslateMatrix returns a matrix translating by (x, y).
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{1, 0, 0, 1, x, y}
}

// ScaleMatrix returns a matrix scaling by (sx, sy) around the origin.
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// RotateMatrix returns a matrix rotating by theta radians. Positive angles
// turn clockwise on a y-down screen.
func RotateMatrix(theta float64) Matrix {
	sin, cos := math.Sincos(theta)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

// Mul returns m * other (other is applied first).
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
		m[0]*other[4] + m[2]*other[5] + m[4],
		m[1]*other[4] + m[3]*other[5] + m[5],
	}
}

// Invert computes the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Bounds transforms r by m and returns the axis-aligned box of the result.
func (m Matrix) Bounds(r Rect) Rect {
	xs := [4]float64{r.X, r.X + r.Width, r.X, r.X + r.Width}
	ys := [4]float64{r.Y, r.Y, r.Y + r.Height, r.Y + r.Height}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range xs {
		x, y := m.Apply(xs[i], ys[i])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// screenRect is Bounds snapped outwards to whole pixels. Partially covered
// pixels are included.
func (m Matrix) screenRect(r Rect) image.Rectangle {
	b := m.Bounds(r)
	return image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.Width)), int(math.Ceil(b.Y+b.Height)),
	)
}
