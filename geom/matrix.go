// Package geom implements the 2D affine matrix and point arithmetic that
// underlies every coordinate transform in pdfgen.
package geom

import "math"

// Point is a single 2D user-space coordinate, in PDF points (1/72 inch).
type Point struct {
	X, Y float64
}

// Matrix is a 2D affine transform with the PDF/PostScript field layout
// (Sx, Rx, Ry, Sy, Tx, Ty), applied to a point as:
//
//	x' = Sx*x + Ry*y + Tx
//	y' = Rx*x + Sy*y + Ty
//
// Composition is pre-multiplication: m.Compose(l) yields the transform that
// applies m first, then l (i.e. l∘m).
type Matrix struct {
	Sx, Rx, Ry, Sy, Tx, Ty float64
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{Sx: 1, Sy: 1}
}

// IsIdentity reports whether m is (exactly) the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Compose returns the matrix equivalent to applying m first and then l
// (l∘m, i.e. m pre-multiplied by l).
func (m Matrix) Compose(l Matrix) Matrix {
	return Matrix{
		Sx: m.Sx*l.Sx + m.Rx*l.Ry,
		Rx: m.Sx*l.Rx + m.Rx*l.Sy,
		Ry: m.Ry*l.Sx + m.Sy*l.Ry,
		Sy: m.Ry*l.Rx + m.Sy*l.Sy,
		Tx: m.Tx*l.Sx + m.Ty*l.Ry + l.Tx,
		Ty: m.Tx*l.Rx + m.Ty*l.Sy + l.Ty,
	}
}

// TransformPoint applies m to (x, y) and returns the transformed point.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m.Sx*x + m.Ry*y + m.Tx, m.Rx*x + m.Sy*y + m.Ty
}

// TransformDistance applies only the linear part of m to (dx, dy), ignoring
// translation — used for vectors (e.g. line-width scaling) rather than points.
func (m Matrix) TransformDistance(dx, dy float64) (float64, float64) {
	return m.Sx*dx + m.Ry*dy, m.Rx*dx + m.Sy*dy
}

// Translate returns a pure translation matrix.
func Translate(tx, ty float64) Matrix {
	return Matrix{Sx: 1, Sy: 1, Tx: tx, Ty: ty}
}

// Scale returns a pure scaling matrix.
func Scale(sx, sy float64) Matrix {
	return Matrix{Sx: sx, Sy: sy}
}

// Rotate returns a pure rotation matrix for deg degrees, counter-clockwise
// in PDF's y-up user space (the rotation matrix (cos,sin,-sin,cos,0,0)
// composed on the left of whatever it is applied to, per the spec).
func Rotate(deg float64) Matrix {
	rad := deg * math.Pi / 180.0
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Matrix{Sx: cos, Rx: sin, Ry: -sin, Sy: cos}
}

// isSkewed reports whether m has a non-zero off-diagonal, requiring the
// general inverse rather than the closed-form non-skewed inverse.
func (m Matrix) isSkewed() bool {
	return !((m.Rx == 0 && m.Ry == 0) || (m.Sx == 0 && m.Sy == 0))
}

// Invert returns the inverse of m, or reports ok=false if m is singular.
//
// A non-skewed matrix (Rx=Ry=0, or Sx=Sy=0) uses the closed-form inverse
// with reciprocal determinant d = 1/(Sx*Sy - Ry*Rx); otherwise a general
// 2x3 matrix inverse is computed.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Sx*m.Sy - m.Ry*m.Rx
	if det == 0 {
		return Matrix{}, false
	}

	var inv Matrix
	if !m.isSkewed() {
		// Rx=Ry=0 or Sx=Sy=0: the cross terms vanish, so each diagonal
		// entry inverts by simple reciprocal rather than the full 2x2
		// cofactor expansion.
		if m.Rx == 0 && m.Ry == 0 {
			inv = Matrix{Sx: 1 / m.Sx, Sy: 1 / m.Sy}
		} else {
			inv = Matrix{Rx: 1 / m.Ry, Ry: 1 / m.Rx}
		}
	} else {
		d := 1 / det
		inv = Matrix{
			Sx: m.Sy * d,
			Sy: m.Sx * d,
			Rx: -m.Rx * d,
			Ry: -m.Ry * d,
		}
	}
	inv.Tx = -(m.Tx*inv.Sx + m.Ty*inv.Ry)
	inv.Ty = -(m.Tx*inv.Rx + m.Ty*inv.Sy)
	return inv, true
}
