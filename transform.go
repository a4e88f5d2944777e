package trellis

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Matrix is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Matrix [6]float64

// IdentityMatrix is the identity affine matrix.
var IdentityMatrix = Matrix{1, 0, 0, 1, 0, 0}

// composeLocal builds a local matrix from layout inputs. Rotation is in
// degrees; shear holds shear factors (not angles).
//
// Composition order:
//
//	Translate(-origin) -> Scale -> Shear -> Rotate -> Translate(offset)
func composeLocal(offset, origin, scale Vec2, rotation float64, shear Vec2) Matrix {
	sx := scale.X
	sy := scale.Y

	var sin, cos float64
	if rotation == 0 {
		cos = 1
	} else {
		sin, cos = math.Sincos(rotation * math.Pi / 180)
	}

	// After Scale * Translate(-origin):
	//   a=sx, b=0, c=0, d=sy, tx=-ox*sx, ty=-oy*sy
	//
	// After Shear:
	a := sx
	b := shear.Y * sx
	c := shear.X * sy
	d := sy

	preTx := -origin.X*sx - shear.X*origin.Y*sy
	preTy := -shear.Y*origin.X*sx - origin.Y*sy

	// After Rotate:
	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	// After Translate(offset):
	return Matrix{ra, rb, rc, rd, rtx + offset.X, rty + offset.Y}
}

// Multiply returns p * c (c applied first).
func (p Matrix) Multiply(c Matrix) Matrix {
	return Matrix{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
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

// Singular reports whether m collapses the plane (zero scale).
func (m Matrix) Singular() bool {
	det := m[0]*m[3] - m[2]*m[1]
	return det > -1e-12 && det < 1e-12
}

// Apply transforms a point by m.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{m[0]*p.X + m[2]*p.Y + m[4], m[1]*p.X + m[3]*p.Y + m[5]}
}

// ApplyRect maps the four corners of r through m.
func (m Matrix) ApplyRect(r Rect) Quad {
	return Quad{
		TopLeft:     m.Apply(Vec2{r.X, r.Y}),
		TopRight:    m.Apply(Vec2{r.X + r.Width, r.Y}),
		BottomRight: m.Apply(Vec2{r.X + r.Width, r.Y + r.Height}),
		BottomLeft:  m.Apply(Vec2{r.X, r.Y + r.Height}),
	}
}

// GeoM converts m to an ebiten.GeoM for drawing images in node space.
func (m Matrix) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// --- Coordinate conversion ---

// ToScreenSpace converts a point in this node's local space (where (0, 0) is
// the top-left of its draw rectangle) to screen space.
func (n *Node) ToScreenSpace(p Vec2) Vec2 {
	return n.DrawMatrix().Apply(p)
}

// ToLocalSpace converts a screen-space point to this node's local space.
func (n *Node) ToLocalSpace(p Vec2) Vec2 {
	return n.DrawMatrix().Invert().Apply(p)
}
