package sway

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-Origin) -> Scale -> Rotate -> Translate(Origin) -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.Rotation)
	a := cos * n.ScaleX
	b := sin * n.ScaleX
	c := -sin * n.ScaleY
	d := cos * n.ScaleY

	ox, oy := n.OriginX, n.OriginY
	tx := ox - (a*ox + c*oy) + n.X
	ty := oy - (b*ox + d*oy) + n.Y
	return [6]float64{a, b, c, d, tx, ty}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// LocalTransform returns the node's own affine matrix.
func (n *Node) LocalTransform() [6]float64 {
	return computeLocalTransform(n)
}

// ComputedTransform returns the node's transform composed with every
// ancestor's, i.e. local space to root space.
func (n *Node) ComputedTransform() [6]float64 {
	m := computeLocalTransform(n)
	for p := n.Parent; p != nil; p = p.Parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// SetLocalTransform decomposes m into position, scale and rotation and
// assigns them. The origin is reset to zero. Skew cannot be represented and
// is dropped.
func (n *Node) SetLocalTransform(m [6]float64) {
	sx := math.Hypot(m[0], m[1])
	var sy, rot float64
	if sx != 0 {
		rot = math.Atan2(m[1], m[0])
		sy = (m[0]*m[3] - m[1]*m[2]) / sx
	}
	n.X, n.Y = m[4], m[5]
	n.ScaleX, n.ScaleY = sx, sy
	n.Rotation = rot
	n.OriginX, n.OriginY = 0, 0
	n.transformDirty = true
}

// bakeTransform folds all ancestor transforms into the node's own so it keeps
// its on-screen placement after being detached.
func (n *Node) bakeTransform() {
	if n.Parent == nil {
		return
	}
	n.SetLocalTransform(n.ComputedTransform())
}

// mapPoints converts points from the local space of src into the local space
// of dst.
func mapPoints(points []Vec2, src, dst *Node) []Vec2 {
	m := multiplyAffine(invertAffine(dst.ComputedTransform()), src.ComputedTransform())
	out := make([]Vec2, len(points))
	for i, p := range points {
		out[i].X, out[i].Y = transformPoint(m, p.X, p.Y)
	}
	return out
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetRotation sets the node's rotation (in radians) and marks it dirty.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// SetOrigin sets the scale/rotation origin and marks the node dirty.
func (n *Node) SetOrigin(ox, oy float64) {
	n.OriginX = ox
	n.OriginY = oy
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}
