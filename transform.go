package birch

import "math"

// TransformationMatrix returns the node's local matrix (node space to parent
// space), recomputing it only when a transform property changed.
//
// Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func (n *Node) TransformationMatrix() Matrix {
	if n.matrixDirty {
		n.matrix = computeLocalTransform(n)
		n.matrixDirty = false
	}
	return n.matrix
}

func computeLocalTransform(n *Node) Matrix {
	if n.skewX == 0 && n.skewY == 0 {
		if n.rotation == 0 {
			return Matrix{n.scaleX, 0, 0, n.scaleY,
				n.x - n.pivotX*n.scaleX, n.y - n.pivotY*n.scaleY}
		}
		sin, cos := math.Sincos(n.rotation)
		a := n.scaleX * cos
		b := n.scaleX * sin
		c := n.scaleY * -sin
		d := n.scaleY * cos
		return Matrix{a, b, c, d,
			n.x - n.pivotX*a - n.pivotY*c,
			n.y - n.pivotX*b - n.pivotY*d}
	}

	// Scale, then skew.
	sinX, cosX := math.Sincos(n.skewX)
	sinY, cosY := math.Sincos(n.skewY)
	a := n.scaleX * cosY
	b := n.scaleX * sinY
	c := -n.scaleY * sinX
	d := n.scaleY * cosX

	// Rotate.
	sin, cos := math.Sincos(n.rotation)
	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d

	// Translate with the pivot folded in.
	return Matrix{ra, rb, rc, rd,
		n.x - ra*n.pivotX - rc*n.pivotY,
		n.y - rb*n.pivotX - rd*n.pivotY}
}

// markTransformChanged invalidates the cached matrix and stamps the node for redraw.
func (n *Node) markTransformChanged() {
	n.matrixDirty = true
	n.setRequiresRedraw()
}

// --- Transform property accessors ---

// X returns the node's local x position.
func (n *Node) X() float64 { return n.x }

// Y returns the node's local y position.
func (n *Node) Y() float64 { return n.y }

// PivotX returns the x of the node's pivot in local space.
func (n *Node) PivotX() float64 { return n.pivotX }

// PivotY returns the y of the node's pivot in local space.
func (n *Node) PivotY() float64 { return n.pivotY }

// ScaleX returns the horizontal scale factor.
func (n *Node) ScaleX() float64 { return n.scaleX }

// ScaleY returns the vertical scale factor.
func (n *Node) ScaleY() float64 { return n.scaleY }

// SkewX returns the horizontal skew in radians.
func (n *Node) SkewX() float64 { return n.skewX }

// SkewY returns the vertical skew in radians.
func (n *Node) SkewY() float64 { return n.skewY }

// Rotation returns the rotation in radians, in [-Pi, Pi].
func (n *Node) Rotation() float64 { return n.rotation }

// --- Transform property setters ---

// SetX sets the node's local x position.
func (n *Node) SetX(x float64) {
	if n.x != x {
		n.x = x
		n.markTransformChanged()
	}
}

// SetY sets the node's local y position.
func (n *Node) SetY(y float64) {
	if n.y != y {
		n.y = y
		n.markTransformChanged()
	}
}

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	if n.x != x || n.y != y {
		n.x = x
		n.y = y
		n.markTransformChanged()
	}
}

// SetPivotX sets the x of the pivot, the point rotation and scale happen around.
func (n *Node) SetPivotX(px float64) {
	if n.pivotX != px {
		n.pivotX = px
		n.markTransformChanged()
	}
}

// SetPivotY sets the y of the pivot.
func (n *Node) SetPivotY(py float64) {
	if n.pivotY != py {
		n.pivotY = py
		n.markTransformChanged()
	}
}

// SetPivot sets both pivot coordinates.
func (n *Node) SetPivot(px, py float64) {
	if n.pivotX != px || n.pivotY != py {
		n.pivotX = px
		n.pivotY = py
		n.markTransformChanged()
	}
}

// SetScaleX sets the horizontal scale factor.
func (n *Node) SetScaleX(sx float64) {
	if n.scaleX != sx {
		n.scaleX = sx
		n.markTransformChanged()
	}
}

// SetScaleY sets the vertical scale factor.
func (n *Node) SetScaleY(sy float64) {
	if n.scaleY != sy {
		n.scaleY = sy
		n.markTransformChanged()
	}
}

// SetScale sets both scale factors.
func (n *Node) SetScale(sx, sy float64) {
	if n.scaleX != sx || n.scaleY != sy {
		n.scaleX = sx
		n.scaleY = sy
		n.markTransformChanged()
	}
}

// SetSkewX sets the horizontal skew in radians.
func (n *Node) SetSkewX(kx float64) {
	kx = normalizeAngle(kx)
	if n.skewX != kx {
		n.skewX = kx
		n.markTransformChanged()
	}
}

// SetSkewY sets the vertical skew in radians.
func (n *Node) SetSkewY(ky float64) {
	ky = normalizeAngle(ky)
	if n.skewY != ky {
		n.skewY = ky
		n.markTransformChanged()
	}
}

// SetSkew sets both skew angles in radians.
func (n *Node) SetSkew(kx, ky float64) {
	kx = normalizeAngle(kx)
	ky = normalizeAngle(ky)
	if n.skewX != kx || n.skewY != ky {
		n.skewX = kx
		n.skewY = ky
		n.markTransformChanged()
	}
}

// SetRotation sets the node's rotation in radians. The stored value is
// normalized to [-Pi, Pi].
func (n *Node) SetRotation(r float64) {
	r = normalizeAngle(r)
	if n.rotation != r {
		n.rotation = r
		n.markTransformChanged()
	}
}

// normalizeAngle maps an angle to [-Pi, Pi].
func normalizeAngle(a float64) float64 {
	if a >= -math.Pi && a <= math.Pi {
		return a
	}
	a = math.Mod(a, 2*math.Pi)
	if a < -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// --- Coordinate spaces ---

// GetTransformationMatrix returns the matrix mapping n's local space to the
// space of targetSpace. A nil targetSpace means the global space, i.e. the
// parent space of n's root. Returns ErrNotConnected when n and targetSpace
// are in different trees.
func (n *Node) GetTransformationMatrix(targetSpace *Node) (Matrix, error) {
	switch {
	case targetSpace == n:
		return IdentityMatrix, nil
	case targetSpace == n.parent:
		return n.TransformationMatrix(), nil
	case targetSpace == nil:
		return n.matrixUpTo(nil), nil
	case targetSpace.parent == n:
		m, _ := targetSpace.GetTransformationMatrix(n)
		return m.Invert(), nil
	}

	common := commonAncestor(n, targetSpace)
	if common == nil {
		return IdentityMatrix, ErrNotConnected
	}
	out := n.matrixUpTo(common)
	if common == targetSpace {
		return out, nil
	}
	toTarget := targetSpace.matrixUpTo(common)
	return out.Concat(toTarget.Invert()), nil
}

// matrixUpTo composes local matrices from n up to, but excluding, ancestor.
// A nil ancestor composes all the way to the root, inclusive.
func (n *Node) matrixUpTo(ancestor *Node) Matrix {
	out := IdentityMatrix
	for cur := n; cur != ancestor && cur != nil; cur = cur.parent {
		out = out.Concat(cur.TransformationMatrix())
	}
	return out
}

// commonAncestor returns the nearest node that is an ancestor of (or equal
// to) both a and b, or nil.
func commonAncestor(a, b *Node) *Node {
	da, db := depth(a), depth(b)
	for da > db {
		a = a.parent
		da--
	}
	for db > da {
		b = b.parent
		db--
	}
	for a != b {
		a = a.parent
		b = b.parent
	}
	return a
}

func depth(n *Node) int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// LocalToGlobal converts a local-space point to global space.
func (n *Node) LocalToGlobal(lx, ly float64) (gx, gy float64) {
	m, _ := n.GetTransformationMatrix(nil)
	return m.TransformPoint(lx, ly)
}

// GlobalToLocal converts a global-space point to this node's local space.
func (n *Node) GlobalToLocal(gx, gy float64) (lx, ly float64) {
	m, _ := n.GetTransformationMatrix(nil)
	return m.Invert().TransformPoint(gx, gy)
}
