package birch

// HitShape is used for custom hit testing regions in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Hit testing ---

// containsLocal tests whether (lx, ly) falls inside a node's own hit region.
// Uses HitShape if set; otherwise quads use their rectangle and containers
// have no area of their own.
func (n *Node) containsLocal(lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	if n.Type != NodeTypeQuad {
		return false
	}
	return lx >= 0 && lx <= n.width && ly >= 0 && ly <= n.height
}

// HitTest returns the topmost node under the point (lx, ly), given in n's
// local space, or nil. Invisible or untouchable nodes reject the point, as do
// points outside the node's mask. Containers test their children front to
// back (last child first) and fall back to their own HitShape.
func (n *Node) HitTest(lx, ly float64) *Node {
	return n.hitTest(lx, ly, false)
}

// hitTest implements HitTest. forMask skips the visibility and touchability
// checks, which do not apply to a node acting as a mask.
func (n *Node) hitTest(lx, ly float64, forMask bool) *Node {
	if !forMask && (!n.visible || !n.touchable) {
		return nil
	}
	if !n.hitTestMask(lx, ly) {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		child := n.children[i]
		if child.maskee != nil {
			continue
		}
		cx, cy := child.TransformationMatrix().Invert().TransformPoint(lx, ly)
		if target := child.hitTest(cx, cy, forMask); target != nil {
			if forMask {
				return n
			}
			return target
		}
	}
	if n.containsLocal(lx, ly) {
		return n
	}
	return nil
}
