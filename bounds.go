package birch

// Bounds returns the axis-aligned bounds of n and its subtree in the space of
// targetSpace (nil for global space). Quads contribute their rectangle and
// containers the union of their children; a node with nothing to measure
// yields an empty rectangle at its origin. Masks are not applied.
func (n *Node) Bounds(targetSpace *Node) (Rect, error) {
	m, err := n.GetTransformationMatrix(targetSpace)
	if err != nil {
		return Rect{}, err
	}
	r, ok := n.boundsIn(m)
	if !ok {
		x, y := m.TransformPoint(0, 0)
		return Rect{X: x, Y: y}, nil
	}
	return r, nil
}

// boundsIn measures n with m mapping n's local space to the target space.
func (n *Node) boundsIn(m Matrix) (Rect, bool) {
	var out Rect
	found := false
	if w, h, ok := n.localExtent(); ok {
		out = transformRect(m, w, h)
		found = true
	}
	for _, child := range n.children {
		if child.maskee != nil {
			continue
		}
		r, ok := child.boundsIn(m.Multiply(child.TransformationMatrix()))
		if !ok {
			continue
		}
		if found {
			out = out.Union(r)
		} else {
			out = r
			found = true
		}
	}
	return out, found
}

func (n *Node) localExtent() (w, h float64, ok bool) {
	if n.Type == NodeTypeQuad {
		return n.width, n.height, true
	}
	return 0, 0, false
}

// transformRect returns the AABB of the (0,0)-(w,h) rectangle under m.
func transformRect(m Matrix, w, h float64) Rect {
	x0, y0 := m.TransformPoint(0, 0)
	x1, y1 := m.TransformPoint(w, 0)
	x2, y2 := m.TransformPoint(w, h)
	x3, y3 := m.TransformPoint(0, h)
	minX := min(x0, x1, x2, x3)
	minY := min(y0, y1, y2, y3)
	maxX := max(x0, x1, x2, x3)
	maxY := max(y0, y1, y2, y3)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
