package birch

// SetMask sets a mask node for this node. Only the parts of this node that
// overlap the mask are drawn and hit-testable; with inverted set, only the
// parts outside it. The mask node has no visible area of its own and is
// skipped by ordinary hit testing and rendering. When the mask is not part of
// a tree, its transform is relative to this node. SetMask panics with a
// *TreeError wrapping ErrCycle when maskNode is n or one of its bubble
// ancestors.
func (n *Node) SetMask(maskNode *Node, inverted bool) {
	if n.mask == maskNode && n.maskInverted == inverted {
		return
	}
	if maskNode != nil && isBubbleAncestor(maskNode, n) {
		treePanic("SetMask", n, maskNode, ErrCycle)
	}
	if n.mask != nil {
		n.mask.maskee = nil
	}
	if maskNode != nil {
		if maskNode.maskee != nil && maskNode.maskee != n {
			maskNode.maskee.mask = nil
		}
		maskNode.maskee = n
		if maskNode.parent == nil {
			setSubtreeStage(maskNode, n.stage)
		}
	}
	n.mask = maskNode
	n.maskInverted = inverted
	n.setRequiresRedraw()
}

// ClearMask removes the mask from this node.
func (n *Node) ClearMask() {
	n.SetMask(nil, false)
}

// Mask returns the current mask node, or nil if no mask is set.
func (n *Node) Mask() *Node {
	return n.mask
}

// MaskInverted reports whether the mask is applied inverted.
func (n *Node) MaskInverted() bool {
	return n.maskInverted
}

// IsMask reports whether n is currently used as another node's mask.
func (n *Node) IsMask() bool {
	return n.maskee != nil
}

// MaskOwner returns the node n masks, or nil.
func (n *Node) MaskOwner() *Node {
	return n.maskee
}

// hitTestMask reports whether the local point (lx, ly) of n survives n's
// mask. Nodes without a mask accept every point.
func (n *Node) hitTestMask(lx, ly float64) bool {
	if n.mask == nil {
		return true
	}
	var toMask Matrix
	if n.mask.parent != nil {
		m, err := n.GetTransformationMatrix(n.mask)
		if err != nil {
			return false
		}
		toMask = m
	} else {
		toMask = n.mask.TransformationMatrix().Invert()
	}
	mx, my := toMask.TransformPoint(lx, ly)
	hit := n.mask.hitTest(mx, my, true) != nil
	return hit != n.maskInverted
}
