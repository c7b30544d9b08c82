package birch

// Filter is the slot for a post-processing filter. Filters themselves are
// implemented by the renderer; the scene graph only owns their lifetime.
type Filter interface {
	Dispose()
}

// RenderFunc draws a node. It is called by the renderer with the node's
// node-to-target matrix and accumulated alpha.
type RenderFunc func(n *Node, ctx *RenderContext)

// --- ID counter ---

// nodeIDCounter is a plain counter; birch is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
//
// Transform and display properties are unexported so that every change goes
// through a setter, which keeps the matrix cache and redraw stamps valid.
type Node struct {
	EventDispatcher

	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy. children owns; parent is a lookup reference only.
	parent   *Node
	children []*Node
	stage    *Stage

	// Transform (local)
	x, y           float64
	pivotX, pivotY float64
	scaleX, scaleY float64
	skewX, skewY   float64
	rotation       float64

	// Cached local matrix; valid iff !matrixDirty.
	matrix      Matrix
	matrixDirty bool

	// Display
	alpha     float64
	visible   bool
	touchable bool
	blendMode BlendMode
	color     Color
	width     float64 // quad size
	height    float64

	// Hit testing. A nil HitShape falls back to the quad rectangle.
	HitShape HitShape

	// Mask and filter slots. maskee is set on a node used as a mask.
	mask         *Node
	maskee       *Node
	maskInverted bool
	filter       Filter

	// Redraw stamps compared against the stage's frame counter.
	selfChangedFrame  uint64
	childChangedFrame uint64

	// Render hook; nil for containers, set to the quad painter for quads.
	Render RenderFunc

	// Metadata
	UserData any
	EntityID uint32

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.scaleX = 1
	n.scaleY = 1
	n.alpha = 1
	n.color = ColorWhite
	n.visible = true
	n.touchable = true
	n.matrixDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewQuad creates a leaf node covering (0, 0)-(w, h) in its local space.
func NewQuad(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeQuad, width: w, height: h}
	nodeDefaults(n)
	n.color = c
	n.Render = drawQuad
	return n
}

// --- Accessors ---

// Parent returns the node's parent, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Stage returns the stage this node is attached to, or nil.
func (n *Node) Stage() *Stage { return n.stage }

// Root returns the topmost ancestor of n (n itself when it has no parent).
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// IsContainer reports whether n can hold children.
func (n *Node) IsContainer() bool { return n.Type == NodeTypeContainer }

// Visible reports whether the node is rendered and hit-testable.
func (n *Node) Visible() bool { return n.visible }

// SetVisible shows or hides the node and its subtree.
func (n *Node) SetVisible(v bool) {
	if n.visible == v {
		return
	}
	n.visible = v
	n.setRequiresRedraw()
}

// Touchable reports whether the node takes part in hit testing.
func (n *Node) Touchable() bool { return n.touchable }

// SetTouchable enables or disables hit testing for the node and its subtree.
// Touchability does not affect rendering.
func (n *Node) SetTouchable(v bool) { n.touchable = v }

// Alpha returns the node's opacity in [0, 1].
func (n *Node) Alpha() float64 { return n.alpha }

// SetAlpha sets the node's opacity, clamped to [0, 1].
func (n *Node) SetAlpha(a float64) {
	a = min(max(a, 0), 1)
	if n.alpha == a {
		return
	}
	n.alpha = a
	n.setRequiresRedraw()
}

// BlendMode returns the node's blend mode.
func (n *Node) BlendMode() BlendMode { return n.blendMode }

// SetBlendMode sets the node's blend mode.
func (n *Node) SetBlendMode(b BlendMode) {
	if n.blendMode == b {
		return
	}
	n.blendMode = b
	n.setRequiresRedraw()
}

// Color returns the quad tint.
func (n *Node) Color() Color { return n.color }

// SetColor sets the quad tint.
func (n *Node) SetColor(c Color) {
	if n.color == c {
		return
	}
	n.color = c
	n.setRequiresRedraw()
}

// Size returns the quad size in local units.
func (n *Node) Size() (w, h float64) { return n.width, n.height }

// SetSize sets the quad size in local units.
func (n *Node) SetSize(w, h float64) {
	if n.width == w && n.height == h {
		return
	}
	n.width = w
	n.height = h
	n.setRequiresRedraw()
}

// Filter returns the node's filter, or nil.
func (n *Node) Filter() Filter { return n.filter }

// SetFilter replaces the node's filter. The previous filter is not disposed.
func (n *Node) SetFilter(f Filter) {
	if n.filter == f {
		return
	}
	n.filter = f
	n.setRequiresRedraw()
}

// --- Tree manipulation ---

// AddChild appends child to this container.
// Panics with a *TreeError if n is not a container, child is nil, child would
// become its own ancestor, or child belongs to another parent.
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, len(n.children))
}

// AddChildAt inserts child at the given index. If child is already a child of
// n it is moved to index instead.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("birch: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if !n.IsContainer() {
		treePanic("AddChild", n, child, ErrNotContainer)
	}
	if child.parent == n {
		n.SetChildIndex(child, min(index, len(n.children)-1))
		return
	}
	if index < 0 || index > len(n.children) {
		treePanic("AddChild", n, child, ErrIndexRange)
	}
	if isBubbleAncestor(child, n) {
		treePanic("AddChild", n, child, ErrCycle)
	}
	if child.parent != nil {
		treePanic("AddChild", n, child, ErrHasParent)
	}

	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	child.parent = n

	if n.stage != nil {
		setSubtreeStage(child, n.stage)
	}
	child.stampSelf()
	n.setRequiresRedraw()

	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}

	child.DispatchEventWith(EventAdded, true, nil)
	if n.stage != nil {
		child.BroadcastEventWith(EventAddedToStage, nil)
	}
}

// RemoveChild detaches child from this node.
// Panics if child's parent is not n.
func (n *Node) RemoveChild(child *Node) {
	i := n.ChildIndex(child)
	if i < 0 {
		treePanic("RemoveChild", n, child, ErrNotChild)
	}
	n.RemoveChildAt(i)
}

// RemoveChildAt removes and returns the child at the given index.
// Listeners for EventRemoved and EventRemovedFromStage run while the child is
// still attached.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	if index < 0 || index >= len(n.children) {
		treePanic("RemoveChildAt", n, nil, ErrIndexRange)
	}
	child := n.children[index]

	child.DispatchEventWith(EventRemoved, true, nil)
	if n.stage != nil {
		child.BroadcastEventWith(EventRemovedFromStage, nil)
	}

	// Listeners may have reordered or removed the child already.
	if i := n.ChildIndex(child); i >= 0 {
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		child.parent = nil
		setSubtreeStage(child, nil)
	}
	n.setRequiresRedraw()
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node, last to first.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i := len(n.children) - 1; i >= 0; i-- {
		if i < len(n.children) {
			n.RemoveChildAt(i)
		}
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// ChildByName returns the first direct child with the given name, or nil.
func (n *Node) ChildByName(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildIndex returns the index of child, or -1 if it is not a child of n.
func (n *Node) ChildIndex(child *Node) int {
	if child == nil || child.parent != n {
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	oldIndex := n.ChildIndex(child)
	if oldIndex < 0 {
		treePanic("SetChildIndex", n, child, ErrNotChild)
	}
	if index < 0 || index >= len(n.children) {
		treePanic("SetChildIndex", n, child, ErrIndexRange)
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.setRequiresRedraw()
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	return other != nil && isAncestor(n, other)
}

// --- Disposal ---

// Dispose removes this node from its parent, drops all listeners, disposes
// the mask and filter, and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.parent = nil
	n.stage = nil
	n.RemoveEventListeners("")
	if n.mask != nil {
		m := n.mask
		n.mask = nil
		m.maskee = nil
		m.Dispose()
	}
	if n.maskee != nil {
		n.maskee.mask = nil
		n.maskee = nil
	}
	if n.filter != nil {
		n.filter.Dispose()
		n.filter = nil
	}
	n.HitShape = nil
	n.Render = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// isBubbleAncestor is isAncestor over bubble links, so a parentless mask
// counts its owner as parent.
func isBubbleAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.bubbleParent() {
		if p == candidate {
			return true
		}
	}
	return false
}

// setSubtreeStage points node and its descendants at s.
func setSubtreeStage(node *Node, s *Stage) {
	node.stage = s
	for _, child := range node.children {
		setSubtreeStage(child, s)
	}
	if node.mask != nil && node.mask.parent == nil {
		setSubtreeStage(node.mask, s)
	}
}

// bubbleParent is the next element of a bubble chain: the parent, or the
// owner when node is used as a mask.
func (n *Node) bubbleParent() *Node {
	if n.parent != nil {
		return n.parent
	}
	return n.maskee
}

// appendBubbleChain appends n and every bubble parent of n to buf.
func appendBubbleChain(buf []*Node, n *Node) []*Node {
	for el := n; el != nil; el = el.bubbleParent() {
		buf = append(buf, el)
	}
	return buf
}
