package birch

// FrameCounter holds the id of the frame currently being built. The renderer
// owns it and calls Advance after each draw; the scene graph only reads it.
type FrameCounter struct {
	id uint64
}

// NewFrameCounter returns a counter starting at frame 1.
func NewFrameCounter() *FrameCounter {
	return &FrameCounter{id: 1}
}

// ID returns the current frame id.
func (f *FrameCounter) ID() uint64 { return f.id }

// Advance moves to the next frame.
func (f *FrameCounter) Advance() { f.id++ }

// currentFrame returns the frame id of n's stage and whether n is on one.
func (n *Node) currentFrame() (uint64, bool) {
	if n.stage == nil || n.stage.frames == nil {
		return 0, false
	}
	return n.stage.frames.id, true
}

// stampSelf marks n itself as changed in the current frame.
func (n *Node) stampSelf() {
	if f, ok := n.currentFrame(); ok {
		n.selfChangedFrame = f
	}
}

// setRequiresRedraw stamps n as changed this frame and marks every ancestor
// (following mask owners for masks) as having a changed descendant. The walk
// ends at the first ancestor already stamped this frame, so many changes in
// one frame cost O(depth) in total.
func (n *Node) setRequiresRedraw() {
	frame, ok := n.currentFrame()
	if !ok {
		return
	}
	n.selfChangedFrame = frame
	for p := n.bubbleParent(); p != nil && p.childChangedFrame != frame; p = p.bubbleParent() {
		p.childChangedFrame = frame
	}
}

// SetRequiresRedraw forces n to be redrawn in the current frame. Property
// setters call it automatically; use it after changing state the scene graph
// does not track, such as the contents of a custom Render hook.
func (n *Node) SetRequiresRedraw() {
	n.setRequiresRedraw()
}

// RequiresRedraw reports whether n or one of its descendants changed in the
// current frame. Nodes that are not on a stage always report true.
func (n *Node) RequiresRedraw() bool {
	frame, ok := n.currentFrame()
	if !ok {
		return true
	}
	return n.selfChangedFrame == frame || n.childChangedFrame == frame
}
