package birch

import "fmt"

// TouchPhase is the lifecycle stage of a Touch.
type TouchPhase uint8

const (
	TouchHover      TouchPhase = iota // pointer over the surface, not pressed (mouse only)
	TouchBegan                        // contact started this round
	TouchMoved                        // contact moved this round
	TouchStationary                   // contact is down but had no new sample this round
	TouchEnded                        // contact lifted or was cancelled; purged after dispatch
)

var touchPhaseNames = [...]string{"hover", "began", "moved", "stationary", "ended"}

func (p TouchPhase) String() string {
	if int(p) < len(touchPhaseNames) {
		return touchPhaseNames[p]
	}
	return fmt.Sprintf("TouchPhase(%d)", p)
}

// IsDown reports whether the phase belongs to a pressed contact.
func (p TouchPhase) IsDown() bool {
	return p == TouchBegan || p == TouchMoved || p == TouchStationary
}

// Touch is the tracked state of one physical or simulated contact point.
// One Touch is reused for an id until it ends and is purged.
type Touch struct {
	ID int

	GlobalX, GlobalY                 float64
	PreviousGlobalX, PreviousGlobalY float64

	Phase     TouchPhase
	TapCount  int
	Timestamp float64 // seconds of processor time at the last sample
	Pressure  float64
	Width     float64
	Height    float64
	Cancelled bool

	target *Node
	// bubbleChain is rebuilt only when target changes. spareChain holds the
	// previous chain so it stays intact for one more round.
	bubbleChain []*Node
	spareChain  []*Node
}

func newTouch(id int) *Touch {
	return &Touch{ID: id, Pressure: 1, Width: 1, Height: 1}
}

// Target returns the node the touch was last hit-tested to, or nil.
func (t *Touch) Target() *Node { return t.target }

// BubbleChain returns the target followed by its bubble parents. The slice is
// owned by the touch and valid until the target changes.
func (t *Touch) BubbleChain() []*Node { return t.bubbleChain }

// setTarget updates the target and rebuilds the bubble chain if it changed.
func (t *Touch) setTarget(n *Node) {
	if t.target == n {
		return
	}
	t.target = n
	next := t.spareChain[:0]
	if n != nil {
		next = appendBubbleChain(next, n)
	}
	t.spareChain = t.bubbleChain
	t.bubbleChain = next
}

// setPosition records a new global position, keeping the previous one.
func (t *Touch) setPosition(x, y float64) {
	t.PreviousGlobalX = t.GlobalX
	t.PreviousGlobalY = t.GlobalY
	t.GlobalX = x
	t.GlobalY = y
}

// Location returns the touch position in the local space of space (nil for
// global space).
func (t *Touch) Location(space *Node) (x, y float64) {
	if space == nil {
		return t.GlobalX, t.GlobalY
	}
	return space.GlobalToLocal(t.GlobalX, t.GlobalY)
}

// PreviousLocation returns the previous position in the local space of space.
func (t *Touch) PreviousLocation(space *Node) (x, y float64) {
	if space == nil {
		return t.PreviousGlobalX, t.PreviousGlobalY
	}
	return space.GlobalToLocal(t.PreviousGlobalX, t.PreviousGlobalY)
}

// Movement returns the distance moved since the previous sample, in the local
// space of space.
func (t *Touch) Movement(space *Node) (dx, dy float64) {
	x, y := t.Location(space)
	px, py := t.PreviousLocation(space)
	return x - px, y - py
}

// IsTouching reports whether the touch target is n or one of n's descendants.
func (t *Touch) IsTouching(n *Node) bool {
	return t.target != nil && n != nil && n.Contains(t.target)
}

// Clone returns a copy of t that shares no bubble chain storage.
func (t *Touch) Clone() *Touch {
	c := *t
	c.bubbleChain = append([]*Node(nil), t.bubbleChain...)
	c.spareChain = nil
	return &c
}

func (t *Touch) String() string {
	return fmt.Sprintf("Touch{id=%d phase=%s pos=(%.1f,%.1f) taps=%d}",
		t.ID, t.Phase, t.GlobalX, t.GlobalY, t.TapCount)
}

// dispatchEvent delivers e along the touch's bubble chain.
func (t *Touch) dispatchEvent(e *Event) {
	if t.target != nil {
		e.dispatchChain(t.bubbleChain)
	}
}

// TouchData is the payload of EventTouch: every touch the processor is
// tracking, including ones that did not change this round. It is only valid
// while the event is being dispatched.
type TouchData struct {
	Touches   []*Touch
	Modifiers KeyModifiers
}

// ShiftKey reports whether Shift was held when the event was dispatched.
func (d *TouchData) ShiftKey() bool { return d.Modifiers&ModShift != 0 }

// CtrlKey reports whether Ctrl was held when the event was dispatched.
func (d *TouchData) CtrlKey() bool { return d.Modifiers&ModCtrl != 0 }

// TouchData returns the touch payload of e, or nil if e is not a touch event.
func (e *Event) TouchData() *TouchData {
	d, _ := e.Data.(*TouchData)
	return d
}

// Touches returns every touch carried by e, or nil.
func (e *Event) Touches() []*Touch {
	if d := e.TouchData(); d != nil {
		return d.Touches
	}
	return nil
}

// AnyPhase matches every phase in TouchesFor and TouchFor.
const AnyPhase TouchPhase = 0xff

// TouchesFor appends to buf the touches of e whose target is target or a
// descendant of it, restricted to phase unless phase is AnyPhase. A nil
// target matches every touch.
func (e *Event) TouchesFor(buf []*Touch, target *Node, phase TouchPhase) []*Touch {
	for _, t := range e.Touches() {
		if touchMatches(t, target, phase) {
			buf = append(buf, t)
		}
	}
	return buf
}

// TouchFor returns the first touch of e on target in phase, or nil.
func (e *Event) TouchFor(target *Node, phase TouchPhase) *Touch {
	for _, t := range e.Touches() {
		if touchMatches(t, target, phase) {
			return t
		}
	}
	return nil
}

// InteractsWith reports whether any touch of e targets target or its subtree.
func (e *Event) InteractsWith(target *Node) bool {
	return e.TouchFor(target, AnyPhase) != nil
}

func touchMatches(t *Touch, target *Node, phase TouchPhase) bool {
	if target != nil && !t.IsTouching(target) {
		return false
	}
	return phase == AnyPhase || t.Phase == phase
}
