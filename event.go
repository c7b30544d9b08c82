package birch

// Event is passed to every listener. Events are pooled: do not keep a
// reference to one after the listener returns.
type Event struct {
	Type    string
	Bubbles bool
	Data    any

	target        any
	currentTarget any

	stopsPropagation          bool
	stopsImmediatePropagation bool

	// visited records the nodes this event was already offered to, so one
	// event reaches a node at most once across several chain dispatches.
	visited []*Node
}

// NewEvent creates an event outside of any pool.
func NewEvent(typ string, bubbles bool, data any) *Event {
	return &Event{Type: typ, Bubbles: bubbles, Data: data}
}

// Target returns the object that dispatched the event.
func (e *Event) Target() any { return e.target }

// CurrentTarget returns the object whose listeners are being invoked.
func (e *Event) CurrentTarget() any { return e.currentTarget }

// TargetNode returns the target as a *Node, or nil if it is not a node.
func (e *Event) TargetNode() *Node {
	n, _ := e.target.(*Node)
	return n
}

// CurrentTargetNode returns the current target as a *Node, or nil.
func (e *Event) CurrentTargetNode() *Node {
	n, _ := e.currentTarget.(*Node)
	return n
}

// StopPropagation prevents the event from reaching the next bubble target.
// Remaining listeners on the current target still run.
func (e *Event) StopPropagation() {
	e.stopsPropagation = true
}

// StopImmediatePropagation additionally skips the remaining listeners on the
// current target.
func (e *Event) StopImmediatePropagation() {
	e.stopsPropagation = true
	e.stopsImmediatePropagation = true
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool { return e.stopsPropagation }

// reset clears every outward reference so a pooled event retains nothing.
func (e *Event) reset(typ string, bubbles bool, data any) {
	e.Type = typ
	e.Bubbles = bubbles
	e.Data = data
	e.target = nil
	e.currentTarget = nil
	e.stopsPropagation = false
	e.stopsImmediatePropagation = false
	clear(e.visited)
	e.visited = e.visited[:0]
}

func (e *Event) hasVisited(n *Node) bool {
	for _, v := range e.visited {
		if v == n {
			return true
		}
	}
	return false
}

// dispatchChain offers the event to chain in order, targeting chain[0].
// Non-bubbling events only reach chain[0]. Nodes already visited by this
// event instance are skipped, and the walk ends at the first target that
// stops propagation. The stop flags are not cleared afterwards.
func (e *Event) dispatchChain(chain []*Node) {
	if len(chain) == 0 {
		return
	}
	n := 1
	if e.Bubbles {
		n = len(chain)
	}
	prev := e.target
	e.target = chain[0]
	for i := 0; i < n; i++ {
		el := chain[i]
		if e.hasVisited(el) {
			continue
		}
		stop := el.invoke(e, el)
		e.visited = append(e.visited, el)
		if stop {
			break
		}
	}
	e.target = prev
}
