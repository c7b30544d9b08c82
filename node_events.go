package birch

// eventPool returns the pool of the stage n is attached to; nil when detached.
func (n *Node) eventPool() *EventPool {
	if n.stage == nil {
		return nil
	}
	return n.stage.events
}

// DispatchEvent delivers e to n's listeners. A bubbling event is offered to n
// and then to every bubble parent (parent, or mask owner for masks) in order.
// The chain is fixed before the first listener runs, so tree edits made by
// listeners do not change who receives this event.
func (n *Node) DispatchEvent(e *Event) {
	if e == nil || e.Type == "" {
		return
	}
	if !e.Bubbles && !n.HasEventListener(e.Type, nil) {
		return
	}
	prev := e.target
	e.target = n
	if e.Bubbles {
		n.bubbleEvent(e)
	} else {
		n.invoke(e, n)
	}
	if prev != nil {
		e.target = prev
	}
}

func (n *Node) bubbleEvent(e *Event) {
	pool := n.eventPool()
	chain := appendBubbleChain(pool.acquireChain(), n)
	for _, el := range chain {
		if el.invoke(e, el) {
			break
		}
	}
	pool.releaseChain(chain)
}

// DispatchEventWith dispatches a pooled event. Nothing is acquired unless the
// event bubbles or n has a listener for typ.
func (n *Node) DispatchEventWith(typ string, bubbles bool, data any) {
	if typ == "" {
		return
	}
	if !bubbles && !n.HasEventListener(typ, nil) {
		return
	}
	pool := n.eventPool()
	e := pool.Acquire(typ, bubbles, data)
	n.DispatchEvent(e)
	pool.Release(e)
}

// BroadcastEvent dispatches a non-bubbling event to n and every descendant
// with a listener for e.Type. Receivers are collected before the first
// listener runs. Panics if e bubbles.
func (n *Node) BroadcastEvent(e *Event) {
	if e.Bubbles {
		panic("birch: " + ErrBubbling.Error())
	}
	pool := n.eventPool()
	receivers := appendEventReceivers(pool.acquireChain(), n, e.Type)
	for _, r := range receivers {
		r.DispatchEvent(e)
	}
	pool.releaseChain(receivers)
}

// BroadcastEventWith broadcasts a pooled non-bubbling event of typ.
func (n *Node) BroadcastEventWith(typ string, data any) {
	pool := n.eventPool()
	e := pool.Acquire(typ, false, data)
	n.BroadcastEvent(e)
	pool.Release(e)
}

func appendEventReceivers(buf []*Node, n *Node, typ string) []*Node {
	if n.HasEventListener(typ, nil) {
		buf = append(buf, n)
	}
	for _, c := range n.children {
		buf = appendEventReceivers(buf, c, typ)
	}
	return buf
}
