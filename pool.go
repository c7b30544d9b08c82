package birch

// EventPool recycles Event instances and bubble-chain buffers. A Stage owns
// one; nodes that are not on a stage use a nil pool, which allocates.
// Single-threaded, like the rest of the scene graph.
type EventPool struct {
	events []*Event
	chains [][]*Node
}

// Acquire returns a reset event from the pool, allocating when it is empty.
func (p *EventPool) Acquire(typ string, bubbles bool, data any) *Event {
	if p == nil || len(p.events) == 0 {
		return NewEvent(typ, bubbles, data)
	}
	e := p.events[len(p.events)-1]
	p.events[len(p.events)-1] = nil
	p.events = p.events[:len(p.events)-1]
	e.reset(typ, bubbles, data)
	return e
}

// Release clears e and returns it to the pool.
func (p *EventPool) Release(e *Event) {
	if p == nil || e == nil {
		return
	}
	e.reset("", false, nil)
	p.events = append(p.events, e)
}

// Len returns the number of idle events held by the pool.
func (p *EventPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.events)
}

func (p *EventPool) acquireChain() []*Node {
	if p == nil || len(p.chains) == 0 {
		return make([]*Node, 0, 8)
	}
	c := p.chains[len(p.chains)-1]
	p.chains[len(p.chains)-1] = nil
	p.chains = p.chains[:len(p.chains)-1]
	return c
}

func (p *EventPool) releaseChain(c []*Node) {
	if p == nil {
		return
	}
	clear(c)
	p.chains = append(p.chains, c[:0])
}
