package birch

// Listener is a registered event callback. Listener identity is the pointer:
// keep the value returned by NewListener or On to remove it later.
type Listener struct {
	fn func(*Event)
}

// NewListener wraps fn in a Listener handle.
func NewListener(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

// EventDispatcher keeps per-type listener lists. Lists are copy-on-write, so a
// dispatch in flight always iterates the list as it was when it started.
// Embedded by Node and TweenGroup. Not safe for concurrent use.
type EventDispatcher struct {
	listeners map[string][]*Listener
}

// AddEventListener registers l for typ. Registering the same listener twice
// for a type is a no-op.
func (d *EventDispatcher) AddEventListener(typ string, l *Listener) {
	if l == nil {
		return
	}
	if d.listeners == nil {
		d.listeners = make(map[string][]*Listener)
	}
	ls := d.listeners[typ]
	for _, x := range ls {
		if x == l {
			return
		}
	}
	// Appending past len never disturbs a slice header already being iterated.
	d.listeners[typ] = append(ls, l)
}

// On is shorthand for AddEventListener(typ, NewListener(fn)).
func (d *EventDispatcher) On(typ string, fn func(*Event)) *Listener {
	l := NewListener(fn)
	d.AddEventListener(typ, l)
	return l
}

// RemoveEventListener unregisters l for typ.
func (d *EventDispatcher) RemoveEventListener(typ string, l *Listener) {
	ls := d.listeners[typ]
	for i, x := range ls {
		if x != l {
			continue
		}
		if len(ls) == 1 {
			delete(d.listeners, typ)
			return
		}
		out := make([]*Listener, 0, len(ls)-1)
		out = append(out, ls[:i]...)
		out = append(out, ls[i+1:]...)
		d.listeners[typ] = out
		return
	}
}

// RemoveEventListeners removes every listener for typ, or all listeners when
// typ is empty.
func (d *EventDispatcher) RemoveEventListeners(typ string) {
	if typ == "" {
		d.listeners = nil
		return
	}
	delete(d.listeners, typ)
}

// HasEventListener reports whether l is registered for typ. A nil l matches
// any listener.
func (d *EventDispatcher) HasEventListener(typ string, l *Listener) bool {
	ls := d.listeners[typ]
	if l == nil {
		return len(ls) > 0
	}
	for _, x := range ls {
		if x == l {
			return true
		}
	}
	return false
}

// DispatchEvent invokes the listeners for e.Type with this dispatcher as the
// target. Bubbling needs a tree; see Node.DispatchEvent.
func (d *EventDispatcher) DispatchEvent(e *Event) {
	d.dispatchAs(d, e)
}

// DispatchEventWith dispatches an event only when a listener for typ exists.
// A bare dispatcher has no stage and so no pool; the event is allocated.
func (d *EventDispatcher) DispatchEventWith(typ string, bubbles bool, data any) {
	d.dispatchPooled(d, nil, typ, bubbles, data)
}

// dispatchPooled dispatches an event acquired from pool, which may be nil,
// with owner as the target.
func (d *EventDispatcher) dispatchPooled(owner any, pool *EventPool, typ string, bubbles bool, data any) {
	if !d.HasEventListener(typ, nil) {
		return
	}
	e := pool.Acquire(typ, bubbles, data)
	d.dispatchAs(owner, e)
	pool.Release(e)
}

func (d *EventDispatcher) dispatchAs(owner any, e *Event) {
	if e.Type == "" || !d.HasEventListener(e.Type, nil) {
		return
	}
	prev := e.target
	e.target = owner
	d.invoke(e, owner)
	if prev != nil {
		e.target = prev
	}
}

// invoke runs the listeners for e.Type with owner as the current target and
// reports whether propagation should stop.
func (d *EventDispatcher) invoke(e *Event, owner any) bool {
	ls := d.listeners[e.Type]
	if len(ls) == 0 {
		return false
	}
	e.currentTarget = owner
	for _, l := range ls {
		l.fn(e)
		if e.stopsImmediatePropagation {
			return true
		}
	}
	return e.stopsPropagation
}
