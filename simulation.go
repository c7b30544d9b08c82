package birch

// SimulatedTouchID is the touch id of the mirrored contact produced by
// multitouch simulation.
const SimulatedTouchID = -1

// TouchMarker describes the multitouch simulation state so a host can draw
// it: the real pointer, its mirror, and the center they are reflected through.
type TouchMarker struct {
	Visible          bool
	CenterX, CenterY float64
	RealX, RealY     float64
}

// MockX returns the x of the mirrored contact.
func (m *TouchMarker) MockX() float64 { return 2*m.CenterX - m.RealX }

// MockY returns the y of the mirrored contact.
func (m *TouchMarker) MockY() float64 { return 2*m.CenterY - m.RealY }

// moveMarker moves the real pointer to (x, y). With withCenter set the center
// follows by the same offset, which drags both contacts together.
func (m *TouchMarker) moveMarker(x, y float64, withCenter bool) {
	if withCenter {
		m.CenterX += x - m.RealX
		m.CenterY += y - m.RealY
	}
	m.RealX = x
	m.RealY = y
}

// Marker returns the current simulation marker.
func (p *TouchProcessor) Marker() TouchMarker { return p.marker }

// Modifiers returns the keyboard modifiers last passed to SetModifiers.
func (p *TouchProcessor) Modifiers() KeyModifiers { return p.mods }

// simulating reports whether samples for id 0 are currently mirrored.
func (p *TouchProcessor) simulating() bool {
	return p.cfg.SimulateMultitouch && p.mods&(ModCtrl|ModMeta) != 0
}

// SetModifiers records the held modifier keys. When multitouch simulation is
// enabled, pressing Ctrl (or Cmd) arms mirroring and releasing it disarms it;
// Shift moves the mirror center together with the pointer.
func (p *TouchProcessor) SetModifiers(mods KeyModifiers) {
	wasArmed := p.mods&(ModCtrl|ModMeta) != 0
	p.mods = mods
	armed := mods&(ModCtrl|ModMeta) != 0
	if p.cfg.SimulateMultitouch && wasArmed != armed {
		p.setArmed(armed)
	}
}

// setArmed starts or ends the mirrored touch. Arming while the real pointer
// is down begins a contact; otherwise the mirror only hovers. Disarming ends
// a mirrored contact that has not ended yet.
func (p *TouchProcessor) setArmed(armed bool) {
	p.marker.Visible = armed
	p.marker.CenterX = p.stage.width / 2
	p.marker.CenterY = p.stage.height / 2

	mouse := p.TouchByID(0)
	mock := p.TouchByID(SimulatedTouchID)
	if mouse != nil {
		p.marker.moveMarker(mouse.GlobalX, mouse.GlobalY, false)
	}

	switch {
	case !armed && mock != nil && mock.Phase != TouchEnded:
		p.queue = append(p.queue, touchSample{
			id: SimulatedTouchID, phase: TouchEnded,
			x: mock.GlobalX, y: mock.GlobalY,
			pressure: 1, width: 1, height: 1,
		})
	case armed && mouse != nil:
		phase := TouchBegan
		if mouse.Phase == TouchHover || mouse.Phase == TouchEnded {
			phase = TouchHover
		}
		p.queue = append(p.queue, touchSample{
			id: SimulatedTouchID, phase: phase,
			x: p.marker.MockX(), y: p.marker.MockY(),
			pressure: 1, width: 1, height: 1,
		})
	}
}
