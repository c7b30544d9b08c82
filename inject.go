package birch

// Injected samples bypass the host window. Coordinates are global stage
// coordinates. One sample is fed to the touch processor per AdvanceTime
// call, so a sequence plays out over consecutive ticks like real input.

// InjectTouch queues a raw sample for touch id.
func (s *Stage) InjectTouch(id int, phase TouchPhase, x, y float64) {
	s.injectQueue = append(s.injectQueue, touchSample{
		id: id, phase: phase, x: x, y: y,
		pressure: 1, width: 1, height: 1,
	})
}

// InjectHover queues a hover sample for the primary pointer.
func (s *Stage) InjectHover(x, y float64) {
	s.InjectTouch(0, TouchHover, x, y)
}

// InjectTap queues a press followed by a release at the same point.
// Consumes two ticks.
func (s *Stage) InjectTap(x, y float64) {
	s.InjectTouch(0, TouchBegan, x, y)
	s.InjectTouch(0, TouchEnded, x, y)
}

// InjectDrag queues a full drag: Began at (fromX, fromY), linearly
// interpolated Moved samples over frames-2 intermediate ticks, and Ended at
// (toX, toY). The sequence consumes frames ticks; the minimum is 2.
func (s *Stage) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectTouch(0, TouchBegan, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectTouch(0, TouchMoved, x, y)
	}
	s.InjectTouch(0, TouchEnded, toX, toY)
}

// InjectedPending returns the number of injected samples not yet consumed.
func (s *Stage) InjectedPending() int { return len(s.injectQueue) }

// processInjectedInput moves one injected sample into the touch processor.
// Reports whether a sample was consumed.
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.touches.Enqueue(evt.id, evt.phase, evt.x, evt.y, evt.pressure, evt.width, evt.height)
	return true
}
