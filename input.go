package birch

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxTouches bounds the concurrent touch contacts. Id 0 is the mouse; each
// new contact gets the next positive id.
const maxTouches = 9

// touchContact tracks one ebiten touch between polls.
type touchContact struct {
	tid    ebiten.TouchID
	id     int
	pos    Vec2
	active bool
}

// EbitenInput polls ebiten's mouse, touch and keyboard state once per tick
// and feeds the result to a Stage as raw samples and key notifications.
// Screen pixels are taken as stage coordinates; use a Layout that returns the
// stage size.
type EbitenInput struct {
	mouseDown   bool
	mouseInside bool
	mouseX      float64
	mouseY      float64
	mouseSeen   bool

	contacts    []touchContact
	nextTouchID int
	touchIDs    []ebiten.TouchID

	keys    []ebiten.Key
	focused bool
}

// NewEbitenInput creates an input adapter.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{focused: true}
}

// Poll reads this tick's input and queues it on s. Call it before
// Stage.AdvanceTime.
func (in *EbitenInput) Poll(s *Stage) {
	focused := ebiten.IsFocused()
	if in.focused && !focused {
		in.reset()
		s.CancelTouches()
	}
	in.focused = focused
	if !focused {
		return
	}

	in.pollKeys(s)
	in.pollMouse(s)
	in.pollTouches(s)
}

func (in *EbitenInput) reset() {
	in.mouseDown = false
	in.mouseSeen = false
	in.contacts = in.contacts[:0]
}

// pollKeys reports every key pressed or released this tick along with the
// modifier state after the change.
func (in *EbitenInput) pollKeys(s *Stage) {
	mods := readModifiers()
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		s.HandleKey(k, false, mods)
	}
	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		s.HandleKey(k, true, mods)
	}
}

// pollMouse produces samples for pointer 0.
func (in *EbitenInput) pollMouse(s *Stage) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	w, h := s.Size()
	inside := x >= 0 && y >= 0 && x < w && y < h

	// A released pointer outside the stage stops producing samples; tell
	// hover listeners it left.
	if !inside && !down && !in.mouseDown {
		if in.mouseInside {
			s.touches.EnqueueMouseLeftStage()
		}
		in.mouseInside = false
		return
	}

	moved := !in.mouseSeen || x != in.mouseX || y != in.mouseY
	if phase, ok := pointerPhase(in.mouseDown, down, moved); ok {
		s.touches.enqueueSample(0, phase, x, y)
	}
	in.mouseDown = down
	in.mouseInside = inside
	in.mouseX, in.mouseY = x, y
	in.mouseSeen = true
}

// pollTouches produces samples for touch contacts.
func (in *EbitenInput) pollTouches(s *Stage) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	for i := range in.contacts {
		in.contacts[i].active = false
	}
	for _, tid := range in.touchIDs {
		i, fresh := in.contactFor(tid)
		if i < 0 {
			continue
		}
		c := &in.contacts[i]
		c.active = true

		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		moved := x != c.pos.X || y != c.pos.Y
		if phase, ok := pointerPhase(!fresh, true, moved); ok {
			s.touches.enqueueSample(c.id, phase, x, y)
		}
		c.pos = Vec2{X: x, Y: y}
	}
	in.endInactiveContacts(s)
}

// endInactiveContacts queues an Ended sample for every contact not seen this
// poll and forgets it.
func (in *EbitenInput) endInactiveContacts(s *Stage) {
	live := in.contacts[:0]
	for _, c := range in.contacts {
		if !c.active {
			s.touches.enqueueSample(c.id, TouchEnded, c.pos.X, c.pos.Y)
			continue
		}
		live = append(live, c)
	}
	in.contacts = live
}

// contactFor returns the index of the contact tracking tid, allocating one
// with the next touch id when needed. fresh reports a new allocation. Returns
// -1 when maxTouches contacts are already tracked.
func (in *EbitenInput) contactFor(tid ebiten.TouchID) (i int, fresh bool) {
	for i := range in.contacts {
		if in.contacts[i].tid == tid {
			return i, false
		}
	}
	if len(in.contacts) >= maxTouches {
		return -1, false
	}
	in.nextTouchID++
	in.contacts = append(in.contacts, touchContact{tid: tid, id: in.nextTouchID})
	return len(in.contacts) - 1, true
}

// pointerPhase derives the phase of a new sample from the pressed state in
// the previous and current tick. ok is false when nothing changed.
func pointerPhase(wasDown, down, moved bool) (phase TouchPhase, ok bool) {
	switch {
	case down && !wasDown:
		return TouchBegan, true
	case !down && wasDown:
		return TouchEnded, true
	case !moved:
		return 0, false
	case down:
		return TouchMoved, true
	default:
		return TouchHover, true
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
