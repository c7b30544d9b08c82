package birch

import (
	"fmt"
	"os"
)

// debugMaxQueueDepth is the raw sample backlog above which debug mode warns.
const debugMaxQueueDepth = 256

// touchSample is one raw pointer sample waiting in the queue.
type touchSample struct {
	id            int
	phase         TouchPhase
	x, y          float64
	pressure      float64
	width, height float64
}

// tapRecord remembers a recent Began sample for multi-tap detection.
type tapRecord struct {
	x, y      float64
	timestamp float64
	count     int
}

// hoverRecord snapshots a hovering touch before it is hit-tested again, so
// the node it leaves can be notified.
type hoverRecord struct {
	touch  *Touch
	target *Node
	chain  []*Node
}

// TouchRecord is what a TouchStore receives for every updated touch whose
// target carries a non-zero EntityID.
type TouchRecord struct {
	EntityID  uint32
	TouchID   int
	Phase     TouchPhase
	X, Y      float64
	TapCount  int
	Cancelled bool
}

// TouchStore receives touch records after each dispatch round. See the ecs
// package for a donburi-backed implementation.
type TouchStore interface {
	EmitTouch(rec TouchRecord)
}

// TouchProcessor turns raw pointer samples into Touch objects and dispatches
// EventTouch along each touch's bubble chain. Samples are queued by Enqueue
// and processed by AdvanceTime, at most one sample per touch id per round, so
// bursts of samples received between ticks are replayed in order.
type TouchProcessor struct {
	stage *Stage
	cfg   InputConfig

	elapsed float64

	queue     []touchSample
	queueHead int

	current  []*Touch
	updated  []*Touch
	lastTaps []tapRecord
	hovering []hoverRecord

	touchData TouchData
	mods      KeyModifiers
	marker    TouchMarker

	store TouchStore
}

func newTouchProcessor(s *Stage, cfg InputConfig) *TouchProcessor {
	p := &TouchProcessor{stage: s, cfg: cfg}
	p.marker.CenterX = s.width / 2
	p.marker.CenterY = s.height / 2
	return p
}

// Config returns the current input settings.
func (p *TouchProcessor) Config() InputConfig { return p.cfg }

// SetConfig replaces the input settings. Turning simulation off ends a
// mirrored touch that is still active.
func (p *TouchProcessor) SetConfig(cfg InputConfig) {
	wasSimulating := p.cfg.SimulateMultitouch
	p.cfg = cfg
	if wasSimulating && !cfg.SimulateMultitouch && p.marker.Visible {
		p.setArmed(false)
	}
}

// SetTouchStore attaches a store that receives a TouchRecord for every
// updated touch on an entity-backed node. Pass nil to detach.
func (p *TouchProcessor) SetTouchStore(store TouchStore) { p.store = store }

// NumTouches returns the number of touches currently tracked.
func (p *TouchProcessor) NumTouches() int { return len(p.current) }

// Touches returns the tracked touches. The slice is owned by the processor
// and must not be modified.
func (p *TouchProcessor) Touches() []*Touch { return p.current }

// TouchByID returns the tracked touch with the given id, or nil.
func (p *TouchProcessor) TouchByID(id int) *Touch {
	for _, t := range p.current {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Elapsed returns the processor clock in seconds.
func (p *TouchProcessor) Elapsed() float64 { return p.elapsed }

// QueueLen returns the number of raw samples not yet processed.
func (p *TouchProcessor) QueueLen() int { return len(p.queue) - p.queueHead }

// Enqueue adds a raw pointer sample in global coordinates. Id 0 is the
// primary pointer. While multitouch simulation is armed, a sample for id 0
// also queues a mirrored sample for SimulatedTouchID.
func (p *TouchProcessor) Enqueue(id int, phase TouchPhase, x, y, pressure, width, height float64) {
	p.queue = append(p.queue, touchSample{
		id: id, phase: phase, x: x, y: y,
		pressure: pressure, width: width, height: height,
	})
	if id == 0 && p.simulating() {
		p.marker.moveMarker(x, y, p.mods&ModShift != 0)
		mx, my := p.marker.MockX(), p.marker.MockY()
		p.queue = append(p.queue, touchSample{
			id: SimulatedTouchID, phase: phase, x: mx, y: my,
			pressure: pressure, width: width, height: height,
		})
	}
	if globalDebug && p.QueueLen() > debugMaxQueueDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[birch] warning: touch queue holds %d samples (threshold %d)\n",
			p.QueueLen(), debugMaxQueueDepth)
	}
}

// enqueueSample queues a sample with default pressure and contact size.
func (p *TouchProcessor) enqueueSample(id int, phase TouchPhase, x, y float64) {
	p.Enqueue(id, phase, x, y, 1, 1, 1)
}

// EnqueueMouseLeftStage queues a final hover sample one point outside the
// stage edge nearest to the mouse, so hover listeners see the pointer leave.
// It does nothing unless the mouse is currently hovering.
func (p *TouchProcessor) EnqueueMouseLeftStage() {
	mouse := p.TouchByID(0)
	if mouse == nil || mouse.Phase != TouchHover {
		return
	}
	const offset = 1.0
	w, h := p.stage.width, p.stage.height
	exitX, exitY := mouse.GlobalX, mouse.GlobalY
	distLeft := mouse.GlobalX
	distRight := w - distLeft
	distTop := mouse.GlobalY
	distBottom := h - distTop
	switch minDist := min(distLeft, distRight, distTop, distBottom); minDist {
	case distLeft:
		exitX = -offset
	case distRight:
		exitX = w + offset
	case distTop:
		exitY = -offset
	default:
		exitY = h + offset
	}
	p.enqueueSample(0, TouchHover, exitX, exitY)
}

// AdvanceTime advances the processor clock by dt seconds and processes every
// queued sample, one round per batch of distinct touch ids.
func (p *TouchProcessor) AdvanceTime(dt float64) {
	p.elapsed += dt
	p.expireTaps()

	for p.queueHead < len(p.queue) {
		for _, t := range p.current {
			if t.Phase == TouchBegan || t.Phase == TouchMoved {
				t.Phase = TouchStationary
			}
		}

		for p.queueHead < len(p.queue) && !containsTouchID(p.updated, p.queue[p.queueHead].id) {
			s := p.queue[p.queueHead]
			p.queueHead++
			p.updated = append(p.updated, p.createOrUpdate(s))
		}

		p.processTouches(p.updated)
		p.purgeEnded()

		clear(p.updated)
		p.updated = p.updated[:0]
	}
	p.queue = p.queue[:0]
	p.queueHead = 0
}

// CancelTouches ends every active touch with Cancelled set, delivers one
// dispatch carrying all of them, then forgets all touches and queued samples.
// Call it when the host is interrupted, e.g. when the window loses focus.
func (p *TouchProcessor) CancelTouches() {
	if len(p.current) > 0 {
		for _, t := range p.current {
			if t.Phase != TouchEnded {
				t.Phase = TouchEnded
				t.Cancelled = true
			}
		}
		p.processTouches(p.current)
	}
	clear(p.current)
	p.current = p.current[:0]
	clear(p.queue)
	p.queue = p.queue[:0]
	p.queueHead = 0
	p.marker.Visible = false
}

func (p *TouchProcessor) expireTaps() {
	out := p.lastTaps[:0]
	for _, tap := range p.lastTaps {
		if p.elapsed-tap.timestamp <= p.cfg.MultitapTime {
			out = append(out, tap)
		}
	}
	p.lastTaps = out
}

func (p *TouchProcessor) createOrUpdate(s touchSample) *Touch {
	t := p.TouchByID(s.id)
	if t == nil {
		t = newTouch(s.id)
		t.GlobalX, t.GlobalY = s.x, s.y
		p.current = append(p.current, t)
	}
	t.setPosition(s.x, s.y)
	t.Phase = s.phase
	t.Timestamp = p.elapsed
	t.Pressure = s.pressure
	t.Width = s.width
	t.Height = s.height
	if s.phase == TouchBegan {
		p.updateTapCount(t)
	}
	return t
}

// updateTapCount folds t into a recent nearby tap, or starts a new one.
func (p *TouchProcessor) updateTapCount(t *Touch) {
	maxSqDist := p.cfg.MultitapDistance * p.cfg.MultitapDistance
	t.TapCount = 1
	for i, tap := range p.lastTaps {
		dx := tap.x - t.GlobalX
		dy := tap.y - t.GlobalY
		if dx*dx+dy*dy > maxSqDist || p.elapsed-tap.timestamp > p.cfg.MultitapTime {
			continue
		}
		t.TapCount = tap.count + 1
		p.lastTaps = append(p.lastTaps[:i], p.lastTaps[i+1:]...)
		break
	}
	p.lastTaps = append(p.lastTaps, tapRecord{
		x: t.GlobalX, y: t.GlobalY, timestamp: t.Timestamp, count: t.TapCount,
	})
}

// processTouches hit-tests and dispatches one round. All touches share one
// event whose payload is the full set of current touches; the event records
// the nodes it visited, so each node sees it at most once per round.
func (p *TouchProcessor) processTouches(touches []*Touch) {
	p.hovering = p.hovering[:0]
	for _, t := range touches {
		if t.Phase == TouchHover && t.target != nil {
			p.hovering = append(p.hovering, hoverRecord{
				touch: t, target: t.target, chain: t.bubbleChain,
			})
		}
		if t.Phase == TouchHover || t.Phase == TouchBegan {
			t.setTarget(p.stage.HitTest(t.GlobalX, t.GlobalY))
		}
	}

	p.touchData.Touches = p.current
	p.touchData.Modifiers = p.mods
	pool := p.stage.events
	e := pool.Acquire(EventTouch, true, &p.touchData)

	// Nodes the pointer left hear about it before the new targets.
	for _, h := range p.hovering {
		if h.touch.target != h.target {
			e.dispatchChain(h.chain)
		}
	}
	for _, t := range touches {
		t.dispatchEvent(e)
	}

	pool.Release(e)
	p.touchData.Touches = nil
	clear(p.hovering)
	p.hovering = p.hovering[:0]

	if p.store != nil {
		p.emitRecords(touches)
	}
}

func (p *TouchProcessor) emitRecords(touches []*Touch) {
	for _, t := range touches {
		if t.target == nil || t.target.EntityID == 0 {
			continue
		}
		p.store.EmitTouch(TouchRecord{
			EntityID:  t.target.EntityID,
			TouchID:   t.ID,
			Phase:     t.Phase,
			X:         t.GlobalX,
			Y:         t.GlobalY,
			TapCount:  t.TapCount,
			Cancelled: t.Cancelled,
		})
	}
}

func (p *TouchProcessor) purgeEnded() {
	out := p.current[:0]
	for _, t := range p.current {
		if t.Phase != TouchEnded {
			out = append(out, t)
		}
	}
	clear(p.current[len(out):])
	p.current = out
}

func containsTouchID(touches []*Touch, id int) bool {
	for _, t := range touches {
		if t.ID == id {
			return true
		}
	}
	return false
}
