package birch

import "github.com/hajimehoshi/ebiten/v2"

// StageConfig configures a new Stage.
type StageConfig struct {
	// Width and Height are the stage size in points. Pointer samples outside
	// this area hit nothing.
	Width, Height float64
	// Frames is the frame counter the stage reads. When nil the stage
	// creates its own. Stage.Draw advances it once per call either way, so a
	// host that renders through Draw must not advance a shared counter too.
	Frames *FrameCounter
	// Input configures the touch processor. A zero value uses
	// DefaultInputConfig.
	Input InputConfig
	// Debug enables debug checks and stderr diagnostics.
	Debug bool
}

// Stage is the top of a scene: it owns the root container, the event pool
// and the touch processor, and reads the current frame id from its
// FrameCounter.
type Stage struct {
	root    *Node
	width   float64
	height  float64
	frames  *FrameCounter
	events  *EventPool
	touches *TouchProcessor
	debug   bool

	// ClearColor fills the target before each full draw when its alpha is
	// non-zero.
	ClearColor Color
	// SkipUnchangedFrames reuses the previous frame's output when nothing in
	// the tree changed since the last draw.
	SkipUnchangedFrames bool

	frameCache *ebiten.Image
	offscreen  renderTexturePool
	stats      debugStats

	injectQueue []touchSample
	testRunner  *TestRunner
}

// NewStage creates a stage with an empty root container.
func NewStage(cfg StageConfig) *Stage {
	frames := cfg.Frames
	if frames == nil {
		frames = NewFrameCounter()
	}
	input := cfg.Input
	if input == (InputConfig{}) {
		input = DefaultInputConfig()
	}
	s := &Stage{
		width:  cfg.Width,
		height: cfg.Height,
		frames: frames,
		events: &EventPool{},
	}
	s.root = NewContainer("root")
	s.root.stage = s
	s.touches = newTouchProcessor(s, input)
	s.SetDebugMode(cfg.Debug)
	return s
}

// Root returns the stage's root container.
func (s *Stage) Root() *Node { return s.root }

// Size returns the stage size in points.
func (s *Stage) Size() (w, h float64) { return s.width, s.height }

// SetSize resizes the stage.
func (s *Stage) SetSize(w, h float64) {
	if s.width == w && s.height == h {
		return
	}
	s.width = w
	s.height = h
	s.root.setRequiresRedraw()
}

// Frames returns the frame counter the stage reads.
func (s *Stage) Frames() *FrameCounter { return s.frames }

// FrameID returns the current frame id.
func (s *Stage) FrameID() uint64 { return s.frames.id }

// Events returns the pool that recycles events dispatched on this stage.
func (s *Stage) Events() *EventPool { return s.events }

// Touches returns the stage's touch processor.
func (s *Stage) Touches() *TouchProcessor { return s.touches }

// RequiresRedraw reports whether anything on the stage changed this frame.
func (s *Stage) RequiresRedraw() bool { return s.root.RequiresRedraw() }

// SetTouchStore forwards touch records for entity-backed nodes to store.
func (s *Stage) SetTouchStore(store TouchStore) { s.touches.SetTouchStore(store) }

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, and tree depth, child count and touch queue warnings plus
// per-draw stats are printed to stderr.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Stage debug flag so that node
// operations can check it cheaply. With several stages it reflects whichever
// called SetDebugMode last.
var globalDebug bool

// HitTest returns the topmost touchable node under the global point (gx, gy).
// Points outside the stage area hit nothing; points inside that miss every
// child hit the root. An invisible or untouchable root hits nothing.
func (s *Stage) HitTest(gx, gy float64) *Node {
	if !s.root.visible || !s.root.touchable {
		return nil
	}
	if gx < 0 || gx > s.width || gy < 0 || gy > s.height {
		return nil
	}
	lx, ly := s.root.TransformationMatrix().Invert().TransformPoint(gx, gy)
	if hit := s.root.HitTest(lx, ly); hit != nil {
		return hit
	}
	if !s.root.hitTestMask(lx, ly) {
		return nil
	}
	return s.root
}

// AdvanceTime runs one update tick of dt seconds: the attached test runner,
// one injected input sample, the touch processor, then an EventEnterFrame
// broadcast carrying dt.
func (s *Stage) AdvanceTime(dt float64) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()
	s.touches.AdvanceTime(dt)
	s.root.BroadcastEventWith(EventEnterFrame, dt)
}

// CancelTouches ends all active touches. See TouchProcessor.CancelTouches.
func (s *Stage) CancelTouches() {
	s.injectQueue = s.injectQueue[:0]
	s.touches.CancelTouches()
}

// HandleKey reports a key press or release with the modifiers held after the
// change. The modifiers drive multitouch simulation; the key is broadcast
// from the root as EventKeyDown or EventKeyUp.
func (s *Stage) HandleKey(key ebiten.Key, down bool, mods KeyModifiers) {
	s.touches.SetModifiers(mods)
	typ := EventKeyUp
	if down {
		typ = EventKeyDown
	}
	s.root.BroadcastEventWith(typ, KeyboardData{Key: key, Modifiers: mods})
}
