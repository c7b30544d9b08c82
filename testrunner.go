package birch

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	ID     int     `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var stepPhases = map[string]TouchPhase{
	"hover": TouchHover,
	"began": TouchBegan,
	"moved": TouchMoved,
	"ended": TouchEnded,
}

// TestRunner sequences injected input across ticks for scripted testing.
// Attach it to a Stage via SetTestRunner.
//
// Script format:
//
//	{"steps": [
//	  {"action": "began", "id": 0, "x": 10, "y": 10},
//	  {"action": "moved", "x": 20, "y": 10},
//	  {"action": "ended", "x": 20, "y": 10},
//	  {"action": "tap", "x": 50, "y": 50},
//	  {"action": "drag", "fromX": 0, "fromY": 0, "toX": 90, "toY": 0, "frames": 5},
//	  {"action": "wait", "frames": 3},
//	  {"action": "cancel"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Stage via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "drag", "wait", "cancel":
		default:
			if _, ok := stepPhases[st.Action]; !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the stage. The runner steps once at
// the start of every AdvanceTime call.
func (s *Stage) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one tick. Called from Stage.AdvanceTime.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "cancel":
		s.CancelTouches()
	default:
		s.InjectTouch(st.ID, stepPhases[st.Action], st.X, st.Y)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
