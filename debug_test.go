package birch

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stderr = oldStderr
	return <-done
}

// ---- Debug mode tests ------------------------------------------------------

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10, Debug: true})
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	s.Root().AddChild(parent)

	child := NewQuad("child", 10, 10, ColorWhite)
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild with disposed node, got none")
		}
		msg := fmt.Sprint(r)
		if !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention disposed, got: %s", msg)
		}
	}()

	parent.AddChild(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10, Debug: true})
	defer s.SetDebugMode(false)

	parent := NewContainer("parent")
	parent.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on RemoveChildAt with disposed parent, got none")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "RemoveChildAt") {
			t.Errorf("panic message should name the operation, got: %s", msg)
		}
	}()

	parent.RemoveChildAt(0)
}

func TestReleaseMode_DisposedNodeNoOp(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10})

	child := NewQuad("child", 10, 10, ColorWhite)
	child.Dispose()

	// In release mode, adding a disposed child must not panic for
	// "disposed" reasons.
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			if strings.Contains(msg, "disposed") {
				t.Errorf("release mode should not panic on disposed node, got: %s", msg)
			}
		}
	}()

	s.Root().AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10, Debug: true})
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		// Build a chain deeper than debugMaxTreeDepth (32).
		current := s.Root()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewContainer(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})

	if !strings.Contains(output, "warning: tree depth") {
		t.Errorf("expected tree depth warning in stderr, got: %q", output)
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10, Debug: true})
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		parent := NewContainer("many_children")
		s.Root().AddChild(parent)
		for i := 0; i < debugMaxChildCount+1; i++ {
			parent.AddChild(NewContainer(fmt.Sprintf("c_%d", i)))
		}
	})

	if !strings.Contains(output, "warning: node") || !strings.Contains(output, "children") {
		t.Errorf("expected child count warning in stderr, got: %q", output)
	}
}

func TestDebugMode_TouchQueueWarning(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10, Debug: true})
	defer s.SetDebugMode(false)

	output := captureStderr(t, func() {
		for i := 0; i < debugMaxQueueDepth+1; i++ {
			s.Touches().enqueueSample(1, TouchMoved, 1, 1)
		}
	})

	if !strings.Contains(output, "warning: touch queue") {
		t.Errorf("expected touch queue warning in stderr, got: %q", output)
	}
}

func TestReleaseMode_NoWarnings(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10})

	output := captureStderr(t, func() {
		current := s.Root()
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewContainer("deep")
			current.AddChild(child)
			current = child
		}
	})

	if output != "" {
		t.Errorf("release mode should be silent, got: %q", output)
	}
}

func TestLogDrawSilentWithoutDebug(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10})
	output := captureStderr(t, func() {
		s.logDraw(time.Time{}, false)
	})
	if output != "" {
		t.Errorf("logDraw should be silent outside debug mode, got: %q", output)
	}
}

func TestLogDrawReportsStats(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10, Debug: true})
	defer s.SetDebugMode(false)
	s.stats = debugStats{nodeCount: 3, maskCount: 1}

	output := captureStderr(t, func() {
		s.logDraw(time.Time{}, false)
		s.logDraw(time.Time{}, true)
	})

	if !strings.Contains(output, "drew 3 nodes, 1 masks") {
		t.Errorf("expected draw stats, got: %q", output)
	}
	if !strings.Contains(output, "skipped") {
		t.Errorf("expected skipped frame line, got: %q", output)
	}
}
