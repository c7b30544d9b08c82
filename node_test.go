package birch

import (
	"errors"
	"testing"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
	if n.Render != nil {
		t.Error("containers should have no Render hook")
	}
}

func TestNewQuadDefaults(t *testing.T) {
	c := Color{R: 0.5, G: 0.25, B: 1, A: 1}
	n := NewQuad("quad", 32, 16, c)
	assertNodeDefaults(t, n, "quad", NodeTypeQuad)
	if w, h := n.Size(); w != 32 || h != 16 {
		t.Errorf("Size = (%v, %v), want (32, 16)", w, h)
	}
	if n.Color() != c {
		t.Errorf("Color = %v, want %v", n.Color(), c)
	}
	if n.Render == nil {
		t.Error("quads should have a Render hook")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX() != 1 || n.ScaleY() != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX(), n.ScaleY())
	}
	if n.Alpha() != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha())
	}
	if !n.Visible() || !n.Touchable() {
		t.Error("Visible and Touchable should default to true")
	}
	if !n.matrixDirty {
		t.Error("matrixDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewQuad("c", 1, 1, ColorWhite)
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent() != parent {
		t.Error("child.Parent() should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildAtInserts(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(c)
	parent.AddChildAt(b, 1)

	want := []*Node{a, b, c}
	for i, w := range want {
		if parent.ChildAt(i) != w {
			t.Errorf("ChildAt(%d) = %q, want %q", i, parent.ChildAt(i).Name, w.Name)
		}
	}
}

// expectTreeError runs fn and checks that it panics with a *TreeError
// wrapping want.
func expectTreeError(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v, got none", want)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		var te *TreeError
		if !errors.As(err, &te) {
			t.Fatalf("panic value %T is not a *TreeError", r)
		}
		if !errors.Is(err, want) {
			t.Fatalf("panic error = %v, want %v", err, want)
		}
	}()
	fn()
}

func TestAddChildStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		want error
		fn   func()
	}{
		{"self", ErrCycle, func() {
			n := NewContainer("self")
			n.AddChild(n)
		}},
		{"not a container", ErrNotContainer, func() {
			q := NewQuad("q", 1, 1, ColorWhite)
			q.AddChild(NewContainer("c"))
		}},
		{"has parent", ErrHasParent, func() {
			p1 := NewContainer("p1")
			p2 := NewContainer("p2")
			c := NewContainer("c")
			p1.AddChild(c)
			p2.AddChild(c)
		}},
		{"index out of range", ErrIndexRange, func() {
			p := NewContainer("p")
			p.AddChildAt(NewContainer("c"), 2)
		}},
		{"remove non-child", ErrNotChild, func() {
			p := NewContainer("p")
			p.RemoveChild(NewContainer("stranger"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTreeError(t, tt.want, tt.fn)
		})
	}
}

func TestAddChildCycleLeavesTreeUnchanged(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	root.AddChild(child)
	child.AddChild(grandchild)

	expectTreeError(t, ErrCycle, func() { grandchild.AddChild(root) })

	if root.Parent() != nil {
		t.Error("root should still have no parent")
	}
	if grandchild.NumChildren() != 0 {
		t.Errorf("grandchild has %d children, want 0", grandchild.NumChildren())
	}
	if child.Parent() != root || grandchild.Parent() != child {
		t.Error("existing links should be untouched")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestReaddChildMovesIndex(t *testing.T) {
	p := NewContainer("p")
	a := NewContainer("a")
	b := NewContainer("b")
	p.AddChild(a)
	p.AddChild(b)

	p.AddChild(a)

	if p.NumChildren() != 2 {
		t.Fatalf("NumChildren = %d, want 2", p.NumChildren())
	}
	if p.ChildAt(0) != b || p.ChildAt(1) != a {
		t.Error("re-adding a child should move it to the end")
	}
}

func TestAddChildAfterExplicitDetach(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	c := NewContainer("c")
	p1.AddChild(c)

	c.RemoveFromParent()
	p2.AddChild(c)

	if p1.NumChildren() != 0 || p2.NumChildren() != 1 || c.Parent() != p2 {
		t.Error("detach then add should move the child")
	}
}

// --- RemoveChild ---

func TestRemoveChild(t *testing.T) {
	p := NewContainer("p")
	a := NewContainer("a")
	b := NewContainer("b")
	p.AddChild(a)
	p.AddChild(b)

	p.RemoveChild(a)

	if a.Parent() != nil {
		t.Error("removed child should have no parent")
	}
	if p.NumChildren() != 1 || p.ChildAt(0) != b {
		t.Error("remaining child should be b")
	}
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p")
	kids := []*Node{NewContainer("a"), NewContainer("b"), NewContainer("c")}
	for _, k := range kids {
		p.AddChild(k)
	}
	p.RemoveChildren()

	if p.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", p.NumChildren())
	}
	for _, k := range kids {
		if k.Parent() != nil {
			t.Errorf("%q still has a parent", k.Name)
		}
	}
}

func TestRemoveFromParentNoParent(t *testing.T) {
	NewContainer("orphan").RemoveFromParent() // must not panic
}

// --- Queries ---

func TestChildByNameAndIndex(t *testing.T) {
	p := NewContainer("p")
	a := NewContainer("a")
	b := NewContainer("b")
	p.AddChild(a)
	p.AddChild(b)

	if p.ChildByName("b") != b {
		t.Error("ChildByName(b) failed")
	}
	if p.ChildByName("zzz") != nil {
		t.Error("ChildByName of a missing name should be nil")
	}
	if p.ChildIndex(b) != 1 {
		t.Errorf("ChildIndex(b) = %d, want 1", p.ChildIndex(b))
	}
	if p.ChildIndex(NewContainer("x")) != -1 {
		t.Error("ChildIndex of a stranger should be -1")
	}
}

func TestSetChildIndex(t *testing.T) {
	p := NewContainer("p")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)

	p.SetChildIndex(a, 2)
	if p.ChildAt(0) != b || p.ChildAt(1) != c || p.ChildAt(2) != a {
		t.Error("SetChildIndex(a, 2) should give [b c a]")
	}
	p.SetChildIndex(a, 0)
	if p.ChildAt(0) != a || p.ChildAt(1) != b || p.ChildAt(2) != c {
		t.Error("SetChildIndex(a, 0) should give [a b c]")
	}
}

func TestContainsAndRoot(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewQuad("leaf", 1, 1, ColorWhite)
	root.AddChild(mid)
	mid.AddChild(leaf)

	if !root.Contains(leaf) || !root.Contains(root) {
		t.Error("root should contain itself and leaf")
	}
	if leaf.Contains(root) {
		t.Error("leaf should not contain root")
	}
	if leaf.Root() != root {
		t.Error("leaf.Root() should be root")
	}
}

// --- Lifecycle events ---

func TestAddedEventBubbles(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")

	var got []string
	root.On(EventAdded, func(e *Event) {
		got = append(got, "root:"+e.TargetNode().Name)
	})
	child.On(EventAdded, func(e *Event) {
		got = append(got, "child:"+e.TargetNode().Name)
	})

	root.AddChild(child)

	want := []string{"child:child", "root:child"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStageEventsBroadcastToSubtree(t *testing.T) {
	s := NewStage(StageConfig{Width: 100, Height: 100})
	branch := NewContainer("branch")
	leaf := NewContainer("leaf")
	branch.AddChild(leaf)

	var added, removed int
	leaf.On(EventAddedToStage, func(*Event) { added++ })
	leaf.On(EventRemovedFromStage, func(e *Event) {
		removed++
		if e.Bubbles {
			t.Error("removedFromStage should not bubble")
		}
	})

	s.Root().AddChild(branch)
	if added != 1 {
		t.Errorf("addedToStage count = %d, want 1", added)
	}
	if leaf.Stage() != s {
		t.Error("leaf should point at the stage")
	}

	s.Root().RemoveChild(branch)
	if removed != 1 {
		t.Errorf("removedFromStage count = %d, want 1", removed)
	}
	if leaf.Stage() != nil {
		t.Error("leaf should have left the stage")
	}
}

func TestRemovedListenerStillAttached(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)

	var parentDuring *Node
	c.On(EventRemoved, func(*Event) { parentDuring = c.Parent() })
	p.RemoveChild(c)

	if parentDuring != p {
		t.Error("removed listener should run while the child is attached")
	}
}

// --- Dispose ---

func TestDispose(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	gc := NewContainer("gc")
	p.AddChild(c)
	c.AddChild(gc)
	c.On(EventTouch, func(*Event) {})

	c.Dispose()

	if !c.IsDisposed() || !gc.IsDisposed() {
		t.Error("node and descendants should be disposed")
	}
	if p.NumChildren() != 0 {
		t.Error("disposed node should be detached")
	}
	if c.HasEventListener(EventTouch, nil) {
		t.Error("listeners should be removed")
	}
	c.Dispose() // idempotent
}

type countingFilter struct{ disposed int }

func (f *countingFilter) Dispose() { f.disposed++ }

func TestDisposeReleasesMaskAndFilter(t *testing.T) {
	n := NewContainer("n")
	mask := NewQuad("mask", 10, 10, ColorWhite)
	f := &countingFilter{}
	n.SetMask(mask, false)
	n.SetFilter(f)

	n.Dispose()

	if !mask.IsDisposed() {
		t.Error("mask should be disposed")
	}
	if f.disposed != 1 {
		t.Errorf("filter disposed %d times, want 1", f.disposed)
	}
	if n.Mask() != nil || n.Filter() != nil {
		t.Error("slots should be cleared")
	}
}

func TestDebugDisposedPanics(t *testing.T) {
	globalDebug = true
	defer func() { globalDebug = false }()

	p := NewContainer("p")
	c := NewContainer("c")
	c.Dispose()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when adding a disposed node in debug mode")
		}
	}()
	p.AddChild(c)
}

// --- Display setters ---

func TestSetAlphaClamps(t *testing.T) {
	n := NewContainer("n")
	n.SetAlpha(2)
	if n.Alpha() != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha())
	}
	n.SetAlpha(-1)
	if n.Alpha() != 0 {
		t.Errorf("Alpha = %v, want 0", n.Alpha())
	}
}
