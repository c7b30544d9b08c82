package birch

import (
	"math"
	"testing"
)

// --- Mask slot ---

func TestSetMaskLinksOwner(t *testing.T) {
	n := NewContainer("n")
	mask := NewQuad("mask", 10, 10, ColorWhite)
	n.SetMask(mask, true)

	if n.Mask() != mask || !n.MaskInverted() {
		t.Error("mask slot not set")
	}
	if !mask.IsMask() || mask.MaskOwner() != n {
		t.Error("mask should know its owner")
	}

	n.ClearMask()
	if n.Mask() != nil || mask.IsMask() {
		t.Error("ClearMask should unlink both sides")
	}
}

func TestMaskMovesBetweenOwners(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	mask := NewQuad("mask", 10, 10, ColorWhite)
	a.SetMask(mask, false)
	b.SetMask(mask, false)

	if a.Mask() != nil {
		t.Error("previous owner should lose the mask")
	}
	if mask.MaskOwner() != b {
		t.Error("mask owner should be b")
	}
}

func TestSetMaskSelfPanics(t *testing.T) {
	n := NewContainer("n")
	expectTreeError(t, ErrCycle, func() { n.SetMask(n, false) })
}

func TestSetMaskRejectsBubbleCycles(t *testing.T) {
	t.Run("ancestor as mask", func(t *testing.T) {
		a := NewContainer("a")
		b := NewQuad("b", 10, 10, ColorWhite)
		a.AddChild(b)
		expectTreeError(t, ErrCycle, func() { b.SetMask(a, false) })
		if b.Mask() != nil || a.IsMask() {
			t.Error("rejected SetMask should leave both nodes untouched")
		}
	})
	t.Run("grandparent as mask", func(t *testing.T) {
		a := NewContainer("a")
		mid := NewContainer("mid")
		b := NewQuad("b", 10, 10, ColorWhite)
		a.AddChild(mid)
		mid.AddChild(b)
		expectTreeError(t, ErrCycle, func() { b.SetMask(a, true) })
	})
	t.Run("detached nodes masking each other", func(t *testing.T) {
		a := NewContainer("a")
		b := NewContainer("b")
		a.SetMask(b, false)
		expectTreeError(t, ErrCycle, func() { b.SetMask(a, false) })
		if a.Mask() != b || b.Mask() != nil {
			t.Error("first mask link should survive the rejected one")
		}
	})
	t.Run("owner under its own mask subtree", func(t *testing.T) {
		mask := NewContainer("mask")
		n := NewQuad("n", 10, 10, ColorWhite)
		mask.AddChild(n)
		expectTreeError(t, ErrCycle, func() { n.SetMask(mask, false) })
	})
	t.Run("descendant mask is fine", func(t *testing.T) {
		a := NewContainer("a")
		b := NewQuad("b", 10, 10, ColorWhite)
		a.AddChild(b)
		a.SetMask(b, false)
		if b.MaskOwner() != a {
			t.Error("a child may mask its parent")
		}
	})
}

func TestAddChildRejectsCycleThroughMask(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	b.SetMask(a, false)
	expectTreeError(t, ErrCycle, func() { a.AddChild(b) })
	if b.Parent() != nil || a.NumChildren() != 0 {
		t.Error("rejected AddChild should leave the tree unchanged")
	}
}

func TestMaskedNodeBubblesAndHitTests(t *testing.T) {
	a := NewContainer("a")
	b := NewQuad("b", 10, 10, ColorWhite)
	a.AddChild(b)
	func() {
		defer func() { _ = recover() }()
		b.SetMask(a, false)
	}()

	var seen []string
	a.On("ping", func(e *Event) { seen = append(seen, e.CurrentTargetNode().Name) })
	b.On("ping", func(e *Event) { seen = append(seen, e.CurrentTargetNode().Name) })
	b.DispatchEventWith("ping", true, nil)
	if len(seen) != 2 || seen[0] != "b" || seen[1] != "a" {
		t.Errorf("bubble = %v, want [b a]", seen)
	}
	if b.HitTest(5, 5) != b {
		t.Error("b should still be hit after the rejected mask")
	}
}

func TestUnparentedMaskJoinsStage(t *testing.T) {
	s := NewStage(StageConfig{Width: 10, Height: 10})
	n := NewContainer("n")
	mask := NewQuad("mask", 10, 10, ColorWhite)
	n.SetMask(mask, false)
	s.Root().AddChild(n)

	if mask.Stage() != s {
		t.Error("an unparented mask should follow its owner onto the stage")
	}
	s.Root().RemoveChild(n)
	if mask.Stage() != nil {
		t.Error("an unparented mask should leave the stage with its owner")
	}
}

// --- Hit testing with masks ---

func TestHitTestMask(t *testing.T) {
	tests := []struct {
		name     string
		inverted bool
		x, y     float64
		hit      bool
	}{
		{"inside mask", false, 5, 5, true},
		{"outside mask", false, 15, 15, false},
		{"inverted inside mask", true, 5, 5, false},
		{"inverted outside mask", true, 15, 15, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewContainer("root")
			q := NewQuad("q", 20, 20, ColorWhite)
			root.AddChild(q)
			q.SetMask(NewQuad("mask", 10, 10, ColorWhite), tt.inverted)

			got := root.HitTest(tt.x, tt.y) == q
			if got != tt.hit {
				t.Errorf("hit = %v, want %v", got, tt.hit)
			}
		})
	}
}

func TestHitTestUnparentedMaskUsesOwnerSpace(t *testing.T) {
	root := NewContainer("root")
	q := NewQuad("q", 100, 100, ColorWhite)
	q.SetPosition(50, 50)
	root.AddChild(q)

	// The mask's transform is relative to q: it covers q-local (20..30).
	mask := NewQuad("mask", 10, 10, ColorWhite)
	mask.SetPosition(20, 20)
	q.SetMask(mask, false)

	if root.HitTest(75, 75) != q {
		t.Error("point inside the mask should hit q")
	}
	if root.HitTest(60, 60) != nil {
		t.Error("point outside the mask should miss")
	}
}

func TestHitTestParentedMask(t *testing.T) {
	root := NewContainer("root")
	q := NewQuad("q", 100, 100, ColorWhite)
	root.AddChild(q)
	mask := NewQuad("mask", 10, 10, ColorWhite)
	mask.SetPosition(40, 40)
	root.AddChild(mask)
	q.SetMask(mask, false)

	if root.HitTest(45, 45) != q {
		t.Error("point inside the parented mask should hit q")
	}
	if root.HitTest(5, 5) != nil {
		t.Error("point outside the parented mask should miss")
	}
}

func TestMaskNodeNotHitDirectly(t *testing.T) {
	root := NewContainer("root")
	q := NewQuad("q", 10, 10, ColorWhite)
	root.AddChild(q)
	mask := NewQuad("mask", 100, 100, ColorWhite)
	root.AddChild(mask) // on top of q
	q.SetMask(mask, false)

	if hit := root.HitTest(50, 50); hit == mask {
		t.Error("a mask node should never be a hit target")
	}
	if root.HitTest(5, 5) != q {
		t.Error("q should be hit through the mask")
	}
}

func TestMaskIgnoresVisibility(t *testing.T) {
	root := NewContainer("root")
	q := NewQuad("q", 10, 10, ColorWhite)
	root.AddChild(q)
	mask := NewQuad("mask", 10, 10, ColorWhite)
	mask.SetTouchable(false)
	q.SetMask(mask, false)

	if root.HitTest(5, 5) != q {
		t.Error("an untouchable mask still defines the hit area")
	}
}

func TestMaskRotatedOwner(t *testing.T) {
	root := NewContainer("root")
	q := NewQuad("q", 20, 20, ColorWhite)
	q.SetPosition(50, 50)
	q.SetRotation(math.Pi / 2)
	root.AddChild(q)
	q.SetMask(NewQuad("mask", 10, 20, ColorWhite), false)

	// q-local (5, 10) is inside the mask; rotated it sits at (40, 55).
	if root.HitTest(40, 55) != q {
		t.Error("point inside the rotated mask should hit")
	}
	// q-local (15, 10) is outside; it sits at (40, 65).
	if root.HitTest(40, 65) != nil {
		t.Error("point outside the rotated mask should miss")
	}
}
