package birch

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 node properties simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenScale, TweenColor, ...)
// and call Update(dt) each tick, typically from an EventEnterFrame listener.
// Values are written through the node's setters, so the node's matrix cache
// and redraw stamps stay valid. When every tween finishes the group
// dispatches EventComplete on itself. If the target node is disposed, the
// group stops immediately without completing.
type TweenGroup struct {
	EventDispatcher

	tweens [4]*gween.Tween
	values [4]float64
	count  int
	apply  func(v *[4]float64)
	target *Node
	Done   bool
}

func newTweenGroup(node *Node, apply func(v *[4]float64), from, to []float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: len(from), target: node, apply: apply}
	for i := range from {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
		g.values[i] = from[i]
	}
	return g
}

// Update advances all tweens by dt seconds and writes the values to the
// target node.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(&g.values)
	g.Done = allDone

	if g.Done {
		g.dispatchPooled(g, g.eventPool(), EventComplete, false, g.target)
	}
}

// eventPool is the pool of the target's stage, or nil off stage.
func (g *TweenGroup) eventPool() *EventPool {
	if g.target == nil {
		return nil
	}
	return g.target.eventPool()
}

// Reset rewinds every tween to its start so the group can run again.
func (g *TweenGroup) Reset() {
	for i := 0; i < g.count; i++ {
		g.tweens[i].Reset()
	}
	g.Done = false
}

// Target returns the animated node.
func (g *TweenGroup) Target() *Node { return g.target }

// TweenPosition animates X and Y to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, func(v *[4]float64) { node.SetPosition(v[0], v[1]) },
		[]float64{node.x, node.y}, []float64{toX, toY}, duration, fn)
}

// TweenScale animates ScaleX and ScaleY to (toSX, toSY).
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, func(v *[4]float64) { node.SetScale(v[0], v[1]) },
		[]float64{node.scaleX, node.scaleY}, []float64{toSX, toSY}, duration, fn)
}

// TweenColor animates all four components of the quad tint to the target color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := node.color
	return newTweenGroup(node, func(v *[4]float64) { node.SetColor(Color{v[0], v[1], v[2], v[3]}) },
		[]float64{c.R, c.G, c.B, c.A}, []float64{to.R, to.G, to.B, to.A}, duration, fn)
}

// TweenAlpha animates the node's alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, func(v *[4]float64) { node.SetAlpha(v[0]) },
		[]float64{node.alpha}, []float64{to}, duration, fn)
}

// TweenRotation animates the node's rotation in radians. The stored rotation
// is normalized by SetRotation as the tween runs.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, func(v *[4]float64) { node.SetRotation(v[0]) },
		[]float64{node.rotation}, []float64{to}, duration, fn)
}

// TweenSkew animates SkewX and SkewY.
func TweenSkew(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, func(v *[4]float64) { node.SetSkew(v[0], v[1]) },
		[]float64{node.skewX, node.skewY}, []float64{toX, toY}, duration, fn)
}
