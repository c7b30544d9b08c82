package birch

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderContext is handed to a node's Render hook.
type RenderContext struct {
	// Target is the image being drawn to.
	Target *ebiten.Image
	// Matrix maps the node's local space to Target pixels.
	Matrix Matrix
	// Alpha is the node's alpha multiplied by all of its ancestors'.
	Alpha float64
	// Frame is the id of the frame being drawn.
	Frame uint64

	stage *Stage
}

// whitePixel is the 1x1 source image for solid quads, created on first use so
// that the scene graph works without a graphics context.
var whitePixel *ebiten.Image

func quadImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// drawQuad is the Render hook of quad nodes.
func drawQuad(n *Node, ctx *RenderContext) {
	if n.width <= 0 || n.height <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(n.width, n.height)
	op.GeoM.Concat(ctx.Matrix.GeoM())
	a := n.color.A * ctx.Alpha
	op.ColorScale.Scale(float32(n.color.R*a), float32(n.color.G*a), float32(n.color.B*a), float32(a))
	op.Blend = n.blendMode.EbitenBlend()
	ctx.Target.DrawImage(quadImage(), &op)
}

// Draw renders the stage to screen and advances the frame counter. With
// SkipUnchangedFrames set and nothing changed this frame, the previous output
// is copied instead and EventSkipFrame is dispatched on the root.
func (s *Stage) Draw(screen *ebiten.Image) {
	defer s.frames.Advance()

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if !s.SkipUnchangedFrames {
		s.drawTo(screen)
		s.logDraw(t0, false)
		return
	}

	b := screen.Bounds()
	stale := s.frameCache == nil || s.frameCache.Bounds().Dx() != b.Dx() || s.frameCache.Bounds().Dy() != b.Dy()
	if !stale && !s.root.RequiresRedraw() {
		screen.DrawImage(s.frameCache, nil)
		s.root.DispatchEventWith(EventSkipFrame, false, nil)
		s.logDraw(t0, true)
		return
	}
	if stale {
		if s.frameCache != nil {
			s.frameCache.Deallocate()
		}
		s.frameCache = ebiten.NewImage(b.Dx(), b.Dy())
	} else {
		s.frameCache.Clear()
	}
	s.drawTo(s.frameCache)
	screen.DrawImage(s.frameCache, nil)
	s.logDraw(t0, false)
}

func (s *Stage) drawTo(target *ebiten.Image) {
	if s.ClearColor.A > 0 {
		target.Fill(s.ClearColor.toRGBA())
	}
	s.stats = debugStats{}
	s.renderNode(target, s.root, IdentityMatrix, 1)
}

// renderNode draws n and its subtree. Invisible and fully transparent nodes
// are skipped along with their children; mask nodes are only drawn through
// their owner.
func (s *Stage) renderNode(target *ebiten.Image, n *Node, parent Matrix, parentAlpha float64) {
	if !n.visible || n.alpha <= 0 || n.maskee != nil {
		return
	}
	m := parent.Multiply(n.TransformationMatrix())
	alpha := parentAlpha * n.alpha

	if n.mask != nil {
		s.renderMasked(target, n, m, alpha)
		return
	}
	s.renderContent(target, n, m, alpha)
}

// renderContent draws n's own content and then its children, ignoring n's mask.
func (s *Stage) renderContent(target *ebiten.Image, n *Node, m Matrix, alpha float64) {
	if n.Render != nil {
		ctx := RenderContext{Target: target, Matrix: m, Alpha: alpha, Frame: s.frames.id, stage: s}
		n.Render(n, &ctx)
		s.stats.nodeCount++
	}
	for _, child := range n.children {
		s.renderNode(target, child, m, alpha)
	}
}

// renderMasked draws n to an offscreen image, clips it by the mask's alpha
// (or by its inverse) and composites the result onto target.
func (s *Stage) renderMasked(target *ebiten.Image, n *Node, m Matrix, alpha float64) {
	b := target.Bounds()
	content := s.offscreen.Acquire(b.Dx(), b.Dy())
	maskImg := s.offscreen.Acquire(b.Dx(), b.Dy())
	origin := Matrix{1, 0, 0, 1, -float64(b.Min.X), -float64(b.Min.Y)}

	s.renderContent(content, n, origin.Multiply(m), alpha)

	mask := n.mask
	var maskMatrix Matrix
	if mask.parent != nil {
		maskMatrix = m.Multiply(n.maskToOwner())
	} else {
		maskMatrix = m.Multiply(mask.TransformationMatrix())
	}
	s.renderContent(maskImg, mask, origin.Multiply(maskMatrix), 1)

	var op ebiten.DrawImageOptions
	op.Blend = BlendMask.EbitenBlend()
	if n.maskInverted {
		op.Blend = BlendErase.EbitenBlend()
	}
	content.DrawImage(maskImg, &op)

	var out ebiten.DrawImageOptions
	out.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	out.Blend = n.blendMode.EbitenBlend()
	target.DrawImage(content.SubImage(image.Rect(0, 0, b.Dx(), b.Dy())).(*ebiten.Image), &out)

	s.offscreen.Release(maskImg)
	s.offscreen.Release(content)
	s.stats.maskCount++
}

// maskToOwner maps the local space of n's parented mask into n's local space.
func (n *Node) maskToOwner() Matrix {
	m, err := n.mask.GetTransformationMatrix(n)
	if err != nil {
		return n.mask.TransformationMatrix()
	}
	return m
}
