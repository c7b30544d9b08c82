// Package birch is the runtime core of a retained-mode 2D scene graph for
// [Ebitengine].
//
// Birch provides a mutable tree of positioned nodes, a lazily cached affine
// transform per node, frame-scoped redraw tracking that lets the renderer
// skip unchanged frames, and a unified multi-touch and mouse pipeline that
// hit-tests the tree and dispatches bubbling events.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	stage := birch.NewStage(birch.StageConfig{Width: 640, Height: 480})
//	// ... add nodes ...
//	birch.Run(stage, birch.RunConfig{Title: "My Game"})
//
// For full control, implement [ebiten.Game] yourself, or embed [Game]:
//
//	input := birch.NewEbitenInput()
//	func (g *MyGame) Update() error {
//		input.Poll(g.stage)
//		g.stage.AdvanceTime(1.0 / 60)
//		return nil
//	}
//	func (g *MyGame) Draw(s *ebiten.Image) { g.stage.Draw(s) }
//
// # Scene graph
//
// Every element is a [Node]. Containers ([NewContainer]) hold children;
// quads ([NewQuad]) draw a solid rectangle. Nodes form a tree rooted at
// [Stage.Root]. A node may not become its own ancestor, and must be removed
// from its parent before it is added to another one; both mistakes panic
// with a [*TreeError].
//
//	ui := birch.NewContainer("ui")
//	stage.Root().AddChild(ui)
//
//	box := birch.NewQuad("box", 80, 40, birch.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	box.SetPosition(100, 50)
//	box.SetRotation(math.Pi / 8)
//	ui.AddChild(box)
//
// Transform and display properties are changed through setters. Each setter
// invalidates the node's cached matrix and stamps the node and its ancestors
// with the current frame id, so [Node.RequiresRedraw] reports exactly the
// subtrees that changed this frame.
//
// # Events
//
// Nodes embed [EventDispatcher]. Listeners are [*Listener] handles:
//
//	l := box.On(birch.EventTouch, func(e *birch.Event) {
//		if t := e.TouchFor(box, birch.TouchBegan); t != nil {
//			fmt.Println("pressed", t.TapCount, "times")
//		}
//	})
//	box.RemoveEventListener(birch.EventTouch, l)
//
// Bubbling events travel from the target through its ancestors (a mask
// passes them to the node it masks). The chain is fixed before the first
// listener runs.
//
// # Touches
//
// Hosts feed raw samples to [TouchProcessor.Enqueue] (or use [EbitenInput])
// and call [Stage.AdvanceTime] once per tick. Each sample updates a [Touch]
// that moves through the phases Hover, Began, Moved, Stationary and Ended.
// One shared [EventTouch] event per round carries every active touch in
// [TouchData].
//
// [Ebitengine]: https://ebitengine.org
package birch
