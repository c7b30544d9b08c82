package birch

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowFPS overlays the current FPS and TPS in the top-left corner.
	ShowFPS bool
	// Resizable lets the user resize the window. The stage follows the
	// window size.
	Resizable bool
}

// Game adapts a Stage to ebiten.Game: each Update polls input and advances
// the stage by one tick, each Draw renders it.
type Game struct {
	Stage   *Stage
	Input   *EbitenInput
	ShowFPS bool

	// OnUpdate, when set, runs after the stage has advanced.
	OnUpdate func(dt float64) error
}

// NewGame wraps s in a Game with a fresh input adapter.
func NewGame(s *Stage) *Game {
	return &Game{Stage: s, Input: NewEbitenInput()}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if g.Input != nil {
		g.Input.Poll(g.Stage)
	}
	g.Stage.AdvanceTime(dt)
	if g.OnUpdate != nil {
		return g.OnUpdate(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.Stage.Draw(screen)
	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game. The stage is resized to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Stage.SetSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives s until the window is closed.
func Run(s *Stage, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		w, h := s.Size()
		cfg.Width, cfg.Height = int(w), int(h)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("birch: run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	g := NewGame(s)
	g.ShowFPS = cfg.ShowFPS
	return ebiten.RunGame(g)
}
