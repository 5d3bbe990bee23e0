// Package ebitenhost runs a sway scene inside an Ebitengine game loop. The
// loop is the scene's frame clock: every tick advances all animators by one
// frame, and every draw fills the scene's paths.
package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/sway"
)

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// ClearColor fills the screen before drawing. Zero leaves it black.
	ClearColor sway.Color
}

// Game adapts a Scene to ebiten.Game.
type Game struct {
	scene    *sway.Scene
	cfg      RunConfig
	updateFn func() error
	fill     fillBuffer
}

// NewGame creates a Game drawing scene.
func NewGame(scene *sway.Scene, cfg RunConfig) *Game {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	return &Game{scene: scene, cfg: cfg}
}

// SetUpdateFunc registers a callback run at the start of every tick, before
// the scene advances. Returning an error ends the game loop.
func (g *Game) SetUpdateFunc(fn func() error) {
	g.updateFn = fn
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.updateFn != nil {
		if err := g.updateFn(); err != nil {
			return err
		}
	}
	g.scene.Update(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.ClearColor != (sway.Color{}) {
		screen.Fill(toRGBA(g.cfg.ClearColor))
	}
	g.fill.reset()
	g.fill.appendTree(g.scene.Root(), 1)
	g.fill.draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f", ebiten.ActualFPS()))
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs scene until the window is closed or the update
// callback of the returned game fails.
func Run(scene *sway.Scene, cfg RunConfig) error {
	return RunGame(NewGame(scene, cfg))
}

// RunGame opens a window sized and titled from g's config and runs g.
func RunGame(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if g.cfg.Title != "" {
		ebiten.SetWindowTitle(g.cfg.Title)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
