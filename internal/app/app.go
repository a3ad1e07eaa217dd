//go:build ebiten

package app

import (
	"image/color"
	"time"

	"atmos-ca/internal/core"
	"atmos-ca/internal/gas"
	"atmos-ca/internal/render"
	"atmos-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hudWidth     = 220
	brushMoles   = 25.0
	brushSpecies = gas.Plasma
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type igniter interface {
	Ignite(x, y int) bool
}

type injector interface {
	Inject(x, y int, s gas.Species, moles float64) bool
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	palette []color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		palette: render.GrayPalette(),
		scale:   cfg.Scale,
		seed:    cfg.Seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	if cfg.HUD {
		g.hud = ui.NewHUD(sim, hudWidth)
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.handleMouse()
	g.hud.SetPaused(g.paused)

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleMouse() {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	size := g.sim.Size()
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return
	}
	if left {
		if ig, ok := g.sim.(igniter); ok {
			ig.Ignite(x, y)
		}
	}
	if right {
		if inj, ok := g.sim.(injector); ok {
			inj.Inject(x, y, brushSpecies, brushMoles)
		}
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.hud.Draw(screen, g.sim.Size().W*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
