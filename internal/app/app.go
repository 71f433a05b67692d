//go:build ebiten

package app

import (
	"log"
	"time"

	"sandfall/internal/automaton"
	"sandfall/internal/render"
	"sandfall/internal/sim"
	"sandfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a simulation to the ebiten.Game interface.
type Game struct {
	sim     *sim.Simulation
	hud     *ui.HUD
	overlay *ui.Overlay

	img *ebiten.Image
	buf []byte

	scale   int
	workers int
	start   time.Time

	outW, outH int
	cursor     automaton.Vec2
	prev       automaton.Vec2
	drawing    bool
}

// New constructs a Game for the provided simulation.
func New(s *sim.Simulation, hudWidth int) *Game {
	cfg := s.Config()
	return &Game{
		sim:     s,
		hud:     ui.NewHUD(s, hudWidth),
		overlay: ui.NewOverlay(cfg.Scale),
		scale:   cfg.Scale,
		workers: cfg.Workers,
		start:   time.Now(),
	}
}

var materialKeys = []ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7,
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sim.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.sim.Reset(); err != nil {
			return err
		}
	}
	for i, k := range materialKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.sim.SelectMaterial(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.sim.AdjustBrushRadius(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.sim.AdjustBrushRadius(1)
	}
	g.overlay.Update()

	viewW := g.outW - g.hud.Width()
	overHUD := g.hud.Update(viewW)
	if viewW > 0 && g.outH > 0 {
		if err := g.sim.ResizeToDisplay(viewW, g.outH); err != nil {
			log.Printf("resize to %dx%d: %v", viewW, g.outH, err)
		}
	}

	in := sim.Input{Brush: g.stroke(overHUD), Time: float32(time.Since(g.start).Seconds())}
	if _, err := g.sim.Tick(in); err != nil {
		log.Printf("tick rejected: %v", err)
	}
	return nil
}

// stroke turns the pointer state into a brush segment from the previous
// pointer position to the current one.
func (g *Game) stroke(overHUD bool) automaton.Brush {
	x, y, pressed := g.pointer()
	s := float32(max(g.scale, 1))
	g.cursor = automaton.Vec2{X: float32(x) / s, Y: float32(y) / s}
	if !pressed || overHUD {
		g.drawing = false
		return automaton.Brush{}
	}
	if !g.drawing {
		g.prev = g.cursor
		g.drawing = true
	}
	b := automaton.Brush{From: g.prev, To: g.cursor, Active: true}
	g.prev = g.cursor
	return b
}

func (g *Game) pointer() (int, int, bool) {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		return x, y, true
	}
	x, y := ebiten.CursorPosition()
	return x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.sim.Grid()
	if g.img == nil || g.img.Bounds().Dx() != grid.W || g.img.Bounds().Dy() != grid.H {
		g.img = ebiten.NewImage(grid.W, grid.H)
		g.buf = make([]byte, 4*g.sim.Size().Area())
	}
	render.Composite(g.buf, grid, g.sim.Field(), g.workers)
	g.img.WritePixels(g.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	g.overlay.Draw(screen, g.sim.Field(), float64(g.cursor.X), float64(g.cursor.Y), float64(g.sim.BrushRadius()))
	g.hud.Draw(screen, g.outW-g.hud.Width())
}

// Layout reports the window size as the logical screen size; the grid
// follows it on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
