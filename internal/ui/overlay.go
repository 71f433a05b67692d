//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"sandfall/internal/jfa"
	"sandfall/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional debugging visuals on top of the shaded grid: the
// occlusion field as a heat map and the brush outline.
type Overlay struct {
	scale    int
	showHeat bool
	channel  int

	heatImg *ebiten.Image
	heatBuf []byte
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scale int) *Overlay {
	o := &Overlay{scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the heat map (H) and cycles its channel (C).
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.channel = (o.channel + 1) % jfa.Channels
	}
}

// Draw renders the overlay. cx, cy is the cursor in grid coordinates and
// radius the brush radius in cells.
func (o *Overlay) Draw(screen *ebiten.Image, f *jfa.Field, cx, cy, radius float64) {
	scale := float64(max(o.scale, 1))
	if o.showHeat && f != nil {
		o.drawHeat(screen, f, scale)
	}
	o.drawRing(screen, cx*scale, cy*scale, radius*scale, color.RGBA{R: 230, G: 230, B: 240, A: 160})
}

func (o *Overlay) drawHeat(screen *ebiten.Image, f *jfa.Field, scale float64) {
	total := f.W * f.H
	if o.heatImg == nil || o.heatImg.Bounds().Dx() != f.W || o.heatImg.Bounds().Dy() != f.H {
		o.heatImg = ebiten.NewImage(f.W, f.H)
		o.heatBuf = make([]byte, 4*total)
	}
	render.Heat(o.heatBuf, f, o.channel)
	o.heatImg.WritePixels(o.heatBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.ColorScale.ScaleAlpha(0.6)
	screen.DrawImage(o.heatImg, op)
}

func (o *Overlay) drawRing(screen *ebiten.Image, x, y, r float64, col color.RGBA) {
	if r <= 0 {
		return
	}
	const segments = 32
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / segments
		a1 := 2 * math.Pi * float64(i+1) / segments
		o.drawLine(screen, x+r*math.Cos(a0), y+r*math.Sin(a0), x+r*math.Cos(a1), y+r*math.Sin(a1), 1, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
