package automaton

import (
	"math"

	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"

	"sandfall/internal/grid"
	"sandfall/internal/hash"
	"sandfall/internal/material"
)

// Spawn describes where and when a particle is created. Colour grain is a
// pure function of these values.
type Spawn struct {
	X, Y  int
	Frame int
	Time  float32
}

var (
	lavaBase = colorful.Color{R: 255.0 / 255, G: 40.0 / 255, B: 20.0 / 255}
	sandBase = colorful.Color{R: 220.0 / 255, G: 158.0 / 255, B: 70.0 / 255}
)

// CreateParticle returns a fresh cell of material m.
func CreateParticle(m material.Material, at Spawn) grid.Cell {
	fx := float32(at.X) + 0.5
	fy := float32(at.Y) + 0.5
	frame := float32(at.Frame)
	bg := grid.Background

	switch m {
	case material.Air:
		return grid.Empty()
	case material.Smoke:
		return grid.Cell{Color: mix(bg, grid.Color{0.15, 0.15, 0.15}, 0.5), Material: m}
	case material.Water:
		return grid.Cell{Color: mix(bg, grid.Color{0.15, 0.45, 0.9}, 0.7), Material: m}
	case material.Lava:
		r := hash.Hash33(fx, fy, frame)
		h, s, l := lavaBase.Hsl()
		h += float64(r[2]-0.5) * 12.0 / 255 * 360
		s += float64(r[0]-0.5) * 16.0 / 255
		l *= float64(r[1])*80.0/255 + (255.0-80.0)/255
		return grid.Cell{Color: fromHsl(h, s, l), Material: m}
	case material.Sand:
		r := hash.Hash33(fx, fy, frame)
		h, s, l := sandBase.Hsl()
		h += float64(r[2]-0.5) * 12.0 / 255 * 360
		s += float64(r[0]-0.5) * 16.0 / 255
		l += float64(r[1]-0.5) * 40.0 / 255
		return grid.Cell{Color: fromHsl(h, s, l), Material: m}
	case material.Glitter:
		t := math32.Sin(fx/36*math32.Pi) + math32.Cos(fy/36*math32.Pi)
		t -= math32.Floor(t)
		t += (hash.Hash13(fx, fy, frame) - 0.5) * 0.05
		t += at.Time * 0.08
		return grid.Cell{Color: palette(t), Material: m}
	case material.Stone:
		r := hash.Hash13(fx, fy, frame)
		k := r*0.5 + 0.5
		return grid.Cell{Color: grid.Color{0.08 * k, 0.1 * k, 0.12 * k}, Material: m}
	case material.Wall:
		r := hash.Hash13(fx, fy, frame)
		k := 0.5 * (r*0.4 + 0.6)
		return grid.Cell{Color: grid.Color{bg[0] * k, bg[1] * k, bg[2] * k}, Material: m}
	}
	return grid.Empty()
}

func mix(a, b grid.Color, t float32) grid.Color {
	return grid.Color{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func fromHsl(h, s, l float64) grid.Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = math.Max(0, math.Min(1, s))
	l = math.Max(0, math.Min(1, l))
	c := colorful.Hsl(h, s, l).Clamped()
	return grid.Color{float32(c.R), float32(c.G), float32(c.B)}
}

// palette is a cosine rainbow with phase offsets of a third per channel.
func palette(t float32) grid.Color {
	const tau = 2 * math32.Pi
	return grid.Color{
		0.5 + 0.5*math32.Cos(tau*t),
		0.5 + 0.5*math32.Cos(tau*(t+0.33)),
		0.5 + 0.5*math32.Cos(tau*(t+0.67)),
	}
}
