package scene

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"sandfall/internal/automaton"
	"sandfall/internal/grid"
	"sandfall/internal/hash"
	"sandfall/internal/material"
)

func init() {
	Register("noise", Noise)
	Register("terrain", Terrain)
	Register("volcano", Volcano)
}

func put(g *grid.Grid, x, y int, m material.Material) {
	g.Set(x, y, automaton.CreateParticle(m, automaton.Spawn{X: x, Y: y}))
}

// Noise is the frame-zero layout: scattered sand and smoke in air. The seed
// is ignored.
func Noise(g *grid.Grid, _ int64) {
	automaton.Populate(g, 0)
}

// Terrain layers stone and sand under a ridge line from opensimplex octaves,
// then floods the valleys with water up to a fixed level.
func Terrain(g *grid.Grid, seed int64) {
	octaves := []struct {
		noise   opensimplex.Noise
		freq    float64
		amplify float64
	}{
		{opensimplex.New(seed), 1.0 / 48, 0.18},
		{opensimplex.New(seed + 1), 1.0 / 16, 0.06},
		{opensimplex.New(seed + 2), 1.0 / 5, 0.015},
	}
	h := float64(g.H)
	water := int(math.Round(h * 0.62))
	for x := 0; x < g.W; x++ {
		level := 0.45
		for _, o := range octaves {
			level += o.noise.Eval2(float64(x)*o.freq, 0) * o.amplify
		}
		ground := g.H - int(math.Round(h*level))
		for y := 0; y < g.H; y++ {
			switch {
			case y >= ground+3:
				put(g, x, y, material.Stone)
			case y >= ground:
				put(g, x, y, material.Sand)
			case y >= water:
				put(g, x, y, material.Water)
			default:
				put(g, x, y, material.Air)
			}
		}
	}
}

// Volcano stacks a lava column inside a stone cone above a water pool. The
// seed shifts the crater and roughens the flanks.
func Volcano(g *grid.Grid, seed int64) {
	g.Fill(grid.Empty())
	shift := g.W / 8
	cx := g.W / 2
	if shift > 0 {
		cx += int(hash.Uint32(uint32(seed))%uint32(2*shift+1)) - shift
	}
	top := g.H / 4
	pool := g.H - max(2, g.H/6)
	for y := 0; y < g.H; y++ {
		rough := hash.Hash22(float32(y), float32(seed%4096))
		left := (y-top)/2 + 2 + int(rough[0]*2)
		right := (y-top)/2 + 2 + int(rough[1]*2)
		for x := 0; x < g.W; x++ {
			dx := x - cx
			switch {
			case y >= pool:
				put(g, x, y, material.Water)
			case y < top:
			case dx >= -1 && dx <= 1:
				put(g, x, y, material.Lava)
			case dx < 0 && -dx <= left, dx > 0 && dx <= right:
				put(g, x, y, material.Stone)
			}
		}
	}
}
