package render

import (
	"sandfall/internal/grid"
	"sandfall/internal/jfa"
	"sandfall/internal/parallel"
)

// ShadowReach is the occlusion distance at which a cell is fully dark.
const ShadowReach float32 = 16

// Ambient is the light added on top of the shadow term.
const Ambient float32 = 0.2

// Composite shades g with the occlusion field f into buf, which must hold
// 4*g.W*g.H bytes. Cells denser than the cell above them get a highlight;
// cells lighter than the cell below them get a drop shadow.
func Composite(buf []byte, g *grid.Grid, f *jfa.Field, workers int) {
	if len(buf) < 4*g.W*g.H {
		return
	}
	parallel.Rows(g.H, workers, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := 0; x < g.W; x++ {
				putRGBA(buf, y*g.W+x, shade(g, f, x, y))
			}
		}
	})
}

func shade(g *grid.Grid, f *jfa.Field, x, y int) grid.Color {
	cell := g.At(x, y)
	up := g.At(x, y-1)
	down := g.At(x, y+1)

	var hig, drop float32
	if cell.Material > up.Material {
		hig = 1
	}
	drop = 1
	if cell.Material > down.Material {
		drop = 0
	}

	col := cell.Color
	if col == (grid.Color{}) {
		col = grid.Background
	}

	k := 0.5*max(hig, drop) + 0.5
	var out grid.Color
	for c := 0; c < jfa.Channels; c++ {
		d := ShadowReach
		if f != nil && f.W == g.W && f.H == g.H {
			d = min(f.Distance(c, x, y), ShadowReach)
		}
		sha := 1 - d/ShadowReach
		sha *= sha
		v := col[c] * k * (sha + Ambient)
		v += v * 0.4 * hig
		out[c] = LinearToSRGB(v)
	}
	return out
}
