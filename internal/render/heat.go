package render

import (
	"github.com/hsluv/hsluv-go"

	"sandfall/internal/grid"
	"sandfall/internal/jfa"
)

// HeatRange is the distance mapped across the full heat scale.
const HeatRange float32 = 32

// Heat paints channel c of f as a perceptual heat map: near seeds are warm,
// far cells cool, unreachable cells black.
func Heat(buf []byte, f *jfa.Field, c int) {
	if len(buf) < 4*f.W*f.H || c < 0 || c >= jfa.Channels {
		return
	}
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			putRGBA(buf, y*f.W+x, HeatColor(f.Distance(c, x, y)))
		}
	}
}

// HeatColor maps a distance to an sRGB colour.
func HeatColor(d float32) grid.Color {
	if d >= jfa.Unreachable {
		return grid.Color{}
	}
	t := float64(min(d, HeatRange) / HeatRange)
	r, g, b := hsluv.HsluvToRGB(12+250*t, 90, 65-35*t)
	return grid.Color{float32(r), float32(g), float32(b)}
}
