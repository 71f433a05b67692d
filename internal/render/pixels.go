// Package render turns the simulation grid and occlusion field into RGBA
// pixel buffers, one pixel per cell.
package render

import (
	"image/color"

	"github.com/chewxy/math32"

	"sandfall/internal/automaton"
	"sandfall/internal/grid"
	"sandfall/internal/material"
)

// putRGBA writes an opaque pixel at cell index i.
func putRGBA(buf []byte, i int, c grid.Color) {
	base := i * 4
	buf[base+0] = toByte(c[0])
	buf[base+1] = toByte(c[1])
	buf[base+2] = toByte(c[2])
	buf[base+3] = 0xff
}

func toByte(v float32) uint8 {
	v = math32.Max(0, math32.Min(1, v))
	return uint8(v*255 + 0.5)
}

// LinearToSRGB applies the sRGB transfer curve to one channel.
func LinearToSRGB(v float32) float32 {
	if v < 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

// Swatch returns the display colour of a freshly created particle of m, for
// material pickers.
func Swatch(m material.Material) color.RGBA {
	c := automaton.CreateParticle(m, automaton.Spawn{X: 7, Y: 7})
	return color.RGBA{
		R: toByte(LinearToSRGB(c.Color[0])),
		G: toByte(LinearToSRGB(c.Color[1])),
		B: toByte(LinearToSRGB(c.Color[2])),
		A: 0xff,
	}
}

// Palette returns a swatch for every material in rank order.
func Palette() []color.RGBA {
	out := make([]color.RGBA, material.Count)
	for _, m := range material.All() {
		out[m] = Swatch(m)
	}
	return out
}
