// Package jfa computes the three-channel occlusion field with Jump Flooding.
// Every transmissive cell seeds each channel with a per-wavelength weight,
// and the passes propagate the cheapest (L1 distance + weight) seed to every
// other cell.
package jfa

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"sandfall/internal/grid"
	"sandfall/internal/material"
	"sandfall/internal/parallel"
)

// Channels is the number of independent colour channels.
const Channels = 3

// DefaultPasses spans a search radius of 2^3 cells at the default downsample.
const DefaultPasses = 4

// MaxPasses bounds the step size to something a grid can use.
const MaxPasses = 16

// Unreachable is the distance recorded for cells with no seed in range.
const Unreachable float32 = 1e3

// ErrPassCount is returned for a pass count outside [1, MaxPasses].
var ErrPassCount = errors.New("jfa: pass count out of range")

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// None marks a sample without a known seed.
var None = Point{-1, -1}

// Sample is one channel's record for one cell.
type Sample struct {
	Nearest Point
	// Weight is the attenuation of the seed at Nearest.
	Weight float32
	Dist   float32
}

var empty = Sample{Nearest: None, Dist: Unreachable}

// Channel is a single distance buffer.
type Channel struct {
	W, H int
	data []Sample
}

func newChannel(w, h int) *Channel {
	c := &Channel{W: w, H: h, data: make([]Sample, w*h)}
	for i := range c.data {
		c.data[i] = empty
	}
	return c
}

// At returns the sample at (x, y). Coordinates outside the buffer read as an
// opaque cell with no seed.
func (c *Channel) At(x, y int) Sample {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return empty
	}
	return c.data[y*c.W+x]
}

func (c *Channel) inBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < c.W && p.Y < c.H
}

// Weights returns how strongly a seed of cell attenuates each channel.
func Weights(cell grid.Cell) [Channels]float32 {
	switch cell.Material {
	case material.Smoke:
		return [Channels]float32{6, 6, 6}
	case material.Water:
		return [Channels]float32{9, 6, 4}
	case material.Lava:
		return [Channels]float32{0, 11, 14}
	case material.Glitter:
		var w [Channels]float32
		for i := range w {
			w[i] = 4 * (1 - cell.Color[i])
		}
		return w
	}
	return [Channels]float32{}
}

// Field holds a front and back buffer per channel.
type Field struct {
	W, H    int
	passes  int
	workers int
	front   [Channels]*Channel
	back    [Channels]*Channel
}

// NewField allocates a field for a w×h grid.
func NewField(w, h, passes, workers int) (*Field, error) {
	if passes < 1 || passes > MaxPasses {
		return nil, fmt.Errorf("%w: %d", ErrPassCount, passes)
	}
	f := &Field{passes: passes, workers: workers}
	if err := f.Resize(w, h); err != nil {
		return nil, err
	}
	return f, nil
}

// Passes returns the number of propagation passes per Generate.
func (f *Field) Passes() int { return f.passes }

// StepSize returns the tap offset used by pass i.
func (f *Field) StepSize(i int) int { return 1 << (f.passes - 1 - i) }

// Resize reallocates every buffer. Distances are reset to Unreachable and
// filled again by the next Generate.
func (f *Field) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", grid.ErrEmptyGrid, w, h)
	}
	f.W, f.H = w, h
	for c := 0; c < Channels; c++ {
		f.front[c] = newChannel(w, h)
		f.back[c] = newChannel(w, h)
	}
	return nil
}

// Channel returns the current buffer of channel c.
func (f *Field) Channel(c int) *Channel { return f.front[c] }

// Distance returns the current distance of channel c at (x, y).
func (f *Field) Distance(c, x, y int) float32 { return f.front[c].At(x, y).Dist }

// Seed writes the seeding pass for g into the front buffers.
func (f *Field) Seed(g *grid.Grid) {
	w, h := min(f.W, g.W), min(f.H, g.H)
	parallel.Rows(f.H, f.workers, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := 0; x < f.W; x++ {
				i := y*f.W + x
				if x >= w || y >= h || !g.At(x, y).Material.Transmissive() {
					for c := 0; c < Channels; c++ {
						f.front[c].data[i] = empty
					}
					continue
				}
				ws := Weights(g.At(x, y))
				for c := 0; c < Channels; c++ {
					f.front[c].data[i] = Sample{Nearest: Point{x, y}, Weight: ws[c], Dist: ws[c]}
				}
			}
		}
	})
}

// Pass runs propagation pass i on every channel and swaps buffers.
func (f *Field) Pass(i int) {
	step := f.StepSize(i)
	final := i == f.passes-1
	parallel.Rows(Channels*f.H, f.workers, func(lo, hi int) {
		for r := lo; r < hi; r++ {
			c, y := r/f.H, r%f.H
			src, dst := f.front[c], f.back[c]
			for x := 0; x < f.W; x++ {
				dst.data[y*f.W+x] = propagate(src, x, y, step, final)
			}
		}
	})
	f.front, f.back = f.back, f.front
}

// Generate seeds from g and runs every pass.
func (f *Field) Generate(g *grid.Grid) {
	f.Seed(g)
	for i := 0; i < f.passes; i++ {
		f.Pass(i)
	}
}

func propagate(src *Channel, x, y, step int, final bool) Sample {
	best := empty
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			tap := src.At(x+dx*step, y+dy*step)
			if tap.Nearest == None || !src.inBounds(tap.Nearest) {
				continue
			}
			d := l1(x, y, tap.Nearest) + tap.Weight
			if d < best.Dist {
				best = Sample{Nearest: tap.Nearest, Weight: tap.Weight, Dist: d}
			}
		}
	}
	if final && best.Nearest == None {
		best.Dist = Unreachable
	}
	return best
}

func l1(x, y int, p Point) float32 {
	return math32.Abs(float32(x-p.X)) + math32.Abs(float32(y-p.Y))
}
