// Package grid stores simulation cells and implements the boundary policy
// shared by the automaton and the occlusion field.
package grid

import (
	"errors"
	"fmt"

	"sandfall/internal/material"
)

// ErrEmptyGrid is returned when a grid would have zero area.
var ErrEmptyGrid = errors.New("grid dimensions must be positive")

// Color is a linear RGB triple with components in [0, 1].
type Color [3]float32

// Cell is a single grid record.
type Cell struct {
	Color    Color
	Material material.Material
}

func sq(v float32) float32 { return v * v }

// Background is the linear colour of empty space.
var Background = Color{sq(31.0 / 255), sq(34.0 / 255), sq(36.0 / 255)}

// Boundary is the synthetic cell returned for any coordinate outside the grid.
var Boundary = Cell{Color: Color{0.02, 0.02, 0.02}, Material: material.Wall}

// Empty returns an air cell painted with the background colour.
func Empty() Cell { return Cell{Color: Background, Material: material.Air} }

// Grid stores cells in row-major order with y growing downwards, so gravity
// points towards larger y.
type Grid struct {
	W, H int
	data []Cell
}

// New allocates a grid filled with empty cells.
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, w, h)
	}
	g := &Grid{W: w, H: h, data: make([]Cell, w*h)}
	g.Fill(Empty())
	return g, nil
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []Cell { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a stored cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the cell at (x, y), or Boundary when the coordinate lies outside
// the grid.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Boundary
	}
	return g.data[g.Index(x, y)]
}

// Set writes c at (x, y). Writes outside the grid are dropped.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.data[g.Index(x, y)] = c
}

// Fill overwrites every cell with c.
func (g *Grid) Fill(c Cell) {
	for i := range g.data {
		g.data[i] = c
	}
}

// CopyFrom copies the region shared with src, aligning both grids on their
// bottom-left corner so settled material stays on the floor after a resize.
func (g *Grid) CopyFrom(src *Grid) {
	w := min(g.W, src.W)
	h := min(g.H, src.H)
	for row := 1; row <= h; row++ {
		dst := g.data[(g.H-row)*g.W : (g.H-row)*g.W+w]
		copy(dst, src.data[(src.H-row)*src.W:(src.H-row)*src.W+w])
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{W: g.W, H: g.H, data: make([]Cell, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Equal reports whether both grids have identical dimensions and contents.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i := range g.data {
		if g.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Histogram counts cells per material.
func (g *Grid) Histogram() [material.Count]int {
	var out [material.Count]int
	for _, c := range g.data {
		if c.Material.Valid() {
			out[c.Material]++
		}
	}
	return out
}
