package automaton

import (
	"sandfall/internal/grid"
	"sandfall/internal/material"
)

// slot addresses one cell of a 2×2 block. The lower row is listed first so
// the numbering matches the t00/t10/t01/t11 naming with y pointing up.
type slot int

const (
	lowerLeft slot = iota
	lowerRight
	upperLeft
	upperRight
)

// block is the working copy of one Margolus neighbourhood. Rules mutate a
// local value, so nothing a rule does is visible outside the block until
// the engine writes it back.
type block struct {
	cells [4]grid.Cell
	held  [4]bool
	// below holds the materials directly under the lower row (left, right).
	below [2]material.Material

	ax, ay int
	frame  int
	time   float32

	reactions  int
	dissipated int
}

func (b *block) m(s slot) material.Material { return b.cells[s].Material }

// pos returns the grid coordinate of slot s.
func (b *block) pos(s slot) (int, int) {
	switch s {
	case lowerLeft:
		return b.ax, b.ay + 1
	case lowerRight:
		return b.ax + 1, b.ay + 1
	case upperLeft:
		return b.ax, b.ay
	default:
		return b.ax + 1, b.ay
	}
}

// swap exchanges two cells unless either was produced by a reaction this tick.
func (b *block) swap(i, j slot) bool {
	if b.held[i] || b.held[j] {
		return false
	}
	b.cells[i], b.cells[j] = b.cells[j], b.cells[i]
	return true
}

// react turns the lava in slot l into stone and the water in slot w into
// smoke. Both results are held for the rest of the tick.
func (b *block) react(l, w slot) bool {
	if b.held[l] || b.held[w] {
		return false
	}
	lx, ly := b.pos(l)
	wx, wy := b.pos(w)
	b.cells[l] = CreateParticle(material.Stone, Spawn{X: lx, Y: ly, Frame: b.frame, Time: b.time})
	b.cells[w] = CreateParticle(material.Smoke, Spawn{X: wx, Y: wy, Frame: b.frame, Time: b.time})
	b.held[l], b.held[w] = true, true
	b.reactions++
	return true
}

// dissipate clears a smoke cell.
func (b *block) dissipate(s slot) {
	if b.held[s] {
		return
	}
	b.cells[s] = grid.Empty()
	b.dissipated++
}

func (b *block) homogeneous() bool {
	m := b.cells[0].Material
	return b.cells[1].Material == m && b.cells[2].Material == m && b.cells[3].Material == m
}
