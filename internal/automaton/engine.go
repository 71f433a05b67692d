// Package automaton implements the falling-sand update rule: a Margolus
// block automaton whose blocks are evaluated independently against a frozen
// copy of the previous grid.
package automaton

import (
	"errors"
	"fmt"
	"sync"

	"sandfall/internal/grid"
	"sandfall/internal/hash"
	"sandfall/internal/material"
	"sandfall/internal/parallel"
)

// ErrSizeMismatch is returned when Step is given grids of different sizes.
var ErrSizeMismatch = errors.New("automaton: grid size mismatch")

// Initial fill thresholds for frame zero.
const (
	InitSand  float32 = 0.15
	InitSmoke float32 = 0.25
)

// phases are the block offsets indexed by frame mod 4.
var phases = [4][2]int{{0, 0}, {1, 1}, {0, 1}, {1, 0}}

// Phase returns the Margolus block offset used on frame.
func Phase(frame int) (ox, oy int) {
	p := phases[((frame%4)+4)%4]
	return p[0], p[1]
}

// Tick carries the per-step inputs that are not part of the grid.
type Tick struct {
	Frame int
	// Time is the wall-clock time in seconds; it only tints glitter.
	Time  float32
	Brush Brush
}

// Stats counts what happened during one Step.
type Stats struct {
	Reactions  int
	Dissipated int
	Brushed    int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Reactions += o.Reactions
	s.Dissipated += o.Dissipated
	s.Brushed += o.Brushed
}

// Engine advances a grid by one frame.
type Engine struct {
	Params  Params
	Workers int
}

// NewEngine returns an engine with the given rule probabilities. workers
// below one selects runtime.NumCPU.
func NewEngine(p Params, workers int) *Engine {
	return &Engine{Params: p, Workers: workers}
}

// Step reads prev and writes every cell of next. prev is never modified, so
// blocks may be evaluated in any order.
func (e *Engine) Step(prev, next *grid.Grid, t Tick) (Stats, error) {
	if prev.W != next.W || prev.H != next.H {
		return Stats{}, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, prev.W, prev.H, next.W, next.H)
	}
	if t.Frame == 0 {
		Populate(next, e.Workers)
		return Stats{}, nil
	}

	ox, oy := Phase(t.Frame)
	rows := (prev.H + oy + 1) / 2

	var (
		mu    sync.Mutex
		total Stats
	)
	parallel.Rows(rows, e.Workers, func(lo, hi int) {
		var local Stats
		for k := lo; k < hi; k++ {
			ay := 2*k - oy
			for ax := -ox; ax < prev.W; ax += 2 {
				local.Add(e.stepBlock(prev, next, ax, ay, t))
			}
		}
		mu.Lock()
		total.Add(local)
		mu.Unlock()
	})
	return total, nil
}

// Populate applies the frame-zero rule to every cell of g: a coordinate hash
// picks sand, smoke or air.
func Populate(g *grid.Grid, workers int) {
	parallel.Rows(g.H, workers, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := 0; x < g.W; x++ {
				r := hash.Hash12(float32(x)+0.5, float32(y)+0.5)
				m := material.Air
				switch {
				case r < InitSand:
					m = material.Sand
				case r < InitSmoke:
					m = material.Smoke
				}
				g.Set(x, y, CreateParticle(m, Spawn{X: x, Y: y}))
			}
		}
	})
}

func (e *Engine) stepBlock(prev, next *grid.Grid, ax, ay int, t Tick) Stats {
	b := block{ax: ax, ay: ay, frame: t.Frame, time: t.Time}
	for s := lowerLeft; s <= upperRight; s++ {
		x, y := b.pos(s)
		b.cells[s] = prev.At(x, y)
	}

	if !b.homogeneous() {
		b.below[0] = prev.At(ax, ay+2).Material
		b.below[1] = prev.At(ax+1, ay+2).Material
		r := hash.Hash43(float32(ax), float32(ay), float32(t.Frame))
		for _, fn := range rules {
			b = fn(b, r, e.Params)
		}
	}

	st := Stats{Reactions: b.reactions, Dissipated: b.dissipated}
	for s := lowerLeft; s <= upperRight; s++ {
		x, y := b.pos(s)
		if !next.InBounds(x, y) {
			continue
		}
		if t.Brush.Covers(x, y) {
			next.Set(x, y, CreateParticle(t.Brush.Material, Spawn{X: x, Y: y, Frame: t.Frame, Time: t.Time}))
			st.Brushed++
			continue
		}
		next.Set(x, y, b.cells[s])
	}
	return st
}
