package automaton

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"sandfall/internal/material"
)

// Brush radius limits in grid cells.
const (
	MinRadius  float32 = 0.5
	MaxRadius  float32 = 5.0
	RadiusStep float32 = 0.5
)

// Epsilon guards divisions whose denominator can collapse to zero.
const Epsilon = 1e-4

// ErrInvalidBrush is returned by Brush.Validate.
var ErrInvalidBrush = errors.New("invalid brush")

// Vec2 is a point in continuous grid coordinates; cell (x, y) covers
// [x, x+1) × [y, y+1).
type Vec2 struct {
	X, Y float32
}

// Brush is a stroke painted during one tick. Cells whose centre lies within
// Radius of the segment From→To are replaced by fresh particles.
type Brush struct {
	From, To Vec2
	Radius   float32
	Material material.Material
	Active   bool
}

// Validate rejects strokes the engine must never see. Inactive brushes are
// always valid.
func (b Brush) Validate() error {
	if !b.Active {
		return nil
	}
	if !b.Material.Valid() {
		return fmt.Errorf("%w: %w: id %d", ErrInvalidBrush, material.ErrUnknown, b.Material)
	}
	if b.Radius < MinRadius || b.Radius > MaxRadius || math32.IsNaN(b.Radius) {
		return fmt.Errorf("%w: radius %g outside [%g, %g]", ErrInvalidBrush, b.Radius, MinRadius, MaxRadius)
	}
	for _, v := range []float32{b.From.X, b.From.Y, b.To.X, b.To.Y} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite stroke coordinate", ErrInvalidBrush)
		}
	}
	return nil
}

// Covers reports whether the brush paints cell (x, y) this tick.
func (b Brush) Covers(x, y int) bool {
	if !b.Active {
		return false
	}
	p := Vec2{float32(x) + 0.5, float32(y) + 0.5}
	return segmentDistance(p, b.From, b.To) < b.Radius
}

// ClampRadius limits r to the supported brush range.
func ClampRadius(r float32) float32 {
	return math32.Max(MinRadius, math32.Min(MaxRadius, r))
}

func segmentDistance(p, a, b Vec2) float32 {
	pax, pay := p.X-a.X, p.Y-a.Y
	bax, bay := b.X-a.X, b.Y-a.Y
	den := math32.Max(bax*bax+bay*bay, Epsilon)
	h := (pax*bax + pay*bay) / den
	h = math32.Max(0, math32.Min(1, h))
	dx, dy := pax-bax*h, pay-bay*h
	return math32.Sqrt(dx*dx + dy*dy)
}
