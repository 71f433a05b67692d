package sim

import (
	"math"

	"sandfall/internal/automaton"
	"sandfall/internal/hash"
	"sandfall/internal/material"
)

// Demo painter schedule, in presented ticks.
const (
	demoStart  = 40
	demoEnd    = 1200
	demoStroke = 40
)

// demoBrush returns the automatic stroke for the current tick. Every
// demoStroke ticks a new stroke picks a material from water to stone and a
// column near the top of the grid. It switches itself off after demoEnd.
func (s *Simulation) demoBrush() (automaton.Brush, bool) {
	if s.tick <= demoStart {
		return automaton.Brush{}, false
	}
	if s.tick >= demoEnd {
		s.demo = false
		return automaton.Brush{}, false
	}
	seed := float64(s.cfg.Seed)
	id := math.Ceil(float64(s.tick) / demoStroke)
	kind := int(math.Floor(hash.Float64(id+seed)*5 + float64(material.Water)))
	x := hash.Float64(id+seed+3.3) + math.Sin(float64(s.tick)*0.1)*0.03
	y := hash.Float64(id + seed + 5.3)

	s.SelectMaterial(kind)
	w, h := s.grids.Size()
	p := automaton.Vec2{
		X: float32(math.Max(0, math.Min(1, x)) * float64(w)),
		Y: float32((0.2 - y*0.1) * float64(h)),
	}
	return automaton.Brush{
		From:     p,
		To:       p,
		Radius:   s.brushRadius,
		Material: s.brushMaterial,
		Active:   true,
	}, true
}
