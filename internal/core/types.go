// Package core holds the small contracts shared by the simulation and its
// front-ends.
package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Area returns W*H.
func (s Size) Area() int { return s.W * s.H }

// Sim is what the front-ends need to lay out a view.
type Sim interface {
	Name() string
	Size() Size
}
