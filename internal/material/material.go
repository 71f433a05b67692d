// Package material enumerates the substances a cell can hold. The numeric
// value of a Material doubles as its density rank: rules compare ranks to
// decide which of two neighbours sinks.
package material

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Material identifies the substance stored in a cell.
type Material uint8

const (
	Air Material = iota
	Smoke
	Water
	Lava
	Sand
	Glitter
	Stone
	Wall
)

// Count is the number of defined materials.
const Count = int(Wall) + 1

// ErrUnknown is returned when a material id or name is outside the fixed set.
var ErrUnknown = errors.New("unknown material")

var names = [Count]string{
	Air:     "air",
	Smoke:   "smoke",
	Water:   "water",
	Lava:    "lava",
	Sand:    "sand",
	Glitter: "glitter",
	Stone:   "stone",
	Wall:    "wall",
}

// All returns every material in rank order.
func All() []Material {
	out := make([]Material, Count)
	for i := range out {
		out[i] = Material(i)
	}
	return out
}

// String returns the lower-case material name.
func (m Material) String() string {
	if !m.Valid() {
		return "material(" + strconv.Itoa(int(m)) + ")"
	}
	return names[m]
}

// Valid reports whether m is one of the defined materials.
func (m Material) Valid() bool { return int(m) < Count }

// Granular reports whether m falls and piles like a solid grain.
func (m Material) Granular() bool {
	return m == Sand || m == Glitter || m == Stone
}

// Transmissive reports whether light passes through m. Transmissive cells
// seed the occlusion field; the rest cast shadow.
func (m Material) Transmissive() bool {
	return m <= Lava || m == Glitter
}

// FromID validates a raw numeric id.
func FromID(id int) (Material, error) {
	if id < 0 || id >= Count {
		return Air, fmt.Errorf("%w: id %d", ErrUnknown, id)
	}
	return Material(id), nil
}

// Parse accepts either a material name or its numeric id.
func Parse(s string) (Material, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if id, err := strconv.Atoi(s); err == nil {
		return FromID(id)
	}
	for i, name := range names {
		if name == s {
			return Material(i), nil
		}
	}
	return Air, fmt.Errorf("%w: %q", ErrUnknown, s)
}
