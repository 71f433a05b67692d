// Package scene provides named starting layouts for a simulation grid.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"sandfall/internal/grid"
)

// ErrUnknownScene is returned by Lookup for unregistered names.
var ErrUnknownScene = errors.New("unknown scene")

// Builder paints a layout into g. Builders must be deterministic for a given
// grid size and seed.
type Builder func(g *grid.Grid, seed int64)

var scenes = map[string]Builder{}

// Register adds a scene builder under the provided name.
func Register(name string, b Builder) {
	if name == "" || b == nil {
		return
	}
	scenes[name] = b
}

// Lookup returns the builder registered under name.
func Lookup(name string) (Builder, error) {
	b, ok := scenes[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownScene, name, Names())
	}
	return b, nil
}

// Names lists registered scenes in sorted order.
func Names() []string {
	out := make([]string, 0, len(scenes))
	for name := range scenes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
