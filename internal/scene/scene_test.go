package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandfall/internal/grid"
	"sandfall/internal/material"
)

func build(t *testing.T, name string, w, h int, seed int64) *grid.Grid {
	t.Helper()
	b, err := Lookup(name)
	require.NoError(t, err)
	g, err := grid.New(w, h)
	require.NoError(t, err)
	b(g, seed)
	return g
}

func TestRegisteredScenes(t *testing.T) {
	assert.Equal(t, []string{"noise", "terrain", "volcano"}, Names())
	_, err := Lookup("moon")
	require.ErrorIs(t, err, ErrUnknownScene)
}

func TestScenesAreDeterministic(t *testing.T) {
	for _, name := range Names() {
		a := build(t, name, 48, 32, 5)
		b := build(t, name, 48, 32, 5)
		if !a.Equal(b) {
			t.Fatalf("scene %s differs between builds", name)
		}
	}
}

func TestTerrainLayers(t *testing.T) {
	g := build(t, "terrain", 96, 64, 11)
	hist := g.Histogram()
	assert.Positive(t, hist[material.Stone])
	assert.Positive(t, hist[material.Sand])
	assert.Positive(t, hist[material.Air])
	for x := 0; x < g.W; x++ {
		assert.NotEqual(t, material.Air, g.At(x, g.H-1).Material, "column %d has no floor", x)
	}
}

func TestVolcanoLavaMeetsWater(t *testing.T) {
	for _, seed := range []int64{0, 1, 7, 99} {
		g := build(t, "volcano", 40, 30, seed)
		found := false
		for y := 0; y+1 < g.H; y++ {
			for x := 0; x < g.W; x++ {
				if g.At(x, y).Material == material.Lava && g.At(x, y+1).Material == material.Water {
					found = true
				}
			}
		}
		assert.True(t, found, "seed %d", seed)
	}
}

func TestVolcanoSeedMovesCrater(t *testing.T) {
	crater := func(seed int64) int {
		g := build(t, "volcano", 64, 40, seed)
		for x := 0; x < g.W; x++ {
			if g.At(x, g.H/2).Material == material.Lava {
				return x
			}
		}
		return -1
	}
	seen := map[int]bool{}
	for seed := int64(0); seed < 16; seed++ {
		x := crater(seed)
		require.GreaterOrEqual(t, x, 0)
		seen[x] = true
	}
	assert.Greater(t, len(seen), 1)
}
