package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sandfall/internal/material"
)

func blockOf(ul, ur, ll, lr material.Material) block {
	var b block
	b.ax, b.ay = 2, 2
	b.cells[upperLeft].Material = ul
	b.cells[upperRight].Material = ur
	b.cells[lowerLeft].Material = ll
	b.cells[lowerRight].Material = lr
	return b
}

func mats(b block) [4]material.Material {
	return [4]material.Material{b.m(upperLeft), b.m(upperRight), b.m(lowerLeft), b.m(lowerRight)}
}

func TestGranularFallAndTopple(t *testing.T) {
	p := DefaultParams()
	const a, s, k = material.Air, material.Sand, material.Stone

	got := granularFall(blockOf(s, a, a, a), [4]float32{0, 0.5, 0, 0}, p)
	assert.Equal(t, [4]material.Material{a, a, s, a}, mats(got))

	got = granularFall(blockOf(s, a, a, a), [4]float32{0, 0.95, 0, 0}, p)
	assert.Equal(t, [4]material.Material{s, a, a, a}, mats(got), "draw above fall probability")

	got = granularFall(blockOf(s, a, k, a), [4]float32{}, p)
	assert.Equal(t, [4]material.Material{a, a, k, s}, mats(got), "blocked grain topples")
}

func TestWaterSpreadsOnSupport(t *testing.T) {
	p := DefaultParams()
	const a, w, k = material.Air, material.Water, material.Stone

	got := water(blockOf(w, a, k, k), [4]float32{0.99, 0.99, 0.99, 0.99}, p)
	assert.Equal(t, [4]material.Material{a, w, k, k}, mats(got))

	b := blockOf(a, a, w, a)
	b.below = [2]material.Material{k, k}
	got = water(b, [4]float32{0.99, 0.99, 0.99, 0.99}, p)
	assert.Equal(t, [4]material.Material{a, a, a, w}, mats(got))

	b.below = [2]material.Material{a, a}
	got = water(b, [4]float32{0.99, 0.99, 0.99, 0.99}, p)
	assert.Equal(t, [4]material.Material{a, a, w, a}, mats(got), "unsupported water needs the lateral draw")
}

func TestSmokeRisesAndDissipates(t *testing.T) {
	p := DefaultParams()
	const a, sm = material.Air, material.Smoke

	got := smoke(blockOf(a, a, sm, a), [4]float32{0.9, 0.1, 0.9, 0.9}, p)
	assert.Equal(t, [4]material.Material{sm, a, a, a}, mats(got))

	got = smoke(blockOf(a, a, sm, a), [4]float32{0.9, 0.9, 0.001, 0.9}, p)
	assert.Equal(t, [4]material.Material{a, a, a, a}, mats(got))
	assert.Equal(t, 1, got.dissipated)
}

func TestReactionCellsAreHeld(t *testing.T) {
	p := DefaultParams()
	const a, l, w = material.Air, material.Lava, material.Water
	b := reactVertical(blockOf(l, a, w, a), [4]float32{}, p)
	assert.Equal(t, 1, b.reactions)
	for _, fn := range rules[1:] {
		b = fn(b, [4]float32{}, p)
	}
	assert.Equal(t, material.Stone, b.m(upperLeft))
	assert.Equal(t, material.Smoke, b.m(lowerLeft))
	assert.Equal(t, 1, b.reactions)
}

func TestLavaMeetingWaterSidewaysReacts(t *testing.T) {
	const a, l, w = material.Air, material.Lava, material.Water
	b := reactContact(blockOf(a, a, l, w), [4]float32{}, DefaultParams())
	assert.Equal(t, [4]material.Material{a, a, material.Stone, material.Smoke}, mats(b))
}

func TestGranularSpread(t *testing.T) {
	p := DefaultParams()
	p.GranularSpread = 0.4
	const a, s, k = material.Air, material.Sand, material.Stone

	got := granularSpread(blockOf(s, a, a, a), [4]float32{0.3, 0, 0, 0}, p)
	assert.Equal(t, [4]material.Material{a, s, a, a}, mats(got))

	got = granularSpread(blockOf(s, a, a, a), [4]float32{0.5, 0, 0, 0}, p)
	assert.Equal(t, [4]material.Material{s, a, a, a}, mats(got), "draw above spread probability")

	got = granularSpread(blockOf(s, a, k, a), [4]float32{}, p)
	assert.Equal(t, [4]material.Material{s, a, k, a}, mats(got), "grains only spread over an open row")

	got = granularSpread(blockOf(s, a, a, a), [4]float32{}, DefaultParams())
	assert.Equal(t, [4]material.Material{s, a, a, a}, mats(got), "disabled by default")
}

func TestWaterDiagonalSkipsLateral(t *testing.T) {
	p := DefaultParams()
	const a, w, k = material.Air, material.Water, material.Stone

	b := blockOf(w, a, k, a)
	b.below = [2]material.Material{k, k}
	got := water(b, [4]float32{0.1, 0.99, 0.2, 0.1}, p)
	assert.Equal(t, [4]material.Material{a, a, k, w}, mats(got))

	got = water(b, [4]float32{0.99, 0.99, 0.5, 0.5}, p)
	assert.Equal(t, [4]material.Material{a, w, k, a}, mats(got), "water that cannot drop takes the lateral draw")
}

func TestLavaFall(t *testing.T) {
	p := DefaultParams()
	const a, l, k = material.Air, material.Lava, material.Stone

	cases := []struct {
		name string
		in   block
		r    [4]float32
		want [4]material.Material
	}{
		{"straight down", blockOf(l, a, a, a), [4]float32{0, 0.5, 0.9, 0}, [4]material.Material{a, a, l, a}},
		{"draw above fall probability", blockOf(l, a, a, a), [4]float32{0, 0.8, 0.9, 0}, [4]material.Material{l, a, a, a}},
		{"diagonal when the fall draw fails", blockOf(l, a, a, a), [4]float32{0, 0.85, 0.1, 0}, [4]material.Material{a, a, a, l}},
		{"diagonal around an obstacle", blockOf(l, a, k, a), [4]float32{0, 0, 0.1, 0}, [4]material.Material{a, a, k, l}},
		{"blocked diagonal stays", blockOf(l, a, k, a), [4]float32{0, 0, 0.2, 0}, [4]material.Material{l, a, k, a}},
		{"right column", blockOf(a, l, a, a), [4]float32{0, 0.1, 0.9, 0}, [4]material.Material{a, a, a, l}},
		{"right column diagonal", blockOf(a, l, a, k), [4]float32{0, 0, 0.1, 0}, [4]material.Material{a, a, l, k}},
	}
	for _, tc := range cases {
		got := lavaFall(tc.in, tc.r, p)
		assert.Equal(t, tc.want, mats(got), tc.name)
	}
}

func TestLavaLateral(t *testing.T) {
	p := DefaultParams()
	const a, l, k = material.Air, material.Lava, material.Stone

	got := lavaLateral(blockOf(l, a, k, k), [4]float32{0.5, 0.99, 0.99, 0.99}, p)
	assert.Equal(t, [4]material.Material{a, l, k, k}, mats(got))

	got = lavaLateral(blockOf(a, l, k, k), [4]float32{0.5, 0.99, 0.99, 0.99}, p)
	assert.Equal(t, [4]material.Material{l, a, k, k}, mats(got))

	got = lavaLateral(blockOf(l, a, k, k), [4]float32{0.6, 0, 0, 0}, p)
	assert.Equal(t, [4]material.Material{l, a, k, k}, mats(got), "draw above lateral probability")

	got = lavaLateral(blockOf(l, k, a, a), [4]float32{}, p)
	assert.Equal(t, [4]material.Material{l, k, a, a}, mats(got), "lava does not displace heavier material")
}
