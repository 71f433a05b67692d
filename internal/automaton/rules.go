package automaton

import "sandfall/internal/material"

// rule transforms a block given the block's shared random draw.
type rule func(b block, r [4]float32, p Params) block

// rules is applied in order to every non-homogeneous block.
var rules = []rule{
	reactVertical,
	smoke,
	granularSpread,
	granularFall,
	water,
	lavaFall,
	reactContact,
	lavaLateral,
}

func isLavaWater(a, b material.Material) bool {
	return (a == material.Lava && b == material.Water) || (a == material.Water && b == material.Lava)
}

// reactVertical resolves lava/water columns on the sampled block before any
// motion, so the reaction never depends on the draw.
func reactVertical(b block, _ [4]float32, _ Params) block {
	cols := [2][2]slot{{upperLeft, lowerLeft}, {upperRight, lowerRight}}
	for _, c := range cols {
		top, bot := c[0], c[1]
		if !isLavaWater(b.m(top), b.m(bot)) {
			continue
		}
		if b.m(top) == material.Lava {
			b.react(top, bot)
		} else {
			b.react(bot, top)
		}
	}
	return b
}

// lateral reports whether exactly the pair (i, j) has m on one side and
// something lighter on the other.
func lateral(b *block, i, j slot, m material.Material) bool {
	return (b.m(i) == m && b.m(j) < m) || (b.m(i) < m && b.m(j) == m)
}

func smoke(b block, r [4]float32, p Params) block {
	if lateral(&b, upperLeft, upperRight, material.Smoke) && r[0] < p.SmokeRise {
		b.swap(upperLeft, upperRight)
	}
	for _, c := range [2][2]slot{{lowerLeft, upperLeft}, {lowerRight, upperRight}} {
		lo, up := c[0], c[1]
		if b.m(lo) != material.Smoke {
			continue
		}
		if b.m(up) < b.m(lo) && r[1] < p.SmokeRise {
			b.swap(lo, up)
		} else if r[2] < p.SmokeDissipate {
			b.dissipate(lo)
		}
	}
	return b
}

func spreads(m material.Material) bool { return m == material.Sand || m == material.Glitter }

// granularSpread shuffles loose grains along the top row over an empty
// bottom row.
func granularSpread(b block, r [4]float32, p Params) block {
	ul, ur := b.m(upperLeft), b.m(upperRight)
	top := (spreads(ul) && ur < material.Sand) || (ul < material.Sand && spreads(ur))
	if top && b.m(lowerLeft) < material.Sand && b.m(lowerRight) < material.Sand && r[0] < p.GranularSpread {
		b.swap(upperLeft, upperRight)
	}
	return b
}

func granularFall(b block, r [4]float32, p Params) block {
	if b.m(upperLeft).Granular() {
		if b.m(lowerLeft) < material.Sand {
			if r[1] < p.GranularFall {
				b.swap(upperLeft, lowerLeft)
			}
		} else if b.m(upperRight) < material.Sand && b.m(lowerRight) < material.Sand {
			b.swap(upperLeft, lowerRight)
		}
	}
	if b.m(upperRight).Granular() {
		if b.m(lowerRight) < material.Sand {
			if r[1] < p.GranularFall {
				b.swap(upperRight, lowerRight)
			}
		} else if b.m(upperLeft) < material.Sand && b.m(lowerLeft) < material.Sand {
			b.swap(upperRight, lowerLeft)
		}
	}
	return b
}

// fall drops liquid m from the top row, straight down with probability
// down or diagonally with probability diag. It reports whether anything
// moved.
func fall(b *block, r [4]float32, m material.Material, down, diag float32) bool {
	drop := false
	if b.m(upperLeft) == m {
		if b.m(lowerLeft) < m && r[1] < down {
			drop = b.swap(upperLeft, lowerLeft)
		} else if b.m(upperRight) < m && b.m(lowerRight) < m && r[2] < diag {
			drop = b.swap(upperLeft, lowerRight)
		}
	}
	if b.m(upperRight) == m {
		if b.m(lowerRight) < m && r[1] < down {
			drop = b.swap(upperRight, lowerRight) || drop
		} else if b.m(upperLeft) < m && b.m(lowerLeft) < m && r[2] < diag {
			drop = b.swap(upperRight, lowerLeft) || drop
		}
	}
	return drop
}

func water(b block, r [4]float32, p Params) block {
	const w = material.Water
	if fall(&b, r, w, p.WaterFall, p.WaterDiagonal) {
		return b
	}
	supported := b.m(lowerLeft) >= w && b.m(lowerRight) >= w
	if lateral(&b, upperLeft, upperRight, w) && (supported || r[3] < p.WaterLateral) {
		b.swap(upperLeft, upperRight)
	}
	supported = b.below[0] >= w && b.below[1] >= w
	if lateral(&b, lowerLeft, lowerRight, w) && (supported || r[3] < p.WaterLateral) {
		b.swap(lowerLeft, lowerRight)
	}
	return b
}

func lavaFall(b block, r [4]float32, p Params) block {
	fall(&b, r, material.Lava, p.LavaFall, p.LavaDiagonal)
	return b
}

// reactContact handles lava that moved next to water during this tick.
func reactContact(b block, _ [4]float32, _ Params) block {
	const l, w = material.Lava, material.Water
	for _, c := range [2][2]slot{{upperLeft, lowerLeft}, {upperRight, lowerRight}} {
		if b.m(c[0]) == l && b.m(c[1]) == w {
			b.react(c[0], c[1])
		}
	}
	if b.m(lowerLeft) == l {
		if b.m(upperLeft) == w {
			b.react(lowerLeft, upperLeft)
		} else if b.m(lowerRight) == w {
			b.react(lowerLeft, lowerRight)
		}
	}
	if b.m(lowerRight) == l {
		if b.m(upperRight) == w {
			b.react(lowerRight, upperRight)
		} else if b.m(lowerLeft) == w {
			b.react(lowerRight, lowerLeft)
		}
	}
	return b
}

func lavaLateral(b block, r [4]float32, p Params) block {
	if lateral(&b, upperLeft, upperRight, material.Lava) && r[0] < p.LavaLateral {
		b.swap(upperLeft, upperRight)
	}
	return b
}
