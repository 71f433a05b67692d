// Package hash provides the stateless pseudo-random functions that drive the
// simulation. Every value is a pure function of its inputs so ticks can be
// evaluated in any order, on any number of goroutines, and still reproduce
// bit for bit.
//
// The float variants follow the "hash without sine" family and are evaluated
// in float32 so results match the single precision the rules were tuned for.
package hash

import (
	"math"

	"github.com/chewxy/math32"
)

func fract(x float32) float32 { return x - math32.Floor(x) }

// Hash12 maps a 2D point to a scalar in [0, 1).
func Hash12(x, y float32) float32 {
	p0 := fract(x * .1031)
	p1 := fract(y * .1031)
	p2 := fract(x * .1031)
	d := p0*(p1+33.33) + p1*(p2+33.33) + p2*(p0+33.33)
	p0 += d
	p1 += d
	p2 += d
	return fract((p0 + p1) * p2)
}

// Hash13 maps a 3D point to a scalar in [0, 1).
func Hash13(x, y, z float32) float32 {
	p0 := fract(x * .1031)
	p1 := fract(y * .1031)
	p2 := fract(z * .1031)
	d := p0*(p2+31.32) + p1*(p1+31.32) + p2*(p0+31.32)
	p0 += d
	p1 += d
	p2 += d
	return fract((p0 + p1) * p2)
}

// Hash22 maps a 2D point to two values in [0, 1).
func Hash22(x, y float32) [2]float32 {
	p0 := fract(x * .1031)
	p1 := fract(y * .1030)
	p2 := fract(x * .0973)
	d := p0*(p1+33.33) + p1*(p2+33.33) + p2*(p0+33.33)
	p0 += d
	p1 += d
	p2 += d
	return [2]float32{
		fract((p0 + p1) * p2),
		fract((p0 + p2) * p1),
	}
}

// Hash33 maps a 3D point to three values in [0, 1).
func Hash33(x, y, z float32) [3]float32 {
	p0 := fract(x * .1031)
	p1 := fract(y * .1030)
	p2 := fract(z * .0973)
	d := p0*(p1+33.33) + p1*(p0+33.33) + p2*(p2+33.33)
	p0 += d
	p1 += d
	p2 += d
	return [3]float32{
		fract((p0 + p1) * p2),
		fract((p0 + p0) * p1),
		fract((p1 + p0) * p0),
	}
}

// Hash43 maps a 3D point to four values in [0, 1). The automaton draws one
// of these per block per frame so every rule in the block sees the same
// random vector.
func Hash43(x, y, z float32) [4]float32 {
	p0 := fract(x * .1031)
	p1 := fract(y * .1030)
	p2 := fract(z * .0973)
	p3 := fract(x * .1099)
	d := p0*(p3+33.33) + p1*(p2+33.33) + p2*(p0+33.33) + p3*(p1+33.33)
	p0 += d
	p1 += d
	p2 += d
	p3 += d
	return [4]float32{
		fract((p0 + p1) * p2),
		fract((p0 + p2) * p1),
		fract((p1 + p2) * p3),
		fract((p2 + p3) * p0),
	}
}

// Uint32 is an integer avalanche hash (lowbias32).
func Uint32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// Float64 hashes a scalar to [0, 1) in double precision. The demo driver
// uses it to pick stroke positions and materials from a seed.
func Float64(p float64) float64 {
	p = fract64(p * .1031)
	p *= p + 323.333
	p *= p + p
	return fract64(p)
}

func fract64(x float64) float64 {
	return x - math.Floor(x)
}
