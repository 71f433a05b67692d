package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashesStayInUnitInterval(t *testing.T) {
	for y := float32(-8); y < 64; y += 1.5 {
		for x := float32(-8); x < 64; x += 1.25 {
			for _, v := range []float32{Hash12(x, y), Hash13(x, y, 7)} {
				require.GreaterOrEqual(t, v, float32(0))
				require.Less(t, v, float32(1))
			}
			for _, v := range Hash22(x, y) {
				require.GreaterOrEqual(t, v, float32(0))
				require.Less(t, v, float32(1))
			}
			for _, v := range Hash33(x, y, 3) {
				require.GreaterOrEqual(t, v, float32(0))
				require.Less(t, v, float32(1))
			}
			for _, v := range Hash43(x, y, 11) {
				require.GreaterOrEqual(t, v, float32(0))
				require.Less(t, v, float32(1))
			}
		}
	}
}

func TestHashesAreDeterministic(t *testing.T) {
	assert.Equal(t, Hash12(3.5, 9.5), Hash12(3.5, 9.5))
	assert.Equal(t, Hash43(4, 6, 1234), Hash43(4, 6, 1234))
	assert.Equal(t, Hash33(1.5, 2.5, 17), Hash33(1.5, 2.5, 17))
	assert.Equal(t, Uint32(42), Uint32(42))
	assert.Equal(t, Float64(7.3), Float64(7.3))
}

func TestHash43VariesWithFrame(t *testing.T) {
	first := Hash43(10, 20, 1)
	distinct := 0
	for frame := float32(2); frame < 50; frame++ {
		if Hash43(10, 20, frame) != first {
			distinct++
		}
	}
	assert.Greater(t, distinct, 40)
}

func TestHash43RoughlyUniform(t *testing.T) {
	const samples = 8000
	var below [4]int
	for frame := 1; frame <= samples; frame++ {
		r := Hash43(2, 6, float32(frame))
		for i, v := range r {
			if v < 0.5 {
				below[i]++
			}
		}
	}
	for i, n := range below {
		frac := float64(n) / samples
		assert.InDeltaf(t, 0.5, frac, 0.05, "component %d", i)
	}
}

func TestUint32Avalanche(t *testing.T) {
	seen := make(map[uint32]struct{})
	for i := uint32(0); i < 1000; i++ {
		seen[Uint32(i)] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func TestFloat64Range(t *testing.T) {
	for i := 0; i < 500; i++ {
		v := Float64(float64(i) * 1.7)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}
