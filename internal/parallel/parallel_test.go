package parallel

import (
	"sync/atomic"
	"testing"
)

func TestRowsCoversEveryRowOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 7, 64} {
		const n = 37
		var hits [n]int32
		Rows(n, workers, func(lo, hi int) {
			for y := lo; y < hi; y++ {
				atomic.AddInt32(&hits[y], 1)
			}
		})
		for y, v := range hits {
			if v != 1 {
				t.Fatalf("workers=%d row %d visited %d times", workers, y, v)
			}
		}
	}
}

func TestRowsEmpty(t *testing.T) {
	called := false
	Rows(0, 4, func(lo, hi int) { called = true })
	if called {
		t.Fatal("fn must not run for an empty range")
	}
}
