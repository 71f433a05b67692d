// Package parallel runs data-parallel kernels over row bands.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers normalises a requested worker count; values below one select
// runtime.NumCPU.
func Workers(n int) int {
	if n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// Rows splits [0, n) into contiguous bands and calls fn for each band on its
// own goroutine, returning once every band has finished. fn must only write
// state owned by its band.
func Rows(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers = min(Workers(workers), n)
	if workers == 1 {
		fn(0, n)
		return
	}
	per := n / workers
	extra := n % workers
	var g errgroup.Group
	lo := 0
	for i := 0; i < workers; i++ {
		hi := lo + per
		if i < extra {
			hi++
		}
		band := [2]int{lo, hi}
		g.Go(func() error {
			fn(band[0], band[1])
			return nil
		})
		lo = hi
	}
	_ = g.Wait()
}
