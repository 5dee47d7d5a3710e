// Package parallel provides a small row-range parallelization helper for
// dense matrix assembly.
package parallel

import (
	"runtime"
	"sync"
)

// Parallelize splits [0, n) into contiguous ranges, one per worker, and
// runs fn(start, end) on each range concurrently. It blocks until every
// range has been processed. fn must not assume any ordering between ranges.
func Parallelize(n int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn sequentially when n is below threshold,
// where goroutine overhead would dominate, and in parallel otherwise.
func ParallelizeWithThreshold(n, threshold int, fn func(start, end int)) {
	if n < threshold {
		fn(0, n)
		return
	}
	Parallelize(n, fn)
}
