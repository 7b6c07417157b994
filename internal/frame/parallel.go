package frame

import (
	"sync"

	"github.com/anthonynsimon/bild/parallel"
)

// partition calls fn over disjoint [start, end) ranges covering [0, n) and
// returns once every range is done.
//
//   - workers <= 0 uses bild's fan-out across GOMAXPROCS.
//   - workers == 1 runs fn(0, n) on the calling goroutine.
//   - otherwise the range is split into workers nearly equal parts.
func partition(n, workers int, fn func(start, end int)) {
	switch {
	case n == 0:
		return
	case workers <= 0:
		parallel.Line(n, fn)
		return
	case workers == 1 || n < workers:
		fn(0, n)
		return
	}

	size := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
